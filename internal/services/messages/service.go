package messages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hari7vansh/swipehire/internal/domain/model"
	pgrepo "github.com/hari7vansh/swipehire/internal/repo/postgres"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrForbidden     = errors.New("forbidden")
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchInactive = errors.New("match is no longer active")
)

const maxContentLength = 4000

type MatchStore interface {
	GetThread(ctx context.Context, matchID int64) (pgrepo.MatchThreadRecord, error)
}

type MessageStore interface {
	Create(ctx context.Context, matchID, senderProfileID int64, content string, now time.Time) (pgrepo.MessageRecord, error)
	ListByMatch(ctx context.Context, matchID int64, limit int) ([]pgrepo.MessageRecord, error)
	MarkReadForReader(ctx context.Context, matchID, readerProfileID int64) error
}

type Config struct {
	PageSize int
}

type Dependencies struct {
	Matches  MatchStore
	Messages MessageStore
}

type Service struct {
	matches  MatchStore
	messages MessageStore
	cfg      Config

	now func() time.Time
}

func NewService(deps Dependencies, cfg Config) (*Service, error) {
	if deps.Matches == nil {
		return nil, fmt.Errorf("match store is nil")
	}
	if deps.Messages == nil {
		return nil, fmt.Errorf("message store is nil")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 200
	}

	return &Service{
		matches:  deps.Matches,
		messages: deps.Messages,
		cfg:      cfg,
		now:      time.Now,
	}, nil
}

// List returns the thread for a match in send order and marks the other
// side's messages as read. A match id that resolves to nothing yields an
// empty list.
func (s *Service) List(ctx context.Context, actor model.Actor, matchID int64) ([]pgrepo.MessageRecord, error) {
	thread, err := s.matches.GetThread(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return []pgrepo.MessageRecord{}, nil
		}
		return nil, fmt.Errorf("load match: %w", err)
	}

	if actor.ProfileID != thread.RecruiterProfileID && actor.ProfileID != thread.JobSeekerProfileID {
		return nil, ErrForbidden
	}

	recs, err := s.messages.ListByMatch(ctx, matchID, s.cfg.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	if err := s.messages.MarkReadForReader(ctx, matchID, actor.ProfileID); err != nil {
		return nil, fmt.Errorf("mark messages read: %w", err)
	}

	return recs, nil
}

// Post appends a message to the match thread. Only participants of an
// active match may post.
func (s *Service) Post(ctx context.Context, actor model.Actor, matchID int64, content string) (pgrepo.MessageRecord, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return pgrepo.MessageRecord{}, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if len(content) > maxContentLength {
		return pgrepo.MessageRecord{}, fmt.Errorf("%w: content exceeds %d characters", ErrValidation, maxContentLength)
	}

	thread, err := s.matches.GetThread(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return pgrepo.MessageRecord{}, ErrMatchNotFound
		}
		return pgrepo.MessageRecord{}, fmt.Errorf("load match: %w", err)
	}

	if actor.ProfileID != thread.RecruiterProfileID && actor.ProfileID != thread.JobSeekerProfileID {
		return pgrepo.MessageRecord{}, ErrForbidden
	}
	if !thread.IsActive {
		return pgrepo.MessageRecord{}, ErrMatchInactive
	}

	rec, err := s.messages.Create(ctx, matchID, actor.ProfileID, content, s.now().UTC())
	if err != nil {
		return pgrepo.MessageRecord{}, fmt.Errorf("create message: %w", err)
	}

	return rec, nil
}

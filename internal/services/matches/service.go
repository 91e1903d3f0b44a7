package matches

import (
	"context"
	"errors"
	"fmt"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
	"github.com/hari7vansh/swipehire/internal/domain/model"
	pgrepo "github.com/hari7vansh/swipehire/internal/repo/postgres"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrMatchNotFound = errors.New("match not found")
)

type MatchStore interface {
	ListActiveForJobSeeker(ctx context.Context, jobSeekerID int64, limit int) ([]pgrepo.MatchListRecord, error)
	ListActiveForRecruiter(ctx context.Context, recruiterID int64, limit int) ([]pgrepo.MatchListRecord, error)
	GetThread(ctx context.Context, matchID int64) (pgrepo.MatchThreadRecord, error)
	SetViewed(ctx context.Context, matchID int64, side enums.Role) error
	Deactivate(ctx context.Context, matchID int64) (bool, error)
}

type Config struct {
	PageSize int
}

type Dependencies struct {
	Matches MatchStore
}

type Service struct {
	matches MatchStore
	cfg     Config
}

func NewService(deps Dependencies, cfg Config) (*Service, error) {
	if deps.Matches == nil {
		return nil, fmt.Errorf("match store is nil")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}

	return &Service{matches: deps.Matches, cfg: cfg}, nil
}

// List returns the caller's active matches. A caller whose role profile
// cannot be resolved gets an empty list, not an error.
func (s *Service) List(ctx context.Context, actor model.Actor) ([]pgrepo.MatchListRecord, error) {
	switch actor.Role {
	case enums.RoleJobSeeker:
		if actor.JobSeekerID <= 0 {
			return []pgrepo.MatchListRecord{}, nil
		}
		recs, err := s.matches.ListActiveForJobSeeker(ctx, actor.JobSeekerID, s.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list job seeker matches: %w", err)
		}
		return recs, nil
	case enums.RoleRecruiter:
		if actor.RecruiterID <= 0 {
			return []pgrepo.MatchListRecord{}, nil
		}
		recs, err := s.matches.ListActiveForRecruiter(ctx, actor.RecruiterID, s.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list recruiter matches: %w", err)
		}
		return recs, nil
	default:
		return []pgrepo.MatchListRecord{}, nil
	}
}

// MarkViewed flips the caller's side of the viewed flag. The other side's
// flag is untouched.
func (s *Service) MarkViewed(ctx context.Context, actor model.Actor, matchID int64) error {
	if _, err := s.participantThread(ctx, actor, matchID); err != nil {
		return err
	}

	if err := s.matches.SetViewed(ctx, matchID, actor.Role); err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("mark match viewed: %w", err)
	}
	return nil
}

// Unmatch deactivates the match for both sides. The thread stays readable
// but closed to new messages.
func (s *Service) Unmatch(ctx context.Context, actor model.Actor, matchID int64) error {
	if _, err := s.participantThread(ctx, actor, matchID); err != nil {
		return err
	}

	if _, err := s.matches.Deactivate(ctx, matchID); err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("deactivate match: %w", err)
	}
	return nil
}

func (s *Service) participantThread(ctx context.Context, actor model.Actor, matchID int64) (pgrepo.MatchThreadRecord, error) {
	thread, err := s.matches.GetThread(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return pgrepo.MatchThreadRecord{}, ErrMatchNotFound
		}
		return pgrepo.MatchThreadRecord{}, fmt.Errorf("load match: %w", err)
	}

	if actor.ProfileID != thread.RecruiterProfileID && actor.ProfileID != thread.JobSeekerProfileID {
		return pgrepo.MatchThreadRecord{}, ErrForbidden
	}

	return thread, nil
}

package messages

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
	"github.com/hari7vansh/swipehire/internal/domain/model"
	pgrepo "github.com/hari7vansh/swipehire/internal/repo/postgres"
)

type matchStoreStub struct {
	threads map[int64]pgrepo.MatchThreadRecord
}

func (s *matchStoreStub) GetThread(_ context.Context, matchID int64) (pgrepo.MatchThreadRecord, error) {
	thread, ok := s.threads[matchID]
	if !ok {
		return pgrepo.MatchThreadRecord{}, pgrepo.ErrMatchNotFound
	}
	return thread, nil
}

type messageStoreStub struct {
	nextID    int64
	rows      map[int64][]pgrepo.MessageRecord
	readCalls []int64
}

func newMessageStoreStub() *messageStoreStub {
	return &messageStoreStub{rows: make(map[int64][]pgrepo.MessageRecord)}
}

func (s *messageStoreStub) Create(_ context.Context, matchID, senderProfileID int64, content string, now time.Time) (pgrepo.MessageRecord, error) {
	s.nextID++
	rec := pgrepo.MessageRecord{
		ID:              s.nextID,
		MatchID:         matchID,
		SenderProfileID: senderProfileID,
		Content:         content,
		CreatedAt:       now,
	}
	s.rows[matchID] = append(s.rows[matchID], rec)
	return rec, nil
}

func (s *messageStoreStub) ListByMatch(_ context.Context, matchID int64, _ int) ([]pgrepo.MessageRecord, error) {
	return s.rows[matchID], nil
}

func (s *messageStoreStub) MarkReadForReader(_ context.Context, matchID, readerProfileID int64) error {
	s.readCalls = append(s.readCalls, readerProfileID)
	return nil
}

func activeThread() map[int64]pgrepo.MatchThreadRecord {
	return map[int64]pgrepo.MatchThreadRecord{
		1: {ID: 1, IsActive: true, RecruiterProfileID: 20, JobSeekerProfileID: 10},
	}
}

func newService(t *testing.T, matches *matchStoreStub, messages *messageStoreStub) *Service {
	t.Helper()
	svc, err := NewService(Dependencies{Matches: matches, Messages: messages}, Config{PageSize: 50})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func seeker() model.Actor {
	return model.Actor{ProfileID: 10, Role: enums.RoleJobSeeker, JobSeekerID: 100}
}

func recruiter() model.Actor {
	return model.Actor{ProfileID: 20, Role: enums.RoleRecruiter, RecruiterID: 200}
}

func TestThreadKeepsSendOrder(t *testing.T) {
	matchStore := &matchStoreStub{threads: activeThread()}
	messageStore := newMessageStoreStub()
	svc := newService(t, matchStore, messageStore)

	ctx := context.Background()
	for _, content := range []string{"hello", "hi there", "when can you interview?"} {
		actor := seeker()
		if content == "hi there" {
			actor = recruiter()
		}
		if _, err := svc.Post(ctx, actor, 1, content); err != nil {
			t.Fatalf("post %q: %v", content, err)
		}
	}

	recs, err := svc.List(ctx, seeker(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(recs))
	}
	for i, want := range []string{"hello", "hi there", "when can you interview?"} {
		if recs[i].Content != want {
			t.Fatalf("message %d out of order: got %q want %q", i, recs[i].Content, want)
		}
	}
}

func TestListMarksIncomingMessagesRead(t *testing.T) {
	matchStore := &matchStoreStub{threads: activeThread()}
	messageStore := newMessageStoreStub()
	svc := newService(t, matchStore, messageStore)

	if _, err := svc.List(context.Background(), recruiter(), 1); err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(messageStore.readCalls) != 1 || messageStore.readCalls[0] != 20 {
		t.Fatalf("unexpected read receipts: %+v", messageStore.readCalls)
	}
}

func TestListUnknownMatchReturnsEmpty(t *testing.T) {
	svc := newService(t, &matchStoreStub{threads: map[int64]pgrepo.MatchThreadRecord{}}, newMessageStoreStub())

	recs, err := svc.List(context.Background(), seeker(), 404)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("expected empty thread, got %+v", recs)
	}
}

func TestListRejectsNonParticipant(t *testing.T) {
	svc := newService(t, &matchStoreStub{threads: activeThread()}, newMessageStoreStub())

	stranger := model.Actor{ProfileID: 77, Role: enums.RoleJobSeeker, JobSeekerID: 700}
	_, err := svc.List(context.Background(), stranger, 1)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPostRejectsNonParticipant(t *testing.T) {
	messageStore := newMessageStoreStub()
	svc := newService(t, &matchStoreStub{threads: activeThread()}, messageStore)

	stranger := model.Actor{ProfileID: 77, Role: enums.RoleRecruiter, RecruiterID: 700}
	_, err := svc.Post(context.Background(), stranger, 1, "hello")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(messageStore.rows[1]) != 0 {
		t.Fatalf("no message should be written")
	}
}

func TestPostRejectsInactiveMatch(t *testing.T) {
	threads := map[int64]pgrepo.MatchThreadRecord{
		1: {ID: 1, IsActive: false, RecruiterProfileID: 20, JobSeekerProfileID: 10},
	}
	svc := newService(t, &matchStoreStub{threads: threads}, newMessageStoreStub())

	_, err := svc.Post(context.Background(), seeker(), 1, "hello?")
	if !errors.Is(err, ErrMatchInactive) {
		t.Fatalf("expected ErrMatchInactive, got %v", err)
	}
}

func TestPostRejectsMissingMatch(t *testing.T) {
	svc := newService(t, &matchStoreStub{threads: map[int64]pgrepo.MatchThreadRecord{}}, newMessageStoreStub())

	_, err := svc.Post(context.Background(), seeker(), 404, "hello")
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestPostValidatesContent(t *testing.T) {
	svc := newService(t, &matchStoreStub{threads: activeThread()}, newMessageStoreStub())

	if _, err := svc.Post(context.Background(), seeker(), 1, "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank content, got %v", err)
	}

	long := strings.Repeat("x", maxContentLength+1)
	if _, err := svc.Post(context.Background(), seeker(), 1, long); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for oversized content, got %v", err)
	}
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
	"github.com/hari7vansh/swipehire/internal/domain/model"
	pgrepo "github.com/hari7vansh/swipehire/internal/repo/postgres"
	matchessvc "github.com/hari7vansh/swipehire/internal/services/matches"
)

type matchStoreStub struct {
	threads map[int64]pgrepo.MatchThreadRecord
	viewed  int
}

func (s *matchStoreStub) ListActiveForJobSeeker(context.Context, int64, int) ([]pgrepo.MatchListRecord, error) {
	return nil, nil
}

func (s *matchStoreStub) ListActiveForRecruiter(context.Context, int64, int) ([]pgrepo.MatchListRecord, error) {
	return nil, nil
}

func (s *matchStoreStub) GetThread(_ context.Context, matchID int64) (pgrepo.MatchThreadRecord, error) {
	thread, ok := s.threads[matchID]
	if !ok {
		return pgrepo.MatchThreadRecord{}, pgrepo.ErrMatchNotFound
	}
	return thread, nil
}

func (s *matchStoreStub) SetViewed(context.Context, int64, enums.Role) error {
	s.viewed++
	return nil
}

func (s *matchStoreStub) Deactivate(context.Context, int64) (bool, error) {
	return true, nil
}

func newMatchesHandlerForTest(t *testing.T, store *matchStoreStub) *MatchesHandler {
	t.Helper()

	svc, err := matchessvc.NewService(matchessvc.Dependencies{Matches: store}, matchessvc.Config{})
	if err != nil {
		t.Fatalf("new match service: %v", err)
	}
	return NewMatchesHandler(svc)
}

func performMatchAction(t *testing.T, h *MatchesHandler, path, matchID string, actor *model.Actor) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", matchID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	if actor != nil {
		ctx = model.WithActor(ctx, *actor)
	}
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	switch path {
	case "/matches/1/unmatch":
		h.Unmatch(rec, req)
	default:
		h.MarkViewed(rec, req)
	}
	return rec
}

func TestMarkViewedRequiresActor(t *testing.T) {
	h := newMatchesHandlerForTest(t, &matchStoreStub{})

	resp := performMatchAction(t, h, "/matches/1/viewed", "1", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusUnauthorized)
	}
}

func TestMarkViewedUnknownMatch(t *testing.T) {
	h := newMatchesHandlerForTest(t, &matchStoreStub{threads: map[int64]pgrepo.MatchThreadRecord{}})

	actor := model.Actor{ProfileID: 10, Role: enums.RoleJobSeeker, JobSeekerID: 100}
	resp := performMatchAction(t, h, "/matches/1/viewed", "1", &actor)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusNotFound)
	}
}

func TestMarkViewedForbiddenForStranger(t *testing.T) {
	store := &matchStoreStub{threads: map[int64]pgrepo.MatchThreadRecord{
		1: {ID: 1, IsActive: true, RecruiterProfileID: 20, JobSeekerProfileID: 10},
	}}
	h := newMatchesHandlerForTest(t, store)

	stranger := model.Actor{ProfileID: 77, Role: enums.RoleJobSeeker, JobSeekerID: 700}
	resp := performMatchAction(t, h, "/matches/1/viewed", "1", &stranger)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusForbidden)
	}
	if store.viewed != 0 {
		t.Fatalf("viewed flag must not change for strangers")
	}
}

func TestUnmatchHappyPath(t *testing.T) {
	store := &matchStoreStub{threads: map[int64]pgrepo.MatchThreadRecord{
		1: {ID: 1, IsActive: true, RecruiterProfileID: 20, JobSeekerProfileID: 10},
	}}
	h := newMatchesHandlerForTest(t, store)

	actor := model.Actor{ProfileID: 20, Role: enums.RoleRecruiter, RecruiterID: 200}
	resp := performMatchAction(t, h, "/matches/1/unmatch", "1", &actor)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", resp.Code, http.StatusOK)
	}
}

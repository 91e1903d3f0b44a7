package apiapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
	"github.com/hari7vansh/swipehire/internal/domain/model"
	pgrepo "github.com/hari7vansh/swipehire/internal/repo/postgres"
	redrepo "github.com/hari7vansh/swipehire/internal/repo/redis"
	authsvc "github.com/hari7vansh/swipehire/internal/services/auth"
	profilessvc "github.com/hari7vansh/swipehire/internal/services/profiles"
)

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	mw := AuthMiddleware(svc, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler must not be called without a token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewarePassesValidToken(t *testing.T) {
	svc, cleanup := newAuthServiceForTest(t)
	defer cleanup()

	res, err := svc.IssueSession(context.Background(), 1001, "job_seeker")
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	mw := AuthMiddleware(svc, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+res.AccessToken)
	rr := httptest.NewRecorder()

	var seen authsvc.Identity
	mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		identity, ok := authsvc.IdentityFromContext(r.Context())
		if !ok {
			t.Fatalf("identity missing from context")
		}
		seen = identity
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}
	if seen.UserID != 1001 || seen.Role != "job_seeker" {
		t.Fatalf("unexpected identity: %+v", seen)
	}
}

type profileStoreStub struct {
	profiles map[int64]pgrepo.ProfileRecord
	seekers  map[int64]pgrepo.JobSeekerProfileRecord
}

func (s *profileStoreStub) GetByUserID(_ context.Context, userID int64) (pgrepo.ProfileRecord, error) {
	rec, ok := s.profiles[userID]
	if !ok {
		return pgrepo.ProfileRecord{}, pgrepo.ErrProfileNotFound
	}
	return rec, nil
}

func (s *profileStoreStub) GetRecruiterByProfileID(context.Context, int64) (pgrepo.RecruiterProfileRecord, error) {
	return pgrepo.RecruiterProfileRecord{}, pgrepo.ErrProfileNotFound
}

func (s *profileStoreStub) GetJobSeekerByProfileID(_ context.Context, profileID int64) (pgrepo.JobSeekerProfileRecord, error) {
	rec, ok := s.seekers[profileID]
	if !ok {
		return pgrepo.JobSeekerProfileRecord{}, pgrepo.ErrProfileNotFound
	}
	return rec, nil
}

func (s *profileStoreStub) UpdateBase(context.Context, int64, string, string) error { return nil }

func (s *profileStoreStub) UpdateRecruiter(context.Context, pgrepo.RecruiterProfileRecord) error {
	return nil
}

func (s *profileStoreStub) UpdateJobSeeker(context.Context, pgrepo.JobSeekerProfileRecord) error {
	return nil
}

func TestActorMiddlewareResolvesFullIdentity(t *testing.T) {
	store := &profileStoreStub{
		profiles: map[int64]pgrepo.ProfileRecord{
			1001: {ID: 10, UserID: 1001, Role: enums.RoleJobSeeker},
		},
		seekers: map[int64]pgrepo.JobSeekerProfileRecord{
			10: {ID: 100, ProfileID: 10},
		},
	}
	profileService, err := profilessvc.NewService(profilessvc.Dependencies{Profiles: store})
	if err != nil {
		t.Fatalf("new profile service: %v", err)
	}

	mw := ActorMiddleware(profileService, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/matches", nil)
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		UserID: 1001,
		SID:    "sid-1",
		Role:   "job_seeker",
	}))
	rr := httptest.NewRecorder()

	var seen model.Actor
	mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		actor, ok := model.ActorFromContext(r.Context())
		if !ok {
			t.Fatalf("actor missing from context")
		}
		seen = actor
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}
	if seen.UserID != 1001 || seen.ProfileID != 10 || seen.JobSeekerID != 100 {
		t.Fatalf("unexpected actor: %+v", seen)
	}
	if seen.Role != enums.RoleJobSeeker {
		t.Fatalf("unexpected role: %s", seen.Role)
	}
}

func TestActorMiddlewareForbidsProfilelessUser(t *testing.T) {
	profileService, err := profilessvc.NewService(profilessvc.Dependencies{
		Profiles: &profileStoreStub{profiles: map[int64]pgrepo.ProfileRecord{}},
	})
	if err != nil {
		t.Fatalf("new profile service: %v", err)
	}

	mw := ActorMiddleware(profileService, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/matches", nil)
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		UserID: 999,
		SID:    "sid-9",
		Role:   "job_seeker",
	}))
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler must not be called without a profile")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusForbidden)
	}
}

func newAuthServiceForTest(t *testing.T) (*authsvc.Service, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	svc, err := authsvc.NewService(authsvc.Dependencies{
		Sessions: redrepo.NewSessionRepo(client),
		Tokens:   authsvc.NewJWTManager("test-secret", 15*time.Minute),
	}, authsvc.Config{RefreshTTL: time.Hour})
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}

	cleanup := func() {
		_ = client.Close()
		mr.Close()
	}
	return svc, cleanup
}

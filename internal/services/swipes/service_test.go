package swipes

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
	"github.com/hari7vansh/swipehire/internal/domain/model"
	pgrepo "github.com/hari7vansh/swipehire/internal/repo/postgres"
	ratesvc "github.com/hari7vansh/swipehire/internal/services/rate"
)

type jobStoreStub struct {
	jobs map[int64]pgrepo.JobRecord
}

func (s *jobStoreStub) GetByID(_ context.Context, jobID int64) (pgrepo.JobRecord, error) {
	rec, ok := s.jobs[jobID]
	if !ok {
		return pgrepo.JobRecord{}, pgrepo.ErrJobNotFound
	}
	return rec, nil
}

type candidateStoreStub struct {
	candidates map[int64]pgrepo.JobSeekerProfileRecord
}

func (s *candidateStoreStub) GetJobSeekerByID(_ context.Context, jobSeekerID int64) (pgrepo.JobSeekerProfileRecord, error) {
	rec, ok := s.candidates[jobSeekerID]
	if !ok {
		return pgrepo.JobSeekerProfileRecord{}, pgrepo.ErrProfileNotFound
	}
	return rec, nil
}

type swipeKey struct {
	profileID int64
	kind      enums.SwipeTargetKind
	targetID  int64
}

type swipeStoreStub struct {
	mu     sync.Mutex
	nextID int64
	rights map[swipeKey]bool
	rows   []pgrepo.SwipeRecord
}

func newSwipeStoreStub() *swipeStoreStub {
	return &swipeStoreStub{rights: make(map[swipeKey]bool)}
}

func (s *swipeStoreStub) Create(_ context.Context, _ pgx.Tx, profileID int64, direction enums.SwipeDirection, kind enums.SwipeTargetKind, targetID int64, now time.Time) (pgrepo.SwipeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rec := pgrepo.SwipeRecord{
		ID:         s.nextID,
		ProfileID:  profileID,
		Direction:  direction,
		TargetKind: kind,
		TargetID:   targetID,
		CreatedAt:  now,
	}
	s.rows = append(s.rows, rec)
	if direction == enums.SwipeRight {
		s.rights[swipeKey{profileID, kind, targetID}] = true
	}
	return rec, nil
}

func (s *swipeStoreStub) ExistsRight(_ context.Context, _ pgx.Tx, profileID int64, kind enums.SwipeTargetKind, targetID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rights[swipeKey{profileID, kind, targetID}], nil
}

func (s *swipeStoreStub) seedRight(profileID int64, kind enums.SwipeTargetKind, targetID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rights[swipeKey{profileID, kind, targetID}] = true
}

type matchPair struct {
	jobID       int64
	jobSeekerID int64
}

type matchStoreStub struct {
	mu      sync.Mutex
	nextID  int64
	matches map[matchPair]pgrepo.MatchRecord
	creates int
}

func newMatchStoreStub() *matchStoreStub {
	return &matchStoreStub{matches: make(map[matchPair]pgrepo.MatchRecord)}
}

func (s *matchStoreStub) CreateOrGet(_ context.Context, _ pgx.Tx, jobID, jobSeekerID int64) (pgrepo.MatchRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := matchPair{jobID, jobSeekerID}
	if rec, ok := s.matches[key]; ok {
		return rec, false, nil
	}

	s.nextID++
	s.creates++
	rec := pgrepo.MatchRecord{
		ID:          s.nextID,
		JobID:       jobID,
		JobSeekerID: jobSeekerID,
		IsActive:    true,
	}
	s.matches[key] = rec
	return rec, true, nil
}

type limiterStub struct {
	err error
}

func (s limiterStub) AllowSwipe(context.Context, int64) (time.Duration, error) {
	if s.err != nil {
		return 3 * time.Second, s.err
	}
	return 0, nil
}

func newTestService(jobs *jobStoreStub, candidates *candidateStoreStub, swipes *swipeStoreStub, matches *matchStoreStub, limiter Limiter) *Service {
	svc := &Service{
		jobs:       jobs,
		candidates: candidates,
		swipes:     swipes,
		matches:    matches,
		limiter:    limiter,
		now:        func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) },
	}
	svc.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return fn(nil)
	}
	return svc
}

func seekerActor() model.Actor {
	return model.Actor{UserID: 1, ProfileID: 10, Role: enums.RoleJobSeeker, JobSeekerID: 100}
}

func recruiterActor() model.Actor {
	return model.Actor{UserID: 2, ProfileID: 20, Role: enums.RoleRecruiter, RecruiterID: 200}
}

func activeJob() pgrepo.JobRecord {
	return pgrepo.JobRecord{
		ID:             5,
		RecruiterID:    200,
		OwnerProfileID: 20,
		Title:          "Backend Engineer",
		IsActive:       true,
	}
}

func TestSeekerRightSwipeWithoutReciprocalCreatesNoMatch(t *testing.T) {
	jobs := &jobStoreStub{jobs: map[int64]pgrepo.JobRecord{5: activeJob()}}
	swipeStore := newSwipeStoreStub()
	matchStore := newMatchStoreStub()
	svc := newTestService(jobs, &candidateStoreStub{}, swipeStore, matchStore, nil)

	result, err := svc.Swipe(context.Background(), seekerActor(), Input{
		Direction: enums.SwipeRight,
		JobID:     5,
	})
	if err != nil {
		t.Fatalf("swipe: %v", err)
	}
	if result.Matched {
		t.Fatalf("expected no match without reciprocal swipe")
	}
	if len(swipeStore.rows) != 1 {
		t.Fatalf("expected one swipe row, got %d", len(swipeStore.rows))
	}
	if matchStore.creates != 0 {
		t.Fatalf("expected no match rows, got %d", matchStore.creates)
	}
}

func TestSeekerRightSwipeAfterRecruiterRightCreatesMatch(t *testing.T) {
	jobs := &jobStoreStub{jobs: map[int64]pgrepo.JobRecord{5: activeJob()}}
	swipeStore := newSwipeStoreStub()
	swipeStore.seedRight(20, enums.SwipeTargetCandidate, 100)
	matchStore := newMatchStoreStub()
	svc := newTestService(jobs, &candidateStoreStub{}, swipeStore, matchStore, nil)

	result, err := svc.Swipe(context.Background(), seekerActor(), Input{
		Direction: enums.SwipeRight,
		JobID:     5,
	})
	if err != nil {
		t.Fatalf("swipe: %v", err)
	}
	if !result.Matched {
		t.Fatalf("expected a match on mutual right swipe")
	}
	if result.Match.JobID != 5 || result.Match.JobSeekerID != 100 {
		t.Fatalf("unexpected match pair: %+v", result.Match)
	}
}

func TestRecruiterRightSwipeAfterSeekerRightCreatesMatch(t *testing.T) {
	jobs := &jobStoreStub{jobs: map[int64]pgrepo.JobRecord{5: activeJob()}}
	candidates := &candidateStoreStub{candidates: map[int64]pgrepo.JobSeekerProfileRecord{
		100: {ID: 100, ProfileID: 10},
	}}
	swipeStore := newSwipeStoreStub()
	swipeStore.seedRight(10, enums.SwipeTargetJob, 5)
	matchStore := newMatchStoreStub()
	svc := newTestService(jobs, candidates, swipeStore, matchStore, nil)

	result, err := svc.Swipe(context.Background(), recruiterActor(), Input{
		Direction:   enums.SwipeRight,
		JobID:       5,
		JobSeekerID: 100,
	})
	if err != nil {
		t.Fatalf("swipe: %v", err)
	}
	if !result.Matched {
		t.Fatalf("expected a match on mutual right swipe")
	}
	if result.Match.JobID != 5 || result.Match.JobSeekerID != 100 {
		t.Fatalf("unexpected match pair: %+v", result.Match)
	}
}

func TestLeftSwipeNeverMatches(t *testing.T) {
	jobs := &jobStoreStub{jobs: map[int64]pgrepo.JobRecord{5: activeJob()}}
	swipeStore := newSwipeStoreStub()
	swipeStore.seedRight(20, enums.SwipeTargetCandidate, 100)
	matchStore := newMatchStoreStub()
	svc := newTestService(jobs, &candidateStoreStub{}, swipeStore, matchStore, nil)

	result, err := svc.Swipe(context.Background(), seekerActor(), Input{
		Direction: enums.SwipeLeft,
		JobID:     5,
	})
	if err != nil {
		t.Fatalf("swipe: %v", err)
	}
	if result.Matched {
		t.Fatalf("left swipe must not create a match")
	}
	if matchStore.creates != 0 {
		t.Fatalf("expected no match rows, got %d", matchStore.creates)
	}
}

func TestRepeatedMutualSwipesReuseTheSameMatch(t *testing.T) {
	jobs := &jobStoreStub{jobs: map[int64]pgrepo.JobRecord{5: activeJob()}}
	swipeStore := newSwipeStoreStub()
	swipeStore.seedRight(20, enums.SwipeTargetCandidate, 100)
	matchStore := newMatchStoreStub()
	svc := newTestService(jobs, &candidateStoreStub{}, swipeStore, matchStore, nil)

	first, err := svc.Swipe(context.Background(), seekerActor(), Input{Direction: enums.SwipeRight, JobID: 5})
	if err != nil {
		t.Fatalf("first swipe: %v", err)
	}
	second, err := svc.Swipe(context.Background(), seekerActor(), Input{Direction: enums.SwipeRight, JobID: 5})
	if err != nil {
		t.Fatalf("second swipe: %v", err)
	}

	if !first.Matched || !second.Matched {
		t.Fatalf("both swipes should report a match")
	}
	if first.Match.ID != second.Match.ID {
		t.Fatalf("expected the same match row, got %d and %d", first.Match.ID, second.Match.ID)
	}
	if matchStore.creates != 1 {
		t.Fatalf("expected exactly one match row, got %d", matchStore.creates)
	}
	if len(swipeStore.rows) != 2 {
		t.Fatalf("every swipe should be recorded, got %d rows", len(swipeStore.rows))
	}
}

func TestConcurrentMutualSwipesCreateSingleMatch(t *testing.T) {
	jobs := &jobStoreStub{jobs: map[int64]pgrepo.JobRecord{5: activeJob()}}
	candidates := &candidateStoreStub{candidates: map[int64]pgrepo.JobSeekerProfileRecord{
		100: {ID: 100, ProfileID: 10},
	}}
	swipeStore := newSwipeStoreStub()
	swipeStore.seedRight(20, enums.SwipeTargetCandidate, 100)
	swipeStore.seedRight(10, enums.SwipeTargetJob, 5)
	matchStore := newMatchStoreStub()
	svc := newTestService(jobs, candidates, swipeStore, matchStore, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.Swipe(context.Background(), seekerActor(), Input{Direction: enums.SwipeRight, JobID: 5})
		errs <- err
	}()
	go func() {
		defer wg.Done()
		_, err := svc.Swipe(context.Background(), recruiterActor(), Input{Direction: enums.SwipeRight, JobID: 5, JobSeekerID: 100})
		errs <- err
	}()
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent swipe: %v", err)
		}
	}
	if matchStore.creates != 1 {
		t.Fatalf("expected exactly one match row under concurrency, got %d", matchStore.creates)
	}
}

func TestSwipeRejectsInvalidDirection(t *testing.T) {
	jobs := &jobStoreStub{jobs: map[int64]pgrepo.JobRecord{5: activeJob()}}
	swipeStore := newSwipeStoreStub()
	svc := newTestService(jobs, &candidateStoreStub{}, swipeStore, newMatchStoreStub(), nil)

	_, err := svc.Swipe(context.Background(), seekerActor(), Input{
		Direction: enums.SwipeDirection("up"),
		JobID:     5,
	})
	if !errors.Is(err, ErrInvalidDirection) {
		t.Fatalf("expected ErrInvalidDirection, got %v", err)
	}
	if len(swipeStore.rows) != 0 {
		t.Fatalf("failed swipe must not write rows, got %d", len(swipeStore.rows))
	}
}

func TestSeekerSwipeOnMissingJob(t *testing.T) {
	swipeStore := newSwipeStoreStub()
	svc := newTestService(&jobStoreStub{jobs: map[int64]pgrepo.JobRecord{}}, &candidateStoreStub{}, swipeStore, newMatchStoreStub(), nil)

	_, err := svc.Swipe(context.Background(), seekerActor(), Input{Direction: enums.SwipeRight, JobID: 404})
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if len(swipeStore.rows) != 0 {
		t.Fatalf("failed swipe must not write rows, got %d", len(swipeStore.rows))
	}
}

func TestSeekerSwipeOnInactiveJob(t *testing.T) {
	job := activeJob()
	job.IsActive = false
	svc := newTestService(&jobStoreStub{jobs: map[int64]pgrepo.JobRecord{5: job}}, &candidateStoreStub{}, newSwipeStoreStub(), newMatchStoreStub(), nil)

	_, err := svc.Swipe(context.Background(), seekerActor(), Input{Direction: enums.SwipeRight, JobID: 5})
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for inactive job, got %v", err)
	}
}

func TestRecruiterSwipeOnMissingCandidate(t *testing.T) {
	jobs := &jobStoreStub{jobs: map[int64]pgrepo.JobRecord{5: activeJob()}}
	swipeStore := newSwipeStoreStub()
	svc := newTestService(jobs, &candidateStoreStub{candidates: map[int64]pgrepo.JobSeekerProfileRecord{}}, swipeStore, newMatchStoreStub(), nil)

	_, err := svc.Swipe(context.Background(), recruiterActor(), Input{Direction: enums.SwipeRight, JobID: 5, JobSeekerID: 404})
	if !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
	if len(swipeStore.rows) != 0 {
		t.Fatalf("failed swipe must not write rows, got %d", len(swipeStore.rows))
	}
}

func TestRecruiterCannotSwipeForSomeoneElsesJob(t *testing.T) {
	job := activeJob()
	job.RecruiterID = 999
	jobs := &jobStoreStub{jobs: map[int64]pgrepo.JobRecord{5: job}}
	candidates := &candidateStoreStub{candidates: map[int64]pgrepo.JobSeekerProfileRecord{
		100: {ID: 100, ProfileID: 10},
	}}
	svc := newTestService(jobs, candidates, newSwipeStoreStub(), newMatchStoreStub(), nil)

	_, err := svc.Swipe(context.Background(), recruiterActor(), Input{Direction: enums.SwipeRight, JobID: 5, JobSeekerID: 100})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSwipePropagatesRateLimit(t *testing.T) {
	jobs := &jobStoreStub{jobs: map[int64]pgrepo.JobRecord{5: activeJob()}}
	swipeStore := newSwipeStoreStub()
	svc := newTestService(jobs, &candidateStoreStub{}, swipeStore, newMatchStoreStub(), limiterStub{err: ratesvc.ErrRateLimited})

	_, err := svc.Swipe(context.Background(), seekerActor(), Input{Direction: enums.SwipeRight, JobID: 5})
	if !errors.Is(err, ratesvc.ErrRateLimited) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if len(swipeStore.rows) != 0 {
		t.Fatalf("rate limited swipe must not write rows, got %d", len(swipeStore.rows))
	}
}

package swipes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
	"github.com/hari7vansh/swipehire/internal/domain/model"
	pgrepo "github.com/hari7vansh/swipehire/internal/repo/postgres"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidDirection  = errors.New("invalid swipe direction")
	ErrJobNotFound       = errors.New("job not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrForbidden         = errors.New("forbidden")
)

type JobStore interface {
	GetByID(ctx context.Context, jobID int64) (pgrepo.JobRecord, error)
}

type CandidateStore interface {
	GetJobSeekerByID(ctx context.Context, jobSeekerID int64) (pgrepo.JobSeekerProfileRecord, error)
}

type SwipeStore interface {
	Create(ctx context.Context, tx pgx.Tx, profileID int64, direction enums.SwipeDirection, kind enums.SwipeTargetKind, targetID int64, now time.Time) (pgrepo.SwipeRecord, error)
	ExistsRight(ctx context.Context, tx pgx.Tx, profileID int64, kind enums.SwipeTargetKind, targetID int64) (bool, error)
}

type MatchStore interface {
	CreateOrGet(ctx context.Context, tx pgx.Tx, jobID, jobSeekerID int64) (pgrepo.MatchRecord, bool, error)
}

type Limiter interface {
	AllowSwipe(ctx context.Context, profileID int64) (time.Duration, error)
}

type Dependencies struct {
	Pool       *pgxpool.Pool
	Jobs       JobStore
	Candidates CandidateStore
	Swipes     SwipeStore
	Matches    MatchStore
	Limiter    Limiter
}

type Service struct {
	jobs       JobStore
	candidates CandidateStore
	swipes     SwipeStore
	matches    MatchStore
	limiter    Limiter

	runTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
	now   func() time.Time
}

func NewService(deps Dependencies) (*Service, error) {
	if deps.Jobs == nil || deps.Candidates == nil || deps.Swipes == nil || deps.Matches == nil {
		return nil, fmt.Errorf("swipe service stores are incomplete")
	}

	svc := &Service{
		jobs:       deps.Jobs,
		candidates: deps.Candidates,
		swipes:     deps.Swipes,
		matches:    deps.Matches,
		limiter:    deps.Limiter,
		now:        time.Now,
	}
	svc.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return pgrepo.WithTx(ctx, deps.Pool, func(_ context.Context, tx pgx.Tx) error {
			return fn(tx)
		})
	}

	return svc, nil
}

type Input struct {
	Direction enums.SwipeDirection

	// JobID is the swiped job for job seekers, and for recruiters the
	// posting the swipe is made on behalf of.
	JobID int64

	// JobSeekerID is the swiped candidate. Recruiters only.
	JobSeekerID int64
}

type Result struct {
	Swipe   pgrepo.SwipeRecord
	Matched bool
	Match   pgrepo.MatchRecord
}

// Swipe records a swipe for the actor and, on a mutual right swipe, creates
// the match. Swipe row and match row commit in one transaction; a failed
// swipe writes nothing.
func (s *Service) Swipe(ctx context.Context, actor model.Actor, input Input) (Result, error) {
	if _, ok := enums.ParseSwipeDirection(string(input.Direction)); !ok {
		return Result{}, ErrInvalidDirection
	}
	if actor.ProfileID <= 0 {
		return Result{}, ErrValidation
	}

	if s.limiter != nil {
		if _, err := s.limiter.AllowSwipe(ctx, actor.ProfileID); err != nil {
			return Result{}, err
		}
	}

	switch actor.Role {
	case enums.RoleJobSeeker:
		return s.seekerSwipe(ctx, actor, input)
	case enums.RoleRecruiter:
		return s.recruiterSwipe(ctx, actor, input)
	default:
		return Result{}, ErrForbidden
	}
}

func (s *Service) seekerSwipe(ctx context.Context, actor model.Actor, input Input) (Result, error) {
	if input.JobID <= 0 {
		return Result{}, fmt.Errorf("%w: job_id is required", ErrValidation)
	}
	if actor.JobSeekerID <= 0 {
		return Result{}, ErrForbidden
	}

	job, err := s.jobs.GetByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrJobNotFound) {
			return Result{}, ErrJobNotFound
		}
		return Result{}, fmt.Errorf("load job: %w", err)
	}
	if !job.IsActive {
		return Result{}, ErrJobNotFound
	}

	var result Result
	err = s.runTx(ctx, func(tx pgx.Tx) error {
		swipe, err := s.swipes.Create(ctx, tx, actor.ProfileID, input.Direction, enums.SwipeTargetJob, job.ID, s.now().UTC())
		if err != nil {
			return fmt.Errorf("record swipe: %w", err)
		}
		result.Swipe = swipe

		if input.Direction != enums.SwipeRight {
			return nil
		}

		// Mutual when the job's recruiter has already right-swiped
		// this candidate.
		mutual, err := s.swipes.ExistsRight(ctx, tx, job.OwnerProfileID, enums.SwipeTargetCandidate, actor.JobSeekerID)
		if err != nil {
			return fmt.Errorf("check reciprocal swipe: %w", err)
		}
		if !mutual {
			return nil
		}

		match, _, err := s.matches.CreateOrGet(ctx, tx, job.ID, actor.JobSeekerID)
		if err != nil {
			return fmt.Errorf("create match: %w", err)
		}
		result.Matched = true
		result.Match = match
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return result, nil
}

func (s *Service) recruiterSwipe(ctx context.Context, actor model.Actor, input Input) (Result, error) {
	if input.JobSeekerID <= 0 {
		return Result{}, fmt.Errorf("%w: job_seeker_id is required", ErrValidation)
	}
	if input.JobID <= 0 {
		return Result{}, fmt.Errorf("%w: job_id is required", ErrValidation)
	}

	candidate, err := s.candidates.GetJobSeekerByID(ctx, input.JobSeekerID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return Result{}, ErrCandidateNotFound
		}
		return Result{}, fmt.Errorf("load candidate: %w", err)
	}

	job, err := s.jobs.GetByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrJobNotFound) {
			return Result{}, ErrJobNotFound
		}
		return Result{}, fmt.Errorf("load job: %w", err)
	}
	if job.RecruiterID != actor.RecruiterID {
		return Result{}, ErrForbidden
	}
	if !job.IsActive {
		return Result{}, ErrJobNotFound
	}

	var result Result
	err = s.runTx(ctx, func(tx pgx.Tx) error {
		swipe, err := s.swipes.Create(ctx, tx, actor.ProfileID, input.Direction, enums.SwipeTargetCandidate, candidate.ID, s.now().UTC())
		if err != nil {
			return fmt.Errorf("record swipe: %w", err)
		}
		result.Swipe = swipe

		if input.Direction != enums.SwipeRight {
			return nil
		}

		// Mutual when the candidate has already right-swiped this job.
		mutual, err := s.swipes.ExistsRight(ctx, tx, candidate.ProfileID, enums.SwipeTargetJob, job.ID)
		if err != nil {
			return fmt.Errorf("check reciprocal swipe: %w", err)
		}
		if !mutual {
			return nil
		}

		match, _, err := s.matches.CreateOrGet(ctx, tx, job.ID, candidate.ID)
		if err != nil {
			return fmt.Errorf("create match: %w", err)
		}
		result.Matched = true
		result.Match = match
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return result, nil
}

package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
	"github.com/hari7vansh/swipehire/internal/domain/model"
	pgrepo "github.com/hari7vansh/swipehire/internal/repo/postgres"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrProfileNotFound = errors.New("profile not found")
)

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (pgrepo.ProfileRecord, error)
	GetRecruiterByProfileID(ctx context.Context, profileID int64) (pgrepo.RecruiterProfileRecord, error)
	GetJobSeekerByProfileID(ctx context.Context, profileID int64) (pgrepo.JobSeekerProfileRecord, error)
	UpdateBase(ctx context.Context, profileID int64, bio, location string) error
	UpdateRecruiter(ctx context.Context, rec pgrepo.RecruiterProfileRecord) error
	UpdateJobSeeker(ctx context.Context, rec pgrepo.JobSeekerProfileRecord) error
}

type Dependencies struct {
	Profiles ProfileStore
}

type Service struct {
	profiles ProfileStore
}

func NewService(deps Dependencies) (*Service, error) {
	if deps.Profiles == nil {
		return nil, fmt.Errorf("profile store is nil")
	}
	return &Service{profiles: deps.Profiles}, nil
}

// Profile is the caller's full profile: the base row plus whichever
// role-specific section applies.
type Profile struct {
	Base      pgrepo.ProfileRecord
	Recruiter *pgrepo.RecruiterProfileRecord
	JobSeeker *pgrepo.JobSeekerProfileRecord
}

// ResolveActor loads the caller's profile rows and collapses them into the
// identity passed to the core operations.
func (s *Service) ResolveActor(ctx context.Context, userID int64) (model.Actor, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return model.Actor{}, ErrProfileNotFound
		}
		return model.Actor{}, fmt.Errorf("load base profile: %w", err)
	}

	actor := model.Actor{
		UserID:    userID,
		ProfileID: profile.ID,
		Role:      profile.Role,
	}

	switch profile.Role {
	case enums.RoleRecruiter:
		rec, err := s.profiles.GetRecruiterByProfileID(ctx, profile.ID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrProfileNotFound) {
				return model.Actor{}, ErrProfileNotFound
			}
			return model.Actor{}, fmt.Errorf("load recruiter profile: %w", err)
		}
		actor.RecruiterID = rec.ID
	case enums.RoleJobSeeker:
		rec, err := s.profiles.GetJobSeekerByProfileID(ctx, profile.ID)
		if err != nil {
			if errors.Is(err, pgrepo.ErrProfileNotFound) {
				return model.Actor{}, ErrProfileNotFound
			}
			return model.Actor{}, fmt.Errorf("load job seeker profile: %w", err)
		}
		actor.JobSeekerID = rec.ID
	default:
		return model.Actor{}, fmt.Errorf("unknown profile role %q", profile.Role)
	}

	return actor, nil
}

func (s *Service) Get(ctx context.Context, userID int64) (Profile, error) {
	base, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, fmt.Errorf("load base profile: %w", err)
	}

	profile := Profile{Base: base}
	switch base.Role {
	case enums.RoleRecruiter:
		rec, err := s.profiles.GetRecruiterByProfileID(ctx, base.ID)
		if err != nil && !errors.Is(err, pgrepo.ErrProfileNotFound) {
			return Profile{}, fmt.Errorf("load recruiter profile: %w", err)
		}
		if err == nil {
			profile.Recruiter = &rec
		}
	case enums.RoleJobSeeker:
		rec, err := s.profiles.GetJobSeekerByProfileID(ctx, base.ID)
		if err != nil && !errors.Is(err, pgrepo.ErrProfileNotFound) {
			return Profile{}, fmt.Errorf("load job seeker profile: %w", err)
		}
		if err == nil {
			profile.JobSeeker = &rec
		}
	}

	return profile, nil
}

type UpdateInput struct {
	Bio      string
	Location string

	Recruiter *pgrepo.RecruiterProfileRecord
	JobSeeker *pgrepo.JobSeekerProfileRecord
}

func (s *Service) Update(ctx context.Context, actor model.Actor, input UpdateInput) (Profile, error) {
	if actor.ProfileID <= 0 {
		return Profile{}, ErrValidation
	}
	if input.Recruiter != nil && actor.Role != enums.RoleRecruiter {
		return Profile{}, fmt.Errorf("%w: recruiter section on a %s profile", ErrValidation, actor.Role)
	}
	if input.JobSeeker != nil && actor.Role != enums.RoleJobSeeker {
		return Profile{}, fmt.Errorf("%w: job seeker section on a %s profile", ErrValidation, actor.Role)
	}

	if err := s.profiles.UpdateBase(ctx, actor.ProfileID, input.Bio, input.Location); err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, fmt.Errorf("update base profile: %w", err)
	}

	if input.Recruiter != nil {
		rec := *input.Recruiter
		rec.ProfileID = actor.ProfileID
		if err := s.profiles.UpdateRecruiter(ctx, rec); err != nil {
			return Profile{}, fmt.Errorf("update recruiter profile: %w", err)
		}
	}
	if input.JobSeeker != nil {
		rec := *input.JobSeeker
		rec.ProfileID = actor.ProfileID
		if err := s.profiles.UpdateJobSeeker(ctx, rec); err != nil {
			return Profile{}, fmt.Errorf("update job seeker profile: %w", err)
		}
	}

	return s.Get(ctx, actor.UserID)
}

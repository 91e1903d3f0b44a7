package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
	"github.com/hari7vansh/swipehire/internal/domain/model"
	pgrepo "github.com/hari7vansh/swipehire/internal/repo/postgres"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrForbidden           = errors.New("forbidden")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
)

type JobStore interface {
	Create(ctx context.Context, rec pgrepo.JobRecord) (pgrepo.JobRecord, error)
	GetByID(ctx context.Context, jobID int64) (pgrepo.JobRecord, error)
	ListActive(ctx context.Context, limit int) ([]pgrepo.JobRecord, error)
	ListByRecruiter(ctx context.Context, recruiterID int64, limit int) ([]pgrepo.JobRecord, error)
	Update(ctx context.Context, rec pgrepo.JobRecord) error
	SetActive(ctx context.Context, jobID int64, active bool) error
}

type ApplicationStore interface {
	Create(ctx context.Context, jobID, jobSeekerID int64, coverLetter string) (pgrepo.ApplicationRecord, bool, error)
	GetByID(ctx context.Context, applicationID int64) (pgrepo.ApplicationRecord, error)
	ListForJobSeeker(ctx context.Context, jobSeekerID int64, limit int) ([]pgrepo.ApplicationRecord, error)
	ListForRecruiter(ctx context.Context, recruiterID int64, limit int) ([]pgrepo.ApplicationRecord, error)
	UpdateStatus(ctx context.Context, applicationID int64, status enums.ApplicationStatus) error
}

type Config struct {
	PageSize int
}

type Dependencies struct {
	Jobs         JobStore
	Applications ApplicationStore
}

type Service struct {
	jobs         JobStore
	applications ApplicationStore
	cfg          Config
}

func NewService(deps Dependencies, cfg Config) (*Service, error) {
	if deps.Jobs == nil {
		return nil, fmt.Errorf("job store is nil")
	}
	if deps.Applications == nil {
		return nil, fmt.Errorf("application store is nil")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}

	return &Service{
		jobs:         deps.Jobs,
		applications: deps.Applications,
		cfg:          cfg,
	}, nil
}

type CreateInput struct {
	Title           string
	Description     string
	Requirements    string
	Location        string
	JobType         enums.JobType
	ExperienceLevel enums.ExperienceLevel
	SalaryMin       *int
	SalaryMax       *int
	IsRemote        bool
	SkillsRequired  string
}

func (s *Service) Create(ctx context.Context, actor model.Actor, input CreateInput) (pgrepo.JobRecord, error) {
	if actor.Role != enums.RoleRecruiter || actor.RecruiterID <= 0 {
		return pgrepo.JobRecord{}, ErrForbidden
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return pgrepo.JobRecord{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if _, ok := enums.ParseJobType(string(input.JobType)); !ok {
		return pgrepo.JobRecord{}, fmt.Errorf("%w: unknown job type %q", ErrValidation, input.JobType)
	}
	if _, ok := enums.ParseExperienceLevel(string(input.ExperienceLevel)); !ok {
		return pgrepo.JobRecord{}, fmt.Errorf("%w: unknown experience level %q", ErrValidation, input.ExperienceLevel)
	}
	if input.SalaryMin != nil && input.SalaryMax != nil && *input.SalaryMin > *input.SalaryMax {
		return pgrepo.JobRecord{}, fmt.Errorf("%w: salary range is inverted", ErrValidation)
	}

	rec, err := s.jobs.Create(ctx, pgrepo.JobRecord{
		RecruiterID:     actor.RecruiterID,
		Title:           input.Title,
		Description:     input.Description,
		Requirements:    input.Requirements,
		Location:        input.Location,
		JobType:         input.JobType,
		ExperienceLevel: input.ExperienceLevel,
		SalaryMin:       input.SalaryMin,
		SalaryMax:       input.SalaryMax,
		IsRemote:        input.IsRemote,
		SkillsRequired:  input.SkillsRequired,
		IsActive:        true,
	})
	if err != nil {
		return pgrepo.JobRecord{}, fmt.Errorf("create job: %w", err)
	}

	return rec, nil
}

func (s *Service) Get(ctx context.Context, jobID int64) (pgrepo.JobRecord, error) {
	rec, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrJobNotFound) {
			return pgrepo.JobRecord{}, ErrJobNotFound
		}
		return pgrepo.JobRecord{}, fmt.Errorf("get job: %w", err)
	}
	return rec, nil
}

// List returns the jobs relevant to the caller: recruiters see their own
// postings, job seekers see the active feed.
func (s *Service) List(ctx context.Context, actor model.Actor) ([]pgrepo.JobRecord, error) {
	if actor.Role == enums.RoleRecruiter {
		recs, err := s.jobs.ListByRecruiter(ctx, actor.RecruiterID, s.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list recruiter jobs: %w", err)
		}
		return recs, nil
	}

	recs, err := s.jobs.ListActive(ctx, s.cfg.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list active jobs: %w", err)
	}
	return recs, nil
}

func (s *Service) Update(ctx context.Context, actor model.Actor, jobID int64, input CreateInput) (pgrepo.JobRecord, error) {
	existing, err := s.ownedJob(ctx, actor, jobID)
	if err != nil {
		return pgrepo.JobRecord{}, err
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return pgrepo.JobRecord{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if _, ok := enums.ParseJobType(string(input.JobType)); !ok {
		return pgrepo.JobRecord{}, fmt.Errorf("%w: unknown job type %q", ErrValidation, input.JobType)
	}
	if _, ok := enums.ParseExperienceLevel(string(input.ExperienceLevel)); !ok {
		return pgrepo.JobRecord{}, fmt.Errorf("%w: unknown experience level %q", ErrValidation, input.ExperienceLevel)
	}

	existing.Title = input.Title
	existing.Description = input.Description
	existing.Requirements = input.Requirements
	existing.Location = input.Location
	existing.JobType = input.JobType
	existing.ExperienceLevel = input.ExperienceLevel
	existing.SalaryMin = input.SalaryMin
	existing.SalaryMax = input.SalaryMax
	existing.IsRemote = input.IsRemote
	existing.SkillsRequired = input.SkillsRequired

	if err := s.jobs.Update(ctx, existing); err != nil {
		return pgrepo.JobRecord{}, fmt.Errorf("update job: %w", err)
	}

	return s.Get(ctx, jobID)
}

// Deactivate retires a posting. The job stops appearing in feeds and stops
// accepting swipes, existing matches stay alive.
func (s *Service) Deactivate(ctx context.Context, actor model.Actor, jobID int64) error {
	if _, err := s.ownedJob(ctx, actor, jobID); err != nil {
		return err
	}

	if err := s.jobs.SetActive(ctx, jobID, false); err != nil {
		return fmt.Errorf("deactivate job: %w", err)
	}
	return nil
}

func (s *Service) ownedJob(ctx context.Context, actor model.Actor, jobID int64) (pgrepo.JobRecord, error) {
	if actor.Role != enums.RoleRecruiter {
		return pgrepo.JobRecord{}, ErrForbidden
	}

	rec, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrJobNotFound) {
			return pgrepo.JobRecord{}, ErrJobNotFound
		}
		return pgrepo.JobRecord{}, fmt.Errorf("get job: %w", err)
	}
	if rec.RecruiterID != actor.RecruiterID {
		return pgrepo.JobRecord{}, ErrForbidden
	}

	return rec, nil
}

// Apply files a job application. Reapplying to the same job returns the
// existing application unchanged.
func (s *Service) Apply(ctx context.Context, actor model.Actor, jobID int64, coverLetter string) (pgrepo.ApplicationRecord, bool, error) {
	if actor.Role != enums.RoleJobSeeker || actor.JobSeekerID <= 0 {
		return pgrepo.ApplicationRecord{}, false, ErrForbidden
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrJobNotFound) {
			return pgrepo.ApplicationRecord{}, false, ErrJobNotFound
		}
		return pgrepo.ApplicationRecord{}, false, fmt.Errorf("get job: %w", err)
	}
	if !job.IsActive {
		return pgrepo.ApplicationRecord{}, false, ErrJobNotFound
	}

	rec, created, err := s.applications.Create(ctx, jobID, actor.JobSeekerID, coverLetter)
	if err != nil {
		return pgrepo.ApplicationRecord{}, false, fmt.Errorf("create application: %w", err)
	}
	if !created {
		existing, err := s.findExisting(ctx, actor.JobSeekerID, jobID)
		if err != nil {
			return pgrepo.ApplicationRecord{}, false, err
		}
		return existing, false, nil
	}

	return rec, true, nil
}

func (s *Service) findExisting(ctx context.Context, jobSeekerID, jobID int64) (pgrepo.ApplicationRecord, error) {
	recs, err := s.applications.ListForJobSeeker(ctx, jobSeekerID, s.cfg.PageSize)
	if err != nil {
		return pgrepo.ApplicationRecord{}, fmt.Errorf("list applications: %w", err)
	}
	for _, rec := range recs {
		if rec.JobID == jobID {
			return rec, nil
		}
	}
	return pgrepo.ApplicationRecord{}, ErrApplicationNotFound
}

func (s *Service) ListApplications(ctx context.Context, actor model.Actor) ([]pgrepo.ApplicationRecord, error) {
	switch actor.Role {
	case enums.RoleJobSeeker:
		recs, err := s.applications.ListForJobSeeker(ctx, actor.JobSeekerID, s.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list job seeker applications: %w", err)
		}
		return recs, nil
	case enums.RoleRecruiter:
		recs, err := s.applications.ListForRecruiter(ctx, actor.RecruiterID, s.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("list recruiter applications: %w", err)
		}
		return recs, nil
	default:
		return nil, ErrForbidden
	}
}

// SetApplicationStatus moves an application through the pipeline. Only the
// recruiter who owns the job may change it.
func (s *Service) SetApplicationStatus(ctx context.Context, actor model.Actor, applicationID int64, status enums.ApplicationStatus) (pgrepo.ApplicationRecord, error) {
	if actor.Role != enums.RoleRecruiter {
		return pgrepo.ApplicationRecord{}, ErrForbidden
	}
	if _, ok := enums.ParseApplicationStatus(string(status)); !ok {
		return pgrepo.ApplicationRecord{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	rec, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrApplicationNotFound) {
			return pgrepo.ApplicationRecord{}, ErrApplicationNotFound
		}
		return pgrepo.ApplicationRecord{}, fmt.Errorf("get application: %w", err)
	}

	job, err := s.jobs.GetByID(ctx, rec.JobID)
	if err != nil {
		return pgrepo.ApplicationRecord{}, fmt.Errorf("get job for application: %w", err)
	}
	if job.RecruiterID != actor.RecruiterID {
		return pgrepo.ApplicationRecord{}, ErrForbidden
	}

	if err := s.applications.UpdateStatus(ctx, applicationID, status); err != nil {
		return pgrepo.ApplicationRecord{}, fmt.Errorf("update application status: %w", err)
	}

	rec.Status = status
	return rec, nil
}

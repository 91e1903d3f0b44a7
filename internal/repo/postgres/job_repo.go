package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

type JobRecord struct {
	ID              int64
	RecruiterID     int64
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
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// OwnerProfileID is the base profile id of the owning recruiter,
	// joined in on reads. It is the identity whose swipes the match
	// detector checks against.
	OwnerProfileID int64
	CompanyName    string
}

const jobColumns = `
	j.id,
	j.recruiter_id,
	j.title,
	j.description,
	j.requirements,
	j.location,
	j.job_type,
	j.experience_level,
	j.salary_min,
	j.salary_max,
	j.is_remote,
	j.skills_required,
	j.is_active,
	j.created_at,
	j.updated_at,
	r.profile_id,
	r.company_name`

func scanJob(row pgx.Row) (JobRecord, error) {
	var rec JobRecord
	err := row.Scan(
		&rec.ID,
		&rec.RecruiterID,
		&rec.Title,
		&rec.Description,
		&rec.Requirements,
		&rec.Location,
		&rec.JobType,
		&rec.ExperienceLevel,
		&rec.SalaryMin,
		&rec.SalaryMax,
		&rec.IsRemote,
		&rec.SkillsRequired,
		&rec.IsActive,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.OwnerProfileID,
		&rec.CompanyName,
	)
	return rec, err
}

func (r *JobRepo) Create(ctx context.Context, rec JobRecord) (JobRecord, error) {
	if rec.RecruiterID <= 0 {
		return JobRecord{}, fmt.Errorf("invalid job payload")
	}
	if r.pool == nil {
		return JobRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var jobID int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO jobs (
	recruiter_id,
	title,
	description,
	requirements,
	location,
	job_type,
	experience_level,
	salary_min,
	salary_max,
	is_remote,
	skills_required,
	is_active,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE, NOW(), NOW())
RETURNING id
`,
		rec.RecruiterID,
		rec.Title,
		rec.Description,
		rec.Requirements,
		rec.Location,
		string(rec.JobType),
		string(rec.ExperienceLevel),
		rec.SalaryMin,
		rec.SalaryMax,
		rec.IsRemote,
		rec.SkillsRequired,
	).Scan(&jobID)
	if err != nil {
		return JobRecord{}, fmt.Errorf("create job: %w", err)
	}

	return r.GetByID(ctx, jobID)
}

func (r *JobRepo) GetByID(ctx context.Context, jobID int64) (JobRecord, error) {
	if jobID <= 0 {
		return JobRecord{}, fmt.Errorf("invalid job id")
	}
	if r.pool == nil {
		return JobRecord{}, fmt.Errorf("postgres pool is nil")
	}

	rec, err := scanJob(r.pool.QueryRow(ctx, `
SELECT`+jobColumns+`
FROM jobs j
JOIN recruiter_profiles r ON r.id = j.recruiter_id
WHERE j.id = $1
`, jobID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobRecord{}, ErrJobNotFound
		}
		return JobRecord{}, fmt.Errorf("get job by id: %w", err)
	}

	return rec, nil
}

func (r *JobRepo) ListActive(ctx context.Context, limit int) ([]JobRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if r.pool == nil {
		return []JobRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+jobColumns+`
FROM jobs j
JOIN recruiter_profiles r ON r.id = j.recruiter_id
WHERE j.is_active = TRUE
ORDER BY j.created_at DESC, j.id DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list active jobs: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows, limit)
}

func (r *JobRepo) ListByRecruiter(ctx context.Context, recruiterID int64, limit int) ([]JobRecord, error) {
	if recruiterID <= 0 {
		return nil, fmt.Errorf("invalid recruiter id")
	}
	if limit <= 0 {
		limit = 50
	}
	if r.pool == nil {
		return []JobRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+jobColumns+`
FROM jobs j
JOIN recruiter_profiles r ON r.id = j.recruiter_id
WHERE j.recruiter_id = $1
ORDER BY j.created_at DESC, j.id DESC
LIMIT $2
`, recruiterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list jobs by recruiter: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows, limit)
}

func collectJobs(rows pgx.Rows, limit int) ([]JobRecord, error) {
	items := make([]JobRecord, 0, limit)
	for rows.Next() {
		rec, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		items = append(items, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate jobs: %w", rows.Err())
	}
	return items, nil
}

func (r *JobRepo) Update(ctx context.Context, rec JobRecord) error {
	if rec.ID <= 0 {
		return fmt.Errorf("invalid job payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE jobs
SET
	title = $2,
	description = $3,
	requirements = $4,
	location = $5,
	job_type = $6,
	experience_level = $7,
	salary_min = $8,
	salary_max = $9,
	is_remote = $10,
	skills_required = $11,
	updated_at = NOW()
WHERE id = $1
`,
		rec.ID,
		rec.Title,
		rec.Description,
		rec.Requirements,
		rec.Location,
		string(rec.JobType),
		string(rec.ExperienceLevel),
		rec.SalaryMin,
		rec.SalaryMax,
		rec.IsRemote,
		rec.SkillsRequired,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}

	return nil
}

func (r *JobRepo) SetActive(ctx context.Context, jobID int64, active bool) error {
	if jobID <= 0 {
		return fmt.Errorf("invalid job id")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE jobs
SET is_active = $2, updated_at = NOW()
WHERE id = $1
`, jobID, active)
	if err != nil {
		return fmt.Errorf("set job active flag: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrJobNotFound
	}

	return nil
}

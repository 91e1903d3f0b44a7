package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hari7vansh/swipehire/internal/domain/enums"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

type ApplicationRecord struct {
	ID          int64
	JobID       int64
	JobSeekerID int64
	Status      enums.ApplicationStatus
	CoverLetter string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	JobTitle      string
	CandidateName string
}

// Create inserts the application unless one already exists for the
// (job, job_seeker) pair; created reports whether a new row was written.
func (r *ApplicationRepo) Create(ctx context.Context, jobID, jobSeekerID int64, coverLetter string) (ApplicationRecord, bool, error) {
	if jobID <= 0 || jobSeekerID <= 0 {
		return ApplicationRecord{}, false, fmt.Errorf("invalid application payload")
	}
	if r.pool == nil {
		return ApplicationRecord{}, false, fmt.Errorf("postgres pool is nil")
	}

	var rec ApplicationRecord
	err := r.pool.QueryRow(ctx, `
INSERT INTO applications (
	job_id,
	job_seeker_id,
	status,
	cover_letter,
	created_at,
	updated_at
) VALUES ($1, $2, 'pending', $3, NOW(), NOW())
ON CONFLICT (job_id, job_seeker_id) DO NOTHING
RETURNING id, job_id, job_seeker_id, status, cover_letter, created_at, updated_at
`, jobID, jobSeekerID, strings.TrimSpace(coverLetter)).Scan(
		&rec.ID,
		&rec.JobID,
		&rec.JobSeekerID,
		&rec.Status,
		&rec.CoverLetter,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ApplicationRecord{}, false, nil
		}
		return ApplicationRecord{}, false, fmt.Errorf("create application: %w", err)
	}

	return rec, true, nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, applicationID int64) (ApplicationRecord, error) {
	if applicationID <= 0 {
		return ApplicationRecord{}, fmt.Errorf("invalid application id")
	}
	if r.pool == nil {
		return ApplicationRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec ApplicationRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, job_id, job_seeker_id, status, cover_letter, created_at, updated_at
FROM applications
WHERE id = $1
`, applicationID).Scan(
		&rec.ID,
		&rec.JobID,
		&rec.JobSeekerID,
		&rec.Status,
		&rec.CoverLetter,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ApplicationRecord{}, ErrApplicationNotFound
		}
		return ApplicationRecord{}, fmt.Errorf("get application: %w", err)
	}

	return rec, nil
}

func (r *ApplicationRepo) ListForJobSeeker(ctx context.Context, jobSeekerID int64, limit int) ([]ApplicationRecord, error) {
	if jobSeekerID <= 0 {
		return nil, fmt.Errorf("invalid job seeker id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []ApplicationRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	a.id, a.job_id, a.job_seeker_id, a.status, a.cover_letter, a.created_at, a.updated_at,
	j.title, u.username
FROM applications a
JOIN jobs j ON j.id = a.job_id
JOIN job_seeker_profiles js ON js.id = a.job_seeker_id
JOIN profiles p ON p.id = js.profile_id
JOIN users u ON u.id = p.user_id
WHERE a.job_seeker_id = $1
ORDER BY a.created_at DESC, a.id DESC
LIMIT $2
`, jobSeekerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list applications for job seeker: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows, limit)
}

func (r *ApplicationRepo) ListForRecruiter(ctx context.Context, recruiterID int64, limit int) ([]ApplicationRecord, error) {
	if recruiterID <= 0 {
		return nil, fmt.Errorf("invalid recruiter id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []ApplicationRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	a.id, a.job_id, a.job_seeker_id, a.status, a.cover_letter, a.created_at, a.updated_at,
	j.title, u.username
FROM applications a
JOIN jobs j ON j.id = a.job_id
JOIN job_seeker_profiles js ON js.id = a.job_seeker_id
JOIN profiles p ON p.id = js.profile_id
JOIN users u ON u.id = p.user_id
WHERE j.recruiter_id = $1
ORDER BY a.created_at DESC, a.id DESC
LIMIT $2
`, recruiterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list applications for recruiter: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows, limit)
}

func collectApplications(rows pgx.Rows, limit int) ([]ApplicationRecord, error) {
	items := make([]ApplicationRecord, 0, limit)
	for rows.Next() {
		var rec ApplicationRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.JobID,
			&rec.JobSeekerID,
			&rec.Status,
			&rec.CoverLetter,
			&rec.CreatedAt,
			&rec.UpdatedAt,
			&rec.JobTitle,
			&rec.CandidateName,
		); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		items = append(items, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate applications: %w", rows.Err())
	}
	return items, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, applicationID int64, status enums.ApplicationStatus) error {
	if applicationID <= 0 || status == "" {
		return fmt.Errorf("invalid application status payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE applications
SET status = $2, updated_at = NOW()
WHERE id = $1
`, applicationID, string(status))
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

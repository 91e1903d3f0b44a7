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

var ErrMatchNotFound = errors.New("match not found")

type MatchRepo struct {
	pool *pgxpool.Pool
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

type MatchRecord struct {
	ID              int64
	JobID           int64
	JobSeekerID     int64
	RecruiterViewed bool
	JobSeekerViewed bool
	IsActive        bool
	CreatedAt       time.Time
}

// MatchListRecord is a match row joined with enough context to render a
// match card: job title, company, and the candidate's display name.
type MatchListRecord struct {
	ID              int64
	JobID           int64
	JobTitle        string
	CompanyName     string
	JobSeekerID     int64
	CandidateName   string
	RecruiterViewed bool
	JobSeekerViewed bool
	CreatedAt       time.Time
}

// MatchThreadRecord resolves a match to its two participant base
// profiles, used for message-thread authorization.
type MatchThreadRecord struct {
	ID                 int64
	IsActive           bool
	RecruiterProfileID int64
	JobSeekerProfileID int64
}

// CreateOrGet inserts the match for (jobID, jobSeekerID) or, when the
// row already exists, returns the existing one. The uniqueness
// constraint on (job_id, job_seeker_id) is what makes a concurrent
// double-create collapse into a single row; the losing side falls
// through to the fetch.
func (r *MatchRepo) CreateOrGet(ctx context.Context, tx pgx.Tx, jobID, jobSeekerID int64) (MatchRecord, bool, error) {
	if jobID <= 0 || jobSeekerID <= 0 {
		return MatchRecord{}, false, fmt.Errorf("invalid match payload")
	}
	if tx == nil {
		return MatchRecord{}, false, fmt.Errorf("transaction is required")
	}

	var rec MatchRecord
	err := tx.QueryRow(ctx, `
INSERT INTO matches (
	job_id,
	job_seeker_id,
	recruiter_viewed,
	job_seeker_viewed,
	is_active,
	created_at
) VALUES ($1, $2, FALSE, FALSE, TRUE, NOW())
ON CONFLICT (job_id, job_seeker_id) DO NOTHING
RETURNING id, job_id, job_seeker_id, recruiter_viewed, job_seeker_viewed, is_active, created_at
`, jobID, jobSeekerID).Scan(
		&rec.ID,
		&rec.JobID,
		&rec.JobSeekerID,
		&rec.RecruiterViewed,
		&rec.JobSeekerViewed,
		&rec.IsActive,
		&rec.CreatedAt,
	)
	if err == nil {
		return rec, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return MatchRecord{}, false, fmt.Errorf("create match: %w", err)
	}

	// Conflict: another insert won the race or the pair was already
	// matched. Resolve to the existing row.
	err = tx.QueryRow(ctx, `
SELECT id, job_id, job_seeker_id, recruiter_viewed, job_seeker_viewed, is_active, created_at
FROM matches
WHERE job_id = $1 AND job_seeker_id = $2
`, jobID, jobSeekerID).Scan(
		&rec.ID,
		&rec.JobID,
		&rec.JobSeekerID,
		&rec.RecruiterViewed,
		&rec.JobSeekerViewed,
		&rec.IsActive,
		&rec.CreatedAt,
	)
	if err != nil {
		return MatchRecord{}, false, fmt.Errorf("get existing match: %w", err)
	}

	return rec, false, nil
}

func (r *MatchRepo) ListActiveForJobSeeker(ctx context.Context, jobSeekerID int64, limit int) ([]MatchListRecord, error) {
	if jobSeekerID <= 0 {
		return nil, fmt.Errorf("invalid job seeker id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []MatchListRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	m.id,
	m.job_id,
	j.title,
	r.company_name,
	m.job_seeker_id,
	u.username,
	m.recruiter_viewed,
	m.job_seeker_viewed,
	m.created_at
FROM matches m
JOIN jobs j ON j.id = m.job_id
JOIN recruiter_profiles r ON r.id = j.recruiter_id
JOIN job_seeker_profiles js ON js.id = m.job_seeker_id
JOIN profiles p ON p.id = js.profile_id
JOIN users u ON u.id = p.user_id
WHERE m.job_seeker_id = $1 AND m.is_active = TRUE
ORDER BY m.created_at DESC, m.id DESC
LIMIT $2
`, jobSeekerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches for job seeker: %w", err)
	}
	defer rows.Close()

	return collectMatchList(rows, limit)
}

func (r *MatchRepo) ListActiveForRecruiter(ctx context.Context, recruiterID int64, limit int) ([]MatchListRecord, error) {
	if recruiterID <= 0 {
		return nil, fmt.Errorf("invalid recruiter id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []MatchListRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	m.id,
	m.job_id,
	j.title,
	r.company_name,
	m.job_seeker_id,
	u.username,
	m.recruiter_viewed,
	m.job_seeker_viewed,
	m.created_at
FROM matches m
JOIN jobs j ON j.id = m.job_id
JOIN recruiter_profiles r ON r.id = j.recruiter_id
JOIN job_seeker_profiles js ON js.id = m.job_seeker_id
JOIN profiles p ON p.id = js.profile_id
JOIN users u ON u.id = p.user_id
WHERE j.recruiter_id = $1 AND m.is_active = TRUE
ORDER BY m.created_at DESC, m.id DESC
LIMIT $2
`, recruiterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches for recruiter: %w", err)
	}
	defer rows.Close()

	return collectMatchList(rows, limit)
}

func collectMatchList(rows pgx.Rows, limit int) ([]MatchListRecord, error) {
	items := make([]MatchListRecord, 0, limit)
	for rows.Next() {
		var item MatchListRecord
		if err := rows.Scan(
			&item.ID,
			&item.JobID,
			&item.JobTitle,
			&item.CompanyName,
			&item.JobSeekerID,
			&item.CandidateName,
			&item.RecruiterViewed,
			&item.JobSeekerViewed,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matches: %w", rows.Err())
	}
	return items, nil
}

func (r *MatchRepo) GetThread(ctx context.Context, matchID int64) (MatchThreadRecord, error) {
	if matchID <= 0 {
		return MatchThreadRecord{}, fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return MatchThreadRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec MatchThreadRecord
	err := r.pool.QueryRow(ctx, `
SELECT m.id, m.is_active, r.profile_id, js.profile_id
FROM matches m
JOIN jobs j ON j.id = m.job_id
JOIN recruiter_profiles r ON r.id = j.recruiter_id
JOIN job_seeker_profiles js ON js.id = m.job_seeker_id
WHERE m.id = $1
`, matchID).Scan(
		&rec.ID,
		&rec.IsActive,
		&rec.RecruiterProfileID,
		&rec.JobSeekerProfileID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return MatchThreadRecord{}, ErrMatchNotFound
		}
		return MatchThreadRecord{}, fmt.Errorf("get match thread: %w", err)
	}

	return rec, nil
}

// SetViewed flips the viewed flag belonging to the given side. Each side
// only ever mutates its own flag.
func (r *MatchRepo) SetViewed(ctx context.Context, matchID int64, side enums.Role) error {
	if matchID <= 0 {
		return fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	column := ""
	switch side {
	case enums.RoleRecruiter:
		column = "recruiter_viewed"
	case enums.RoleJobSeeker:
		column = "job_seeker_viewed"
	default:
		return fmt.Errorf("invalid viewed side %q", side)
	}

	result, err := r.pool.Exec(ctx, `
UPDATE matches
SET `+column+` = TRUE
WHERE id = $1 AND is_active = TRUE
`, matchID)
	if err != nil {
		return fmt.Errorf("set match viewed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMatchNotFound
	}

	return nil
}

func (r *MatchRepo) Deactivate(ctx context.Context, matchID int64) (bool, error) {
	if matchID <= 0 {
		return false, fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE matches
SET is_active = FALSE
WHERE id = $1 AND is_active = TRUE
`, matchID)
	if err != nil {
		return false, fmt.Errorf("deactivate match: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

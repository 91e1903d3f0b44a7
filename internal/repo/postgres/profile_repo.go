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

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

type ProfileRecord struct {
	ID        int64
	UserID    int64
	Role      enums.Role
	Bio       string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RecruiterProfileRecord struct {
	ID                 int64
	ProfileID          int64
	CompanyName        string
	Position           string
	CompanyDescription string
	CompanyWebsite     string
	Industry           string
}

type JobSeekerProfileRecord struct {
	ID              int64
	ProfileID       int64
	Skills          string
	ExperienceYears int
	Education       string
	DesiredPosition string
	DesiredSalary   *int
}

func (r *ProfileRepo) Create(ctx context.Context, tx pgx.Tx, userID int64, role enums.Role, bio, location string) (ProfileRecord, error) {
	if userID <= 0 || role == "" {
		return ProfileRecord{}, fmt.Errorf("invalid profile payload")
	}
	if tx == nil {
		return ProfileRecord{}, fmt.Errorf("transaction is required")
	}

	var rec ProfileRecord
	err := tx.QueryRow(ctx, `
INSERT INTO profiles (user_id, role, bio, location, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
RETURNING id, user_id, role, bio, location, created_at, updated_at
`, userID, string(role), bio, location).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Role,
		&rec.Bio,
		&rec.Location,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return ProfileRecord{}, fmt.Errorf("create profile: %w", err)
	}

	return rec, nil
}

func (r *ProfileRepo) CreateRecruiter(ctx context.Context, tx pgx.Tx, rec RecruiterProfileRecord) (RecruiterProfileRecord, error) {
	if rec.ProfileID <= 0 {
		return RecruiterProfileRecord{}, fmt.Errorf("invalid recruiter profile payload")
	}
	if tx == nil {
		return RecruiterProfileRecord{}, fmt.Errorf("transaction is required")
	}

	err := tx.QueryRow(ctx, `
INSERT INTO recruiter_profiles (
	profile_id,
	company_name,
	position,
	company_description,
	company_website,
	industry
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`, rec.ProfileID, rec.CompanyName, rec.Position, rec.CompanyDescription, rec.CompanyWebsite, rec.Industry).Scan(&rec.ID)
	if err != nil {
		return RecruiterProfileRecord{}, fmt.Errorf("create recruiter profile: %w", err)
	}

	return rec, nil
}

func (r *ProfileRepo) CreateJobSeeker(ctx context.Context, tx pgx.Tx, rec JobSeekerProfileRecord) (JobSeekerProfileRecord, error) {
	if rec.ProfileID <= 0 {
		return JobSeekerProfileRecord{}, fmt.Errorf("invalid job seeker profile payload")
	}
	if tx == nil {
		return JobSeekerProfileRecord{}, fmt.Errorf("transaction is required")
	}

	err := tx.QueryRow(ctx, `
INSERT INTO job_seeker_profiles (
	profile_id,
	skills,
	experience_years,
	education,
	desired_position,
	desired_salary
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`, rec.ProfileID, rec.Skills, rec.ExperienceYears, rec.Education, rec.DesiredPosition, rec.DesiredSalary).Scan(&rec.ID)
	if err != nil {
		return JobSeekerProfileRecord{}, fmt.Errorf("create job seeker profile: %w", err)
	}

	return rec, nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (ProfileRecord, error) {
	if userID <= 0 {
		return ProfileRecord{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return ProfileRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec ProfileRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, user_id, role, bio, location, created_at, updated_at
FROM profiles
WHERE user_id = $1
`, userID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Role,
		&rec.Bio,
		&rec.Location,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProfileRecord{}, ErrProfileNotFound
		}
		return ProfileRecord{}, fmt.Errorf("get profile by user id: %w", err)
	}

	return rec, nil
}

func (r *ProfileRepo) GetRecruiterByProfileID(ctx context.Context, profileID int64) (RecruiterProfileRecord, error) {
	if profileID <= 0 {
		return RecruiterProfileRecord{}, fmt.Errorf("invalid profile id")
	}
	if r.pool == nil {
		return RecruiterProfileRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec RecruiterProfileRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, profile_id, company_name, position, company_description, company_website, industry
FROM recruiter_profiles
WHERE profile_id = $1
`, profileID).Scan(
		&rec.ID,
		&rec.ProfileID,
		&rec.CompanyName,
		&rec.Position,
		&rec.CompanyDescription,
		&rec.CompanyWebsite,
		&rec.Industry,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RecruiterProfileRecord{}, ErrProfileNotFound
		}
		return RecruiterProfileRecord{}, fmt.Errorf("get recruiter profile: %w", err)
	}

	return rec, nil
}

func (r *ProfileRepo) GetJobSeekerByProfileID(ctx context.Context, profileID int64) (JobSeekerProfileRecord, error) {
	if profileID <= 0 {
		return JobSeekerProfileRecord{}, fmt.Errorf("invalid profile id")
	}
	if r.pool == nil {
		return JobSeekerProfileRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec JobSeekerProfileRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, profile_id, skills, experience_years, education, desired_position, desired_salary
FROM job_seeker_profiles
WHERE profile_id = $1
`, profileID).Scan(
		&rec.ID,
		&rec.ProfileID,
		&rec.Skills,
		&rec.ExperienceYears,
		&rec.Education,
		&rec.DesiredPosition,
		&rec.DesiredSalary,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobSeekerProfileRecord{}, ErrProfileNotFound
		}
		return JobSeekerProfileRecord{}, fmt.Errorf("get job seeker profile: %w", err)
	}

	return rec, nil
}

func (r *ProfileRepo) GetJobSeekerByID(ctx context.Context, jobSeekerID int64) (JobSeekerProfileRecord, error) {
	if jobSeekerID <= 0 {
		return JobSeekerProfileRecord{}, fmt.Errorf("invalid job seeker id")
	}
	if r.pool == nil {
		return JobSeekerProfileRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec JobSeekerProfileRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, profile_id, skills, experience_years, education, desired_position, desired_salary
FROM job_seeker_profiles
WHERE id = $1
`, jobSeekerID).Scan(
		&rec.ID,
		&rec.ProfileID,
		&rec.Skills,
		&rec.ExperienceYears,
		&rec.Education,
		&rec.DesiredPosition,
		&rec.DesiredSalary,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobSeekerProfileRecord{}, ErrProfileNotFound
		}
		return JobSeekerProfileRecord{}, fmt.Errorf("get job seeker profile by id: %w", err)
	}

	return rec, nil
}

func (r *ProfileRepo) UpdateBase(ctx context.Context, profileID int64, bio, location string) error {
	if profileID <= 0 {
		return fmt.Errorf("invalid profile id")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE profiles
SET bio = $2, location = $3, updated_at = NOW()
WHERE id = $1
`, profileID, bio, location)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *ProfileRepo) UpdateRecruiter(ctx context.Context, rec RecruiterProfileRecord) error {
	if rec.ProfileID <= 0 {
		return fmt.Errorf("invalid recruiter profile payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE recruiter_profiles
SET
	company_name = $2,
	position = $3,
	company_description = $4,
	company_website = $5,
	industry = $6
WHERE profile_id = $1
`, rec.ProfileID, rec.CompanyName, rec.Position, rec.CompanyDescription, rec.CompanyWebsite, rec.Industry)
	if err != nil {
		return fmt.Errorf("update recruiter profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *ProfileRepo) UpdateJobSeeker(ctx context.Context, rec JobSeekerProfileRecord) error {
	if rec.ProfileID <= 0 {
		return fmt.Errorf("invalid job seeker profile payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE job_seeker_profiles
SET
	skills = $2,
	experience_years = $3,
	education = $4,
	desired_position = $5,
	desired_salary = $6
WHERE profile_id = $1
`, rec.ProfileID, rec.Skills, rec.ExperienceYears, rec.Education, rec.DesiredPosition, rec.DesiredSalary)
	if err != nil {
		return fmt.Errorf("update job seeker profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

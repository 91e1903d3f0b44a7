package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

const uniqueViolationCode = "23505"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

type UserRecord struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func (r *UserRepo) Create(ctx context.Context, tx pgx.Tx, username, email, passwordHash string) (UserRecord, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(passwordHash) == "" {
		return UserRecord{}, fmt.Errorf("invalid user payload")
	}
	if tx == nil {
		return UserRecord{}, fmt.Errorf("transaction is required")
	}

	var rec UserRecord
	err := tx.QueryRow(ctx, `
INSERT INTO users (username, email, password_hash, created_at)
VALUES ($1, $2, $3, NOW())
RETURNING id, username, email, password_hash, created_at
`, strings.TrimSpace(username), strings.TrimSpace(email), passwordHash).Scan(
		&rec.ID,
		&rec.Username,
		&rec.Email,
		&rec.PasswordHash,
		&rec.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return UserRecord{}, ErrUsernameTaken
		}
		return UserRecord{}, fmt.Errorf("create user: %w", err)
	}

	return rec, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (UserRecord, error) {
	if strings.TrimSpace(username) == "" {
		return UserRecord{}, fmt.Errorf("username is required")
	}
	if r.pool == nil {
		return UserRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec UserRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, username, email, password_hash, created_at
FROM users
WHERE username = $1
`, strings.TrimSpace(username)).Scan(
		&rec.ID,
		&rec.Username,
		&rec.Email,
		&rec.PasswordHash,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRecord{}, ErrUserNotFound
		}
		return UserRecord{}, fmt.Errorf("get user by username: %w", err)
	}

	return rec, nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID int64) (UserRecord, error) {
	if userID <= 0 {
		return UserRecord{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return UserRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec UserRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, username, email, password_hash, created_at
FROM users
WHERE id = $1
`, userID).Scan(
		&rec.ID,
		&rec.Username,
		&rec.Email,
		&rec.PasswordHash,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRecord{}, ErrUserNotFound
		}
		return UserRecord{}, fmt.Errorf("get user by id: %w", err)
	}

	return rec, nil
}

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

// SwipeRepo stores append-only swipe facts. Rows are never updated or
// deleted, and repeats by the same actor on the same target are distinct
// rows by design.
type SwipeRepo struct {
	pool *pgxpool.Pool
}

func NewSwipeRepo(pool *pgxpool.Pool) *SwipeRepo {
	return &SwipeRepo{pool: pool}
}

type SwipeRecord struct {
	ID         int64
	ProfileID  int64
	Direction  enums.SwipeDirection
	TargetKind enums.SwipeTargetKind
	TargetID   int64
	CreatedAt  time.Time
}

func (r *SwipeRepo) Create(ctx context.Context, tx pgx.Tx, profileID int64, direction enums.SwipeDirection, kind enums.SwipeTargetKind, targetID int64, now time.Time) (SwipeRecord, error) {
	if profileID <= 0 || targetID <= 0 || direction == "" || kind == "" {
		return SwipeRecord{}, fmt.Errorf("invalid swipe payload")
	}
	if tx == nil {
		return SwipeRecord{}, fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec SwipeRecord
	err := tx.QueryRow(ctx, `
INSERT INTO swipes (
	profile_id,
	direction,
	target_kind,
	target_id,
	created_at
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, profile_id, direction, target_kind, target_id, created_at
`, profileID, string(direction), string(kind), targetID, now.UTC()).Scan(
		&rec.ID,
		&rec.ProfileID,
		&rec.Direction,
		&rec.TargetKind,
		&rec.TargetID,
		&rec.CreatedAt,
	)
	if err != nil {
		return SwipeRecord{}, fmt.Errorf("create swipe: %w", err)
	}

	return rec, nil
}

// ExistsRight reports whether profileID has ever swiped right on the
// given target. Used by the match detector to probe for the complementary
// swipe from the opposite party.
func (r *SwipeRepo) ExistsRight(ctx context.Context, tx pgx.Tx, profileID int64, kind enums.SwipeTargetKind, targetID int64) (bool, error) {
	if profileID <= 0 || targetID <= 0 || kind == "" {
		return false, fmt.Errorf("invalid swipe lookup payload")
	}
	if tx == nil {
		return false, fmt.Errorf("transaction is required")
	}

	var one int
	err := tx.QueryRow(ctx, `
SELECT 1
FROM swipes
WHERE profile_id = $1 AND direction = 'right' AND target_kind = $2 AND target_id = $3
LIMIT 1
`, profileID, string(kind), targetID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup complementary swipe: %w", err)
	}

	return true, nil
}

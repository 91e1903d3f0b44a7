package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

type MessageRecord struct {
	ID              int64
	MatchID         int64
	SenderProfileID int64
	Content         string
	IsRead          bool
	CreatedAt       time.Time
}

func (r *MessageRepo) Create(ctx context.Context, matchID, senderProfileID int64, content string, now time.Time) (MessageRecord, error) {
	if matchID <= 0 || senderProfileID <= 0 || strings.TrimSpace(content) == "" {
		return MessageRecord{}, fmt.Errorf("invalid message payload")
	}
	if r.pool == nil {
		return MessageRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec MessageRecord
	err := r.pool.QueryRow(ctx, `
INSERT INTO messages (
	match_id,
	sender_profile_id,
	content,
	is_read,
	created_at
) VALUES ($1, $2, $3, FALSE, $4)
RETURNING id, match_id, sender_profile_id, content, is_read, created_at
`, matchID, senderProfileID, content, now.UTC()).Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.SenderProfileID,
		&rec.Content,
		&rec.IsRead,
		&rec.CreatedAt,
	)
	if err != nil {
		return MessageRecord{}, fmt.Errorf("create message: %w", err)
	}

	return rec, nil
}

// ListByMatch returns the thread in creation order, oldest first.
func (r *MessageRepo) ListByMatch(ctx context.Context, matchID int64, limit int) ([]MessageRecord, error) {
	if matchID <= 0 {
		return nil, fmt.Errorf("invalid match id")
	}
	if limit <= 0 {
		limit = 200
	}
	if r.pool == nil {
		return []MessageRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, match_id, sender_profile_id, content, is_read, created_at
FROM messages
WHERE match_id = $1
ORDER BY created_at ASC, id ASC
LIMIT $2
`, matchID, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	items := make([]MessageRecord, 0, limit)
	for rows.Next() {
		var rec MessageRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.MatchID,
			&rec.SenderProfileID,
			&rec.Content,
			&rec.IsRead,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		items = append(items, rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate messages: %w", rows.Err())
	}

	return items, nil
}

// MarkReadForReader marks everything the other party sent as read.
func (r *MessageRepo) MarkReadForReader(ctx context.Context, matchID, readerProfileID int64) error {
	if matchID <= 0 || readerProfileID <= 0 {
		return fmt.Errorf("invalid read receipt payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE messages
SET is_read = TRUE
WHERE match_id = $1 AND sender_profile_id <> $2 AND is_read = FALSE
`, matchID, readerProfileID); err != nil {
		return fmt.Errorf("mark messages read: %w", err)
	}

	return nil
}

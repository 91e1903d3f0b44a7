package rate

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

var ErrRateLimited = errors.New("rate limited")

// LimitError reports an exhausted window together with the time until
// it resets. It matches ErrRateLimited under errors.Is.
type LimitError struct {
	RetryAfter time.Duration
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.RetryAfter)
}

func (e *LimitError) Is(target error) bool {
	return target == ErrRateLimited
}

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type Config struct {
	SwipesPerMinute    int
	SwipesPer10Seconds int
}

// Limiter enforces fixed-window swipe quotas per profile. Two windows run
// in parallel so a burst cannot drain the whole minute budget at once.
type Limiter struct {
	store WindowStore
	cfg   Config
}

func NewLimiter(store WindowStore, cfg Config) (*Limiter, error) {
	if store == nil {
		return nil, fmt.Errorf("window store is nil")
	}
	if cfg.SwipesPerMinute <= 0 {
		cfg.SwipesPerMinute = 60
	}
	if cfg.SwipesPer10Seconds <= 0 {
		cfg.SwipesPer10Seconds = 15
	}

	return &Limiter{store: store, cfg: cfg}, nil
}

// AllowSwipe consumes one swipe from both windows. When a window is
// exhausted it returns a LimitError carrying the time until the window
// resets.
func (l *Limiter) AllowSwipe(ctx context.Context, profileID int64) (time.Duration, error) {
	id := strconv.FormatInt(profileID, 10)

	count, ttl, err := l.store.IncrementWindow(ctx, "rate:swipes:10s:"+id, 10*time.Second)
	if err != nil {
		return 0, fmt.Errorf("increment burst window: %w", err)
	}
	if count > int64(l.cfg.SwipesPer10Seconds) {
		return ttl, &LimitError{RetryAfter: ttl}
	}

	count, ttl, err = l.store.IncrementWindow(ctx, "rate:swipes:min:"+id, time.Minute)
	if err != nil {
		return 0, fmt.Errorf("increment minute window: %w", err)
	}
	if count > int64(l.cfg.SwipesPerMinute) {
		return ttl, &LimitError{RetryAfter: ttl}
	}

	return 0, nil
}

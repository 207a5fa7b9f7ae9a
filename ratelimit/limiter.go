package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dealdesk/domain"
)

var ErrInvalidConfig = errors.New("ratelimit: invalid config")

// Limiter bounds accepted requests per key within a trailing window.
// A request recorded at T stops counting at exactly T+window.
type Limiter struct {
	mu          sync.Mutex
	window      time.Duration
	maxRequests int
	store       Store
	now         func() time.Time
}

type Option func(*Limiter)

// WithStore replaces the default MemoryStore.
func WithStore(store Store) Option {
	return func(l *Limiter) {
		l.store = store
	}
}

// WithClock sets the time source, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// Decision is the outcome of Allow.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

func New(window time.Duration, maxRequests int, opts ...Option) (*Limiter, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %s", ErrInvalidConfig, window)
	}
	if maxRequests <= 0 {
		return nil, fmt.Errorf("%w: max requests must be positive, got %d", ErrInvalidConfig, maxRequests)
	}

	l := &Limiter{
		window:      window,
		maxRequests: maxRequests,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.store == nil {
		l.store = NewMemoryStore()
	}
	return l, nil
}

func (l *Limiter) Window() time.Duration { return l.window }

func (l *Limiter) MaxRequests() int { return l.maxRequests }

// live purges stale timestamps for key and returns the survivors.
func (l *Limiter) live(ctx context.Context, key string, now time.Time) ([]time.Time, error) {
	if err := l.store.Purge(ctx, key, now.Add(-l.window)); err != nil {
		return nil, fmt.Errorf("purge %q: %w", key, err)
	}
	times, err := l.store.Timestamps(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return times, nil
}

// CanMakeRequest reports whether key is still under the limit. It does not
// record anything.
func (l *Limiter) CanMakeRequest(ctx context.Context, key string) (bool, error) {
	times, err := l.live(ctx, key, l.now())
	if err != nil {
		return false, err
	}
	return len(times) < l.maxRequests, nil
}

// RecordRequest appends the current time for key without enforcing the limit.
func (l *Limiter) RecordRequest(ctx context.Context, key string) error {
	now := l.now()
	if err := l.store.Purge(ctx, key, now.Add(-l.window)); err != nil {
		return fmt.Errorf("purge %q: %w", key, err)
	}
	if err := l.store.Append(ctx, key, now); err != nil {
		return fmt.Errorf("append %q: %w", key, err)
	}
	return nil
}

func (l *Limiter) GetRemainingRequests(ctx context.Context, key string) (int, error) {
	times, err := l.live(ctx, key, l.now())
	if err != nil {
		return 0, err
	}
	return max(0, l.maxRequests-len(times)), nil
}

// GetTimeUntilReset is 0 while key is under the limit, otherwise the time
// until its oldest timestamp leaves the window.
func (l *Limiter) GetTimeUntilReset(ctx context.Context, key string) (time.Duration, error) {
	now := l.now()
	times, err := l.live(ctx, key, now)
	if err != nil {
		return 0, err
	}
	return l.untilReset(times, now), nil
}

func (l *Limiter) untilReset(times []time.Time, now time.Time) time.Duration {
	if len(times) < l.maxRequests || len(times) == 0 {
		return 0
	}
	wait := times[0].Add(l.window).Sub(now)
	return min(max(wait, 0), l.window)
}

func (l *Limiter) Reset(ctx context.Context) error {
	return l.store.Reset(ctx)
}

// GetStats counts keys holding any timestamp before purging and keys that
// still hold one afterwards.
func (l *Limiter) GetStats(ctx context.Context) (domain.RateLimitStats, error) {
	keys, err := l.store.Keys(ctx)
	if err != nil {
		return domain.RateLimitStats{}, fmt.Errorf("list keys: %w", err)
	}

	now := l.now()
	var stats domain.RateLimitStats
	for _, key := range keys {
		before, err := l.store.Timestamps(ctx, key)
		if err != nil {
			return domain.RateLimitStats{}, fmt.Errorf("read %q: %w", key, err)
		}
		if len(before) == 0 {
			continue
		}
		stats.TotalUsers++

		after, err := l.live(ctx, key, now)
		if err != nil {
			return domain.RateLimitStats{}, err
		}
		if len(after) > 0 {
			stats.ActiveUsers++
		}
	}
	return stats, nil
}

// Allow checks and records in one step. Calls on the same Limiter are
// serialized; with a shared remote store other processes may still interleave.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	times, err := l.live(ctx, key, now)
	if err != nil {
		return Decision{}, err
	}

	if len(times) >= l.maxRequests {
		return Decision{
			Allowed:    false,
			Limit:      l.maxRequests,
			Remaining:  0,
			RetryAfter: l.untilReset(times, now),
		}, nil
	}

	if err := l.store.Append(ctx, key, now); err != nil {
		return Decision{}, fmt.Errorf("append %q: %w", key, err)
	}
	return Decision{
		Allowed:   true,
		Limit:     l.maxRequests,
		Remaining: l.maxRequests - len(times) - 1,
	}, nil
}

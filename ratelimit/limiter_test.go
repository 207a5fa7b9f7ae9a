package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, window time.Duration, maxRequests int, opts ...Option) (*Limiter, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	l, err := New(window, maxRequests, append([]Option{WithClock(clock.Now)}, opts...)...)
	require.NoError(t, err)
	return l, clock
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(0, 5)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(-time.Second, 5)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(time.Second, 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	l, err := New(time.Second, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Second, l.Window())
	assert.Equal(t, 1, l.MaxRequests())
}

func TestLimiter_SlidingWindow(t *testing.T) {
	ctx := context.Background()
	l, clock := newTestLimiter(t, time.Second, 5)

	remaining, err := l.GetRemainingRequests(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, 5, remaining)

	for i := 1; i <= 5; i++ {
		ok, err := l.CanMakeRequest(ctx, "u")
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, l.RecordRequest(ctx, "u"))

		remaining, err := l.GetRemainingRequests(ctx, "u")
		require.NoError(t, err)
		assert.Equal(t, 5-i, remaining)
	}

	ok, err := l.CanMakeRequest(ctx, "u")
	require.NoError(t, err)
	assert.False(t, ok)

	wait, err := l.GetTimeUntilReset(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, time.Second, wait)

	clock.Advance(999 * time.Millisecond)
	ok, err = l.CanMakeRequest(ctx, "u")
	require.NoError(t, err)
	assert.False(t, ok)

	wait, err = l.GetTimeUntilReset(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, time.Millisecond, wait)

	clock.Advance(time.Millisecond)
	ok, err = l.CanMakeRequest(ctx, "u")
	require.NoError(t, err)
	assert.True(t, ok)

	remaining, err = l.GetRemainingRequests(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, 5, remaining)

	wait, err = l.GetTimeUntilReset(ctx, "u")
	require.NoError(t, err)
	assert.Zero(t, wait)
}

func TestLimiter_WindowSlidesPerTimestamp(t *testing.T) {
	ctx := context.Background()
	l, clock := newTestLimiter(t, time.Second, 2)

	require.NoError(t, l.RecordRequest(ctx, "u"))
	clock.Advance(600 * time.Millisecond)
	require.NoError(t, l.RecordRequest(ctx, "u"))

	wait, err := l.GetTimeUntilReset(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, 400*time.Millisecond, wait)

	clock.Advance(400 * time.Millisecond)
	remaining, err := l.GetRemainingRequests(ctx, "u")
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

func TestLimiter_RemainingFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(t, time.Minute, 2)

	for i := 0; i < 4; i++ {
		require.NoError(t, l.RecordRequest(ctx, "u"))
	}

	remaining, err := l.GetRemainingRequests(ctx, "u")
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestLimiter_KeyIsolation(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(t, time.Minute, 3)

	for i := 0; i < 10; i++ {
		require.NoError(t, l.RecordRequest(ctx, "a"))
	}

	ok, err := l.CanMakeRequest(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = l.CanMakeRequest(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)

	remaining, err := l.GetRemainingRequests(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)
}

func TestLimiter_Stats(t *testing.T) {
	ctx := context.Background()
	l, clock := newTestLimiter(t, time.Second, 5)

	stats, err := l.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalUsers)

	require.NoError(t, l.RecordRequest(ctx, "a"))
	clock.Advance(600 * time.Millisecond)
	require.NoError(t, l.RecordRequest(ctx, "b"))
	clock.Advance(500 * time.Millisecond)

	stats, err = l.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.ActiveUsers)

	// "a" was purged by the previous call
	stats, err = l.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 1, stats.ActiveUsers)
}

func TestLimiter_Reset(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(t, time.Minute, 1)

	require.NoError(t, l.RecordRequest(ctx, "a"))
	require.NoError(t, l.RecordRequest(ctx, "b"))
	require.NoError(t, l.Reset(ctx))

	ok, err := l.CanMakeRequest(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	stats, err := l.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalUsers)
}

func TestLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	l, clock := newTestLimiter(t, time.Second, 2)

	d, err := l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)
	assert.Equal(t, 2, d.Limit)

	clock.Advance(250 * time.Millisecond)
	d, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Zero(t, d.Remaining)

	d, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, 750*time.Millisecond, d.RetryAfter)

	// a rejected call is not recorded
	clock.Advance(750 * time.Millisecond)
	d, err = l.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Zero(t, d.Remaining)
}

func TestLimiter_AllowConcurrent(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(t, time.Minute, 10)

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := l.Allow(ctx, "shared")
			if err == nil && d.Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 10, allowed.Load())
}

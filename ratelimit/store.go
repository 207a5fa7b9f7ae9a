package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store holds the accepted-request timestamps of every key. Implementations
// must return timestamps oldest first.
type Store interface {
	Timestamps(ctx context.Context, key string) ([]time.Time, error)
	Append(ctx context.Context, key string, at time.Time) error
	// Purge drops every timestamp of key at or before cutoff.
	Purge(ctx context.Context, key string, cutoff time.Time) error
	Keys(ctx context.Context) ([]string, error)
	Reset(ctx context.Context) error
}

// MemoryStore is a process-local Store safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	keys map[string][]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string][]time.Time)}
}

func (m *MemoryStore) Timestamps(_ context.Context, key string) ([]time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	times := m.keys[key]
	out := make([]time.Time, len(times))
	copy(out, times)
	return out, nil
}

func (m *MemoryStore) Append(_ context.Context, key string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.keys[key] = append(m.keys[key], at)
	return nil
}

func (m *MemoryStore) Purge(_ context.Context, key string, cutoff time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	times, ok := m.keys[key]
	if !ok {
		return nil
	}

	idx := 0
	for idx < len(times) && !times[idx].After(cutoff) {
		idx++
	}
	if idx == len(times) {
		// nothing left in the window
		delete(m.keys, key)
		return nil
	}
	if idx > 0 {
		m.keys[key] = append(times[:0:0], times[idx:]...)
	}
	return nil
}

func (m *MemoryStore) Keys(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.keys))
	for key := range m.keys {
		out = append(out, key)
	}
	return out, nil
}

func (m *MemoryStore) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.keys = make(map[string][]time.Time)
	return nil
}

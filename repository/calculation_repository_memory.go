package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CalculationRepositoryMemory is an in-memory implementation of
// CalculationRepository. It keeps at most limit entries, dropping the oldest.
type CalculationRepositoryMemory struct {
	mu    sync.RWMutex
	limit int
	data  []Calculation
}

// NewCalculationRepositoryMemory creates a new in-memory calculation history.
// A limit <= 0 keeps everything.
func NewCalculationRepositoryMemory(limit int) *CalculationRepositoryMemory {
	return &CalculationRepositoryMemory{
		limit: limit,
		data:  []Calculation{},
	}
}

// Save stores the calculation in memory, assigning an ID and timestamp when missing.
func (r *CalculationRepositoryMemory) Save(_ context.Context, calc Calculation) error {
	if calc.ID == uuid.Nil {
		calc.ID = uuid.New()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, calc)
	if r.limit > 0 && len(r.data) > r.limit {
		r.data = r.data[len(r.data)-r.limit:]
	}
	return nil
}

// Recent returns up to limit calculations of the given kind, newest first.
func (r *CalculationRepositoryMemory) Recent(_ context.Context, limit int, kind string) ([]Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Calculation{}
	for i := len(r.data) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if kind != "" && r.data[i].Kind != kind {
			continue
		}
		out = append(out, r.data[i])
	}
	return out, nil
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Calculation is one recorded calculator call.
type Calculation struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Input     any       `json:"input"`
	Result    any       `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

type CalculationRepository interface {
	Save(ctx context.Context, calc Calculation) error
}

// CalculationHistory reads back recorded calculations.
type CalculationHistory interface {
	// Recent returns up to limit calculations, newest first. An empty kind
	// matches every kind.
	Recent(ctx context.Context, limit int, kind string) ([]Calculation, error)
}

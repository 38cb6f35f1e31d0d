package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ADPer0705/parsec/internal/domain/entity"
)

// DecisionRepository defines the interface for decision log persistence
type DecisionRepository interface {
	// Create stores a decision record
	Create(ctx context.Context, decision *entity.Decision) error

	// GetByID returns a decision by ID, or nil when not found
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Decision, error)

	// List returns decisions ordered newest-first, with the total count
	List(ctx context.Context, limit, offset int) ([]*entity.Decision, int64, error)
}

package service

import (
	"context"

	"github.com/ADPer0705/parsec/internal/domain/entity"
)

// Classifier is a single classification engine. Implementations must always
// produce a complete result: engines that can fail internally (the model
// path) absorb the failure and substitute a heuristic result instead of
// returning an error.
type Classifier interface {
	Classify(ctx context.Context, text string) *entity.Result
}

package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ADPer0705/parsec/internal/domain/entity"
	"github.com/ADPer0705/parsec/internal/domain/repository"
	"github.com/ADPer0705/parsec/internal/domain/service"
	"github.com/ADPer0705/parsec/internal/infrastructure/metrics"
)

// Error definitions for the classifier usecase
var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrDecisionNotFound = errors.New("decision not found")
	ErrStorageDisabled  = errors.New("decision storage disabled")
)

// RequestContext is optional prior-session context supplied with a request.
// It currently has no effect on the decision (see adjustForContext).
type RequestContext struct {
	SessionID string   `json:"session_id"`
	History   []string `json:"history"`
}

// ClassifyInput represents a single classification request
type ClassifyInput struct {
	Input   string          `json:"input"`
	Context *RequestContext `json:"context,omitempty"`

	// RequestID is transport metadata, filled in by the boundary adapter.
	RequestID string `json:"-"`
}

// DecisionListOutput represents a paginated decision log page
type DecisionListOutput struct {
	Decisions []*entity.Decision `json:"decisions"`
	Total     int64              `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
	HasMore   bool               `json:"has_more"`
}

// ClassifierUsecase defines the classification business logic
type ClassifierUsecase interface {
	// Classify decides whether input is a shell command or a prompt. It
	// never fails: every internal failure is absorbed by a documented
	// fallback, so a complete result always comes back.
	Classify(ctx context.Context, input *ClassifyInput) *entity.Result

	// ClassifyBatch classifies several inputs independently
	ClassifyBatch(ctx context.Context, inputs []string) []*entity.Result

	// ListDecisions returns a page of the persisted decision log
	ListDecisions(ctx context.Context, limit, offset int) (*DecisionListOutput, error)

	// GetDecision returns a single persisted decision
	GetDecision(ctx context.Context, id uuid.UUID) (*entity.Decision, error)
}

type classifierUsecase struct {
	engine    service.Classifier
	decisions repository.DecisionRepository // nil when the decision log is disabled
	cache     *redis.Client                 // nil when the result cache is disabled
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewClassifierUsecase creates a classifier usecase. The engine is chosen at
// process start (model-backed when the model initialized, heuristic
// otherwise) and never changes for the process lifetime. decisions and cache
// are optional; pass nil to disable.
func NewClassifierUsecase(engine service.Classifier, decisions repository.DecisionRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) ClassifierUsecase {
	return &classifierUsecase{
		engine:    engine,
		decisions: decisions,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func (u *classifierUsecase) Classify(ctx context.Context, input *ClassifyInput) *entity.Result {
	if strings.TrimSpace(input.Input) == "" {
		return entity.EmptyInputResult()
	}

	text := service.Preprocess(input.Input)

	if cached := u.cachedResult(ctx, text); cached != nil {
		metrics.CacheHits.Inc()
		return cached
	}

	start := time.Now()
	result := u.engine.Classify(ctx, text)
	latency := time.Since(start)

	result = u.adjustForContext(result, input.Context)

	metrics.Classifications.WithLabelValues(
		string(result.Classification), string(result.Engine())).Inc()

	u.storeResult(ctx, text, result)
	u.recordDecision(ctx, input, result, latency)

	return result
}

func (u *classifierUsecase) ClassifyBatch(ctx context.Context, inputs []string) []*entity.Result {
	results := make([]*entity.Result, len(inputs))
	for i, input := range inputs {
		results[i] = u.Classify(ctx, &ClassifyInput{Input: input})
	}
	return results
}

func (u *classifierUsecase) ListDecisions(ctx context.Context, limit, offset int) (*DecisionListOutput, error) {
	if u.decisions == nil {
		return nil, ErrStorageDisabled
	}

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	decisions, total, err := u.decisions.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return &DecisionListOutput{
		Decisions: decisions,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
		HasMore:   int64(offset+limit) < total,
	}, nil
}

func (u *classifierUsecase) GetDecision(ctx context.Context, id uuid.UUID) (*entity.Decision, error) {
	if u.decisions == nil {
		return nil, ErrStorageDisabled
	}

	decision, err := u.decisions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if decision == nil {
		return nil, ErrDecisionNotFound
	}
	return decision, nil
}

// adjustForContext is the extension point for history-aware confidence
// adjustment. Not implemented: the result is returned unchanged whether or
// not history is present.
func (u *classifierUsecase) adjustForContext(result *entity.Result, reqCtx *RequestContext) *entity.Result {
	if reqCtx == nil || len(reqCtx.History) == 0 {
		return result
	}
	return result
}

func cacheKey(text string) string {
	return fmt.Sprintf("parsec:classify:%x", sha256.Sum256([]byte(text)))
}

func (u *classifierUsecase) cachedResult(ctx context.Context, text string) *entity.Result {
	if u.cache == nil {
		return nil
	}

	data, err := u.cache.Get(ctx, cacheKey(text)).Bytes()
	if err != nil {
		if err != redis.Nil {
			u.logger.Warn("cache lookup failed", zap.Error(err))
		}
		return nil
	}

	var result entity.Result
	if err := json.Unmarshal(data, &result); err != nil {
		u.logger.Warn("discarding undecodable cached result", zap.Error(err))
		return nil
	}
	return &result
}

func (u *classifierUsecase) storeResult(ctx context.Context, text string, result *entity.Result) {
	if u.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := u.cache.Set(ctx, cacheKey(text), data, u.cacheTTL).Err(); err != nil {
		u.logger.Warn("cache store failed", zap.Error(err))
	}
}

// recordDecision appends to the decision log. Persistence failure never
// affects the response.
func (u *classifierUsecase) recordDecision(ctx context.Context, input *ClassifyInput, result *entity.Result, latency time.Duration) {
	if u.decisions == nil {
		return
	}

	decision := entity.NewDecision(input.RequestID, input.Input, result, latency)
	if err := u.decisions.Create(ctx, decision); err != nil {
		u.logger.Warn("failed to record decision", zap.Error(err))
	}
}

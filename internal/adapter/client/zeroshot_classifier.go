package client

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ADPer0705/parsec/internal/domain/entity"
	"github.com/ADPer0705/parsec/internal/domain/service"
	"github.com/ADPer0705/parsec/internal/infrastructure/metrics"
)

// Model labels that map to a shell decision; the remaining candidate labels
// map to prompt.
var shellLabels = map[string]struct{}{
	"shell command execution":       {},
	"system administration command": {},
}

// ZeroShotClassifier adapts the inference service to the Classifier
// interface. Every failure of the model invocation degrades, per call, to a
// full heuristic result: the model path never surfaces an error.
//
// Identical in-flight texts share one model call through a singleflight
// group, since the invocation is expensive and the result is deterministic
// per text.
type ZeroShotClassifier struct {
	client    *ZeroShotClient
	heuristic *service.HeuristicClassifier
	vocab     *service.Vocabulary
	logger    *zap.Logger
	group     singleflight.Group
}

// NewZeroShotClassifier creates a model-backed classifier with heuristic fallback
func NewZeroShotClassifier(client *ZeroShotClient, heuristic *service.HeuristicClassifier, vocab *service.Vocabulary, logger *zap.Logger) *ZeroShotClassifier {
	return &ZeroShotClassifier{
		client:    client,
		heuristic: heuristic,
		vocab:     vocab,
		logger:    logger,
	}
}

// Classify classifies text with the zero-shot model, falling back to the
// heuristic path when the model invocation fails
func (c *ZeroShotClassifier) Classify(ctx context.Context, text string) *entity.Result {
	v, err, _ := c.group.Do(text, func() (interface{}, error) {
		return c.classifyModel(ctx, text)
	})
	if err != nil {
		metrics.ModelFailures.Inc()
		c.logger.Warn("model classification failed, falling back to heuristics",
			zap.Error(err))
		return c.heuristic.Classify(ctx, text)
	}
	return v.(*entity.Result)
}

func (c *ZeroShotClassifier) classifyModel(ctx context.Context, text string) (*entity.Result, error) {
	start := time.Now()
	resp, err := c.client.Classify(ctx, text, c.vocab.CandidateLabels, "")
	if err != nil {
		return nil, err
	}
	metrics.ModelLatency.Observe(time.Since(start).Seconds())

	topLabel := resp.Labels[0]
	topScore := resp.Scores[0]

	kind := entity.KindPrompt
	if _, ok := shellLabels[topLabel]; ok {
		kind = entity.KindShell
	}

	scores := make(map[string]float64, len(resp.Labels))
	for i, label := range resp.Labels {
		scores[label] = resp.Scores[i]
	}

	// The heuristic run contributes only its pattern metadata here; its
	// classification, confidence and reasoning are discarded.
	heuristic := c.heuristic.Classify(ctx, text)

	return &entity.Result{
		Classification: kind,
		Confidence:     topScore,
		Reasoning:      fmt.Sprintf("ML model classified as '%s' with confidence %.3f", topLabel, topScore),
		Metadata: entity.Metadata{
			DetectedPatterns:   heuristic.Metadata.DetectedPatterns,
			LanguageIndicators: heuristic.Metadata.LanguageIndicators,
			MLLabel:            topLabel,
			MLScores:           scores,
		},
	}, nil
}

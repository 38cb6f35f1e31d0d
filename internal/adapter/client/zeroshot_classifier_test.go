package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ADPer0705/parsec/internal/domain/entity"
	"github.com/ADPer0705/parsec/internal/domain/service"
)

func newTestClassifier(t *testing.T, baseURL string) *ZeroShotClassifier {
	t.Helper()
	vocab, err := service.DefaultVocabulary()
	require.NoError(t, err)
	heuristic := service.NewHeuristicClassifier(vocab)
	return NewZeroShotClassifier(NewZeroShotClient(baseURL, 2*time.Second), heuristic, vocab, zap.NewNop())
}

func rankedResponse(labels []string, scores []float64) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(ClassifyResponse{
			Success:      true,
			Labels:       labels,
			Scores:       scores,
			ModelVersion: "mock-v1",
		})
	}
}

func TestZeroShotClassifier_Classify(t *testing.T) {
	t.Run("shell command execution maps to shell", func(t *testing.T) {
		server := httptest.NewServer(rankedResponse(
			[]string{"shell command execution", "system administration command", "natural language request", "conversational prompt"},
			[]float64{0.82, 0.10, 0.05, 0.03},
		))
		defer server.Close()

		result := newTestClassifier(t, server.URL).Classify(context.Background(), "ls -la")

		assert.Equal(t, entity.KindShell, result.Classification)
		assert.Equal(t, 0.82, result.Confidence)
		assert.Equal(t, "ML model classified as 'shell command execution' with confidence 0.820", result.Reasoning)
		assert.Equal(t, "shell command execution", result.Metadata.MLLabel)
	})

	t.Run("system administration command maps to shell", func(t *testing.T) {
		server := httptest.NewServer(rankedResponse(
			[]string{"system administration command", "shell command execution", "conversational prompt", "natural language request"},
			[]float64{0.61, 0.20, 0.10, 0.09},
		))
		defer server.Close()

		result := newTestClassifier(t, server.URL).Classify(context.Background(), "sudo systemctl restart nginx")

		assert.Equal(t, entity.KindShell, result.Classification)
		assert.Equal(t, 0.61, result.Confidence)
	})

	t.Run("conversational prompt maps to prompt", func(t *testing.T) {
		server := httptest.NewServer(rankedResponse(
			[]string{"conversational prompt", "natural language request", "shell command execution", "system administration command"},
			[]float64{0.72, 0.15, 0.08, 0.05},
		))
		defer server.Close()

		result := newTestClassifier(t, server.URL).Classify(context.Background(), "tell me about git")

		assert.Equal(t, entity.KindPrompt, result.Classification)
		assert.Equal(t, 0.72, result.Confidence)
	})

	t.Run("ml_scores carries the complete distribution", func(t *testing.T) {
		server := httptest.NewServer(rankedResponse(
			[]string{"natural language request", "conversational prompt", "shell command execution", "system administration command"},
			[]float64{0.5, 0.3, 0.15, 0.05},
		))
		defer server.Close()

		result := newTestClassifier(t, server.URL).Classify(context.Background(), "some text")

		assert.Len(t, result.Metadata.MLScores, 4)
		assert.Equal(t, 0.5, result.Metadata.MLScores["natural language request"])
		assert.Equal(t, 0.05, result.Metadata.MLScores["system administration command"])
	})

	t.Run("heuristic metadata merged into model result", func(t *testing.T) {
		server := httptest.NewServer(rankedResponse(
			[]string{"natural language request", "conversational prompt", "shell command execution", "system administration command"},
			[]float64{0.9, 0.05, 0.03, 0.02},
		))
		defer server.Close()

		result := newTestClassifier(t, server.URL).Classify(context.Background(), "please help me")

		// Patterns come from the heuristic pass even though the decision is the model's.
		assert.Equal(t, entity.KindPrompt, result.Classification)
		assert.Contains(t, result.Metadata.LanguageIndicators, "please")
		assert.Contains(t, result.Metadata.LanguageIndicators, "help me")
	})

	t.Run("model failure degrades to full heuristic result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		result := newTestClassifier(t, server.URL).Classify(context.Background(), "ls -la")

		// Classification, confidence, reasoning and metadata all come from
		// the heuristic path for this call.
		assert.Equal(t, entity.KindShell, result.Classification)
		assert.Equal(t, 0.9, result.Confidence)
		assert.Contains(t, result.Reasoning, "first word 'ls'")
		assert.Empty(t, result.Metadata.MLLabel)
		assert.Nil(t, result.Metadata.MLScores)
	})

	t.Run("unreachable service degrades to heuristics", func(t *testing.T) {
		result := newTestClassifier(t, "http://127.0.0.1:1").Classify(context.Background(), "git status")

		assert.Equal(t, entity.KindShell, result.Classification)
		assert.Equal(t, 0.9, result.Confidence)
	})
}

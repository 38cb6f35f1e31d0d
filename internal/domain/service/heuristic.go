package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ADPer0705/parsec/internal/domain/entity"
)

// Pattern tags recorded in result metadata
const (
	PatternCommandVerb = "command_verb"
	PatternFlag        = "flag_pattern"
	PatternPath        = "path_pattern"
	PatternQuestion    = "question_pattern"
)

// HeuristicClassifier is the deterministic, pattern-based decision
// procedure. It is pure: no side effects, no external calls. It serves both
// as the fallback when the model path is unavailable and as the metadata
// source for model decisions.
type HeuristicClassifier struct {
	vocab *Vocabulary
}

// NewHeuristicClassifier creates a heuristic classifier over the given vocabulary
func NewHeuristicClassifier(vocab *Vocabulary) *HeuristicClassifier {
	return &HeuristicClassifier{vocab: vocab}
}

// Classify runs the heuristic decision procedure.
//
// The first-word rule has absolute priority: a recognized command verb wins
// over any natural-language indicator later in the text, at confidence 0.9.
// After that, shell-shaped patterns (flags, paths) and natural-language
// indicators are collected independently; indicators outrank patterns at
// confidence 0.8, and input matching nothing defaults to prompt at 0.6.
func (h *HeuristicClassifier) Classify(_ context.Context, text string) *entity.Result {
	lower := strings.ToLower(strings.TrimSpace(text))
	firstWord := ""
	if fields := strings.Fields(lower); len(fields) > 0 {
		firstWord = fields[0]
	}

	detected := []string{}
	indicators := []string{}

	if h.vocab.IsShellCommand(firstWord) {
		detected = append(detected, PatternCommandVerb)
		return &entity.Result{
			Classification: entity.KindShell,
			Confidence:     0.9,
			Reasoning:      fmt.Sprintf("Detected shell command pattern with first word '%s'", firstWord),
			Metadata: entity.Metadata{
				DetectedPatterns:   detected,
				LanguageIndicators: indicators,
			},
		}
	}

	// " -" rather than "-" so flags inside words don't match
	if strings.Contains(text, " -") || strings.Contains(text, " --") {
		detected = append(detected, PatternFlag)
	}
	if strings.Contains(text, "./") || strings.Contains(text, "../") || strings.Contains(firstWord, "/") {
		detected = append(detected, PatternPath)
	}

	// Single-word indicators match whole tokens only, so a verb buried in
	// a path like "./configure" is not language evidence. Multi-word
	// phrases keep substring matching since they span token boundaries.
	tokens := make(map[string]struct{})
	for _, f := range strings.Fields(lower) {
		tokens[f] = struct{}{}
	}
	for _, indicator := range h.vocab.PromptIndicators {
		if strings.Contains(indicator, " ") {
			if strings.Contains(lower, indicator) {
				indicators = append(indicators, indicator)
			}
			continue
		}
		if _, ok := tokens[indicator]; ok {
			indicators = append(indicators, indicator)
		}
	}

	if strings.HasSuffix(text, "?") || h.startsWithInterrogative(lower) {
		indicators = append(indicators, PatternQuestion)
	}

	meta := entity.Metadata{
		DetectedPatterns:   detected,
		LanguageIndicators: indicators,
	}

	switch {
	case len(detected) > 0 && len(indicators) == 0:
		return &entity.Result{
			Classification: entity.KindShell,
			Confidence:     0.8,
			Reasoning:      "Detected shell patterns: " + strings.Join(detected, ", "),
			Metadata:       meta,
		}
	case len(indicators) > 0:
		return &entity.Result{
			Classification: entity.KindPrompt,
			Confidence:     0.8,
			Reasoning:      "Detected natural language indicators: " + strings.Join(indicators, ", "),
			Metadata:       meta,
		}
	default:
		return &entity.Result{
			Classification: entity.KindPrompt,
			Confidence:     0.6,
			Reasoning:      "Ambiguous input, defaulting to prompt classification",
			Metadata:       meta,
		}
	}
}

func (h *HeuristicClassifier) startsWithInterrogative(lower string) bool {
	for _, q := range h.vocab.Interrogatives {
		if strings.HasPrefix(lower, q) {
			return true
		}
	}
	return false
}

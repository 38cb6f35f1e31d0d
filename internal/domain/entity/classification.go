package entity

// Kind is the two-valued outcome of classification. Every decision is
// exactly one of these; there is no third value.
type Kind string

const (
	KindShell  Kind = "shell"
	KindPrompt Kind = "prompt"
)

// Engine identifies which classification path produced a decision
type Engine string

const (
	EngineModel     Engine = "model"
	EngineHeuristic Engine = "heuristic"
)

// Metadata carries the diagnostic evidence behind a decision
type Metadata struct {
	DetectedPatterns   []string           `json:"detected_patterns"`
	LanguageIndicators []string           `json:"language_indicators"`
	MLLabel            string             `json:"ml_label,omitempty"`
	MLScores           map[string]float64 `json:"ml_scores,omitempty"`
	Error              string             `json:"error,omitempty"`
}

// Result is the sole output type of the classification engine. Confidence
// is always within [0, 1] and Reasoning is never empty.
type Result struct {
	Classification Kind     `json:"classification"`
	Confidence     float64  `json:"confidence"`
	Reasoning      string   `json:"reasoning"`
	Metadata       Metadata `json:"metadata"`
}

// Engine reports which path produced the result. A model decision always
// carries the winning label in its metadata; a heuristic one never does.
func (r *Result) Engine() Engine {
	if r.Metadata.MLLabel != "" {
		return EngineModel
	}
	return EngineHeuristic
}

// EmptyInputResult is the safety default for empty or all-whitespace input.
// Distinct from the ambiguous-input default: empty input is treated as a
// shell no-op, with full confidence.
func EmptyInputResult() *Result {
	return &Result{
		Classification: KindShell,
		Confidence:     1.0,
		Reasoning:      "Empty input defaults to shell",
		Metadata: Metadata{
			DetectedPatterns:   []string{},
			LanguageIndicators: []string{},
		},
	}
}

// ErrorResult is the safe-default shape returned across the boundary when
// classification cannot run at all. Prompt is the safer of the two outcomes:
// a misrouted prompt is a wasted model call, a misrouted shell command runs.
func ErrorResult(msg string) *Result {
	return &Result{
		Classification: KindPrompt,
		Confidence:     0.5,
		Reasoning:      "Classification error: " + msg,
		Metadata: Metadata{
			DetectedPatterns:   []string{},
			LanguageIndicators: []string{},
			Error:              msg,
		},
	}
}

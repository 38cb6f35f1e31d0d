package entity

import (
	"time"

	"github.com/google/uuid"
)

// Decision is a persisted record of a single classification, kept for
// auditing and offline evaluation of the heuristics against the model.
type Decision struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	RequestID      string    `json:"request_id" gorm:"type:varchar(64);index"`
	Input          string    `json:"input" gorm:"type:text;not null"`
	Classification Kind      `json:"classification" gorm:"type:varchar(10);not null"`
	Confidence     float64   `json:"confidence" gorm:"not null"`
	Reasoning      string    `json:"reasoning" gorm:"type:text"`
	Engine         Engine    `json:"engine" gorm:"type:varchar(20);not null"`
	MLLabel        string    `json:"ml_label,omitempty" gorm:"type:varchar(64)"`
	LatencyMs      int64     `json:"latency_ms"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`
}

// NewDecision builds a decision record from a classification result
func NewDecision(requestID, input string, result *Result, latency time.Duration) *Decision {
	return &Decision{
		ID:             uuid.New(),
		RequestID:      requestID,
		Input:          input,
		Classification: result.Classification,
		Confidence:     result.Confidence,
		Reasoning:      result.Reasoning,
		Engine:         result.Engine(),
		MLLabel:        result.Metadata.MLLabel,
		LatencyMs:      latency.Milliseconds(),
		CreatedAt:      time.Now().UTC(),
	}
}

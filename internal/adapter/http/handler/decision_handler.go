package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ADPer0705/parsec/internal/usecase"
)

// DecisionHandler serves the persisted decision log
type DecisionHandler struct {
	classifierUC usecase.ClassifierUsecase
}

// NewDecisionHandler creates a new decision handler
func NewDecisionHandler(classifierUC usecase.ClassifierUsecase) *DecisionHandler {
	return &DecisionHandler{classifierUC: classifierUC}
}

// ListDecisions handles GET /api/v1/decisions
func (h *DecisionHandler) ListDecisions(c *gin.Context) {
	p := ParsePagination(c)

	output, err := h.classifierUC.ListDecisions(c.Request.Context(), p.Limit, p.Offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// GetDecision handles GET /api/v1/decisions/:id
func (h *DecisionHandler) GetDecision(c *gin.Context) {
	id, err := ExtractUUIDParam(c, "id")
	if err != nil {
		HandleInvalidUUID(c, "decision id")
		return
	}

	decision, err := h.classifierUC.GetDecision(c.Request.Context(), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, decision)
}

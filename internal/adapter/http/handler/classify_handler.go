package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ADPer0705/parsec/internal/domain/entity"
	"github.com/ADPer0705/parsec/internal/usecase"
)

// ClassifyHandler handles classification HTTP requests
type ClassifyHandler struct {
	classifierUC usecase.ClassifierUsecase
	logger       *zap.Logger
}

// NewClassifyHandler creates a new classify handler
func NewClassifyHandler(classifierUC usecase.ClassifierUsecase, logger *zap.Logger) *ClassifyHandler {
	return &ClassifyHandler{classifierUC: classifierUC, logger: logger}
}

// classifyRequest is the boundary payload. Input is a pointer so a missing
// key can be told apart from a present-but-empty string: empty input has a
// defined classification, a missing field is a malformed request.
type classifyRequest struct {
	Input   *string                 `json:"input"`
	Context *usecase.RequestContext `json:"context"`
}

type classifyBatchRequest struct {
	Inputs []string `json:"inputs" binding:"required,min=1,max=100"`
}

// Classify handles POST /api/v1/classify.
//
// The boundary contract: the body is always the classification shape with
// exactly four top-level keys, even for malformed payloads or internal
// failures. No error ever crosses this endpoint.
func (h *ClassifyHandler) Classify(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("%v", r)
			h.logger.Error("classification panicked",
				zap.String("request_id", c.GetString("request_id")),
				zap.String("panic", msg))
			c.JSON(http.StatusOK, entity.ErrorResult(msg))
		}
	}()

	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, entity.ErrorResult(err.Error()))
		return
	}
	if req.Input == nil {
		c.JSON(http.StatusOK, entity.ErrorResult("missing required field 'input'"))
		return
	}

	result := h.classifierUC.Classify(c.Request.Context(), &usecase.ClassifyInput{
		Input:     *req.Input,
		Context:   req.Context,
		RequestID: c.GetString("request_id"),
	})

	c.JSON(http.StatusOK, result)
}

// ClassifyBatch handles POST /api/v1/classify/batch
func (h *ClassifyHandler) ClassifyBatch(c *gin.Context) {
	var req classifyBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	results := h.classifierUC.ClassifyBatch(c.Request.Context(), req.Inputs)

	respondSuccess(c, http.StatusOK, gin.H{"results": results})
}

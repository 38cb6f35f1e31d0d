package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ADPer0705/parsec/internal/domain/entity"
	"github.com/ADPer0705/parsec/internal/usecase"
)

// MockClassifierUsecase is a mock implementation of ClassifierUsecase
type MockClassifierUsecase struct {
	mock.Mock
}

func (m *MockClassifierUsecase) Classify(ctx context.Context, input *usecase.ClassifyInput) *entity.Result {
	args := m.Called(ctx, input)
	return args.Get(0).(*entity.Result)
}

func (m *MockClassifierUsecase) ClassifyBatch(ctx context.Context, inputs []string) []*entity.Result {
	args := m.Called(ctx, inputs)
	return args.Get(0).([]*entity.Result)
}

func (m *MockClassifierUsecase) ListDecisions(ctx context.Context, limit, offset int) (*usecase.DecisionListOutput, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.DecisionListOutput), args.Error(1)
}

func (m *MockClassifierUsecase) GetDecision(ctx context.Context, id uuid.UUID) (*entity.Decision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Decision), args.Error(1)
}

func newDecisionRouter(uc usecase.ClassifierUsecase) *gin.Engine {
	h := NewDecisionHandler(uc)
	router := gin.New()
	router.GET("/api/v1/decisions", h.ListDecisions)
	router.GET("/api/v1/decisions/:id", h.GetDecision)
	return router
}

func TestDecisionHandler_ListDecisions(t *testing.T) {
	t.Run("returns page", func(t *testing.T) {
		uc := new(MockClassifierUsecase)
		uc.On("ListDecisions", mock.Anything, 20, 0).Return(&usecase.DecisionListOutput{
			Decisions: []*entity.Decision{{ID: uuid.New(), Input: "ls", Classification: entity.KindShell}},
			Total:     1,
			Limit:     20,
		}, nil)

		router := newDecisionRouter(uc)
		req, _ := http.NewRequest("GET", "/api/v1/decisions", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		uc.AssertExpectations(t)
	})

	t.Run("storage disabled maps to 503", func(t *testing.T) {
		uc := new(MockClassifierUsecase)
		uc.On("ListDecisions", mock.Anything, 20, 0).Return(nil, usecase.ErrStorageDisabled)

		router := newDecisionRouter(uc)
		req, _ := http.NewRequest("GET", "/api/v1/decisions", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "STORAGE_DISABLED")
	})

	t.Run("pagination clamped", func(t *testing.T) {
		uc := new(MockClassifierUsecase)
		uc.On("ListDecisions", mock.Anything, 100, 0).Return(&usecase.DecisionListOutput{}, nil)

		router := newDecisionRouter(uc)
		req, _ := http.NewRequest("GET", "/api/v1/decisions?limit=9999", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		uc.AssertExpectations(t)
	})
}

func TestDecisionHandler_GetDecision(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		uc := new(MockClassifierUsecase)
		uc.On("GetDecision", mock.Anything, id).Return(&entity.Decision{ID: id, Input: "ls"}, nil)

		router := newDecisionRouter(uc)
		req, _ := http.NewRequest("GET", "/api/v1/decisions/"+id.String(), http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		id := uuid.New()
		uc := new(MockClassifierUsecase)
		uc.On("GetDecision", mock.Anything, id).Return(nil, usecase.ErrDecisionNotFound)

		router := newDecisionRouter(uc)
		req, _ := http.NewRequest("GET", "/api/v1/decisions/"+id.String(), http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})

	t.Run("invalid uuid maps to 400", func(t *testing.T) {
		uc := new(MockClassifierUsecase)

		router := newDecisionRouter(uc)
		req, _ := http.NewRequest("GET", "/api/v1/decisions/not-a-uuid", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
	})
}

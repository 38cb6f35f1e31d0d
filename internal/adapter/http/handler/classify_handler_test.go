package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ADPer0705/parsec/internal/domain/service"
	"github.com/ADPer0705/parsec/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newClassifyRouter(t *testing.T) *gin.Engine {
	t.Helper()
	vocab, err := service.DefaultVocabulary()
	require.NoError(t, err)
	uc := usecase.NewClassifierUsecase(service.NewHeuristicClassifier(vocab), nil, nil, 0, zap.NewNop())
	h := NewClassifyHandler(uc, zap.NewNop())

	router := gin.New()
	router.POST("/api/v1/classify", h.Classify)
	router.POST("/api/v1/classify/batch", h.ClassifyBatch)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestClassifyHandler_Classify(t *testing.T) {
	router := newClassifyRouter(t)

	t.Run("shell command", func(t *testing.T) {
		w := postJSON(router, "/api/v1/classify", `{"input": "ls -la"}`)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "shell", body["classification"])
		assert.Equal(t, 0.9, body["confidence"])
	})

	t.Run("response has exactly the four contract keys", func(t *testing.T) {
		w := postJSON(router, "/api/v1/classify", `{"input": "please help me"}`)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body, 4)
		for _, key := range []string{"classification", "confidence", "reasoning", "metadata"} {
			assert.Contains(t, body, key)
		}
	})

	t.Run("empty input defaults to shell", func(t *testing.T) {
		w := postJSON(router, "/api/v1/classify", `{"input": ""}`)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "shell", body["classification"])
		assert.Equal(t, 1.0, body["confidence"])
		assert.Equal(t, "Empty input defaults to shell", body["reasoning"])
	})

	t.Run("context is accepted and ignored", func(t *testing.T) {
		w := postJSON(router, "/api/v1/classify",
			`{"input": "ls -la", "context": {"session_id": "s1", "history": ["cd /tmp"]}}`)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "shell", body["classification"])
		assert.Equal(t, 0.9, body["confidence"])
	})

	t.Run("missing input is the safe-default failure shape", func(t *testing.T) {
		w := postJSON(router, "/api/v1/classify", `{"context": {"session_id": "s1"}}`)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "prompt", body["classification"])
		assert.Equal(t, 0.5, body["confidence"])
		assert.Contains(t, body["reasoning"], "Classification error:")

		meta := body["metadata"].(map[string]interface{})
		assert.NotEmpty(t, meta["error"])
		assert.Empty(t, meta["detected_patterns"])
		assert.Empty(t, meta["language_indicators"])
	})

	t.Run("malformed JSON is the safe-default failure shape", func(t *testing.T) {
		w := postJSON(router, "/api/v1/classify", `{"input": `)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "prompt", body["classification"])
		assert.Equal(t, 0.5, body["confidence"])
		assert.Len(t, body, 4)
	})

	t.Run("every response parses as the contract shape", func(t *testing.T) {
		payloads := []string{
			`{"input": "ls -la"}`,
			`{"input": ""}`,
			`{"input": "Please help me create a new project"}`,
			`{"input": "xyz"}`,
			`{}`,
			`not json at all`,
		}
		for _, payload := range payloads {
			w := postJSON(router, "/api/v1/classify", payload)

			assert.Equal(t, http.StatusOK, w.Code, "payload %s", payload)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "payload %s", payload)
			assert.Len(t, body, 4, "payload %s", payload)

			confidence := body["confidence"].(float64)
			assert.GreaterOrEqual(t, confidence, 0.0)
			assert.LessOrEqual(t, confidence, 1.0)
			assert.Contains(t, []interface{}{"shell", "prompt"}, body["classification"])
			assert.NotEmpty(t, body["reasoning"])
		}
	})
}

func TestClassifyHandler_ClassifyBatch(t *testing.T) {
	router := newClassifyRouter(t)

	t.Run("classifies each input", func(t *testing.T) {
		w := postJSON(router, "/api/v1/classify/batch", `{"inputs": ["ls -la", "please help me"]}`)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data := resp.Data.(map[string]interface{})
		results := data["results"].([]interface{})
		require.Len(t, results, 2)
		assert.Equal(t, "shell", results[0].(map[string]interface{})["classification"])
		assert.Equal(t, "prompt", results[1].(map[string]interface{})["classification"])
	})

	t.Run("empty batch is invalid", func(t *testing.T) {
		w := postJSON(router, "/api/v1/classify/batch", `{"inputs": []}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

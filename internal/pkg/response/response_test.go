package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSuccess(t *testing.T) {
	w, body := render(t, func(c *gin.Context) {
		Success(c, http.StatusCreated, map[string]int{"count": 2})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"count": float64(2)}, body["data"])
	assert.NotContains(t, body, "error")
}

func TestError(t *testing.T) {
	w, body := render(t, func(c *gin.Context) {
		Error(c, http.StatusUnauthorized, "INVALID_SESSION", "Invalid session")
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, map[string]any{"code": "INVALID_SESSION", "message": "Invalid session"}, body["error"])
}

func TestErrorWithDetails(t *testing.T) {
	_, body := render(t, func(c *gin.Context) {
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", map[string]string{"name": "required"})
	})

	errBody := body["error"].(map[string]any)
	assert.Equal(t, map[string]any{"name": "required"}, errBody["details"])
}

func TestAbort(t *testing.T) {
	var aborted bool
	_, _ = render(t, func(c *gin.Context) {
		Abort(c, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many requests")
		aborted = c.IsAborted()
	})
	assert.True(t, aborted)
}

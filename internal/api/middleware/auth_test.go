package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianjohndal5/Rental/internal/auth"
)

const testSecret = "middleware-test-secret"

func setupGuardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/guarded", AgentMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"agent_id": c.GetInt64(ContextKeyAgentID)})
	})
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"agent_id": c.GetInt64(ContextKeyAgentID)})
	})
	return r
}

func TestAgentMiddleware_MissingToken(t *testing.T) {
	r := setupGuardedRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/guarded", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized. Agent authentication required.")
}

func TestAgentMiddleware_MalformedHeader(t *testing.T) {
	r := setupGuardedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAgentMiddleware_NonAgentToken(t *testing.T) {
	token, err := auth.GenerateJWT(9, false, false, testSecret, time.Hour)
	require.NoError(t, err)

	r := setupGuardedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAgentMiddleware_ValidAgent(t *testing.T) {
	token, err := auth.GenerateJWT(9, true, false, testSecret, time.Hour)
	require.NoError(t, err)

	r := setupGuardedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"agent_id":9`)
}

func TestAuthMiddleware_MissingTokenIs401(t *testing.T) {
	r := setupGuardedRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

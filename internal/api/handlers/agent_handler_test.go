package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ianjohndal5/Rental/internal/api/middleware"
	"github.com/ianjohndal5/Rental/internal/auth"
	"github.com/ianjohndal5/Rental/internal/config"
	"github.com/ianjohndal5/Rental/internal/models"
	"github.com/ianjohndal5/Rental/internal/services"
)

func setupAgentRouter(svc services.IAgentService, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAgentHandler(svc, cfg)

	r := gin.New()
	apiGroup := r.Group("/api")
	apiGroup.POST("/agents/register", h.Register)
	apiGroup.POST("/agents/login", h.Login)
	apiGroup.POST("/auth/login", h.Login)

	authRequired := apiGroup.Group("/")
	authRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret))
	authRequired.GET("/agents/me", h.Me)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAgentRegister_Success(t *testing.T) {
	mockSvc := new(MockAgentService)
	mockSvc.On("Register", mock.Anything, "Maria Santos", "maria@example.com", "", "correct-horse").
		Return(&models.Agent{ID: 5, Name: "Maria Santos", Email: "maria@example.com"}, nil)

	r := setupAgentRouter(mockSvc, testHandlerConfig())
	w := postJSON(t, r, "/api/agents/register", map[string]string{
		"name":     "Maria Santos",
		"email":    "maria@example.com",
		"password": "correct-horse",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	mockSvc.AssertExpectations(t)
}

func TestAgentRegister_Validation(t *testing.T) {
	mockSvc := new(MockAgentService)
	r := setupAgentRouter(mockSvc, testHandlerConfig())

	w := postJSON(t, r, "/api/agents/register", map[string]string{
		"email":    "bad-email",
		"password": "short",
	}, nil)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errs := resp["errors"].(map[string]interface{})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
	mockSvc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAgentRegister_EmailTaken(t *testing.T) {
	mockSvc := new(MockAgentService)
	mockSvc.On("Register", mock.Anything, "Maria", "maria@example.com", "", "correct-horse").
		Return(nil, services.ErrEmailTaken)

	r := setupAgentRouter(mockSvc, testHandlerConfig())
	w := postJSON(t, r, "/api/agents/register", map[string]string{
		"name":     "Maria",
		"email":    "maria@example.com",
		"password": "correct-horse",
	}, nil)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	errs := resp["errors"].(map[string]interface{})
	assert.Contains(t, errs, "email")
}

func TestAgentLogin_SuccessAndAlias(t *testing.T) {
	mockSvc := new(MockAgentService)
	mockSvc.On("Authenticate", mock.Anything, "maria@example.com", "correct-horse").
		Return(&models.Agent{ID: 5, Email: "maria@example.com"}, nil).Twice()

	r := setupAgentRouter(mockSvc, testHandlerConfig())
	payload := map[string]string{"email": "maria@example.com", "password": "correct-horse"}

	for _, path := range []string{"/api/agents/login", "/api/auth/login"} {
		w := postJSON(t, r, path, payload, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp["data"].(map[string]interface{})
		assert.NotEmpty(t, data["token"], path)
	}
	mockSvc.AssertExpectations(t)
}

func TestAgentLogin_InvalidCredentials(t *testing.T) {
	mockSvc := new(MockAgentService)
	mockSvc.On("Authenticate", mock.Anything, "maria@example.com", "wrong").
		Return(nil, services.ErrInvalidCredentials)

	r := setupAgentRouter(mockSvc, testHandlerConfig())
	w := postJSON(t, r, "/api/agents/login", map[string]string{
		"email":    "maria@example.com",
		"password": "wrong",
	}, nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid email or password", resp["message"])
}

func TestAgentMe(t *testing.T) {
	mockSvc := new(MockAgentService)
	mockSvc.On("FindByID", mock.Anything, int64(5)).
		Return(&models.Agent{ID: 5, Email: "maria@example.com"}, nil)

	cfg := testHandlerConfig()
	r := setupAgentRouter(mockSvc, cfg)

	token, err := auth.GenerateJWT(5, true, false, cfg.JwtSecret, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/agents/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "maria@example.com", data["email"])
}

func TestAgentMe_Unauthenticated(t *testing.T) {
	mockSvc := new(MockAgentService)
	r := setupAgentRouter(mockSvc, testHandlerConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/agents/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ianjohndal5/Rental/internal/api/middleware"
	"github.com/ianjohndal5/Rental/internal/auth"
	"github.com/ianjohndal5/Rental/internal/config"
	"github.com/ianjohndal5/Rental/internal/models"
	"github.com/ianjohndal5/Rental/internal/services"
)

var agentEmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AgentHandler handles agent registration, login and profile endpoints.
type AgentHandler struct {
	agentService services.IAgentService
	cfg          *config.Config
}

// NewAgentHandler creates a new AgentHandler.
func NewAgentHandler(agentService services.IAgentService, cfg *config.Config) *AgentHandler {
	return &AgentHandler{agentService: agentService, cfg: cfg}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/agents/register
func (h *AgentHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  gin.H{"body": []string{"The request body must be valid JSON."}},
		})
		return
	}

	errs := models.ValidationErrors{}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" {
		errs.Add("name", "The name field is required.")
	}
	if req.Email == "" {
		errs.Add("email", "The email field is required.")
	} else if !agentEmailPattern.MatchString(req.Email) {
		errs.Add("email", "The email field must be a valid email address.")
	}
	if len(req.Password) < 8 {
		errs.Add("password", "The password field must be at least 8 characters.")
	}
	if errs.Any() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	agent, err := h.agentService.Register(c.Request.Context(), req.Name, req.Email, strings.TrimSpace(req.Phone), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success": false,
				"message": "Validation failed",
				"errors":  gin.H{"email": []string{"The email has already been taken."}},
			})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to register agent",
		})
		return
	}

	token, err := auth.GenerateJWT(agent.ID, true, agent.IsAdmin, h.cfg.JwtSecret, h.cfg.JwtTTL)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to register agent",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Agent registered successfully",
		"data": gin.H{
			"agent": agent,
			"token": token,
		},
	})
}

// Login handles POST /api/agents/login (also aliased at /api/auth/login).
func (h *AgentHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  gin.H{"body": []string{"The request body must be valid JSON."}},
		})
		return
	}

	agent, err := h.agentService.Authenticate(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid email or password",
			})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to log in",
		})
		return
	}

	token, err := auth.GenerateJWT(agent.ID, true, agent.IsAdmin, h.cfg.JwtSecret, h.cfg.JwtTTL)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to log in",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"agent": agent,
			"token": token,
		},
	})
}

// Me handles GET /api/agents/me (requires authentication).
func (h *AgentHandler) Me(c *gin.Context) {
	agentID := c.GetInt64(middleware.ContextKeyAgentID)

	agent, err := h.agentService.FindByID(c.Request.Context(), agentID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Agent not found",
			})
		} else {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to retrieve agent",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    agent,
	})
}

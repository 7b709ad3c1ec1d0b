package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ianjohndal5/Rental/internal/auth"
)

const (
	// ContextKeyAgentID holds the key for the agent ID in Gin context.
	ContextKeyAgentID = "agentID"
	// ContextKeyIsAgent holds the key for agent status in Gin context.
	ContextKeyIsAgent = "isAgent"
	// ContextKeyIsAdmin holds the key for admin status in Gin context.
	ContextKeyIsAdmin = "isAdmin"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware creates a Gin middleware for JWT authentication. Requests
// without a valid token are rejected with 401.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header with Bearer token required",
			})
			return
		}

		claims, err := auth.ValidateJWT(tokenString, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(ContextKeyAgentID, claims.AgentID)
		c.Set(ContextKeyIsAgent, claims.IsAgent)
		c.Set(ContextKeyIsAdmin, claims.IsAdmin)

		c.Next()
	}
}

// AgentMiddleware guards the property write endpoints. A missing, invalid or
// non-agent token gets the fixed 403 envelope; there is no 401 on these
// routes.
func AgentMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		reject := func() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Unauthorized. Agent authentication required.",
			})
		}

		tokenString, ok := bearerToken(c)
		if !ok {
			reject()
			return
		}

		claims, err := auth.ValidateJWT(tokenString, jwtSecret)
		if err != nil || !claims.IsAgent {
			reject()
			return
		}

		c.Set(ContextKeyAgentID, claims.AgentID)
		c.Set(ContextKeyIsAgent, claims.IsAgent)
		c.Set(ContextKeyIsAdmin, claims.IsAdmin)

		c.Next()
	}
}

package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const contextKeyUserID = "user_id"

// UserIDFromContext returns the current user ID set by RequireToken.
// Empty if not set.
func UserIDFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return ""
	}
	id, ok := v.(string)
	if !ok {
		return ""
	}
	return id
}

// RequireToken returns a middleware that checks for a valid
// "Authorization: Bearer <token>" header and sets the current user ID in
// context. Missing header, wrong scheme and failed verification all respond
// with the same 401.
func RequireToken(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication Failed"})
			return
		}
		userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication Failed"})
			return
		}
		c.Set(contextKeyUserID, userID)
		c.Next()
	}
}

// ObjectIDConfig configures ValidateObjectID with the name of the path
// parameter to check.
type ObjectIDConfig struct {
	ParamName string
}

// ValidateObjectID returns a middleware that rejects requests whose path
// parameter is not a well-formed store object id. This runs before any
// store call, so a malformed id is a 400, never a 404.
func ValidateObjectID(cfg ObjectIDConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param(cfg.ParamName)
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid " + cfg.ParamName + " format"})
			return
		}
		c.Next()
	}
}

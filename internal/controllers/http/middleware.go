package http

import (
	"net/http"
	"strings"

	"storefront-service/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const identityKey = "identity"

// RequestID tags every request with an id for log correlation, honoring one
// supplied by the caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// AuthRequired resolves the bearer token through the auth collaborator and
// stores the caller identity on the context.
func AuthRequired(verifier infra.AuthVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access denied, no token provided"})
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not verify credentials"})
			return
		}
		if id == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(identityKey, *id)
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentIdentity(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied, admin only"})
			return
		}
		c.Next()
	}
}

func currentIdentity(c *gin.Context) infra.Identity {
	v, _ := c.Get(identityKey)
	id, _ := v.(infra.Identity)
	return id
}

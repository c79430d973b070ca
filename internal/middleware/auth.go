package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskforge/api/internal/auth"
	"github.com/taskforge/api/internal/constants"
	apierrors "github.com/taskforge/api/internal/errors"
	"github.com/taskforge/api/internal/models"
)

// RequireAuth resolves the bearer token into a verified principal and
// binds the user id into the request context. Requests failing any step
// are rejected before reaching a handler.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "Missing authorization header")
			c.Abort()
			return
		}

		raw, err := auth.ExtractBearerToken(header)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			apierrors.Unauthorized(c, "Invalid token subject")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the authenticated user ID from context.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return userID, true
}

// GetMemberRole retrieves the caller's resolved role, stored by one of the
// resource access middlewares.
func GetMemberRole(c *gin.Context) (models.MemberRole, bool) {
	value, exists := c.Get(constants.ContextKeyMemberRole)
	if !exists {
		return "", false
	}
	role, ok := value.(models.MemberRole)
	if !ok {
		return "", false
	}
	return role, true
}

package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskforge/api/internal/authz"
	"github.com/taskforge/api/internal/constants"
	apierrors "github.com/taskforge/api/internal/errors"
)

// RequireOrganizationAccess checks the caller's membership in the
// organization named by the :id route parameter. Non-members get 404 so
// organization existence never leaks.
func RequireOrganizationAccess(engine *authz.Engine) gin.HandlerFunc {
	return requireAccess(engine, authz.KindOrganization, "Organization not found")
}

// RequireOrganizationMember checks membership in the organization named
// by the :id route parameter. Unlike RequireOrganizationAccess it answers
// 403 when the organization exists but the caller holds no membership;
// only a missing or inactive organization gets 404.
func RequireOrganizationMember(engine *authz.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			apierrors.BadRequest(c, "Invalid resource ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		role, err := engine.AuthorizeMember(userID, authz.KindOrganization, id)
		if err != nil {
			switch {
			case errors.Is(err, authz.ErrNotMember):
				apierrors.Forbidden(c, "You are not a member of this organization")
			case errors.Is(err, authz.ErrNotFound):
				apierrors.NotFound(c, "Organization not found")
			default:
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyMemberRole, role)
		c.Next()
	}
}

// RequireProjectAccess resolves the project's owning organization and
// checks membership there.
func RequireProjectAccess(engine *authz.Engine) gin.HandlerFunc {
	return requireAccess(engine, authz.KindProject, "Project not found")
}

// RequireTaskAccess resolves task → project → organization and checks
// membership there.
func RequireTaskAccess(engine *authz.Engine) gin.HandlerFunc {
	return requireAccess(engine, authz.KindTask, "Task not found")
}

func requireAccess(engine *authz.Engine, kind authz.ResourceKind, notFoundMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			apierrors.BadRequest(c, "Invalid resource ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		role, err := engine.Authorize(userID, kind, id)
		if err != nil {
			if errors.Is(err, authz.ErrNotFound) {
				apierrors.NotFound(c, notFoundMessage)
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyMemberRole, role)
		c.Next()
	}
}

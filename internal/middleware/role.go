package middleware

import (
	"localwear-be/internal/apperror"
	"localwear-be/internal/auth"

	"github.com/gin-gonic/gin"
)

// RequireRoles aborts with 401 when no principal is attached and 403 when its
// role is not in roles.
func RequireRoles(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var principal *auth.Principal
		if p, ok := auth.PrincipalFrom(c.Request.Context()); ok {
			principal = &p
		}

		if err := auth.Authorize(principal, roles...); err != nil {
			c.AbortWithStatusJSON(apperror.HTTPStatus(err), gin.H{"error": apperror.PublicMessage(err)})
			return
		}
		c.Next()
	}
}

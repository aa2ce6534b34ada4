package middleware

import (
	"github.com/financas-app/financas_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// authUserKey is the key used to store the authenticated user in the
// request context.
const authUserKey = contextKey("authUser")

// GetAuthUserFromContext retrieves the authenticated user from the Gin
// context. It returns the user and a boolean indicating if it was found.
func GetAuthUserFromContext(c *gin.Context) (domain.AuthUser, bool) {
	val := c.Request.Context().Value(authUserKey)
	if val == nil {
		return domain.AuthUser{}, false
	}
	user, ok := val.(domain.AuthUser)
	return user, ok
}

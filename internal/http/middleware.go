package httpapi

import (
	"net/http"
	"strings"

	"devpulse/internal/models"
	"devpulse/internal/service"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "current_user"

// RequireAuth authenticates the bearer session token and stores the user on
// the request context.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		u, err := h.services.Auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			h.writeSerErr(c, err)
			c.Abort()
			return
		}
		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u == nil || !u.IsAdmin {
			respondError(c, http.StatusForbidden, string(service.ErrorCodeForbidden), "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// canAccessUser gates /api/users/:id/* resources to the owner or an admin.
func canAccessUser(c *gin.Context, userID string) bool {
	u := currentUser(c)
	if u == nil {
		return false
	}
	return u.ID == userID || u.IsAdmin
}

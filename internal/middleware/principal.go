package middleware

import (
	"context"
	"net/http"

	"go-formacao/internal/identity"
	"go-formacao/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// PrincipalSource is a local interface so this package does not depend on
// the user package. The user service implements it.
type PrincipalSource interface {
	LoadPrincipal(ctx context.Context, userID string) (*identity.Principal, error)
}

// LoadPrincipal turns the token's user_id into a fully loaded Principal.
// The DB is the source of truth for roles and status, not the token, so
// deactivating a user locks them out immediately.
func LoadPrincipal(src PrincipalSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated", nil)
			c.Abort()
			return
		}

		p, err := src.LoadPrincipal(c.Request.Context(), userID)
		if err != nil || p == nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not found", nil)
			c.Abort()
			return
		}

		if p.Status != "active" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User is inactive", nil)
			c.Abort()
			return
		}

		c.Set(principalKey, p)
		c.Set("user_id_validated", p.ID)
		c.Next()
	}
}

// GetPrincipal fetches the loaded principal from the gin context.
func GetPrincipal(c *gin.Context) (*identity.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*identity.Principal)
	return p, ok
}

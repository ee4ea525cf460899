package tenant

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the superadmin tenant API on the authenticated
// group; the slug lookup goes on the public group for the login screen.
func RegisterRoutes(r *gin.RouterGroup, public *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	public.GET("/tenants/by-slug/:slug", handler.GetBySlug)

	tenants := r.Group("/tenants")
	{
		tenants.GET("", rbac.Authorize(rbacService, "tenants", rbac.ActionRead), handler.GetAll)
		tenants.GET("/:id", rbac.Authorize(rbacService, "tenants", rbac.ActionRead), handler.GetById)
		tenants.GET("/:id/stats", rbac.Authorize(rbacService, "tenants", rbac.ActionRead), handler.Stats)
		tenants.POST("", rbac.Authorize(rbacService, "tenants", rbac.ActionWrite), handler.Create)
		tenants.PUT("/:id", rbac.Authorize(rbacService, "tenants", rbac.ActionWrite), handler.Update)
		tenants.DELETE("/:id", rbac.Authorize(rbacService, "tenants", rbac.ActionDelete), handler.Delete)
	}
}

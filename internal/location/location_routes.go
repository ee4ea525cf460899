package location

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	locations := r.Group("/locations")
	{
		locations.GET("", rbac.Authorize(rbacService, "locations", rbac.ActionRead), handler.GetAll)
		locations.GET("/:id", rbac.Authorize(rbacService, "locations", rbac.ActionRead), handler.GetById)
		locations.POST("", rbac.Authorize(rbacService, "locations", rbac.ActionWrite), handler.Create)
		locations.PUT("/:id", rbac.Authorize(rbacService, "locations", rbac.ActionWrite), handler.Update)
		locations.DELETE("/:id", rbac.Authorize(rbacService, "locations", rbac.ActionDelete), handler.Delete)
	}
}

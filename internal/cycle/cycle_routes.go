package cycle

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	cycles := r.Group("/cycles")
	{
		cycles.GET("", rbac.Authorize(rbacService, "cycles", rbac.ActionRead), handler.GetAll)
		cycles.GET("/:id", rbac.Authorize(rbacService, "cycles", rbac.ActionRead), handler.GetById)
		cycles.POST("", rbac.Authorize(rbacService, "cycles", rbac.ActionWrite), handler.Create)
		cycles.PUT("/:id", rbac.Authorize(rbacService, "cycles", rbac.ActionWrite), handler.Update)
		cycles.DELETE("/:id", rbac.Authorize(rbacService, "cycles", rbac.ActionDelete), handler.Delete)
	}
}

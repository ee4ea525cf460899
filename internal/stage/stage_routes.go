package stage

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	stages := r.Group("/stages")
	{
		stages.GET("", rbac.Authorize(rbacService, "stages", rbac.ActionRead), handler.GetAll)
		stages.GET("/:id", rbac.Authorize(rbacService, "stages", rbac.ActionRead), handler.GetById)
		stages.POST("", rbac.Authorize(rbacService, "stages", rbac.ActionWrite), handler.Create)
		stages.PUT("/:id", rbac.Authorize(rbacService, "stages", rbac.ActionWrite), handler.Update)
		stages.DELETE("/:id", rbac.Authorize(rbacService, "stages", rbac.ActionDelete), handler.Delete)
	}
}

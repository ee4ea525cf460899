package journey

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	journeys := r.Group("/journeys")
	{
		journeys.GET("", rbac.Authorize(rbacService, "journeys", rbac.ActionRead), handler.GetAll)
		journeys.GET("/stats", rbac.Authorize(rbacService, "journeys", rbac.ActionRead), handler.StatsByStage)
		journeys.POST("", rbac.Authorize(rbacService, "journeys", rbac.ActionWrite), handler.Create)
		journeys.DELETE("/:id", rbac.Authorize(rbacService, "journeys", rbac.ActionDelete), handler.Delete)
	}

	r.GET("/users/:id/journeys", rbac.Authorize(rbacService, "journeys", rbac.ActionRead), handler.GetByUser)
}

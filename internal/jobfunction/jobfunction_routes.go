package jobfunction

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	functions := r.Group("/functions")
	{
		functions.GET("", rbac.Authorize(rbacService, "functions", rbac.ActionRead), handler.GetAll)
		functions.GET("/:id", rbac.Authorize(rbacService, "functions", rbac.ActionRead), handler.GetById)
		functions.POST("", rbac.Authorize(rbacService, "functions", rbac.ActionWrite), handler.Create)
		functions.PUT("/:id", rbac.Authorize(rbacService, "functions", rbac.ActionWrite), handler.Update)
		functions.DELETE("/:id", rbac.Authorize(rbacService, "functions", rbac.ActionDelete), handler.Delete)
	}
}

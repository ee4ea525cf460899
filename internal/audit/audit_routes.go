package audit

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	logs := r.Group("/audit")
	{
		logs.GET("", rbac.Authorize(rbacService, "audit", rbac.ActionRead), handler.GetAll)
		logs.GET("/actions", rbac.Authorize(rbacService, "audit", rbac.ActionRead), handler.Actions)
		logs.GET("/resource-types", rbac.Authorize(rbacService, "audit", rbac.ActionRead), handler.ResourceTypes)
		logs.GET("/summary", rbac.Authorize(rbacService, "audit", rbac.ActionRead), handler.Summary)
		logs.GET("/export", rbac.Authorize(rbacService, "audit", rbac.ActionRead), handler.ExportCSV)
		logs.GET("/users/:id/activity", rbac.Authorize(rbacService, "audit", rbac.ActionRead), handler.UserActivity)
	}
}

package stats

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	statsGroup := r.Group("/stats")
	{
		read := rbac.Authorize(rbacService, "stats", rbac.ActionRead)

		statsGroup.GET("/dashboard", read, handler.Dashboard)
	}
}

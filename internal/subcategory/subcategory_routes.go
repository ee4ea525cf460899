package subcategory

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	subcategories := r.Group("/subcategories")
	{
		subcategories.GET("", rbac.Authorize(rbacService, "subcategories", rbac.ActionRead), handler.GetAll)
		subcategories.GET("/:id", rbac.Authorize(rbacService, "subcategories", rbac.ActionRead), handler.GetById)
		subcategories.POST("", rbac.Authorize(rbacService, "subcategories", rbac.ActionWrite), handler.Create)
		subcategories.PUT("/:id", rbac.Authorize(rbacService, "subcategories", rbac.ActionWrite), handler.Update)
		subcategories.DELETE("/:id", rbac.Authorize(rbacService, "subcategories", rbac.ActionDelete), handler.Delete)
	}
}

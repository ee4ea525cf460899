package user

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	users := r.Group("/users")
	{
		users.GET("", rbac.Authorize(rbacService, "users", rbac.ActionRead), handler.GetAll)
		users.GET("/formadores", rbac.Authorize(rbacService, "users", rbac.ActionRead), handler.GetFormadores)
		users.GET("/:id", handler.GetById)
		users.POST("", rbac.Authorize(rbacService, "users", rbac.ActionWrite), handler.Create)
		// self-edits are allowed, the service enforces the field rules
		users.PUT("/:id", handler.Update)
		users.DELETE("/:id", rbac.Authorize(rbacService, "users", rbac.ActionDelete), handler.Delete)
		users.POST("/:id/photo", handler.UploadPhoto)
	}
}

package document

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	documents := r.Group("/documents")
	{
		documents.GET("", rbac.Authorize(rbacService, "documents", rbac.ActionRead), handler.GetAll)
		documents.GET("/:id", rbac.Authorize(rbacService, "documents", rbac.ActionRead), handler.GetById)
		documents.GET("/:id/download", rbac.Authorize(rbacService, "documents", rbac.ActionRead), handler.Download)
		documents.POST("", rbac.Authorize(rbacService, "documents", rbac.ActionWrite), handler.Create)
		documents.POST("/:id/upload", rbac.Authorize(rbacService, "documents", rbac.ActionWrite), handler.Upload)
		documents.PUT("/:id", rbac.Authorize(rbacService, "documents", rbac.ActionWrite), handler.Update)
		documents.DELETE("/:id", rbac.Authorize(rbacService, "documents", rbac.ActionDelete), handler.Delete)
	}
}

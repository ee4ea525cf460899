package certificate

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	certificates := r.Group("/certificates")
	{
		read := rbac.Authorize(rbacService, "certificates", rbac.ActionRead)
		write := rbac.Authorize(rbacService, "certificates", rbac.ActionWrite)

		certificates.GET("", read, handler.GetAll)
		certificates.GET("/:id", read, handler.GetById)
		certificates.POST("", write, handler.Create)
		certificates.PUT("/:id", write, handler.Update)
		certificates.DELETE("/:id", write, handler.Delete)
	}

	r.GET("/users/:id/certificates", rbac.Authorize(rbacService, "certificates", rbac.ActionRead), handler.GetByUser)
}

package acompanhamento

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	acompanhamentos := r.Group("/acompanhamentos")
	{
		read := rbac.Authorize(rbacService, "acompanhamentos", rbac.ActionRead)
		write := rbac.Authorize(rbacService, "acompanhamentos", rbac.ActionWrite)

		acompanhamentos.GET("", read, handler.GetAll)
		acompanhamentos.GET("/stats", read, handler.StatsByStage)
		acompanhamentos.GET("/my-formandos", read, handler.MyFormandos)
		acompanhamentos.GET("/export", read, handler.ExportListPDF)
		acompanhamentos.GET("/:id", read, handler.GetById)
		acompanhamentos.GET("/:id/export", read, handler.ExportPDF)
		acompanhamentos.POST("", write, handler.Create)
		acompanhamentos.PUT("/:id", write, handler.Update)
		acompanhamentos.DELETE("/:id", write, handler.Delete)
	}
}

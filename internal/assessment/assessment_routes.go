package assessment

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	assessments := r.Group("/psychological-assessments")
	{
		read := rbac.Authorize(rbacService, "assessments", rbac.ActionRead)
		write := rbac.Authorize(rbacService, "assessments", rbac.ActionWrite)
		del := rbac.Authorize(rbacService, "assessments", rbac.ActionDelete)

		assessments.GET("", read, handler.GetAll)
		assessments.GET("/indicators", read, handler.GetIndicators)
		assessments.GET("/annual-report", read, handler.AnnualReportPDF)
		assessments.GET("/readiness/:stageId", read, handler.ReadinessReport)
		assessments.GET("/:id", read, handler.GetById)
		assessments.GET("/:id/export", read, handler.ExportPDF)

		assessments.POST("", write, handler.Create)
		assessments.PUT("/:id", write, handler.Update)
		assessments.POST("/indicators", write, handler.CreateIndicator)
		assessments.PUT("/indicators/:indicatorId", write, handler.UpdateIndicator)
		assessments.DELETE("/indicators/:indicatorId", write, handler.DeleteIndicator)

		assessments.DELETE("/:id", del, handler.Delete)
	}
}

package participation

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	participations := r.Group("/participations")
	{
		participations.GET("", rbac.Authorize(rbacService, "participations", rbac.ActionRead), handler.GetAll)
		participations.GET("/stats", rbac.Authorize(rbacService, "participations", rbac.ActionRead), handler.Stats)
		participations.GET("/:id", rbac.Authorize(rbacService, "participations", rbac.ActionRead), handler.GetById)
		participations.POST("", rbac.Authorize(rbacService, "participations", rbac.ActionWrite), handler.Enroll)
		participations.PUT("/:id", rbac.Authorize(rbacService, "participations", rbac.ActionWrite), handler.Update)
		participations.POST("/:id/start", rbac.Authorize(rbacService, "participations", rbac.ActionWrite), handler.Start)
		participations.POST("/:id/approve", rbac.Authorize(rbacService, "participations", rbac.ActionWrite), handler.Approve)
		participations.POST("/:id/reprove", rbac.Authorize(rbacService, "participations", rbac.ActionWrite), handler.Reprove)
		participations.POST("/:id/withdraw", rbac.Authorize(rbacService, "participations", rbac.ActionWrite), handler.Withdraw)
		participations.POST("/:id/transfer", rbac.Authorize(rbacService, "participations", rbac.ActionWrite), handler.Transfer)
		participations.DELETE("/:id", rbac.Authorize(rbacService, "participations", rbac.ActionDelete), handler.Delete)
	}

	r.GET("/users/:id/participations", rbac.Authorize(rbacService, "participations", rbac.ActionRead), handler.GetByUser)
	r.GET("/users/:id/journey", rbac.Authorize(rbacService, "participations", rbac.ActionRead), handler.FullJourney)
}

package video

import (
	"go-formacao/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	videos := r.Group("/videos")
	{
		read := rbac.Authorize(rbacService, "videos", rbac.ActionRead)
		write := rbac.Authorize(rbacService, "videos", rbac.ActionWrite)

		videos.GET("", read, handler.GetAll)
		videos.GET("/:id", read, handler.GetById)
		videos.GET("/:id/access", read, handler.AccessStatus)
		videos.POST("/:id/progress", read, handler.SaveProgress)
		videos.GET("/:id/comments", read, handler.GetComments)
		videos.POST("/:id/comments", read, handler.AddComment)
		videos.DELETE("/:id/comments/:commentId", read, handler.DeleteComment)
		videos.POST("/:id/evaluation", read, handler.Evaluate)
		videos.GET("/:id/attachments", read, handler.GetAttachments)

		videos.POST("", write, handler.Create)
		videos.POST("/:id/upload", write, handler.Upload)
		videos.POST("/:id/attachments", write, handler.AddAttachment)
		videos.DELETE("/:id/attachments/:attachmentId", write, handler.DeleteAttachment)
		videos.PUT("/:id", write, handler.Update)
		videos.DELETE("/:id", rbac.Authorize(rbacService, "videos", rbac.ActionDelete), handler.Delete)
	}
}

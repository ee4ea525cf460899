package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the credential endpoints on the public group and
// the profile lookup on the authenticated one. rateLimit guards the
// public endpoints against brute force.
func RegisterRoutes(authed *gin.RouterGroup, public *gin.RouterGroup, handler *Handler, rateLimit gin.HandlerFunc) {
	a := public.Group("/auth")
	if rateLimit != nil {
		a.Use(rateLimit)
	}
	{
		a.POST("/login", handler.Login)
		a.POST("/register", handler.Register)
		a.POST("/refresh", handler.Refresh)
		a.POST("/forgot-password", handler.ForgotPassword)
		a.POST("/reset-password", handler.ResetPassword)
	}

	authed.GET("/auth/me", handler.Me)
}

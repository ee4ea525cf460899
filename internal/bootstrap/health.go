package bootstrap

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// RegisterHealth exposes /health. The endpoint reports 503 when the
// database is unreachable; redis is reported but never degrades the
// status since the app runs without it.
func RegisterHealth(router *gin.Engine, db *gorm.DB, rdb *redis.Client) {
	router.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()

		status := http.StatusOK
		dbStatus := "ok"
		if sqlDB, err := db.DB(); err != nil {
			dbStatus = "error"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbStatus = "error"
		}
		if dbStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		redisStatus := "disabled"
		if rdb != nil {
			redisStatus = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				redisStatus = "error"
			}
		}

		overall := "healthy"
		if status != http.StatusOK {
			overall = "unhealthy"
		}
		c.JSON(status, gin.H{
			"status": overall,
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}

package app

import (
	"go-formacao/internal/config"
	"go-formacao/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp connects the infrastructure and mounts every module on the
// router. The returned handles feed the health endpoint and shutdown.
func BuildApp(router *gin.Engine, cfg config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return nil, nil, err
	}

	// the stats cache degrades to direct queries without redis, so a
	// failed connection is logged, not fatal
	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		zap.L().Warn("redis unavailable, caching disabled", zap.Error(err))
		rdb = nil
	}

	if err := migrate(db); err != nil {
		return nil, nil, err
	}

	if err := registerModules(router, db, rdb, cfg); err != nil {
		return nil, nil, err
	}

	return db, rdb, nil
}

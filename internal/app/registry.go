package app

import (
	"context"
	"time"

	"go-formacao/internal/acompanhamento"
	"go-formacao/internal/assessment"
	"go-formacao/internal/audit"
	"go-formacao/internal/auth"
	"go-formacao/internal/certificate"
	"go-formacao/internal/config"
	"go-formacao/internal/cycle"
	"go-formacao/internal/document"
	"go-formacao/internal/jobfunction"
	"go-formacao/internal/journey"
	"go-formacao/internal/location"
	"go-formacao/internal/mail"
	"go-formacao/internal/middleware"
	"go-formacao/internal/participation"
	"go-formacao/internal/rbac"
	"go-formacao/internal/stage"
	"go-formacao/internal/stats"
	"go-formacao/internal/storage"
	"go-formacao/internal/subcategory"
	"go-formacao/internal/tenant"
	"go-formacao/internal/user"
	"go-formacao/internal/video"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func buildStorage(cfg config.Config) (storage.Storage, error) {
	if cfg.StorageDriver == "oss" {
		return storage.NewOSS(cfg.OSSEndpoint, cfg.OSSAccessKeyID, cfg.OSSAccessKeySecret, cfg.OSSBucket)
	}
	return storage.NewLocal(cfg.UploadDir)
}

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	cfg config.Config,
) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	store, err := buildStorage(cfg)
	if err != nil {
		return err
	}
	mailer := mail.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)

	// --- Repositories ---
	auditRepo := audit.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	tenantRepo := tenant.NewRepository(gormDB)
	locationRepo := location.NewRepository(gormDB)
	functionRepo := jobfunction.NewRepository(gormDB)
	stageRepo := stage.NewRepository(gormDB)
	cycleRepo := cycle.NewRepository(gormDB)
	participationRepo := participation.NewRepository(gormDB)
	journeyRepo := journey.NewRepository(gormDB)
	subcategoryRepo := subcategory.NewRepository(gormDB)
	documentRepo := document.NewRepository(gormDB)
	videoRepo := video.NewRepository(gormDB)
	certificateRepo := certificate.NewRepository(gormDB)
	acompanhamentoRepo := acompanhamento.NewRepository(gormDB)
	assessmentRepo := assessment.NewRepository(gormDB)
	statsRepo := stats.NewRepository(gormDB)

	// --- RBAC core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer)

	// --- Services ---
	auditService := audit.NewService(auditRepo)
	journeyService := journey.NewService(journeyRepo, auditService)
	userService := user.NewService(userRepo, journeyService, auditService)
	authService := auth.NewService(authRepo, mailer, auditService, cfg)
	tenantService := tenant.NewService(tenantRepo, userService, auditService)
	locationService := location.NewService(locationRepo, auditService)
	functionService := jobfunction.NewService(functionRepo, auditService)
	stageService := stage.NewService(stageRepo, auditService)
	cycleService := cycle.NewService(cycleRepo, auditService)
	participationService := participation.NewService(sqlDB, participationRepo, auditService)
	subcategoryService := subcategory.NewService(subcategoryRepo, auditService)
	documentService := document.NewService(documentRepo, auditService)
	videoService := video.NewService(videoRepo, auditService)
	certificateService := certificate.NewService(certificateRepo, auditService)
	acompanhamentoService := acompanhamento.NewService(acompanhamentoRepo, auditService)
	assessmentService := assessment.NewService(assessmentRepo, auditService)
	statsService := stats.NewService(statsRepo, rdb, time.Duration(cfg.StatsCacheTTLSeconds)*time.Second)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService, store, cfg.MaxFileSizeBytes)
	tenantHandler := tenant.NewHandler(tenantService)
	locationHandler := location.NewHandler(locationService)
	functionHandler := jobfunction.NewHandler(functionService)
	stageHandler := stage.NewHandler(stageService)
	cycleHandler := cycle.NewHandler(cycleService)
	participationHandler := participation.NewHandler(participationService)
	journeyHandler := journey.NewHandler(journeyService)
	subcategoryHandler := subcategory.NewHandler(subcategoryService)
	documentHandler := document.NewHandler(documentService, store, cfg.MaxFileSizeBytes)
	videoHandler := video.NewHandler(videoService, store, cfg.MaxFileSizeBytes)
	certificateHandler := certificate.NewHandler(certificateService, store, cfg.MaxFileSizeBytes)
	acompanhamentoHandler := acompanhamento.NewHandler(acompanhamentoService)
	assessmentHandler := assessment.NewHandler(assessmentService)
	auditHandler := audit.NewHandler(auditService)
	statsHandler := stats.NewHandler(statsService)

	// --- Middleware ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.RateLimitByIP(
		middleware.NewKeyedLimiter(cfg.RateLimitRequests, cfg.RateLimitWindowSecs),
	))
	authRateLimit := middleware.RateLimitByIP(
		middleware.NewKeyedLimiter(cfg.AuthRateLimitReqs, cfg.AuthRateWindowSecs),
	)

	public := router.Group("/api")
	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(), middleware.LoadPrincipal(userService))

	// --- Routes ---
	auth.RegisterRoutes(authed, public, authHandler, authRateLimit)
	tenant.RegisterRoutes(authed, public, tenantHandler, rbacService)
	user.RegisterRoutes(authed, userHandler, rbacService)
	location.RegisterRoutes(authed, locationHandler, rbacService)
	jobfunction.RegisterRoutes(authed, functionHandler, rbacService)
	stage.RegisterRoutes(authed, stageHandler, rbacService)
	cycle.RegisterRoutes(authed, cycleHandler, rbacService)
	participation.RegisterRoutes(authed, participationHandler, rbacService)
	journey.RegisterRoutes(authed, journeyHandler, rbacService)
	subcategory.RegisterRoutes(authed, subcategoryHandler, rbacService)
	document.RegisterRoutes(authed, documentHandler, rbacService)
	video.RegisterRoutes(authed, videoHandler, rbacService)
	certificate.RegisterRoutes(authed, certificateHandler, rbacService)
	acompanhamento.RegisterRoutes(authed, acompanhamentoHandler, rbacService)
	assessment.RegisterRoutes(authed, assessmentHandler, rbacService)
	audit.RegisterRoutes(authed, auditHandler, rbacService)
	stats.RegisterRoutes(authed, statsHandler, rbacService)
	storage.RegisterRoutes(authed, store)

	if cfg.SuperadminEmail != "" && cfg.SuperadminPassword != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := userService.EnsureSuperadmin(ctx, cfg.SuperadminEmail, cfg.SuperadminPassword); err != nil {
			return err
		}
	}

	return nil
}

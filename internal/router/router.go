package router

import (
	"time"

	"gamehouse/internal/config"
	"gamehouse/internal/handler"
	"gamehouse/internal/infra"
	"gamehouse/internal/middleware"
	"gamehouse/internal/model"
	"gamehouse/internal/repository"
	"gamehouse/internal/service"
	"gamehouse/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, botCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	operatorRepo := repository.NewOperatorRepository(db)
	loginSessionRepo := repository.NewLoginSessionRepository(db)
	resetTokenRepo := repository.NewResetTokenRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	backupRepo := repository.NewBackupRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(operatorRepo, loginSessionRepo, resetTokenRepo, dispatcher, cfg)
	customerSvc := service.NewCustomerService(customerRepo)
	catalogSvc := service.NewCatalogService(catalogRepo, categoryRepo, rdb)
	categorySvc := service.NewCategoryService(categoryRepo)
	sessionSvc := service.NewSessionService(sessionRepo, customerRepo, catalogRepo, dispatcher, cfg)
	settingsSvc := service.NewSettingsService(settingRepo)
	activitySvc := service.NewActivityService(activityRepo)
	backupSvc := service.NewBackupService(backupRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, activitySvc)
	operatorsH := handler.NewOperatorsHandler(authSvc, activitySvc)
	customersH := handler.NewCustomersHandler(customerSvc, activitySvc)
	servicesH := handler.NewServicesHandler(catalogSvc, activitySvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc, activitySvc)
	sessionsH := handler.NewSessionsHandler(sessionSvc, activitySvc)
	settingsH := handler.NewSettingsHandler(settingsSvc, activitySvc)
	activityH := handler.NewActivityHandler(activitySvc)
	backupH := handler.NewBackupHandler(backupSvc, activitySvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, botCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/forgot-password", middleware.LoginRateLimiter(), authH.ForgotPassword)
		auth.POST("/reset-password", authH.ResetPassword)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret, loginSessionRepo)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleOperator)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/logout", authH.Logout)

		operators := v1.Group("/operators", adminOnly)
		{
			operators.POST("", operatorsH.Create)
			operators.GET("", operatorsH.List)
			operators.GET("/:id", operatorsH.Get)
			operators.PUT("/:id", operatorsH.Update)
			operators.DELETE("/:id", operatorsH.Deactivate)
			operators.PATCH("/:id/reactivate", operatorsH.Reactivate)
		}

		customers := v1.Group("/customers", anyRole)
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.Get)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Deactivate)
			customers.PATCH("/:id/reactivate", customersH.Reactivate)
		}

		// Catalog — everyone can read, admins write
		v1.GET("/services", anyRole, servicesH.List)
		v1.GET("/services/:id", anyRole, servicesH.Get)
		services := v1.Group("/services", adminOnly)
		{
			services.POST("", servicesH.Create)
			services.PUT("/:id", servicesH.Update)
			services.DELETE("/:id", servicesH.Deactivate)
			services.PATCH("/:id/reactivate", servicesH.Reactivate)
		}

		v1.GET("/categories", anyRole, categoriesH.List)
		v1.GET("/categories/:id", anyRole, categoriesH.Get)
		categories := v1.Group("/categories", adminOnly)
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Deactivate)
		}

		sessions := v1.Group("/sessions", anyRole)
		{
			sessions.POST("", sessionsH.Open)
			sessions.GET("", sessionsH.List)
			sessions.GET("/:id", sessionsH.Get)
			sessions.POST("/:id/services", sessionsH.Attach)
			sessions.DELETE("/:id/services/:serviceId", sessionsH.Detach)
			sessions.POST("/:id/services/:serviceId/pause", sessionsH.Pause)
			sessions.POST("/:id/services/:serviceId/resume", sessionsH.Resume)
			sessions.POST("/:id/complete", sessionsH.Complete)
			sessions.POST("/:id/invoice", sessionsH.SendInvoice)
		}

		settings := v1.Group("/settings", adminOnly)
		{
			settings.GET("", settingsH.List)
			settings.GET("/:key", settingsH.Get)
			settings.PUT("/:key", settingsH.Upsert)
			settings.DELETE("/:key", settingsH.Delete)
		}

		v1.GET("/activity-logs", adminOnly, activityH.List)
		v1.GET("/admin/backup", adminOnly, backupH.Export)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

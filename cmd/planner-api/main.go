package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nvalente/planner-api/api/swagger"
	"github.com/nvalente/planner-api/internal/handler"
	"github.com/nvalente/planner-api/internal/middleware"
	"github.com/nvalente/planner-api/internal/repository"
	"github.com/nvalente/planner-api/internal/service"
	"github.com/nvalente/planner-api/pkg/cache"
	"github.com/nvalente/planner-api/pkg/config"
	"github.com/nvalente/planner-api/pkg/database"
	"github.com/nvalente/planner-api/pkg/kvstore"
	"github.com/nvalente/planner-api/pkg/logger"
	corsmiddleware "github.com/nvalente/planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/nvalente/planner-api/pkg/middleware/requestid"
	"github.com/nvalente/planner-api/pkg/storage"
)

// @title Planner API
// @version 0.1.0
// @description Single-user academic planner backend
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()

	store, err := newStore(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init store", "driver", cfg.Store.Driver, "error", err)
	}
	store = kvstore.Instrument(store, metrics)

	studentRepo := repository.NewStudentRepository(store)
	assignmentRepo := repository.NewAssignmentRepository(store, logr)
	sessionRepo := repository.NewSessionRepository(store, logr)

	authSvc := service.NewAuthService(studentRepo, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	studentSvc := service.NewStudentService(studentRepo, nil, logr)
	plannerSvc := service.NewPlannerService(assignmentRepo, sessionRepo, studentRepo, nil, logr)

	exportFiles, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exportSvc := service.NewExportService(assignmentRepo, sessionRepo, exportFiles, signer,
		service.ExportConfig{APIPrefix: cfg.APIPrefix}, nil, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	assignmentHandler := handler.NewAssignmentHandler(plannerSvc)
	sessionHandler := handler.NewSessionHandler(plannerSvc)
	plannerHandler := handler.NewPlannerHandler(plannerSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		auth := api.Group("/auth")
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)

		api.GET("/exports/:token", exportHandler.Download)

		protected := api.Group("")
		protected.Use(middleware.JWT(authSvc))

		protected.GET("/student", studentHandler.Profile)
		protected.PUT("/student/courses", studentHandler.UpdateCourses)

		protected.GET("/assignments", assignmentHandler.List)
		protected.PUT("/assignments", assignmentHandler.Save)
		protected.DELETE("/assignments/:id", assignmentHandler.Delete)
		protected.POST("/assignments/:id/toggle", assignmentHandler.ToggleCompletion)

		protected.GET("/sessions", sessionHandler.List)
		protected.PUT("/sessions", sessionHandler.Save)
		protected.DELETE("/sessions/:id", sessionHandler.Delete)
		protected.POST("/sessions/:id/toggle", sessionHandler.ToggleAttendance)

		protected.GET("/planner/dashboard", plannerHandler.Dashboard)
		protected.GET("/planner/week", plannerHandler.Week)
		protected.GET("/planner/attendance", plannerHandler.Attendance)
		protected.DELETE("/planner", plannerHandler.Reset)

		protected.POST("/exports", exportHandler.Generate)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func newStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverFile, "":
		return kvstore.NewFileStore(cfg.Store.FilePath), nil
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		return kvstore.NewPostgresStore(db), nil
	case config.StoreDriverRedis:
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return kvstore.NewRedisStore(client, "planner"), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

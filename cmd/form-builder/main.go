package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/form-builder/api/swagger"
	"github.com/noah-isme/form-builder/internal/effects"
	"github.com/noah-isme/form-builder/internal/handler"
	"github.com/noah-isme/form-builder/internal/middleware"
	"github.com/noah-isme/form-builder/internal/service"
	"github.com/noah-isme/form-builder/internal/store"
	"github.com/noah-isme/form-builder/pkg/config"
	"github.com/noah-isme/form-builder/pkg/logger"
	corsmiddleware "github.com/noah-isme/form-builder/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/form-builder/pkg/middleware/requestid"
	"github.com/noah-isme/form-builder/pkg/nav"
	"github.com/noah-isme/form-builder/pkg/platform"
)

// @title Form Builder API
// @version 0.1.0
// @description Dynamic form template builder with a dispatch/effect state container
// @BasePath /
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

	storage, err := platform.FromConfig(cfg.Persistence)
	if err != nil {
		logr.Sugar().Fatalw("failed to init persistence", "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	formSvc := service.NewFormService(validate, logr, cfg.Mock)
	authSvc := service.NewAuthService(storage, validate, logr, service.AuthConfig{
		Secret:     cfg.Session.Secret,
		TTL:        cfg.Session.TTL,
		StorageKey: cfg.Session.StorageKey,
		LoginDelay: cfg.Mock.LoginDelay,
	})

	st := store.New(
		store.WithLogger(logr),
		store.WithActionCounter(metricsSvc.ActionCounter()),
	)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fx := effects.New(st, formSvc, authSvc, nav.NewLog(logr), logr)
	fx.Start(runCtx)
	defer fx.Stop()

	// Restore a persisted session before serving traffic.
	st.Dispatch(store.LoadCurrentUser{Meta: store.NewMeta()})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	timeout := cfg.Renderer.AwaitTimeout
	authHandler := handler.NewAuthHandler(st, authSvc, timeout)
	templateHandler := handler.NewTemplateHandler(st, timeout)
	submissionHandler := handler.NewSubmissionHandler(st, timeout)

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", middleware.Session(authSvc), authHandler.Logout)
	auth.GET("/me", middleware.Session(authSvc), authHandler.Me)

	templates := api.Group("/templates", middleware.Session(authSvc))
	templates.GET("", templateHandler.List)
	templates.GET("/:id", templateHandler.Get)
	templates.POST("", middleware.RequireAdmin(), templateHandler.Create)
	templates.PUT("/:id", middleware.RequireAdmin(), templateHandler.Update)
	templates.DELETE("/:id", middleware.RequireAdmin(), templateHandler.Delete)

	// filling out a form works without a session; a presented token still
	// attributes the submission
	fill := api.Group("/templates", middleware.OptionalSession(authSvc))
	fill.POST("/:id/submissions", submissionHandler.Submit)
	fill.POST("/:id/validate", submissionHandler.Validate)

	templates.GET("/:id/submissions", middleware.RequireAdmin(), submissionHandler.ListByTemplate)
	if cfg.Export.Enabled {
		templates.GET("/:id/submissions/export", middleware.RequireAdmin(), submissionHandler.Export)
	}

	api.GET("/submissions", middleware.Session(authSvc), middleware.RequireAdmin(), submissionHandler.List)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

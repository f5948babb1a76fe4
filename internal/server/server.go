// Package server wires the HTTP API: repositories, handlers, middleware
// and routes.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teampulse/internal/analytics"
	"teampulse/internal/config"
	"teampulse/internal/database"
	"teampulse/internal/handlers"
	"teampulse/internal/middleware"
	"teampulse/internal/repository"
	"teampulse/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Server struct {
	cfg    *config.AppConfig
	db     *database.MongoDB
	router *gin.Engine
}

func New(cfg *config.AppConfig, db *database.MongoDB) (*Server, error) {
	userRepo := repository.NewUserRepository(db.Database)
	companyRepo := repository.NewCompanyRepository(db.Database)
	projectRepo := repository.NewProjectRepository(db.Database)
	taskRepo := repository.NewTaskRepository(db.Database)
	snapshotRepo := repository.NewSnapshotRepository(projectRepo, taskRepo, userRepo)

	engine := analytics.NewEngine(cfg.Thresholds, cfg.RiskPolicy)

	gemini := services.NewGeminiClient(cfg.GeminiModel, cfg.GeminiAPIKey)
	assistant, err := services.NewAssistantService(gemini, projectRepo, taskRepo, userRepo, companyRepo)
	if err != nil {
		return nil, err
	}

	authHandler := handlers.NewAuthHandler(cfg, userRepo)
	companyHandler := handlers.NewCompanyHandler(companyRepo, userRepo)
	projectHandler := handlers.NewProjectHandler(projectRepo, taskRepo, userRepo)
	taskHandler := handlers.NewTaskHandler(taskRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(engine, snapshotRepo, projectRepo)
	assistantHandler := handlers.NewAssistantHandler(assistant, projectRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))

	public := router.Group("/api")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}
	}

	protected := router.Group("/api")
	protected.Use(middleware.Auth(cfg.JWTSecret))
	{
		protected.GET("/auth/me", authHandler.Me)

		company := protected.Group("/company")
		{
			company.GET("", companyHandler.List)
			company.POST("/create", companyHandler.Create)
			company.POST("/join", companyHandler.Join)
			company.GET("/members", companyHandler.Members)
		}

		projects := protected.Group("/projects")
		{
			projects.GET("", projectHandler.List)
			projects.POST("", projectHandler.Create)
			projects.PUT("/:projectId", projectHandler.Update)
			projects.DELETE("/:projectId", projectHandler.Delete)
			projects.GET("/:projectId/members", projectHandler.Members)
			projects.POST("/:projectId/members", projectHandler.AddMember)
			projects.DELETE("/:projectId/members/:memberId", projectHandler.RemoveMember)
			projects.GET("/:projectId/analytics", analyticsHandler.Get)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("", taskHandler.List)
			tasks.POST("", taskHandler.Create)
			tasks.PATCH("", taskHandler.SetCompleted)
			tasks.DELETE("", taskHandler.Delete)
		}

		protected.POST("/assistant", assistantHandler.Chat)
	}

	return &Server{cfg: cfg, db: db, router: router}, nil
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", s.cfg.Port).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

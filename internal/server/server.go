package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/proman-app/proman/internal/api/handlers"
	"github.com/proman-app/proman/internal/api/middleware"
	"github.com/proman-app/proman/internal/config"
	"github.com/proman-app/proman/internal/db"
	"github.com/proman-app/proman/internal/logging"
	"github.com/proman-app/proman/internal/realtime"
	"github.com/proman-app/proman/internal/repository"
	"github.com/proman-app/proman/internal/server/routes"
	"github.com/proman-app/proman/internal/service"

	"github.com/gin-gonic/gin"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	db     *db.Database
	hub    *realtime.Hub
	http   *http.Server
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, database *db.Database, hub *realtime.Hub) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Disable Gin's default logger entirely because we're using our custom logger
	gin.DisableConsoleColor()
	gin.DefaultWriter = io.Discard

	// Create a new engine without default middleware
	router := gin.New()

	return &Server{
		router: router,
		cfg:    cfg,
		db:     database,
		hub:    hub,
	}
}

// Init wires repositories, services, handlers and routes.
func (s *Server) Init() error {
	logger := logging.GetGlobalLogger()

	routes.SetupGlobalMiddleware(s.router, logger)

	// Repositories
	userRepo := repository.NewUserRepository(s.db.DB)
	projectRepo := repository.NewProjectRepository(s.db.DB)
	taskRepo := repository.NewTaskRepository(s.db.DB)
	sessionRepo := repository.NewSessionRepository(s.db.DB)
	landingRepo := repository.NewLandingRepository(s.db.DB)

	// Services
	projectService := service.NewProjectService(projectRepo, taskRepo, userRepo, s.hub)
	taskService := service.NewTaskService(taskRepo, projectRepo, userRepo, s.hub)
	userService := service.NewUserService(userRepo, projectRepo)

	h := &routes.Handlers{
		Auth:     handlers.NewAuthHandler(userRepo, sessionRepo, s.cfg),
		Admin:    handlers.NewAdminHandler(userService),
		Project:  handlers.NewProjectHandler(projectService),
		Task:     handlers.NewTaskHandler(taskService),
		Profile:  handlers.NewProfileHandler(userService),
		Landing:  handlers.NewLandingHandler(landingRepo),
		Health:   handlers.NewHealthHandler(s.db.DB),
		Realtime: handlers.NewRealtimeHandler(s.hub, logger),
	}

	m := &routes.Middleware{
		Auth: middleware.NewAuthMiddleware(sessionRepo),
		Role: middleware.NewRoleMiddleware(),
	}

	routes.Setup(s.router, h, m)
	return nil
}

// Start begins serving HTTP traffic. It blocks until the listener fails
// or Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and closes realtime connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Shutdown()
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

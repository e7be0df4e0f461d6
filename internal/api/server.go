// Package api is the minimal HTTP surface the spec's §1 calls an external
// collaborator: CRUD for diagrams/services/connections, login/session
// issuance, and the WebSocket Transport Adapter mount. It is what turns
// internal/engine from an inert library into a runnable binary, grounded
// in Finimen-Hackaton/internal/backend/server/server.go's route-grouping
// and middleware style and original_source/backend/internal/api/handlers.go's
// handler shapes.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"svctopo/internal/domain"
	"svctopo/internal/engine"
	"svctopo/internal/transport"
)

// Store is the persistence contract this package needs beyond the
// engine's own ServiceSpecStore/ResultSink: full CRUD for diagrams,
// services and connections, plus a cached latest-status read.
type Store interface {
	CreateDiagram(ctx context.Context, d *domain.Diagram) (int, error)
	GetDiagram(ctx context.Context, id int) (*domain.Diagram, error)
	ListDiagrams(ctx context.Context) ([]*domain.Diagram, error)
	UpdateDiagram(ctx context.Context, d *domain.Diagram) error
	DeleteDiagram(ctx context.Context, id int) error

	CreateService(ctx context.Context, spec *domain.ServiceSpec) (int, error)
	GetService(ctx context.Context, id int) (*domain.ServiceSpec, error)
	ListServicesByDiagram(ctx context.Context, diagramID int) ([]*domain.ServiceSpec, error)
	UpdateService(ctx context.Context, spec *domain.ServiceSpec) error
	UpdateServicePosition(ctx context.Context, id int, x, y float64) error
	DeleteService(ctx context.Context, id int) error

	CreateConnection(ctx context.Context, c *domain.Connection) (int, error)
	ListConnectionsByDiagram(ctx context.Context, diagramID int) ([]*domain.Connection, error)
	DeleteConnection(ctx context.Context, id int) error

	GetLatest(ctx context.Context, serviceID int) (domain.ServiceLatest, error)
}

// UserStore is the minimal account contract auth.go needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	CheckPassword(user *domain.User, password string) error
	IsFirstRun(ctx context.Context) (bool, error)
	CreateAdmin(ctx context.Context, username, password string) (*domain.User, error)
}

type Config struct {
	Port int
	Mode string
}

// Server is the composition root for the HTTP surface: router, store,
// the probing engine, and the JWT signing key.
type Server struct {
	router     *gin.Engine
	cfg        Config
	store      Store
	users      UserStore
	engine     *engine.Engine
	jwtKey     []byte
	log        *slog.Logger
	httpServer *http.Server
}

func New(cfg Config, store Store, users UserStore, eng *engine.Engine, jwtKey []byte, log *slog.Logger) *Server {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router: gin.New(),
		cfg:    cfg,
		store:  store,
		users:  users,
		engine: eng,
		jwtKey: jwtKey,
		log:    log,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggerMiddleware())
	s.router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
		MaxAge:          24 * time.Hour,
	}))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	wsAdapter := transport.NewWSAdapter(s.engine.Hub(), s.log.With("component", "ws_adapter"))
	s.router.GET("/ws", wsAdapter.Handle)

	public := s.router.Group("/api")
	{
		public.POST("/login", s.Login)
		public.POST("/first-run-admin", s.FirstRunAdmin)
		public.GET("/diagrams/:id", s.GetDiagram)
		public.GET("/services/diagram/:diagramId", s.ListServicesByDiagram)
		public.GET("/connections/diagram/:diagramId", s.ListConnectionsByDiagram)
	}

	authed := s.router.Group("/api")
	authed.Use(s.AuthMiddleware())
	{
		authed.GET("/diagrams", s.ListDiagrams)
		authed.POST("/diagrams", s.CreateDiagram)
		authed.PUT("/diagrams/:id", s.UpdateDiagram)
		authed.DELETE("/diagrams/:id", s.RequireAdmin(), s.DeleteDiagram)

		authed.POST("/services", s.CreateService)
		authed.GET("/services/:id", s.GetService)
		authed.PUT("/services/:id", s.UpdateService)
		authed.PUT("/services/:id/position", s.UpdateServicePosition)
		authed.DELETE("/services/:id", s.RequireAdmin(), s.DeleteService)

		authed.POST("/connections", s.CreateConnection)
		authed.DELETE("/connections/:id", s.DeleteConnection)

		authed.POST("/services/:id/icon", s.UploadIcon)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse("not_found", "endpoint not found"))
	})
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "svctopo",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		logFn := s.log.Info
		if status >= 500 {
			logFn = s.log.Error
		} else if status >= 400 {
			logFn = s.log.Warn
		}
		logFn("http request", "method", c.Request.Method, "path", path, "status", status, "latency", latency)
	}
}

// Start runs the HTTP server until the process is asked to shut down.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("starting http server", "port", s.cfg.Port, "mode", s.cfg.Mode)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

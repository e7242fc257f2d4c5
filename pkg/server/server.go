package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nodelens/nodelens/pkg/auth"
	"github.com/nodelens/nodelens/pkg/config"
	"github.com/nodelens/nodelens/pkg/driver"
	"github.com/nodelens/nodelens/pkg/search"
	"github.com/nodelens/nodelens/pkg/server/dto"
	"github.com/nodelens/nodelens/pkg/server/handlers"
	"github.com/nodelens/nodelens/pkg/types"
)

// Server represents the HTTP server
type Server struct {
	config        *config.Config
	router        *gin.Engine
	store         driver.RecordStore
	searcher      *search.Searcher
	authenticator *auth.Authenticator
	logger        *slog.Logger
	server        *http.Server
}

// New creates a new server instance. authenticator may be nil, in which case
// all routes are open.
func New(cfg *config.Config, store driver.RecordStore, searcher *search.Searcher, authenticator *auth.Authenticator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		config:        cfg,
		store:         store,
		searcher:      searcher,
		authenticator: authenticator,
		logger:        logger,
	}
}

// Setup sets up the server routes and middleware
func (s *Server) Setup() {
	// Set gin mode
	gin.SetMode(s.config.Server.Mode)

	// Create router
	s.router = gin.New()

	// Add middleware
	s.router.Use(gin.Logger())
	s.router.Use(gin.Recovery())
	s.router.Use(corsMiddleware())
	s.router.Use(contextMiddleware())

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// setupRoutes sets up all the routes
func (s *Server) setupRoutes() {
	// Create handlers
	healthHandler := handlers.NewHealthHandler(s.store)
	searchHandler := handlers.NewSearchHandler(s.searcher)
	recordsHandler := handlers.NewRecordsHandler(s.store)

	// Health endpoints
	s.router.GET("/health", healthHandler.HealthCheck)
	s.router.GET("/ready", healthHandler.ReadinessCheck)
	s.router.GET("/live", healthHandler.LivenessCheck) // Kubernetes liveness probe
	s.router.GET("/health/detailed", healthHandler.DetailedHealthCheck)

	// Login stays outside the auth middleware
	if s.authenticator != nil {
		authHandler := handlers.NewAuthHandler(s.authenticator)
		s.router.POST("/auth/login", authHandler.Login)
	}

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	if s.authenticator != nil {
		v1.Use(authMiddleware(s.authenticator))
	}
	{
		v1.POST("/search", searchHandler.Search)

		v1.GET("/records/:uuid", recordsHandler.GetRecord)
		v1.PUT("/records", recordsHandler.UpsertRecord)
		v1.DELETE("/records/:uuid", recordsHandler.DeleteRecord)

		v1.GET("/labels", recordsHandler.ListLabels)
	}
}

// Start starts the server
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping server")
	return s.server.Shutdown(ctx)
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// contextMiddleware extracts context information from headers
func contextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		requestID := c.GetHeader("X-Request-ID")
		if requestID != "" {
			ctx = context.WithValue(ctx, types.ContextKeyRequestID, requestID)
		}

		ctx = context.WithValue(ctx, types.ContextKeyRequestSource, "server")

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// authMiddleware verifies the Authorization bearer token and stores the
// authenticated subject on the request context.
func authMiddleware(authenticator *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "unauthorized",
				Message: "missing bearer token",
				Code:    http.StatusUnauthorized,
			})
			return
		}

		subject, err := authenticator.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "unauthorized",
				Message: "invalid bearer token",
				Code:    http.StatusUnauthorized,
			})
			return
		}

		ctx := context.WithValue(c.Request.Context(), types.ContextKeyPrincipal, subject)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

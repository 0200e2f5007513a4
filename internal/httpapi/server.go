// Package httpapi provides the HTTP admin API for coderagd.
//
// Registry mutations are administrator-triggered events; they happen
// here (and over MCP), never on the resolution path itself.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/coderagd/internal/pathres"
)

// Server provides HTTP endpoints for coderagd.
type Server struct {
	echo     *echo.Echo
	registry *pathres.Registry
	logger   *zap.Logger
	config   *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// NewServer creates a new HTTP server.
func NewServer(registry *pathres.Registry, logger *zap.Logger, cfg *Config) (*Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 9090,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:     e,
		registry: registry,
		logger:   logger,
		config:   cfg,
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.GET("/projects", s.handleProjectList)
	v1.POST("/projects", s.handleProjectAdd)
	v1.DELETE("/projects/:namespace", s.handleProjectRemove)
	v1.GET("/resolve", s.handleResolve)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Projects int    `json:"projects"`
}

// ProjectEntry is one registry entry in API responses.
type ProjectEntry struct {
	Namespace string `json:"namespace"`
	Root      string `json:"root"`
}

// ProjectListResponse is the response body for GET /api/v1/projects.
type ProjectListResponse struct {
	Projects []ProjectEntry `json:"projects"`
	Count    int            `json:"count"`
}

// ProjectAddRequest is the request body for POST /api/v1/projects.
type ProjectAddRequest struct {
	Namespace string `json:"namespace"`
	Path      string `json:"path"`
}

// ResolveResponse is the response body for GET /api/v1/resolve.
type ResolveResponse struct {
	QualifiedName string `json:"qualified_name"`
	Namespace     string `json:"namespace"`
	Root          string `json:"root"`
}

// NotFoundResponse is returned when a namespace is not registered.
type NotFoundResponse struct {
	Error     string   `json:"error"`
	Namespace string   `json:"namespace"`
	Available []string `json:"available"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Projects: s.registry.Len(),
	})
}

func (s *Server) handleProjectList(c echo.Context) error {
	namespaces := s.registry.List()
	resp := ProjectListResponse{
		Projects: make([]ProjectEntry, 0, len(namespaces)),
		Count:    len(namespaces),
	}
	for _, namespace := range namespaces {
		root, err := s.registry.Get(namespace)
		if err != nil {
			continue
		}
		resp.Projects = append(resp.Projects, ProjectEntry{Namespace: namespace, Root: root})
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleProjectAdd(c echo.Context) error {
	var req ProjectAddRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid project add request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path field is required")
	}

	s.registry.Add(req.Namespace, req.Path)

	root, err := s.registry.Get(req.Namespace)
	if err != nil {
		return s.notFound(c, err)
	}
	return c.JSON(http.StatusCreated, ProjectEntry{Namespace: req.Namespace, Root: root})
}

func (s *Server) handleProjectRemove(c echo.Context) error {
	namespace := c.Param("namespace")
	if err := s.registry.Remove(namespace); err != nil {
		return s.notFound(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleResolve(c echo.Context) error {
	qualifiedName := c.QueryParam("qualified_name")
	if qualifiedName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "qualified_name query parameter is required")
	}

	namespace := s.registry.ExtractNamespace(qualifiedName)
	root, err := s.registry.Get(namespace)
	if err != nil {
		return s.notFound(c, err)
	}

	return c.JSON(http.StatusOK, ResolveResponse{
		QualifiedName: qualifiedName,
		Namespace:     namespace,
		Root:          root,
	})
}

// notFound renders a NotFoundError as a 404 carrying the available
// namespaces; anything else becomes a 500.
func (s *Server) notFound(c echo.Context, err error) error {
	var nfe *pathres.NotFoundError
	if errors.As(err, &nfe) {
		return c.JSON(http.StatusNotFound, NotFoundResponse{
			Error:     "project not found",
			Namespace: nfe.Namespace,
			Available: nfe.Available,
		})
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

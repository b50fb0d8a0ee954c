// Package server exposes the recommendation engine over HTTP: the two
// engine operations, the read-only catalogs, health, stats, and metrics.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RakeshEPC/tshla-medical-sub000/internal/orchestrator"
)

// Server is the HTTP front end over the recommendation engine.
type Server struct {
	engine *orchestrator.Engine
	echo   *echo.Echo
	logger *slog.Logger
}

// New builds the server and mounts all routes.
func New(engine *orchestrator.Engine) *Server {
	s := &Server{
		engine: engine,
		echo:   echo.New(),
		logger: slog.Default().With("component", "http"),
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Use(echomiddleware.Recover())
	s.echo.Use(echomiddleware.RequestID())

	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api/v1")
	api.POST("/recommendations", s.handleRecommend)
	api.POST("/recommendations/:requestId/answer", s.handleAnswer)
	api.GET("/candidates", s.handleCandidates)
	api.GET("/features", s.handleFeatures)
	api.GET("/stats", s.handleStats)

	return s
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Demo page and read-only record listing
	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/traffic", s.handleTraffic)

	// Live channel (rate limited per client IP)
	s.echo.GET("/ws/traffic", s.handleWebSocket, newRateLimiter(s.config.WSRatePerSecond, s.config.WSRateBurst))
}

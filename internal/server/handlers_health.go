package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/weathall1/trafficpulse/internal/version"
)

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(200, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

// handleReadiness has no external dependencies to check; it reports the state
// of the in-process components instead.
func (s *Server) handleReadiness(c echo.Context) error {
	return c.JSON(200, map[string]any{
		"status":            "ready",
		"records":           s.store.Count(),
		"connected_clients": s.hub.ClientCount(),
	})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(200, version.Get())
}

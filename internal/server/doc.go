// Package server implements the HTTP server using Echo framework.
//
// Routes: index page, /traffic record listing, /ws/traffic live channel,
// plus health, metrics and version endpoints.
// Handlers split by concern: handlers.go, handlers_ws.go, handlers_health.go.
package server

package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weathall1/trafficpulse/internal/metrics"
)

const maxInboundMessageSize = 64 * 1024

func (s *Server) handleWebSocket(c echo.Context) error {
	if !s.limiter.Acquire() {
		metrics.WebSocketConnectionsTotal.WithLabelValues("rejected").Inc()
		slog.Warn("WebSocket connection rejected: server at capacity",
			"current", s.limiter.Current(), "max", s.limiter.Max())
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "server at connection capacity",
		})
	}
	defer s.limiter.Release()

	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		metrics.WebSocketConnectionsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}
	conn.SetReadLimit(maxInboundMessageSize)

	if err := s.hub.Register(conn, s.welcomeMessage()); err != nil {
		slog.Error("Failed to register with hub", "error", err)
		metrics.WebSocketConnectionsTotal.WithLabelValues("error").Inc()
		_ = conn.Close()
		return nil
	}
	metrics.WebSocketConnectionsTotal.WithLabelValues("success").Inc()

	// Read pump — relays inbound messages until the connection closes.
	// A read error or a non-JSON payload ends only this connection's loop.
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			break
		}
		metrics.WebSocketMessagesReceivedTotal.Inc()
		if !json.Valid(msg) {
			slog.Warn("Closing connection: inbound message is not valid JSON",
				"remote_addr", conn.RemoteAddr().String())
			break
		}
		s.hub.Broadcast(conn, msg)
	}

	s.hub.Unregister(conn)

	return nil
}

// welcomeMessage returns the first stored record as JSON, or nil when the
// store is empty.
func (s *Server) welcomeMessage() []byte {
	record, ok := s.store.First()
	if !ok {
		return nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		slog.Error("Failed to marshal welcome message", "error", err)
		return nil
	}
	return data
}

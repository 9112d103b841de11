package broadcast

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"github.com/weathall1/trafficpulse/internal/metrics"
)

const (
	commandTimeout = 5 * time.Second  // Actor command timeout
	stopTimeout    = 10 * time.Second // Graceful shutdown timeout
)

// hubCmd is the command interface for the Hub actor.
type hubCmd interface{ isHubCmd() }

type baseHubCmd struct{}

func (baseHubCmd) isHubCmd() {}

type registerCmd struct {
	baseHubCmd
	connection   *websocket.Conn
	welcome      []byte
	errorChannel chan error
}

type unregisterCmd struct {
	baseHubCmd
	connection *websocket.Conn
}

type broadcastCmd struct {
	baseHubCmd
	sender *websocket.Conn
	data   []byte
}

type clientCountCmd struct {
	baseHubCmd
	replyChannel chan int
}

type stopCmd struct {
	baseHubCmd
}

type client struct {
	id     uuid.UUID
	writer *clientWriter
}

// Hub tracks the set of live WebSocket connections and relays every received
// message to all other registered connections. A connection is a registry
// member iff its channel is believed open; any client that fails a send is
// evicted immediately.
type Hub struct {
	cmdCh   chan hubCmd
	clock   clockwork.Clock
	clients map[*websocket.Conn]*client
	done    chan struct{}
}

// NewHub creates the hub and starts its actor goroutine.
func NewHub(clock clockwork.Clock) *Hub {
	h := &Hub{
		cmdCh:   make(chan hubCmd, 256),
		clock:   clock,
		clients: make(map[*websocket.Conn]*client),
		done:    make(chan struct{}),
	}
	go h.run()
	return h
}

// Register adds a connection to the registry. When welcome is non-nil it is
// queued as the first message to this connection alone; a full send buffer at
// this point is logged and counted but does not fail the registration.
func (h *Hub) Register(conn *websocket.Conn, welcome []byte) error {
	errCh := make(chan error, 1)
	h.cmdCh <- registerCmd{connection: conn, welcome: welcome, errorChannel: errCh}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case err := <-errCh:
		return err
	case <-timer.Chan():
		return fmt.Errorf("register command timed out after %v", commandTimeout)
	}
}

// Unregister removes a connection from the registry and closes its writer.
// Unknown connections are tolerated, so calling it twice is harmless.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.cmdCh <- unregisterCmd{connection: conn}
}

// Broadcast queues data for delivery to every registered connection except
// sender. Delivery targets are the registry members at the instant of fan-out.
func (h *Hub) Broadcast(sender *websocket.Conn, data []byte) {
	h.cmdCh <- broadcastCmd{sender: sender, data: data}
}

// ClientCount returns the number of registered connections.
// Returns -1 if the command times out.
func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- clientCountCmd{replyChannel: replyCh}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case count := <-replyCh:
		return count
	case <-timer.Chan():
		slog.Warn("ClientCount timed out", "timeout", commandTimeout)
		return -1
	}
}

// Stop shuts down the hub, closing all client connections.
// Blocks until the hub goroutine has exited or timeout is reached.
func (h *Hub) Stop() {
	h.cmdCh <- stopCmd{}

	timer := h.clock.NewTimer(stopTimeout)
	defer timer.Stop()

	select {
	case <-h.done:
		slog.Info("Hub stopped gracefully")
	case <-timer.Chan():
		slog.Warn("Hub stop timeout exceeded, forcing exit", "timeout", stopTimeout)
		metrics.HubStopTimeoutsTotal.Inc()
		close(h.done)
	}
}

func (h *Hub) run() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Hub panic recovered", "panic", r)
			h.closeAllClients("hub panic")
		}
	}()

	defer close(h.done)

	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case registerCmd:
			h.handleRegister(c)
		case unregisterCmd:
			h.handleUnregister(c)
		case broadcastCmd:
			h.handleBroadcast(c)
		case clientCountCmd:
			c.replyChannel <- len(h.clients)
		case stopCmd:
			h.handleStop()
			return
		default:
			slog.Warn("Hub received unknown command type", "command_type", fmt.Sprintf("%T", cmd))
		}
	}
}

func (h *Hub) handleRegister(c registerCmd) {
	if _, exists := h.clients[c.connection]; exists {
		c.errorChannel <- fmt.Errorf("connection already registered")
		return
	}

	id := uuid.New()
	cw := newClientWriter(c.connection, h.clock, func() { h.Unregister(c.connection) })
	h.clients[c.connection] = &client{id: id, writer: cw}

	metrics.HubConnectedClients.Set(float64(len(h.clients)))
	slog.Debug("Client registered", "connection_id", id.String(), "total_clients", len(h.clients))
	c.errorChannel <- nil

	// Welcome push happens after registration stands; its failure is non-fatal.
	if len(c.welcome) > 0 {
		select {
		case cw.sendChannel <- c.welcome:
		default:
			slog.Warn("Welcome message dropped: send buffer full", "connection_id", id.String())
			metrics.HubWelcomeSendFailures.Inc()
		}
	}
}

func (h *Hub) handleUnregister(c unregisterCmd) {
	cl, exists := h.clients[c.connection]
	if !exists {
		return
	}

	cl.writer.stop()
	delete(h.clients, c.connection)

	metrics.HubConnectedClients.Set(float64(len(h.clients)))
	slog.Debug("Client unregistered", "connection_id", cl.id.String(), "remaining_clients", len(h.clients))
}

func (h *Hub) handleBroadcast(c broadcastCmd) {
	start := h.clock.Now()

	// Only the actor goroutine mutates the registry, so ranging here is a
	// stable snapshot; evictions are collected and applied after the loop.
	var slow []*websocket.Conn
	recipients := 0
	for conn, cl := range h.clients {
		if conn == c.sender {
			continue
		}
		select {
		case cl.writer.sendChannel <- c.data:
			recipients++
		default:
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		slog.Warn("Disconnecting slow client", "connection_id", h.clients[conn].id.String())
		metrics.HubSlowClientsEvicted.Inc()
		h.handleUnregister(unregisterCmd{connection: conn})
	}

	metrics.HubBroadcastsTotal.Inc()
	metrics.HubFanoutDuration.Observe(h.clock.Since(start).Seconds())
	slog.Debug("Message broadcast", "recipients", recipients, "evicted", len(slow))
}

func (h *Hub) handleStop() {
	slog.Info("Hub shutting down", "total_clients", len(h.clients))
	h.closeAllClients("Server shutting down")
	slog.Info("Hub shutdown complete")
}

// closeAllClients closes all client connections with the given reason.
// Used during panic recovery and graceful shutdown.
func (h *Hub) closeAllClients(reason string) {
	for conn, cl := range h.clients {
		cl.writer.stopGraceful(reason)
		delete(h.clients, conn)
	}
	metrics.HubConnectedClients.Set(0)
}

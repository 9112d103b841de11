package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Hub Metrics
var (
	// HubConnectedClients tracks current number of registered WebSocket clients
	HubConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_connected_clients",
			Help: "Current number of registered WebSocket clients",
		},
	)

	// HubBroadcastsTotal tracks total messages fanned out to the registry
	HubBroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_broadcasts_total",
			Help: "Total messages fanned out to registered clients",
		},
	)

	// HubFanoutDuration tracks fan-out duration per broadcast
	HubFanoutDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hub_fanout_duration_seconds",
			Help:    "Duration of a single broadcast fan-out in seconds",
			Buckets: []float64{.00001, .0001, .0005, .001, .005, .01, .05, .1},
		},
	)

	// HubSlowClientsEvicted tracks number of slow clients evicted
	HubSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_slow_clients_evicted_total",
			Help: "Total number of slow WebSocket clients evicted due to buffer full",
		},
	)

	// HubWelcomeSendFailures tracks failed welcome pushes after registration
	HubWelcomeSendFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_welcome_send_failures_total",
			Help: "Total welcome messages that could not be queued to a new client",
		},
	)

	// HubStopTimeoutsTotal tracks hub stops that exceeded timeout
	HubStopTimeoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_stop_timeouts_total",
			Help: "Hub stops that exceeded timeout",
		},
	)
)

// WebSocket Metrics
var (
	// WebSocketConnectionsTotal tracks total WebSocket connection attempts by result
	WebSocketConnectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_connections_total",
			Help: "Total WebSocket connection attempts by result (success/error/rejected)",
		},
		[]string{"result"},
	)

	// WebSocketMessagesReceivedTotal tracks inbound messages read from clients
	WebSocketMessagesReceivedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_received_total",
			Help: "Total messages received from WebSocket clients",
		},
	)

	// WebSocketMessageSendDuration tracks WebSocket message send duration
	WebSocketMessageSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "websocket_message_send_duration_seconds",
			Help:    "WebSocket message send duration in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25},
		},
	)

	// WebSocketPingFailures tracks WebSocket ping failures
	WebSocketPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_ping_failures_total",
			Help: "Total WebSocket ping failures (client not responding)",
		},
	)
)

// Store Metrics
var (
	// StoreRecords tracks the number of records currently loaded
	StoreRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_records",
			Help: "Number of traffic records currently loaded",
		},
	)

	// StoreLoadFallbacksTotal tracks loads that fell back to the default records
	StoreLoadFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_load_fallbacks_total",
			Help: "Total loads that substituted the default records",
		},
	)
)

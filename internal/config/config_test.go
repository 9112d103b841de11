package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:8080", cfg.AppURL)
	assert.Equal(t, "traffic_data.json", cfg.TrafficDataPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10000, cfg.MaxWebSocketConnections)
	assert.Equal(t, 5.0, cfg.WSRatePerSecond)
	assert.Equal(t, 10, cfg.WSRateBurst)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("TRAFFIC_DATA_PATH", "/data/records.json")
	t.Setenv("MAX_WEBSOCKET_CONNECTIONS", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/data/records.json", cfg.TrafficDataPath)
	assert.Equal(t, 50, cfg.MaxWebSocketConnections)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero connections", "MAX_WEBSOCKET_CONNECTIONS", "0"},
		{"negative rate", "WS_RATE_PER_SECOND", "-1"},
		{"zero burst", "WS_RATE_BURST", "0"},
		{"bad app url", "APP_URL", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	assert.True(t, cfg.IsDevelopment())

	cfg.AppEnv = "production"
	assert.False(t, cfg.IsDevelopment())
}

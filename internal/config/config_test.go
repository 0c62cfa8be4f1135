package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tcp://mqtt-broker:1883", cfg.BrokerURL)
	assert.Equal(t, "devices/events", cfg.Topic)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 256, cfg.QueueSize)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 10*time.Second, cfg.DrainTimeout)
	assert.NotEmpty(t, cfg.ClientID, "client id must be generated when unset")
}

func Test_Load_EnvOverrides(t *testing.T) {
	t.Setenv("MQTT_BROKER_URL", "tcp://localhost:1883")
	t.Setenv("MQTT_CLIENT_ID", "test-subscriber")
	t.Setenv("INGEST_QUEUE_SIZE", "32")
	t.Setenv("DRAIN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tcp://localhost:1883", cfg.BrokerURL)
	assert.Equal(t, "test-subscriber", cfg.ClientID)
	assert.Equal(t, 32, cfg.QueueSize)
	assert.Equal(t, 3*time.Second, cfg.DrainTimeout)
}

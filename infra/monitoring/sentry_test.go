package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremon "github.com/kilianp07/evcharge/core/monitoring"
)

func TestNewSentryMonitorWithoutDSN(t *testing.T) {
	m, err := NewSentryMonitor(Config{})
	require.NoError(t, err)
	assert.IsType(t, coremon.NopMonitor{}, m)
}

func TestNewSentryMonitorRejectsSampleRate(t *testing.T) {
	_, err := NewSentryMonitor(Config{DSN: "https://key@example.com/1", TracesSampleRate: 2})
	assert.Error(t, err)
}

func TestNewSentryMonitorInvalidDSN(t *testing.T) {
	_, err := NewSentryMonitor(Config{DSN: "not a dsn"})
	assert.Error(t, err)
}

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test", Config{Level: "debug"})
	require.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Infow("info", map[string]any{"k": "v"})
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLogger_JSONFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLoggerTo(&buf, "simulation", Config{Level: "info", Format: "json"})
	l.Debugf("hidden")
	l.Infow("charged", map[string]any{"plate": "0CCC", "kwh": 50})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "simulation", rec["component"])
	assert.Equal(t, "charged", rec["message"])
	assert.Equal(t, "0CCC", rec["plate"])
	assert.EqualValues(t, 50, rec["kwh"])
}

func TestConfig_Validate(t *testing.T) {
	var c Config
	c.SetDefaults()
	assert.NoError(t, c.Validate())
	assert.Error(t, Config{Level: "loud"}.Validate())
	assert.Error(t, Config{Level: "info", Format: "xml"}.Validate())
	assert.Error(t, Configure(Config{Level: "loud"}))
	require.NoError(t, Configure(Config{Level: "warn"}))
	assert.NotNil(t, New("x"))
	require.NoError(t, Configure(Config{}))
}

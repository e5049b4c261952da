package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evcharge/core/model"
	"github.com/kilianp07/evcharge/core/simulation"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "config.yaml", `simulation:
  preset: medium
  fleet: mixed
  turns: 30
journal:
  backend: sqlite
  path: runs.db
metrics:
  sinks:
    - type: "nop"
logging:
  level: debug
mqtt:
  broker: "tcp://localhost:1883"
  topic_prefix: "cc"
  qos: 1
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"preset", cfg.Simulation.Preset, simulation.PresetMedium},
		{"fleet", cfg.Simulation.Fleet, simulation.FleetMixed},
		{"turns", cfg.Simulation.Turns, 30},
		{"vehicles", len(cfg.Simulation.Vehicles), 5},
		{"journal.backend", cfg.Journal.Backend, "sqlite"},
		{"journal.path", cfg.Journal.Path, "runs.db"},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"mqtt.prefix", cfg.MQTT.TopicPrefix, "cc"},
		{"mqtt.qos", cfg.MQTT.QoS, byte(1)},
		{"mqtt.retries", cfg.MQTT.MaxRetries, 3},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoad_ExplicitLayoutJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
  "simulation": {
    "turns": 5,
    "vehicles": [
      {"plate": "0AAA", "name": "EV0", "tier": "vtc", "capacity": 40, "start": {"x": 0, "y": 0}, "destination": {"x": 6, "y": 6}}
    ],
    "stations": [
      {"id": "S1", "location": {"x": 3, "y": 3}, "chargers": [
        {"type": "solar", "conf": {"id": "S1_001", "speed": 40, "fee": 0.4}}
      ]}
    ]
  }
}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Simulation.Vehicles, 1)
	v := cfg.Simulation.Vehicles[0]
	assert.Equal(t, "vtc", v.Tier)
	assert.Equal(t, model.Location{X: 6, Y: 6}, v.Destination)
	require.Len(t, cfg.Simulation.Stations, 1)
	assert.Equal(t, simulation.DefaultCity, cfg.Simulation.Stations[0].City)
	assert.Equal(t, "solar", cfg.Simulation.Stations[0].Chargers[0].Type)
	assert.Equal(t, "none", cfg.Journal.Backend)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeFile(t, "config.yaml", "simulation:\n  turns: 30\n")
	t.Setenv("K_SIMULATION__TURNS", "12")
	t.Setenv("K_SIMULATION__PRESET", "simple")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Simulation.Turns)
	assert.Len(t, cfg.Simulation.Vehicles, 2)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, simulation.PresetAdvanced, cfg.Simulation.Preset)
	assert.Equal(t, simulation.DefaultTurns, cfg.Simulation.Turns)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.MQTT.Broker)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeFile(t, "config.toml", ""))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "config.yaml", "journal:\n  backend: postgres\n"))
	assert.ErrorContains(t, err, "journal")

	_, err = Load(writeFile(t, "config.yaml", "simulation:\n  preset: huge\n"))
	assert.ErrorContains(t, err, "simulation")

	_, err = Load(writeFile(t, "config.yaml", "metrics:\n  sinks:\n    - type: carrier-pigeon\n"))
	assert.ErrorContains(t, err, "metrics")

	_, err = Load(writeFile(t, "config.yaml", "logging:\n  level: loud\n"))
	assert.ErrorContains(t, err, "logging")

	_, err = Load(writeFile(t, "config.yaml", "sentry:\n  dsn: https://k@example.com/1\n  traces_sample_rate: 3\n"))
	assert.ErrorContains(t, err, "sentry")
}

func TestLoadWithOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", "simulation:\n  turns: 30\n  preset: advanced\n")
	cfg, err := LoadWithOverrides(path, map[string]any{
		"simulation.turns":  5,
		"simulation.preset": "medium",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Simulation.Turns)
	assert.Equal(t, simulation.PresetMedium, cfg.Simulation.Preset)
	assert.Len(t, cfg.Simulation.Vehicles, 5)
}

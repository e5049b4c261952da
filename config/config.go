package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/evcharge/core/journal"
	"github.com/kilianp07/evcharge/core/metrics"
	"github.com/kilianp07/evcharge/core/simulation"
	"github.com/kilianp07/evcharge/infra/logger"
	"github.com/kilianp07/evcharge/infra/monitoring"
	"github.com/kilianp07/evcharge/infra/mqtt"
)

type Config struct {
	Simulation simulation.Config `json:"simulation"`
	Journal    journal.Config    `json:"journal"`
	Metrics    metrics.Config    `json:"metrics"`
	Logging    logger.Config     `json:"logging"`
	// MQTT enables the charge publisher when Broker is set.
	MQTT mqtt.Config `json:"mqtt"`
	// Sentry enables error reporting when DSN is set.
	Sentry monitoring.Config `json:"sentry"`
}

// Load reads the YAML or JSON file at path, applies K_ environment
// overrides (K_SIMULATION__TURNS=10) and validates every section. An
// empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides is Load with dotted-key values such as
// "simulation.turns" applied last, typically from command line flags.
func LoadWithOverrides(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	for key, val := range overrides {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("override %s: %w", key, err)
		}
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Finalize applies defaults and validates every section.
func (c *Config) Finalize() error {
	c.Simulation.SetDefaults()
	c.Journal.SetDefaults()
	c.Logging.SetDefaults()
	if c.MQTT.Broker != "" {
		c.MQTT.SetDefaults()
		if err := c.MQTT.Validate(); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}
	if err := c.Simulation.Validate(); err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	if err := c.Journal.Validate(); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Sentry.Validate(); err != nil {
		return fmt.Errorf("sentry: %w", err)
	}
	return nil
}

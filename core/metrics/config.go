package metrics

import (
	"fmt"

	"github.com/kilianp07/evcharge/core/factory"
)

// Config defines the metrics sinks of a run.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddr exposes /metrics when set, e.g. ":9100".
	PrometheusAddr string `json:"prometheus_addr"`
	// APIToken guards the /api routes served next to /metrics.
	APIToken string `json:"api_token"`
}

// Validate checks that every sink names a registered type.
func (c Config) Validate() error {
	known := map[string]bool{}
	for _, n := range sinkRegistry.Names() {
		known[n] = true
	}
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics sink %d: type is required", i)
		}
		if len(known) > 0 && !known[s.Type] {
			return fmt.Errorf("metrics sink %d: unknown type %s", i, s.Type)
		}
	}
	return nil
}

package metrics

import (
	"fmt"

	"github.com/kilianp07/evcharge/core/factory"
)

var sinkRegistry = factory.NewRegistry[MetricsSink]()

func init() {
	_ = RegisterMetricsSink("nop", func(map[string]any) (MetricsSink, error) { return NopSink{}, nil })
}

// RegisterMetricsSink adds a metrics sink factory identified by name.
func RegisterMetricsSink(name string, f factory.Factory[MetricsSink]) error {
	return sinkRegistry.Register(name, f)
}

// NewMetricsSink builds one sink per module config and fans events out to
// all of them. Sinks already built are closed when a later one fails.
func NewMetricsSink(cfgs []factory.ModuleConfig) (MetricsSink, error) {
	switch len(cfgs) {
	case 0:
		return NopSink{}, nil
	case 1:
		s, err := sinkRegistry.Create(cfgs[0])
		if err != nil {
			return nil, fmt.Errorf("sink %s: %w", cfgs[0].Type, err)
		}
		return s, nil
	}
	multi := NewMultiSink()
	for i, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			_ = multi.Close()
			return nil, fmt.Errorf("sink %d (%s): %w", i, c.Type, err)
		}
		multi.Sinks = append(multi.Sinks, s)
	}
	return multi, nil
}

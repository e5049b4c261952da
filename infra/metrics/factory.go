package metrics

import (
	"github.com/kilianp07/evcharge/core/factory"
	coremetrics "github.com/kilianp07/evcharge/core/metrics"
)

// init registers the Prometheus and InfluxDB sinks.
func init() {
	_ = coremetrics.RegisterMetricsSink("prometheus", func(map[string]any) (coremetrics.MetricsSink, error) {
		// The listen address lives in metrics.Config; PromSink itself doesn't use it.
		return NewPromSink()
	})

	_ = coremetrics.RegisterMetricsSink("influx", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c InfluxConfig
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c), nil
	})
}

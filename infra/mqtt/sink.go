package mqtt

import (
	"encoding/json"
	"fmt"

	"github.com/kilianp07/evcharge/core/factory"
	coremetrics "github.com/kilianp07/evcharge/core/metrics"
	coremqtt "github.com/kilianp07/evcharge/core/mqtt"
)

// ChargePublisher is a metrics sink publishing charge and arrival events
// as JSON on per-vehicle topics.
type ChargePublisher struct {
	pub    coremqtt.Publisher
	prefix string
}

// NewChargePublisher wraps pub; topics are rooted at prefix.
func NewChargePublisher(pub coremqtt.Publisher, prefix string) *ChargePublisher {
	return &ChargePublisher{pub: pub, prefix: prefix}
}

// RecordCharge publishes ev on <prefix>/vehicle/<plate>/charge.
func (c *ChargePublisher) RecordCharge(ev coremetrics.ChargeEvent) error {
	return c.publish(ev.Plate, coremqtt.KindCharge, ev)
}

// RecordArrival publishes ev on <prefix>/vehicle/<plate>/arrival.
func (c *ChargePublisher) RecordArrival(ev coremetrics.ArrivalEvent) error {
	return c.publish(ev.Plate, coremqtt.KindArrival, ev)
}

func (c *ChargePublisher) publish(plate, kind string, v any) error {
	topic, err := coremqtt.VehicleTopic(c.prefix, plate, kind)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", kind, err)
	}
	return c.pub.Publish(topic, payload)
}

// Close disconnects the underlying publisher.
func (c *ChargePublisher) Close() error {
	c.pub.Disconnect()
	return nil
}

func init() {
	_ = coremetrics.RegisterMetricsSink("mqtt", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var cfg Config
		if err := factory.Decode(conf, &cfg); err != nil {
			return nil, err
		}
		cfg.SetDefaults()
		cli, err := NewPahoClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewChargePublisher(cli, cfg.TopicPrefix), nil
	})
}

package metrics

import (
	"errors"
	"strconv"

	coremetrics "github.com/kilianp07/evcharge/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records charge and arrival events in Prometheus metrics.
type PromSink struct {
	charges  *prometheus.CounterVec
	revenue  *prometheus.CounterVec
	kwh      *prometheus.CounterVec
	arrivals *prometheus.CounterVec
	arrived  prometheus.Gauge
	stalled  prometheus.Gauge
}

// NewPromSink registers the simulation metrics on the default Prometheus registerer.
// The /metrics endpoint is served separately by StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	charges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evcharge_charges_total",
		Help: "Charge attempts at free chargers",
	}, []string{"tier", "charger_kind", "accepted"})
	revenue := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evcharge_revenue_total",
		Help: "Revenue billed by chargers in euros",
	}, []string{"charger_kind"})
	kwh := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evcharge_kwh_total",
		Help: "Energy delivered to vehicles in kWh",
	}, []string{"tier"})
	arrivals := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evcharge_arrivals_total",
		Help: "Vehicles that reached their destination",
	}, []string{"tier"})
	arrived := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "evcharge_vehicles_arrived",
		Help: "Vehicles arrived at the end of the last turn",
	})
	stalled := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "evcharge_vehicles_stalled",
		Help: "Vehicles without enough battery for one step at the end of the last turn",
	})

	var err error
	if charges, err = register(reg, charges); err != nil {
		return nil, err
	}
	if revenue, err = register(reg, revenue); err != nil {
		return nil, err
	}
	if kwh, err = register(reg, kwh); err != nil {
		return nil, err
	}
	if arrivals, err = register(reg, arrivals); err != nil {
		return nil, err
	}
	if arrived, err = register(reg, arrived); err != nil {
		return nil, err
	}
	if stalled, err = register(reg, stalled); err != nil {
		return nil, err
	}
	return &PromSink{charges: charges, revenue: revenue, kwh: kwh, arrivals: arrivals, arrived: arrived, stalled: stalled}, nil
}

// register reuses an already registered collector of the same type.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordCharge counts the attempt and, when accepted, the revenue and energy.
func (s *PromSink) RecordCharge(ev coremetrics.ChargeEvent) error {
	s.charges.WithLabelValues(ev.Tier, ev.ChargerKind, strconv.FormatBool(ev.Accepted)).Inc()
	if !ev.Accepted {
		return nil
	}
	s.revenue.WithLabelValues(ev.ChargerKind).Add(ev.Cost)
	s.kwh.WithLabelValues(ev.Tier).Add(float64(ev.KWh))
	return nil
}

// RecordArrival increments the arrivals counter.
func (s *PromSink) RecordArrival(ev coremetrics.ArrivalEvent) error {
	s.arrivals.WithLabelValues(ev.Tier).Inc()
	return nil
}

// RecordTurn updates the fleet gauges.
func (s *PromSink) RecordTurn(ev coremetrics.TurnEvent) error {
	s.arrived.Set(float64(ev.Arrived))
	s.stalled.Set(float64(ev.Stalled))
	return nil
}

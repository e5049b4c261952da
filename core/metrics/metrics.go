package metrics

import (
	"errors"
	"time"
)

// ChargeEvent is a charge attempt made by a vehicle at a free charger.
type ChargeEvent struct {
	RunID       string    `json:"run_id"`
	Turn        int       `json:"turn"`
	Plate       string    `json:"plate"`
	Tier        string    `json:"tier"`
	StationID   string    `json:"station_id"`
	ChargerID   string    `json:"charger_id"`
	ChargerKind string    `json:"charger_kind"`
	KWh         int       `json:"kwh"`
	Cost        float64   `json:"cost"`
	Accepted    bool      `json:"accepted"`
	Time        time.Time `json:"time"`
}

// ArrivalEvent is emitted when a vehicle reaches its destination.
type ArrivalEvent struct {
	RunID   string    `json:"run_id"`
	Turn    int       `json:"turn"`
	Plate   string    `json:"plate"`
	Tier    string    `json:"tier"`
	Charges int       `json:"charges"`
	Cost    float64   `json:"cost"`
	Time    time.Time `json:"time"`
}

// TurnEvent summarises the fleet after every vehicle acted.
type TurnEvent struct {
	RunID    string    `json:"run_id"`
	Turn     int       `json:"turn"`
	Arrived  int       `json:"arrived"`
	Stalled  int       `json:"stalled"`
	Charging int       `json:"at_charge_stop"`
	Revenue  float64   `json:"revenue"`
	Time     time.Time `json:"time"`
}

// MetricsSink records charge attempts.
type MetricsSink interface {
	RecordCharge(ev ChargeEvent) error
}

// ArrivalRecorder records vehicle arrivals.
type ArrivalRecorder interface {
	RecordArrival(ev ArrivalEvent) error
}

// TurnRecorder records end-of-turn snapshots.
type TurnRecorder interface {
	RecordTurn(ev TurnEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordCharge(ChargeEvent) error   { return nil }
func (NopSink) RecordArrival(ArrivalEvent) error { return nil }
func (NopSink) RecordTurn(TurnEvent) error       { return nil }

// MultiSink fans events out to several sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCharge forwards to every sink and joins the errors.
func (m *MultiSink) RecordCharge(ev ChargeEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordCharge(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordArrival forwards to sinks implementing ArrivalRecorder.
func (m *MultiSink) RecordArrival(ev ArrivalEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(ArrivalRecorder); ok {
			if err := rec.RecordArrival(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RecordTurn forwards to sinks implementing TurnRecorder.
func (m *MultiSink) RecordTurn(ev TurnEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(TurnRecorder); ok {
			if err := rec.RecordTurn(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that has a Close method.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

package journal

import (
	"context"

	coremetrics "github.com/kilianp07/evcharge/core/metrics"
)

// Sink adapts a Store to the metrics sink interfaces so the journal
// receives the same events as the other sinks of a run.
type Sink struct {
	store Store
}

// NewSink wraps store.
func NewSink(store Store) *Sink { return &Sink{store: store} }

// RecordCharge appends a charge record.
func (s *Sink) RecordCharge(ev coremetrics.ChargeEvent) error {
	return s.store.Append(context.Background(), Record{
		RunID:     ev.RunID,
		Kind:      KindCharge,
		Turn:      ev.Turn,
		Plate:     ev.Plate,
		Tier:      ev.Tier,
		StationID: ev.StationID,
		ChargerID: ev.ChargerID,
		KWh:       ev.KWh,
		Cost:      ev.Cost,
		Accepted:  ev.Accepted,
		Timestamp: ev.Time,
	})
}

// RecordArrival appends an arrival record. Cost holds the vehicle's total spend.
func (s *Sink) RecordArrival(ev coremetrics.ArrivalEvent) error {
	return s.store.Append(context.Background(), Record{
		RunID:     ev.RunID,
		Kind:      KindArrival,
		Turn:      ev.Turn,
		Plate:     ev.Plate,
		Tier:      ev.Tier,
		Cost:      ev.Cost,
		Accepted:  true,
		Timestamp: ev.Time,
	})
}

// Close closes the store.
func (s *Sink) Close() error { return s.store.Close() }

package simulation

import (
	"github.com/kilianp07/evcharge/core/metrics"
	"github.com/kilianp07/evcharge/core/monitoring"
	"github.com/kilianp07/evcharge/core/vehicle"
)

// listener forwards vehicle events to the run's logger and metrics sink.
type listener struct {
	sim *Simulation
}

func (l *listener) Charged(ev vehicle.ChargeEvent) {
	s := l.sim
	me := metrics.ChargeEvent{
		RunID:       s.runID,
		Turn:        ev.Turn,
		Plate:       ev.Vehicle.Plate(),
		Tier:        ev.Vehicle.Tier().String(),
		StationID:   ev.Station.ID(),
		ChargerID:   ev.Charger.ID(),
		ChargerKind: ev.Charger.Kind().String(),
		KWh:         ev.KWh,
		Cost:        ev.Cost,
		Accepted:    ev.Accepted,
		Time:        s.now(),
	}
	s.charges = append(s.charges, me)
	if ev.Accepted {
		s.log.Infof("turn %d: %s charged %dkwh at %s for %.2f€", ev.Turn, me.Plate, ev.KWh, me.ChargerID, ev.Cost)
	} else {
		s.log.Warnf("turn %d: %s rejected by %s charger %s", ev.Turn, me.Plate, me.ChargerKind, me.ChargerID)
	}
	if err := s.sink.RecordCharge(me); err != nil {
		s.log.Errorf("charge metrics error: %v", err)
		monitoring.CaptureException(err, map[string]string{"module": "metrics", "plate": me.Plate, "kind": "charge"})
	}
}

func (l *listener) Arrived(ev vehicle.ArrivalEvent) {
	s := l.sim
	v := ev.Vehicle
	s.log.Infof("turn %d: %s arrived at %s", ev.Turn, v.Plate(), v.Location())
	rec, ok := s.sink.(metrics.ArrivalRecorder)
	if !ok {
		return
	}
	err := rec.RecordArrival(metrics.ArrivalEvent{
		RunID:   s.runID,
		Turn:    ev.Turn,
		Plate:   v.Plate(),
		Tier:    v.Tier().String(),
		Charges: v.ChargeCount(),
		Cost:    v.TotalChargeCost(),
		Time:    s.now(),
	})
	if err != nil {
		s.log.Errorf("arrival metrics error: %v", err)
		monitoring.CaptureException(err, map[string]string{"module": "metrics", "plate": v.Plate(), "kind": "arrival"})
	}
}

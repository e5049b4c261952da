package vehicle

import (
	"github.com/kilianp07/evcharge/core/charger"
	"github.com/kilianp07/evcharge/core/station"
)

// ChargeEvent describes a charge attempt at a free charger.
type ChargeEvent struct {
	Turn     int
	Vehicle  *Vehicle
	Station  *station.Station
	Charger  *charger.Charger
	KWh      int
	Cost     float64
	Accepted bool
}

// ArrivalEvent is emitted once when a vehicle reaches its destination.
type ArrivalEvent struct {
	Turn    int
	Vehicle *Vehicle
}

// Listener observes vehicle events. Calls happen synchronously inside Act.
type Listener interface {
	Charged(ev ChargeEvent)
	Arrived(ev ArrivalEvent)
}

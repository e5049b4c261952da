package simulation

import (
	"github.com/kilianp07/evcharge/core/company"
	"github.com/kilianp07/evcharge/core/metrics"
	"github.com/kilianp07/evcharge/core/station"
	"github.com/kilianp07/evcharge/core/vehicle"
)

// Result is the state of a run in report order: vehicles by arrival turn
// then plate, stations by vehicles served then id.
type Result struct {
	RunID    string
	Company  string
	Turns    int
	Vehicles []*vehicle.Vehicle
	Stations []*station.Station
	Ledger   []company.LedgerEntry
	// Charges lists every charge attempt in the order it happened.
	Charges []metrics.ChargeEvent
}

// Arrived counts the vehicles that reached their destination.
func (r *Result) Arrived() int {
	n := 0
	for _, v := range r.Vehicles {
		if v.HasArrived() {
			n++
		}
	}
	return n
}

// Revenue sums the revenue of every station.
func (r *Result) Revenue() float64 {
	total := 0.0
	for _, st := range r.Stations {
		total += st.Revenue()
	}
	return total
}

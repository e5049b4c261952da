package vehicle

import (
	"math"

	"github.com/kilianp07/evcharge/core/charger"
	"github.com/kilianp07/evcharge/core/model"
	"github.com/kilianp07/evcharge/core/station"
)

type selector func(v *Vehicle, stations []*station.Station) *station.Station

type behavior struct {
	label         string
	selectStation selector
	notifies      bool
	steps         int
}

var behaviors = map[model.Tier]behavior{
	model.TierStandard: {label: "StandardEV", selectStation: shortestDetour, notifies: true, steps: 1},
	model.TierDelivery: {label: "DeliveryEV", selectStation: shortestDetour, notifies: true, steps: 1},
	model.TierVTC:      {label: "VtcEV", selectStation: cheapestFee, notifies: true, steps: 1},
	model.TierPremium:  {label: "PremiumEV", selectStation: fastestUltraFast, notifies: true, steps: 1},
	model.TierPriority: {label: "PriorityEV", selectStation: closestToDestination, notifies: false, steps: 2},
}

// candidate reports whether st is worth considering: not the current
// location and reachable with the current battery.
func (v *Vehicle) candidate(st *station.Station) bool {
	if st == nil || st.Location() == v.location {
		return false
	}
	return v.HasEnoughBattery(v.location.Distance(st.Location()))
}

// shortestDetour minimises distance to the station plus distance from the
// station to the destination.
func shortestDetour(v *Vehicle, stations []*station.Station) *station.Station {
	var best *station.Station
	bestDist := math.MaxInt
	for _, st := range stations {
		if !v.candidate(st) {
			continue
		}
		d := v.location.Distance(st.Location()) + st.Location().Distance(v.destination)
		if d < bestDist {
			bestDist = d
			best = st
		}
	}
	return best
}

// cheapestFee picks the station holding the lowest fee among its standard and
// solar chargers.
func cheapestFee(v *Vehicle, stations []*station.Station) *station.Station {
	var best *station.Station
	bestFee := math.MaxFloat64
	for _, st := range stations {
		if !v.candidate(st) {
			continue
		}
		for _, c := range st.Chargers() {
			if k := c.Kind(); k != charger.KindStandard && k != charger.KindSolar {
				continue
			}
			if c.Fee() < bestFee {
				bestFee = c.Fee()
				best = st
			}
		}
	}
	return best
}

// fastestUltraFast picks the station holding the fastest ultra-fast charger.
func fastestUltraFast(v *Vehicle, stations []*station.Station) *station.Station {
	var best *station.Station
	bestSpeed := -1
	for _, st := range stations {
		if !v.candidate(st) {
			continue
		}
		for _, c := range st.Chargers() {
			if c.Kind() == charger.KindUltraFast && c.Speed() > bestSpeed {
				bestSpeed = c.Speed()
				best = st
			}
		}
	}
	return best
}

// closestToDestination picks the station nearest to the final destination.
func closestToDestination(v *Vehicle, stations []*station.Station) *station.Station {
	var best *station.Station
	bestDist := math.MaxInt
	for _, st := range stations {
		if !v.candidate(st) {
			continue
		}
		if d := st.Location().Distance(v.destination); d < bestDist {
			bestDist = d
			best = st
		}
	}
	return best
}

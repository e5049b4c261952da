// Package company provides the registry shared by a simulation run: the
// subscribed vehicles, the city stations and the charge notification ledger.
package company

import (
	"sort"

	"github.com/kilianp07/evcharge/core/charger"
	"github.com/kilianp07/evcharge/core/model"
	"github.com/kilianp07/evcharge/core/station"
	"github.com/kilianp07/evcharge/core/vehicle"
)

// DefaultName is used when New receives an empty name.
const DefaultName = "Compania EVCharging Caceres"

// LedgerEntry lists the vehicles that charged at a charger, in first-charge order.
type LedgerEntry struct {
	Charger  *charger.Charger
	Vehicles []*vehicle.Vehicle
}

type ledgerSet struct {
	seen  map[*vehicle.Vehicle]struct{}
	order []*vehicle.Vehicle
}

// Company is the registry of one simulation run. It implements
// vehicle.Directory.
type Company struct {
	name     string
	vehicles []*vehicle.Vehicle
	stations []*station.Station
	ledger   map[*charger.Charger]*ledgerSet
	// chargers holds the ledger keys in first-notification order.
	chargers []*charger.Charger
}

var _ vehicle.Directory = (*Company)(nil)

// New creates an empty company.
func New(name string) *Company {
	if name == "" {
		name = DefaultName
	}
	return &Company{name: name, ledger: make(map[*charger.Charger]*ledgerSet)}
}

func (c *Company) Name() string { return c.name }

// AddVehicle subscribes v. Nil is ignored.
func (c *Company) AddVehicle(v *vehicle.Vehicle) {
	if v != nil {
		c.vehicles = append(c.vehicles, v)
	}
}

// AddStation registers st. Nil is ignored.
func (c *Company) AddStation(st *station.Station) {
	if st != nil {
		c.stations = append(c.stations, st)
	}
}

// Vehicles returns the subscribed vehicles in insertion order.
func (c *Company) Vehicles() []*vehicle.Vehicle {
	out := make([]*vehicle.Vehicle, len(c.vehicles))
	copy(out, c.vehicles)
	return out
}

// Stations returns the city stations in insertion order.
func (c *Company) Stations() []*station.Station {
	out := make([]*station.Station, len(c.stations))
	copy(out, c.stations)
	return out
}

// NumberOfStations returns how many stations are registered.
func (c *Company) NumberOfStations() int { return len(c.stations) }

// StationByID returns the first station with the given id, or nil.
func (c *Company) StationByID(id string) *station.Station {
	for _, st := range c.stations {
		if st.ID() == id {
			return st
		}
	}
	return nil
}

// StationAt returns the first station at loc, or nil.
func (c *Company) StationAt(loc model.Location) *station.Station {
	for _, st := range c.stations {
		if st.Location() == loc {
			return st
		}
	}
	return nil
}

// NotifyCharge records that v charged at ch. A vehicle is listed at most
// once per charger.
func (c *Company) NotifyCharge(v *vehicle.Vehicle, ch *charger.Charger) {
	if v == nil || ch == nil {
		return
	}
	set, ok := c.ledger[ch]
	if !ok {
		set = &ledgerSet{seen: make(map[*vehicle.Vehicle]struct{})}
		c.ledger[ch] = set
		c.chargers = append(c.chargers, ch)
	}
	if _, dup := set.seen[v]; dup {
		return
	}
	set.seen[v] = struct{}{}
	set.order = append(set.order, v)
}

// Ledger returns the notification ledger ordered by charger id. Chargers
// sharing an id keep their first-notification order.
func (c *Company) Ledger() []LedgerEntry {
	out := make([]LedgerEntry, 0, len(c.chargers))
	for _, ch := range c.chargers {
		set := c.ledger[ch]
		if len(set.order) == 0 {
			continue
		}
		vs := make([]*vehicle.Vehicle, len(set.order))
		copy(vs, set.order)
		out = append(out, LedgerEntry{Charger: ch, Vehicles: vs})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Charger.ID() < out[j].Charger.ID() })
	return out
}

// Reset clears vehicles, stations and the ledger.
func (c *Company) Reset() {
	c.vehicles = nil
	c.stations = nil
	c.ledger = make(map[*charger.Charger]*ledgerSet)
	c.chargers = nil
}

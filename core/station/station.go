// Package station holds charging stations and the ordering of their chargers.
package station

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kilianp07/evcharge/core/charger"
	"github.com/kilianp07/evcharge/core/model"
)

var (
	ErrEmptyID   = errors.New("station id is required")
	ErrEmptyCity = errors.New("station city is required")
)

// Station owns an ordered set of chargers at a grid location.
type Station struct {
	id       string
	city     string
	location model.Location
	chargers []*charger.Charger
}

// New creates an empty station.
func New(city, id string, loc model.Location) (*Station, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if city == "" {
		return nil, fmt.Errorf("station %s: %w", id, ErrEmptyCity)
	}
	if err := loc.Validate(); err != nil {
		return nil, fmt.Errorf("station %s: %w", id, err)
	}
	return &Station{id: id, city: city, location: loc}, nil
}

func (s *Station) ID() string               { return s.id }
func (s *Station) City() string             { return s.city }
func (s *Station) Location() model.Location { return s.location }

// SetLocation moves the station.
func (s *Station) SetLocation(loc model.Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	s.location = loc
	return nil
}

// AddCharger inserts c and re-sorts the chargers so that the fastest, then
// cheapest, then lowest id comes first. Nil chargers are ignored.
func (s *Station) AddCharger(c *charger.Charger) {
	if c == nil {
		return
	}
	s.chargers = append(s.chargers, c)
	sort.SliceStable(s.chargers, func(i, j int) bool {
		return less(s.chargers[i], s.chargers[j])
	})
}

func less(a, b *charger.Charger) bool {
	if a.Speed() != b.Speed() {
		return a.Speed() > b.Speed()
	}
	if a.Fee() != b.Fee() {
		return a.Fee() < b.Fee()
	}
	return a.ID() < b.ID()
}

// Chargers returns the chargers in priority order. The slice is a copy.
func (s *Station) Chargers() []*charger.Charger {
	out := make([]*charger.Charger, len(s.chargers))
	copy(out, s.chargers)
	return out
}

// FreeCharger returns the first free charger in priority order, or nil.
func (s *Station) FreeCharger() *charger.Charger {
	for _, c := range s.chargers {
		if c.IsFree() {
			return c
		}
	}
	return nil
}

// TotalServed sums the charges recorded by every charger.
func (s *Station) TotalServed() int {
	n := 0
	for _, c := range s.chargers {
		n += c.ServedCount()
	}
	return n
}

// Revenue sums the revenue of every charger.
func (s *Station) Revenue() float64 {
	var r float64
	for _, c := range s.chargers {
		r += c.Revenue()
	}
	return r
}

func (s *Station) String() string {
	return fmt.Sprintf("(ChargingStation: %s, %s, %d, %s)", s.id, s.city, s.TotalServed(), s.location)
}

// ByServed orders stations by total served descending, then id.
func ByServed(stations []*Station) {
	sort.SliceStable(stations, func(i, j int) bool {
		a, b := stations[i].TotalServed(), stations[j].TotalServed()
		if a != b {
			return a > b
		}
		return stations[i].id < stations[j].id
	})
}

// ByID orders stations by id.
func ByID(stations []*Station) {
	sort.SliceStable(stations, func(i, j int) bool { return stations[i].id < stations[j].id })
}

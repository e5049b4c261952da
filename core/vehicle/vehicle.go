package vehicle

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/kilianp07/evcharge/core/charger"
	"github.com/kilianp07/evcharge/core/model"
	"github.com/kilianp07/evcharge/core/station"
)

// StepEnergyKWh is the energy consumed by one grid step.
const StepEnergyKWh = 5

var (
	ErrNilDirectory    = errors.New("vehicle requires a company directory")
	ErrInvalidCapacity = errors.New("battery capacity must be positive")
)

// Directory is the company view a vehicle needs: station lookup and charge
// notification. The vehicle never owns it.
type Directory interface {
	StationAt(loc model.Location) *station.Station
	Stations() []*station.Station
	NotifyCharge(v *Vehicle, c *charger.Charger)
}

// State is the position of a vehicle in its journey.
type State int

const (
	StateTraveling State = iota
	StateAtChargeStop
	StateArrived
)

func (s State) String() string {
	switch s {
	case StateAtChargeStop:
		return "at_charge_stop"
	case StateArrived:
		return "arrived"
	default:
		return "traveling"
	}
}

// Config holds the construction parameters of a vehicle.
type Config struct {
	Plate       string
	Name        string
	Tier        model.Tier
	Capacity    int
	Start       model.Location
	Destination model.Location
	// Listener is optional.
	Listener Listener
}

// Vehicle is an electric vehicle driving across the grid.
type Vehicle struct {
	dir      Directory
	listener Listener
	behavior behavior

	plate    string
	name     string
	tier     model.Tier
	capacity int
	battery  int

	location    model.Location
	destination model.Location
	stop        model.Location
	hasStop     bool

	idleTurns   int
	charges     int
	totalCost   float64
	totalKWh    int
	arrivalTurn int
	arrived     bool
}

// New validates cfg and returns a vehicle with a full battery and no route.
func New(dir Directory, cfg Config) (*Vehicle, error) {
	if dir == nil {
		return nil, ErrNilDirectory
	}
	if err := cfg.Start.Validate(); err != nil {
		return nil, fmt.Errorf("vehicle %s start: %w", cfg.Plate, err)
	}
	if err := cfg.Destination.Validate(); err != nil {
		return nil, fmt.Errorf("vehicle %s destination: %w", cfg.Plate, err)
	}
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("vehicle %s: %w", cfg.Plate, ErrInvalidCapacity)
	}
	b, ok := behaviors[cfg.Tier]
	if !ok {
		return nil, fmt.Errorf("vehicle %s: unsupported tier %s", cfg.Plate, cfg.Tier)
	}
	return &Vehicle{
		dir:         dir,
		listener:    cfg.Listener,
		behavior:    b,
		plate:       cfg.Plate,
		name:        cfg.Name,
		tier:        cfg.Tier,
		capacity:    cfg.Capacity,
		battery:     cfg.Capacity,
		location:    cfg.Start,
		destination: cfg.Destination,
		arrivalTurn: -1,
	}, nil
}

func (v *Vehicle) Plate() string               { return v.plate }
func (v *Vehicle) Name() string                { return v.name }
func (v *Vehicle) Tier() model.Tier            { return v.tier }
func (v *Vehicle) Capacity() int               { return v.capacity }
func (v *Vehicle) BatteryLevel() int           { return v.battery }
func (v *Vehicle) Location() model.Location    { return v.location }
func (v *Vehicle) Destination() model.Location { return v.destination }
func (v *Vehicle) IdleTurns() int              { return v.idleTurns }
func (v *Vehicle) ChargeCount() int            { return v.charges }
func (v *Vehicle) TotalChargeCost() float64    { return v.totalCost }
func (v *Vehicle) TotalKWhCharged() int        { return v.totalKWh }
func (v *Vehicle) ArrivalTurn() int            { return v.arrivalTurn }
func (v *Vehicle) HasArrived() bool            { return v.arrived }

// PlannedStop returns the charge stop the vehicle is heading to, if any.
func (v *Vehicle) PlannedStop() (model.Location, bool) { return v.stop, v.hasStop }

// SetListener replaces the event listener. Nil disables events.
func (v *Vehicle) SetListener(l Listener) { v.listener = l }

// SetLocation moves the vehicle without consuming energy.
func (v *Vehicle) SetLocation(loc model.Location) error {
	if err := loc.Validate(); err != nil {
		return err
	}
	v.location = loc
	return nil
}

// SetBatteryLevel sets the battery, clamped to [0, capacity].
func (v *Vehicle) SetBatteryLevel(level int) {
	v.battery = min(max(level, 0), v.capacity)
}

// State derives the journey state from the current position and plan.
func (v *Vehicle) State() State {
	switch {
	case v.arrived:
		return StateArrived
	case v.hasStop && v.location == v.stop:
		return StateAtChargeStop
	default:
		return StateTraveling
	}
}

// HasEnoughBattery reports whether the battery covers distance steps.
func (v *Vehicle) HasEnoughBattery(distance int) bool {
	return v.battery >= distance*StepEnergyKWh
}

// Act plays one turn. An arrived vehicle only counts an idle turn.
func (v *Vehicle) Act(turn int) {
	if v.arrived {
		v.idleTurns++
		return
	}
	for i := 0; i < v.behavior.steps; i++ {
		moved, settled := v.advance(turn)
		if !moved || settled {
			return
		}
	}
}

// advance performs one movement and arrival check. settled is true when the
// vehicle reached its destination or its planned stop.
func (v *Vehicle) advance(turn int) (moved, settled bool) {
	if !v.HasEnoughBattery(1) {
		return false, false
	}
	if goal := v.subGoal(); v.location != goal {
		v.location = v.location.Next(goal)
		v.battery = max(0, v.battery-StepEnergyKWh)
		moved = true
	}
	return moved, v.checkArrival(turn)
}

func (v *Vehicle) subGoal() model.Location {
	if v.hasStop {
		return v.stop
	}
	return v.destination
}

func (v *Vehicle) checkArrival(turn int) bool {
	if v.location == v.destination {
		v.arrived = true
		v.arrivalTurn = turn
		if v.listener != nil {
			v.listener.Arrived(ArrivalEvent{Turn: turn, Vehicle: v})
		}
		return true
	}
	if v.hasStop && v.location == v.stop {
		v.Recharge(turn)
		return true
	}
	return false
}

// Recharge runs the charging protocol at the station under the vehicle. It is
// a no-op without a station or a free charger. The charger is released in
// every branch, including a rejected charge.
func (v *Vehicle) Recharge(turn int) {
	st := v.dir.StationAt(v.location)
	if st == nil {
		return
	}
	c := st.FreeCharger()
	if c == nil {
		return
	}
	c.SetFree(false)
	defer c.SetFree(true)

	if need := v.capacity - v.battery; need > 0 {
		cost := c.Charge(v, need)
		accepted := cost >= 0
		if accepted {
			v.charges++
			v.totalCost += cost
			v.totalKWh += need
			v.battery = v.capacity
			if v.behavior.notifies {
				v.dir.NotifyCharge(v, c)
			}
		}
		if v.listener != nil {
			v.listener.Charged(ChargeEvent{
				Turn:     turn,
				Vehicle:  v,
				Station:  st,
				Charger:  c,
				KWh:      need,
				Cost:     cost,
				Accepted: accepted,
			})
		}
	}
	v.hasStop = false
	v.CalculateRoute()
}

// CalculateRoute clears the planned stop when the battery covers the trip to
// the destination, otherwise asks the tier strategy for a station.
func (v *Vehicle) CalculateRoute() {
	if v.HasEnoughBattery(v.location.Distance(v.destination)) {
		v.hasStop = false
		return
	}
	st := v.behavior.selectStation(v, v.dir.Stations())
	if st == nil {
		v.hasStop = false
		return
	}
	v.stop = st.Location()
	v.hasStop = true
}

// Label is the display name of the vehicle class.
func (v *Vehicle) Label() string { return v.behavior.label }

func (v *Vehicle) String() string {
	route := v.destination.String()
	if v.hasStop {
		route = v.stop.String() + ", " + route
	}
	return fmt.Sprintf("%s: %s, %s, %dkwh, %d, %d, %.2f€, %d, %s, %s",
		v.behavior.label, v.name, v.plate, v.capacity, v.battery,
		v.charges, v.totalCost, v.idleTurns, v.location, route)
}

// ByPlate orders vehicles by plate.
func ByPlate(vs []*Vehicle) {
	sort.SliceStable(vs, func(i, j int) bool { return vs[i].plate < vs[j].plate })
}

// ByArrival orders vehicles by arrival turn, vehicles that never arrived
// last, ties broken by plate.
func ByArrival(vs []*Vehicle) {
	key := func(v *Vehicle) int {
		if v.arrivalTurn < 0 {
			return math.MaxInt
		}
		return v.arrivalTurn
	}
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := key(vs[i]), key(vs[j])
		if a != b {
			return a < b
		}
		return vs[i].plate < vs[j].plate
	})
}

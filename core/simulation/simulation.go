package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/evcharge/core/charger"
	"github.com/kilianp07/evcharge/core/company"
	"github.com/kilianp07/evcharge/core/logger"
	"github.com/kilianp07/evcharge/core/metrics"
	"github.com/kilianp07/evcharge/core/model"
	"github.com/kilianp07/evcharge/core/station"
	"github.com/kilianp07/evcharge/core/vehicle"
)

// ErrFinished is returned by Step once every configured turn was played.
var ErrFinished = errors.New("simulation: all turns played")

// TurnHook observes the fleet after every vehicle acted in a turn.
type TurnHook func(turn int, vehicles []*vehicle.Vehicle)

// Simulation is one run over a company. It is not safe for concurrent use.
type Simulation struct {
	cfg      Config
	runID    string
	company  *company.Company
	vehicles []*vehicle.Vehicle
	stations []*station.Station
	sink     metrics.MetricsSink
	log      logger.Logger
	hooks    []TurnHook
	now      func() time.Time

	turn    int
	charges []metrics.ChargeEvent
}

// New builds the company described by cfg. A nil sink or logger is
// replaced by a no-op implementation.
func New(cfg Config, sink metrics.MetricsSink, log logger.Logger) (*Simulation, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("simulation config: %w", err)
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = logger.Nop{}
	}
	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	s := &Simulation{
		cfg:     cfg,
		runID:   runID,
		company: company.New(cfg.Company),
		sink:    sink,
		log:     log,
		now:     time.Now,
	}
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulation) build() error {
	for _, spec := range s.cfg.Stations {
		st, err := station.New(spec.City, spec.ID, spec.Location)
		if err != nil {
			return err
		}
		for _, mc := range spec.Chargers {
			ch, err := charger.Build(mc)
			if err != nil {
				return fmt.Errorf("station %s: %w", spec.ID, err)
			}
			st.AddCharger(ch)
		}
		s.company.AddStation(st)
		s.stations = append(s.stations, st)
	}
	station.ByID(s.stations)

	l := &listener{sim: s}
	for _, spec := range s.cfg.Vehicles {
		tier, err := model.ParseTier(spec.Tier)
		if err != nil {
			return err
		}
		v, err := vehicle.New(s.company, vehicle.Config{
			Plate:       spec.Plate,
			Name:        spec.Name,
			Tier:        tier,
			Capacity:    spec.Capacity,
			Start:       spec.Start,
			Destination: spec.Destination,
			Listener:    l,
		})
		if err != nil {
			return err
		}
		s.company.AddVehicle(v)
		s.vehicles = append(s.vehicles, v)
	}
	vehicle.ByPlate(s.vehicles)
	for _, v := range s.vehicles {
		v.CalculateRoute()
	}
	s.log.Infow("simulation ready", map[string]any{
		"run_id":   s.runID,
		"vehicles": len(s.vehicles),
		"stations": len(s.stations),
		"turns":    s.cfg.Turns,
	})
	return nil
}

// OnTurn registers a hook called at the end of every turn.
func (s *Simulation) OnTurn(h TurnHook) {
	if h != nil {
		s.hooks = append(s.hooks, h)
	}
}

func (s *Simulation) RunID() string                { return s.runID }
func (s *Simulation) Config() Config               { return s.cfg }
func (s *Simulation) Company() *company.Company    { return s.company }
func (s *Simulation) Turn() int                    { return s.turn }
func (s *Simulation) Done() bool                   { return s.turn >= s.cfg.Turns }
func (s *Simulation) Vehicles() []*vehicle.Vehicle { return append([]*vehicle.Vehicle(nil), s.vehicles...) }
func (s *Simulation) Stations() []*station.Station { return append([]*station.Station(nil), s.stations...) }

// Step plays the next turn: every vehicle acts in plate order, then the
// turn snapshot is recorded.
func (s *Simulation) Step(ctx context.Context) error {
	if s.Done() {
		return ErrFinished
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	turn := s.turn
	for _, v := range s.vehicles {
		v.Act(turn)
	}
	s.turn++

	ev := s.snapshot(turn)
	if rec, ok := s.sink.(metrics.TurnRecorder); ok {
		if err := rec.RecordTurn(ev); err != nil {
			s.log.Errorf("turn metrics error: %v", err)
		}
	}
	s.log.Debugw("turn played", map[string]any{
		"turn":           turn,
		"arrived":        ev.Arrived,
		"stalled":        ev.Stalled,
		"at_charge_stop": ev.Charging,
	})
	for _, h := range s.hooks {
		h(turn, s.vehicles)
	}
	return nil
}

// Run plays the remaining turns. Cancellation is checked between turns.
func (s *Simulation) Run(ctx context.Context) (*Result, error) {
	start := s.now()
	for !s.Done() {
		if err := s.Step(ctx); err != nil {
			return nil, err
		}
	}
	res := s.Result()
	s.log.Infow("simulation finished", map[string]any{
		"run_id":   s.runID,
		"arrived":  res.Arrived(),
		"revenue":  res.Revenue(),
		"duration": s.now().Sub(start).String(),
	})
	return res, nil
}

// Result returns the current state in final-report order.
func (s *Simulation) Result() *Result {
	vs := s.Vehicles()
	vehicle.ByArrival(vs)
	sts := s.Stations()
	station.ByServed(sts)
	return &Result{
		RunID:    s.runID,
		Company:  s.company.Name(),
		Turns:    s.turn,
		Vehicles: vs,
		Stations: sts,
		Ledger:   s.company.Ledger(),
		Charges:  append([]metrics.ChargeEvent(nil), s.charges...),
	}
}

func (s *Simulation) snapshot(turn int) metrics.TurnEvent {
	ev := metrics.TurnEvent{RunID: s.runID, Turn: turn, Time: s.now()}
	for _, v := range s.vehicles {
		switch {
		case v.HasArrived():
			ev.Arrived++
		case !v.HasEnoughBattery(1):
			ev.Stalled++
		case v.State() == vehicle.StateAtChargeStop:
			ev.Charging++
		}
	}
	for _, st := range s.stations {
		ev.Revenue += st.Revenue()
	}
	return ev
}

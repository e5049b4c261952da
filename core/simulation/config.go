package simulation

import (
	"fmt"
	"strings"

	"github.com/kilianp07/evcharge/core/charger"
	"github.com/kilianp07/evcharge/core/factory"
	"github.com/kilianp07/evcharge/core/model"
)

// Preset names a built-in scenario size.
type Preset string

const (
	PresetSimple   Preset = "simple"
	PresetMedium   Preset = "medium"
	PresetAdvanced Preset = "advanced"
)

// Vehicles returns the number of vehicles created by the preset.
func (p Preset) Vehicles() int {
	switch p {
	case PresetSimple:
		return 2
	case PresetMedium:
		return 5
	case PresetAdvanced:
		return 8
	default:
		return 0
	}
}

// Fleet selects how a preset assigns vehicle tiers and charger kinds.
const (
	// FleetStandard builds standard vehicles and standard chargers only.
	FleetStandard = "standard"
	// FleetMixed rotates through every tier and charger kind.
	FleetMixed = "mixed"
)

// Defaults of a run.
const (
	DefaultTurns    = 50
	DefaultGridSize = 20
	DefaultCity     = "Cáceres"
)

// VehicleSpec describes one vehicle of an explicit scenario.
type VehicleSpec struct {
	Plate       string         `json:"plate"`
	Name        string         `json:"name"`
	Tier        string         `json:"tier"`
	Capacity    int            `json:"capacity"`
	Start       model.Location `json:"start"`
	Destination model.Location `json:"destination"`
}

// StationSpec describes one station and its chargers. Each charger is a
// module config such as {type: solar, conf: {id: CC00_001, speed: 20, fee: 0.2}}.
type StationSpec struct {
	ID       string                 `json:"id"`
	City     string                 `json:"city"`
	Location model.Location         `json:"location"`
	Chargers []factory.ModuleConfig `json:"chargers"`
}

// Config describes a run. When Vehicles and Stations are empty the preset
// layout is used.
type Config struct {
	RunID      string        `json:"run_id"`
	Company    string        `json:"company"`
	Preset     Preset        `json:"preset"`
	Fleet      string        `json:"fleet"`
	Turns      int           `json:"turns"`
	GridWidth  int           `json:"grid_width"`
	GridHeight int           `json:"grid_height"`
	Vehicles   []VehicleSpec `json:"vehicles"`
	Stations   []StationSpec `json:"stations"`
}

// SetDefaults fills the preset, turn count, grid and layout.
func (c *Config) SetDefaults() {
	if c.Preset == "" {
		c.Preset = PresetAdvanced
	}
	c.Preset = Preset(strings.ToLower(string(c.Preset)))
	if c.Fleet == "" {
		c.Fleet = FleetStandard
	}
	c.Fleet = strings.ToLower(c.Fleet)
	if c.Turns <= 0 {
		c.Turns = DefaultTurns
	}
	if c.GridWidth <= 0 {
		c.GridWidth = DefaultGridSize
	}
	if c.GridHeight <= 0 {
		c.GridHeight = DefaultGridSize
	}
	if len(c.Vehicles) == 0 && len(c.Stations) == 0 {
		c.Vehicles, c.Stations = DemoLayout(c.Preset, c.Fleet)
	}
	for i := range c.Vehicles {
		if c.Vehicles[i].Tier == "" {
			c.Vehicles[i].Tier = model.TierStandard.String()
		}
	}
	for i := range c.Stations {
		if c.Stations[i].City == "" {
			c.Stations[i].City = DefaultCity
		}
	}
}

// Validate checks the layout against the grid and the registries.
func (c Config) Validate() error {
	if c.Preset.Vehicles() == 0 {
		return fmt.Errorf("unknown preset %s", c.Preset)
	}
	if c.Fleet != FleetStandard && c.Fleet != FleetMixed {
		return fmt.Errorf("unknown fleet %s", c.Fleet)
	}
	if c.Turns <= 0 {
		return fmt.Errorf("turns must be positive")
	}
	plates := make(map[string]bool, len(c.Vehicles))
	for _, v := range c.Vehicles {
		if v.Plate == "" {
			return fmt.Errorf("vehicle plate is required")
		}
		if plates[v.Plate] {
			return fmt.Errorf("duplicate vehicle plate %s", v.Plate)
		}
		plates[v.Plate] = true
		if _, err := model.ParseTier(v.Tier); err != nil {
			return fmt.Errorf("vehicle %s: %w", v.Plate, err)
		}
		if err := c.inGrid(v.Start); err != nil {
			return fmt.Errorf("vehicle %s start: %w", v.Plate, err)
		}
		if err := c.inGrid(v.Destination); err != nil {
			return fmt.Errorf("vehicle %s destination: %w", v.Plate, err)
		}
	}
	ids := make(map[string]bool, len(c.Stations))
	locs := make(map[model.Location]string, len(c.Stations))
	for _, s := range c.Stations {
		if s.ID == "" {
			return fmt.Errorf("station id is required")
		}
		if ids[s.ID] {
			return fmt.Errorf("duplicate station id %s", s.ID)
		}
		ids[s.ID] = true
		if err := c.inGrid(s.Location); err != nil {
			return fmt.Errorf("station %s: %w", s.ID, err)
		}
		if other, dup := locs[s.Location]; dup {
			return fmt.Errorf("stations %s and %s share location %s", other, s.ID, s.Location)
		}
		locs[s.Location] = s.ID
		known := charger.Registered()
		chargerIDs := make(map[string]bool, len(s.Chargers))
		for _, ch := range s.Chargers {
			if !contains(known, strings.ToLower(ch.Type)) {
				return fmt.Errorf("station %s: unknown charger type %q", s.ID, ch.Type)
			}
			var spec charger.Spec
			if err := factory.Decode(ch.Conf, &spec); err != nil {
				return fmt.Errorf("station %s: charger conf: %w", s.ID, err)
			}
			if spec.ID == "" {
				continue
			}
			if chargerIDs[spec.ID] {
				return fmt.Errorf("station %s: duplicate charger id %s", s.ID, spec.ID)
			}
			chargerIDs[spec.ID] = true
		}
	}
	return nil
}

func (c Config) inGrid(l model.Location) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if l.X >= c.GridWidth || l.Y >= c.GridHeight {
		return fmt.Errorf("location %s outside %dx%d grid", l, c.GridWidth, c.GridHeight)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

package simulation

import (
	"fmt"

	"github.com/kilianp07/evcharge/core/charger"
	"github.com/kilianp07/evcharge/core/factory"
	"github.com/kilianp07/evcharge/core/model"
)

var (
	demoStarts = []model.Location{
		{X: 10, Y: 13}, {X: 8, Y: 4}, {X: 8, Y: 4}, {X: 5, Y: 10},
		{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 11, Y: 13}, {X: 14, Y: 16},
	}
	demoTargets = []model.Location{
		{X: 1, Y: 1}, {X: 19, Y: 19}, {X: 12, Y: 17}, {X: 4, Y: 4},
		{X: 1, Y: 10}, {X: 5, Y: 5}, {X: 8, Y: 7}, {X: 19, Y: 19},
	}
	demoStations = []model.Location{
		{X: 10, Y: 5}, {X: 10, Y: 11}, {X: 14, Y: 16}, {X: 8, Y: 4},
	}
	mixedTiers = []model.Tier{model.TierStandard, model.TierVTC, model.TierPremium, model.TierPriority}
)

const demoChargersPerStation = 4

// DemoLayout returns the built-in city layout: four stations with four
// chargers each and the preset's number of vehicles.
func DemoLayout(p Preset, fleet string) ([]VehicleSpec, []StationSpec) {
	n := min(p.Vehicles(), len(demoStarts))
	vehicles := make([]VehicleSpec, 0, n)
	for i := 0; i < n; i++ {
		tier := model.TierStandard
		if fleet == FleetMixed {
			tier = mixedTiers[i%len(mixedTiers)]
		}
		vehicles = append(vehicles, VehicleSpec{
			Plate:       fmt.Sprintf("%dCCC", i),
			Name:        fmt.Sprintf("EV%d", i),
			Tier:        tier.String(),
			Capacity:    (i + 1) * 15,
			Start:       demoStarts[i],
			Destination: demoTargets[i],
		})
	}

	stations := make([]StationSpec, 0, len(demoStations))
	for i, loc := range demoStations {
		id := fmt.Sprintf("CC0%d", i)
		st := StationSpec{ID: id, City: DefaultCity, Location: loc}
		for j := 0; j < demoChargersPerStation; j++ {
			kind := charger.KindStandard
			if fleet == FleetMixed {
				kind = charger.Kinds[j%len(charger.Kinds)]
			}
			st.Chargers = append(st.Chargers, factory.ModuleConfig{
				Type: kind.String(),
				Conf: map[string]any{
					"id":    fmt.Sprintf("%s_00%d", id, j),
					"speed": (j + 1) * 20,
					"fee":   float64(j+1) * 0.20,
				},
			})
		}
		stations = append(stations, st)
	}
	return vehicles, stations
}

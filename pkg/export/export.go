package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/kilianp07/evcharge/core/simulation"
)

// VehicleSummary is the exported state of a vehicle.
type VehicleSummary struct {
	Plate       string  `json:"plate"`
	Name        string  `json:"name"`
	Tier        string  `json:"tier"`
	Capacity    int     `json:"capacity"`
	Battery     int     `json:"battery"`
	Charges     int     `json:"charges"`
	TotalCost   float64 `json:"total_cost"`
	TotalKWh    int     `json:"total_kwh"`
	IdleTurns   int     `json:"idle_turns"`
	Location    string  `json:"location"`
	Destination string  `json:"destination"`
	ArrivalTurn int     `json:"arrival_turn"`
}

// ChargerSummary is the exported state of a charger.
type ChargerSummary struct {
	ID      string   `json:"id"`
	Kind    string   `json:"kind"`
	Speed   int      `json:"speed"`
	Fee     float64  `json:"fee"`
	Revenue float64  `json:"revenue"`
	Served  []string `json:"served"`
}

// StationSummary is the exported state of a station.
type StationSummary struct {
	ID       string           `json:"id"`
	City     string           `json:"city"`
	Location string           `json:"location"`
	Served   int              `json:"served"`
	Chargers []ChargerSummary `json:"chargers"`
}

// Report is the JSON document of a run.
type Report struct {
	RunID    string           `json:"run_id"`
	Company  string           `json:"company"`
	Turns    int              `json:"turns"`
	Vehicles []VehicleSummary `json:"vehicles"`
	Stations []StationSummary `json:"stations"`
	Summary  Summary          `json:"summary"`
}

// plated is implemented by charger customers that carry a plate.
type plated interface{ Plate() string }

// NewReport builds the exported view of res, keeping its ordering.
func NewReport(res *simulation.Result) Report {
	r := Report{
		RunID:    res.RunID,
		Company:  res.Company,
		Turns:    res.Turns,
		Vehicles: vehicleSummaries(res),
		Summary:  Summarize(res),
	}
	for _, st := range res.Stations {
		ss := StationSummary{ID: st.ID(), City: st.City(), Location: st.Location().String(), Served: st.TotalServed()}
		for _, c := range st.Chargers() {
			cs := ChargerSummary{ID: c.ID(), Kind: c.Kind().String(), Speed: c.Speed(), Fee: c.Fee(), Revenue: c.Revenue(), Served: []string{}}
			for _, cu := range c.Served() {
				if p, ok := cu.(plated); ok {
					cs.Served = append(cs.Served, p.Plate())
				}
			}
			ss.Chargers = append(ss.Chargers, cs)
		}
		r.Stations = append(r.Stations, ss)
	}
	return r
}

func vehicleSummaries(res *simulation.Result) []VehicleSummary {
	out := make([]VehicleSummary, 0, len(res.Vehicles))
	for _, v := range res.Vehicles {
		out = append(out, VehicleSummary{
			Plate:       v.Plate(),
			Name:        v.Name(),
			Tier:        v.Tier().String(),
			Capacity:    v.Capacity(),
			Battery:     v.BatteryLevel(),
			Charges:     v.ChargeCount(),
			TotalCost:   v.TotalChargeCost(),
			TotalKWh:    v.TotalKWhCharged(),
			IdleTurns:   v.IdleTurns(),
			Location:    v.Location().String(),
			Destination: v.Destination().String(),
			ArrivalTurn: v.ArrivalTurn(),
		})
	}
	return out
}

// WriteJSON writes the report of res to w in JSON format.
func WriteJSON(w io.Writer, res *simulation.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReport(res))
}

// WriteCSV writes one row per vehicle in report order.
func WriteCSV(w io.Writer, res *simulation.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"plate", "name", "tier", "capacity", "battery", "charges", "total_cost", "total_kwh", "idle_turns", "location", "destination", "arrival_turn"}); err != nil {
		return err
	}
	for _, v := range vehicleSummaries(res) {
		rec := []string{
			v.Plate,
			v.Name,
			v.Tier,
			strconv.Itoa(v.Capacity),
			strconv.Itoa(v.Battery),
			strconv.Itoa(v.Charges),
			strconv.FormatFloat(v.TotalCost, 'f', 2, 64),
			strconv.Itoa(v.TotalKWh),
			strconv.Itoa(v.IdleTurns),
			v.Location,
			v.Destination,
			strconv.Itoa(v.ArrivalTurn),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/kilianp07/evcharge/core/simulation"
	"github.com/kilianp07/evcharge/core/station"
	"github.com/kilianp07/evcharge/core/vehicle"
)

const (
	rule      = "(-------------------)"
	shortRule = "(------------------)"
)

func header(w io.Writer, r, title string) {
	fmt.Fprintln(w, r)
	fmt.Fprintf(w, "( %s )\n", title)
	fmt.Fprintln(w, r)
}

func vehicleLine(v *vehicle.Vehicle) string { return "(" + v.String() + ")" }

// WriteInitial writes the company, its vehicles in plate order and its
// stations in id order with their chargers.
func WriteInitial(w io.Writer, sim *simulation.Simulation) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "( %s )\n", sim.Company().Name())
	header(bw, rule, "Electric Vehicles")
	for _, v := range sim.Vehicles() {
		fmt.Fprintln(bw, vehicleLine(v))
	}
	header(bw, rule, "Charging Stations")
	for _, st := range sim.Stations() {
		fmt.Fprintln(bw, st.String())
		for _, c := range st.Chargers() {
			fmt.Fprintln(bw, c.String())
		}
	}
	header(bw, shortRule, "Simulation start")
	return bw.Flush()
}

// WriteStep writes one line per vehicle for the given turn.
func WriteStep(w io.Writer, turn int, vehicles []*vehicle.Vehicle) error {
	bw := bufio.NewWriter(w)
	for _, v := range vehicles {
		fmt.Fprintf(bw, "(step: %d - %s)\n", turn, v.String())
	}
	return bw.Flush()
}

// WriteFinal writes vehicles by arrival turn and stations by vehicles
// served, each charger followed by the vehicles it served.
func WriteFinal(w io.Writer, res *simulation.Result) error {
	bw := bufio.NewWriter(w)
	header(bw, rule, "Final information")
	header(bw, rule, "Electric Vehicles")
	for _, v := range res.Vehicles {
		fmt.Fprintln(bw, vehicleLine(v))
	}
	header(bw, rule, "Charging Stations")
	for _, st := range res.Stations {
		writeStationDetail(bw, st)
	}
	return bw.Flush()
}

func writeStationDetail(w io.Writer, st *station.Station) {
	fmt.Fprintln(w, st.String())
	for _, c := range st.Chargers() {
		fmt.Fprintln(w, c.String())
		for _, cu := range c.Served() {
			if v, ok := cu.(*vehicle.Vehicle); ok {
				fmt.Fprintln(w, vehicleLine(v))
			}
		}
	}
}

// WriteSummary writes the aggregate statistics of a run.
func WriteSummary(w io.Writer, s Summary) error {
	bw := bufio.NewWriter(w)
	header(bw, rule, "Summary")
	fmt.Fprintf(bw, "run: %s\n", s.RunID)
	fmt.Fprintf(bw, "turns: %d\n", s.Turns)
	fmt.Fprintf(bw, "arrived: %d/%d\n", s.Arrived, s.Vehicles)
	fmt.Fprintf(bw, "charges: %d accepted, %d rejected\n", s.AcceptedCharges, s.RejectedCharges)
	fmt.Fprintf(bw, "energy: %dkwh\n", s.TotalKWh)
	fmt.Fprintf(bw, "revenue: %.2f€\n", s.Revenue)
	fmt.Fprintf(bw, "charge cost: mean %.2f€, std dev %.2f€\n", s.MeanChargeCost, s.StdDevChargeCost)
	fmt.Fprintf(bw, "mean arrival turn: %.2f\n", s.MeanArrivalTurn)
	return bw.Flush()
}

package export

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/evcharge/core/simulation"
)

// Summary aggregates a run.
type Summary struct {
	RunID            string  `json:"run_id"`
	Turns            int     `json:"turns"`
	Vehicles         int     `json:"vehicles"`
	Arrived          int     `json:"arrived"`
	AcceptedCharges  int     `json:"accepted_charges"`
	RejectedCharges  int     `json:"rejected_charges"`
	TotalKWh         int     `json:"total_kwh"`
	Revenue          float64 `json:"revenue"`
	MeanChargeCost   float64 `json:"mean_charge_cost"`
	StdDevChargeCost float64 `json:"stddev_charge_cost"`
	// MeanArrivalTurn is -1 when no vehicle arrived.
	MeanArrivalTurn float64 `json:"mean_arrival_turn"`
}

// Summarize computes the statistics of res. Rejected charges are counted
// but excluded from the cost statistics.
func Summarize(res *simulation.Result) Summary {
	s := Summary{
		RunID:           res.RunID,
		Turns:           res.Turns,
		Vehicles:        len(res.Vehicles),
		MeanArrivalTurn: -1,
	}
	var costs []float64
	for _, ev := range res.Charges {
		if !ev.Accepted {
			s.RejectedCharges++
			continue
		}
		s.AcceptedCharges++
		s.TotalKWh += ev.KWh
		costs = append(costs, ev.Cost)
	}
	if len(costs) > 0 {
		s.Revenue = floats.Sum(costs)
		s.MeanChargeCost, s.StdDevChargeCost = stat.MeanStdDev(costs, nil)
		if math.IsNaN(s.StdDevChargeCost) {
			s.StdDevChargeCost = 0
		}
	}
	var turns []float64
	for _, v := range res.Vehicles {
		if v.HasArrived() {
			turns = append(turns, float64(v.ArrivalTurn()))
		}
	}
	s.Arrived = len(turns)
	if len(turns) > 0 {
		s.MeanArrivalTurn = stat.Mean(turns, nil)
	}
	return s
}

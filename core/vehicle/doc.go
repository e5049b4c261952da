// Package vehicle implements the per-turn movement and charging state machine
// of an electric vehicle.
//
// A vehicle travels one grid step per turn (two for the priority tier) toward
// its planned charge stop or, without one, its final destination. Each step
// costs StepEnergyKWh. On reaching the planned stop the vehicle charges to full
// capacity at the first free charger of the station and recomputes its route.
// Tier specific behaviour (station selection, company notification, steps per
// turn) is looked up in a closed table keyed by model.Tier.
package vehicle

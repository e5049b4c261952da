// Package charger implements charging units and their pricing protocol.
//
// Every charger runs the same three steps when a vehicle plugs in: the
// variant decides whether the vehicle tier is accepted, the base cost
// kWh × fee is adjusted by the variant, and the charger metrics are updated.
// Only the first two steps vary between variants; Charger.Charge owns the
// ordering.
package charger

package charger

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/kilianp07/evcharge/core/model"
)

// Rejected is returned by Charge when the vehicle tier is not accepted.
const Rejected = -1.0

// ErrEmptyID is returned when a charger is created without identifier.
var ErrEmptyID = errors.New("charger id is required")

// Customer is anything that can plug into a charger.
type Customer interface {
	Tier() model.Tier
}

// Charger is a priced charging unit owned by a station.
type Charger struct {
	id      string
	speed   int
	fee     float64
	revenue float64
	served  []Customer
	free    bool
	variant Variant
}

// New creates a free charger of the given kind.
func New(kind Kind, id string, speed int, fee float64) (*Charger, error) {
	return NewWithVariant(VariantFor(kind), id, speed, fee)
}

// NewWithVariant creates a free charger using a custom variant.
func NewWithVariant(v Variant, id string, speed int, fee float64) (*Charger, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if v == nil {
		return nil, fmt.Errorf("charger %s: variant is required", id)
	}
	return &Charger{id: id, speed: speed, fee: fee, free: true, variant: v}, nil
}

func (c *Charger) ID() string       { return c.id }
func (c *Charger) Speed() int       { return c.speed }
func (c *Charger) Fee() float64     { return c.fee }
func (c *Charger) Revenue() float64 { return c.revenue }
func (c *Charger) Kind() Kind       { return c.variant.Kind() }
func (c *Charger) IsFree() bool     { return c.free }

// SetFree marks the charger free or occupied.
func (c *Charger) SetFree(free bool) { c.free = free }

// ServedCount returns how many charges were recorded.
func (c *Charger) ServedCount() int { return len(c.served) }

// Served returns the customers in the order they were served.
func (c *Charger) Served() []Customer {
	out := make([]Customer, len(c.served))
	copy(out, c.served)
	return out
}

// Compatible reports whether the customer's tier is accepted. An absent
// customer, including a typed nil pointer, is always accepted.
func (c *Charger) Compatible(cu Customer) bool {
	return absent(cu) || c.variant.Compatible(cu.Tier())
}

func absent(cu Customer) bool {
	if cu == nil {
		return true
	}
	v := reflect.ValueOf(cu)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Charge runs the pricing protocol for kwh requested by cu and returns the
// final cost, or Rejected leaving the charger untouched. A nil customer is
// billed but not recorded as served.
func (c *Charger) Charge(cu Customer, kwh int) float64 {
	if !c.Compatible(cu) {
		return Rejected
	}
	cost := c.variant.AdjustCost(float64(kwh) * c.fee)
	c.revenue += cost
	if !absent(cu) {
		c.served = append(c.served, cu)
	}
	return cost
}

func (c *Charger) String() string {
	return fmt.Sprintf("(%s: %s, %dkwh, %.1f€, %d, %.2f€)",
		c.Kind().Label(), c.id, c.speed, c.fee, len(c.served), c.revenue)
}

package charger

import (
	"fmt"
	"strings"

	"github.com/kilianp07/evcharge/core/model"
)

// Kind identifies a charger variant.
type Kind int

const (
	KindStandard Kind = iota
	KindSolar
	KindPriority
	KindUltraFast
)

// Kinds lists every variant kind.
var Kinds = []Kind{KindStandard, KindSolar, KindPriority, KindUltraFast}

func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindSolar:
		return "solar"
	case KindPriority:
		return "priority"
	case KindUltraFast:
		return "ultrafast"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Label is the display name used in reports.
func (k Kind) Label() string {
	switch k {
	case KindSolar:
		return "SolarCharger"
	case KindPriority:
		return "PriorityCharger"
	case KindUltraFast:
		return "UltraFastCharger"
	default:
		return "StandardCharger"
	}
}

// ParseKind converts a case-insensitive variant name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown charger kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Variant is the pluggable part of the charging protocol.
type Variant interface {
	Kind() Kind
	// Compatible reports whether a vehicle of the given tier may charge.
	Compatible(tier model.Tier) bool
	// AdjustCost applies the variant multiplier to the base cost.
	AdjustCost(base float64) float64
}

// Standard accepts standard and VTC vehicles at the plain fee.
type Standard struct{}

func (Standard) Kind() Kind { return KindStandard }

func (Standard) Compatible(t model.Tier) bool {
	return t == model.TierStandard || t == model.TierVTC
}

func (Standard) AdjustCost(base float64) float64 { return base }

// Solar serves VTC vehicles only with a 10% discount.
type Solar struct{}

func (Solar) Kind() Kind                      { return KindSolar }
func (Solar) Compatible(t model.Tier) bool    { return t == model.TierVTC }
func (Solar) AdjustCost(base float64) float64 { return base * 0.90 }

// Priority serves priority vehicles only at the plain fee.
type Priority struct{}

func (Priority) Kind() Kind                      { return KindPriority }
func (Priority) Compatible(t model.Tier) bool    { return t == model.TierPriority }
func (Priority) AdjustCost(base float64) float64 { return base }

// UltraFast serves premium vehicles only with a 10% surcharge.
type UltraFast struct{}

func (UltraFast) Kind() Kind                      { return KindUltraFast }
func (UltraFast) Compatible(t model.Tier) bool    { return t == model.TierPremium }
func (UltraFast) AdjustCost(base float64) float64 { return base * 1.10 }

// VariantFor returns the built-in variant for k, falling back to Standard.
func VariantFor(k Kind) Variant {
	switch k {
	case KindSolar:
		return Solar{}
	case KindPriority:
		return Priority{}
	case KindUltraFast:
		return UltraFast{}
	default:
		return Standard{}
	}
}

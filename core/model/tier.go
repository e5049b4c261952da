package model

import (
	"fmt"
	"strings"
)

// Tier is the class of an electric vehicle. It drives charger compatibility
// and the station selection strategy.
type Tier int

const (
	TierStandard Tier = iota
	TierPriority
	TierVTC
	TierPremium
	TierDelivery
)

// Tiers lists every known tier in declaration order.
var Tiers = []Tier{TierStandard, TierPriority, TierVTC, TierPremium, TierDelivery}

func (t Tier) String() string {
	switch t {
	case TierStandard:
		return "standard"
	case TierPriority:
		return "priority"
	case TierVTC:
		return "vtc"
	case TierPremium:
		return "premium"
	case TierDelivery:
		return "delivery"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier converts a case-insensitive tier name.
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown vehicle tier %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

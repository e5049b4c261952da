package charger

import (
	"fmt"

	"github.com/kilianp07/evcharge/core/factory"
)

// Spec is the configuration of a single charger.
type Spec struct {
	ID    string  `json:"id"`
	Speed int     `json:"speed"`
	Fee   float64 `json:"fee"`
}

var registry = factory.NewRegistry[*Charger]()

func init() {
	for _, k := range Kinds {
		kind := k
		err := registry.Register(kind.String(), func(conf map[string]any) (*Charger, error) {
			var s Spec
			if err := factory.Decode(conf, &s); err != nil {
				return nil, err
			}
			return New(kind, s.ID, s.Speed, s.Fee)
		})
		if err != nil {
			panic(fmt.Sprintf("register charger kind %s: %v", kind, err))
		}
	}
}

// Register adds a custom charger variant constructor identified by name.
func Register(name string, f factory.Factory[*Charger]) error {
	return registry.Register(name, f)
}

// Build creates a charger from a module configuration such as
// {type: solar, conf: {id: CC00_001, speed: 40, fee: 0.4}}.
func Build(cfg factory.ModuleConfig) (*Charger, error) {
	return registry.Create(cfg)
}

// Registered returns the names accepted by Build.
func Registered() []string { return registry.Names() }

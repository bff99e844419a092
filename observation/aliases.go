// Package observation builds the pin-alias and waveform-rendering
// surfaces consumed by external tools (debugger, waveform exporter,
// TUI): a per-component alias->network table (spec.md §4.9) and a
// human-readable dump of a WaveformChunk.
//
// The alias table is modeled on the old per-array name<->ID binding
// table this core's ancestor used for register files (every name must
// resolve to exactly one id, and every id to exactly one canonical
// name); here the "ids" are network names instead of register
// indices, and a clash is reported instead of silently overwritten.
package observation

import (
	"fmt"
	"sort"

	"github.com/draklowell/dragonfly8b9m-sim/component"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// AliasError reports a pin-alias ambiguity discovered while building a
// component's alias table (spec.md §4.9, §7 ObservationError).
type AliasError struct {
	Component string
	Alias     string
}

func (e *AliasError) Error() string {
	return fmt.Sprintf("observation: ambiguous pin alias %q on component %s", e.Alias, e.Component)
}

// Binding maps one component's pin aliases to the namespaced network
// name each is bound to.
type Binding struct {
	nameToNet map[string]string
}

// NewBinding builds the alias->network binding for a single component.
// Variants implementing component.AliasSet contribute their declared
// alias table; every other variant's raw pin names double as their
// own aliases. A component that maps two distinct aliases onto
// different networks under the same alias name fails with AliasError;
// mapping the same alias to the same network twice (e.g. two pin
// records resolving to one bus) is not an error.
func NewBinding(componentName string, comp component.Component) (*Binding, error) {
	b := &Binding{nameToNet: make(map[string]string)}

	assign := func(alias string, n *network.Network) error {
		netName := ""
		if n != nil {
			netName = n.Name
		}
		if existing, ok := b.nameToNet[alias]; ok && existing != netName {
			return &AliasError{Component: componentName, Alias: alias}
		}
		b.nameToNet[alias] = netName
		return nil
	}

	pins := comp.Pins()

	if as, ok := comp.(component.AliasSet); ok {
		for _, a := range as.PinAliases() {
			if err := assign(a.Alias, pins[a.Pin]); err != nil {
				return nil, err
			}
		}
		return b, nil
	}

	names := make([]string, 0, len(pins))
	for pin := range pins {
		names = append(names, pin)
	}
	sort.Strings(names)
	for _, pin := range names {
		if err := assign(pin, pins[pin]); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Networks returns the alias->network-name map.
func (b *Binding) Networks() map[string]string { return b.nameToNet }

// Lookup resolves one alias to its bound network name.
func (b *Binding) Lookup(alias string) (string, bool) {
	n, ok := b.nameToNet[alias]
	return n, ok
}

// ComponentPins builds the alias table for every named component, in
// the caller-supplied deterministic order (normally a CPU's Order
// slice), matching spec.md §9's "deterministic hashing" requirement
// for observation maps.
func ComponentPins(order []string, components map[string]component.Component) (map[string]map[string]string, error) {
	result := make(map[string]map[string]string, len(order))

	for _, name := range order {
		binding, err := NewBinding(name, components[name])
		if err != nil {
			return nil, err
		}
		result[name] = binding.Networks()
	}

	return result, nil
}

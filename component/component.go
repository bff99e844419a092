// Package component implements the closed universe of Dragonfly 8b9m
// part variants: 7400-series gates and registers, the 74181 ALU, the
// 28C256 EEPROM, the bus connector, the backplane, and the external
// interface. Each variant is a concrete struct implementing Component;
// there is no open subclassing — direct variant dispatch beats virtual
// dispatch here because the set of parts is small and fixed.
package component

import (
	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// Component is implemented by every part variant. Propagate is a pure
// function of committed network state to pending drive calls, plus
// whatever persistent internal state the variant carries (register
// contents, counter value, last-seen clock sample).
type Component interface {
	// Name returns the component's namespaced identifier, e.g.
	// "ALU:u12".
	Name() string

	// Propagate reads committed pin states and issues Drive calls for
	// this tick. It must be deterministic and terminating, and must
	// never read another component's pending (uncommitted) output.
	Propagate(log *logsink.Sink)

	// Pins returns the pin name -> bound network mapping, as wired by
	// the loader. Used to build the observation surface.
	Pins() map[string]*network.Network
}

// VariableHolder is implemented by components that expose named
// integer variables (spec.md §4.9), e.g. a register's "Q" value.
type VariableHolder interface {
	Variables() map[string]int
}

// VariableSetter is implemented by components whose variables can be
// written externally (spec.md §6.5): the interface's CLOCK/RESET/WAIT,
// and any edge-triggered flip-flop's Q preload.
type VariableSetter interface {
	SetVariable(name string, value int) bool
}

// Base is embedded by every variant. It owns the pin-name -> Network
// binding and the power-gating check shared by every IC: "all variants
// first check VCC is driven-high and GND is not driven-high; if either
// fails, they emit nothing and do not drive outputs" (spec.md §4.2).
type Base struct {
	id   string
	pins map[string]*network.Network
}

// NewBase wires a component's declared pin set to its bound networks.
// pins maps pin name to bound network; a pin with no binding is left
// out of the map and reads as floating / writes are ignored, matching
// the parser's "pin not wired" behavior.
func NewBase(id string, pins map[string]*network.Network) Base {
	return Base{id: id, pins: pins}
}

func (b *Base) Name() string { return b.id }

func (b *Base) Pins() map[string]*network.Network { return b.pins }

// get reads the committed value of a pin. An unbound pin reads false.
func (b *Base) get(pin string) bool {
	n, ok := b.pins[pin]
	if !ok {
		return false
	}
	return n.Read()
}

// floating reports whether a pin's bound network is floating. An
// unbound pin is considered floating.
func (b *Base) floating(pin string) bool {
	n, ok := b.pins[pin]
	if !ok {
		return true
	}
	return n.IsFloating()
}

// set drives a pin for the current tick. Writing to an unbound pin is
// a silent no-op — the netlist simply never asked for that output.
func (b *Base) set(pin string, value bool) {
	n, ok := b.pins[pin]
	if !ok {
		return
	}
	n.Drive(b.id, value)
}

// powered implements the shared power gate: VCC driven high and GND
// not driven high.
func (b *Base) powered() bool {
	return b.get("VCC") && !b.get("GND")
}

// Alias describes one entry of a component's pin-alias table: the
// externally visible name mapped to the internal pin it refers to.
type Alias struct {
	Pin   string
	Alias string
}

// AliasSet is implemented by variants that expose a pin-alias table
// distinct from their raw pin names (spec.md §4.9). Variants that
// don't implement it are assumed to use their pin names as aliases
// directly (the common case here, since pins are already named
// mnemonically rather than by IC leg number).
type AliasSet interface {
	PinAliases() []Alias
}

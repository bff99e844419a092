// Package cpu assembles the fully wired simulation object: every
// module's components and networks, the single shared Backplane, and
// the one external Interface, with deterministic propagate ordering.
package cpu

import (
	"github.com/draklowell/dragonfly8b9m-sim/component"
	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// CPU owns every component and network in the simulated machine. It
// exclusively owns the components; networks are shared by reference
// among the components that bind to them (spec.md §3 Component
// Ownership).
type CPU struct {
	Components map[string]component.Component
	// Order is the deterministic insertion order components were
	// loaded in. Propagate iterates in this order for reproducible
	// logs; the tick-determinism property (spec.md §8.3) holds for any
	// order, this one included.
	Order     []string
	Networks  map[string]*network.Network
	Interface *component.Interface
	Backplane *component.Backplane
}

func New(
	components map[string]component.Component,
	order []string,
	networks map[string]*network.Network,
	iface *component.Interface,
	backplane *component.Backplane,
) *CPU {
	return &CPU{
		Components: components,
		Order:      order,
		Networks:   networks,
		Interface:  iface,
		Backplane:  backplane,
	}
}

// Propagate runs one full tick's sweep: every component propagates
// against last tick's committed state, the Backplane resolves the
// shared bus across modules, and finally every network commits its
// accumulated pending state.
func (c *CPU) Propagate(log *logsink.Sink) {
	for _, name := range c.Order {
		c.Components[name].Propagate(log)
	}

	c.Backplane.Propagate(log)

	for _, n := range c.Networks {
		n.Commit()
	}
}

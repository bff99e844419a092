package component

import (
	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// BusConnector carries no propagate logic of its own: binding its
// pins onto the Backplane's shared bus lines (via BindBusConnector, at
// load time) is what makes them participate in the cross-module
// merge that the Backplane itself performs. It exists as a component
// only so the netlist and loader can address it like any other part.
type BusConnector struct {
	Base
}

func NewBusConnector(id string, pins map[string]*network.Network) *BusConnector {
	return &BusConnector{Base: NewBase(id, pins)}
}

func (c *BusConnector) Propagate(log *logsink.Sink) {}

// BindBusConnector registers every pin of bc whose name matches a
// known backplane line with the Backplane, so that pin's local
// network participates in the shared-bus merge.
func BindBusConnector(bc *BusConnector, bp *Backplane) {
	for pin, n := range bc.Pins() {
		if bp.KnownPin(pin) {
			bp.Register(pin, n)
		}
	}
}

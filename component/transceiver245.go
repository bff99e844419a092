package component

import (
	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// Transceiver245 models an IC74245: an 8-bit bidirectional bus
// transceiver with no internal storage. Active-low chip enable; DIR
// selects A->B (true) or B->A (false). Pins: VCC, GND, NOE, DIR,
// A0..A7, B0..B7.
type Transceiver245 struct {
	Base
}

func NewTransceiver245(id string, pins map[string]*network.Network) *Transceiver245 {
	return &Transceiver245{Base: NewBase(id, pins)}
}

func (c *Transceiver245) Propagate(log *logsink.Sink) {
	if !c.powered() {
		return
	}

	if c.get("NOE") {
		return
	}

	dir := c.get("DIR")
	for i := 0; i < 8; i++ {
		a, b := pinIdx("A", i), pinIdx("B", i)
		if dir {
			c.set(b, c.get(a))
		} else {
			c.set(a, c.get(b))
		}
	}
}

package component

import (
	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// UpDown193 models an IC74193: 4-bit up/down counter with separate
// rising-edge UP and DOWN clocks, asynchronous master reset, and
// active-low parallel load. NBO goes low when decrementing below
// zero, NCO goes low when incrementing above 15 — both computed from
// the unbounded next value before it is wrapped into range.
//
// Pins: VCC, GND, MR, NLOAD, CPU, CPD, D0..D3, Q0..Q3, NCO, NBO.
type UpDown193 struct {
	Base

	value  int
	prevUp bool
	prevDn bool
}

func NewUpDown193(id string, pins map[string]*network.Network) *UpDown193 {
	return &UpDown193{Base: NewBase(id, pins)}
}

func (c *UpDown193) Propagate(log *logsink.Sink) {
	if !c.powered() {
		return
	}

	if c.get("MR") {
		c.setValue(0)
		return
	}

	if !c.get("NLOAD") {
		c.setValue(c.loadValue())
		return
	}

	up := c.get("CPU")
	down := c.get("CPD")

	v := c.value
	if up && !c.prevUp {
		v++
	}
	if down && !c.prevDn {
		v--
	}

	c.set("NCO", !(v > 15))
	c.set("NBO", !(v < 0))

	c.setValue(v)
	c.prevUp = up
	c.prevDn = down
}

func (c *UpDown193) loadValue() int {
	v := 0
	if c.get("D0") {
		v |= 1
	}
	if c.get("D1") {
		v |= 2
	}
	if c.get("D2") {
		v |= 4
	}
	if c.get("D3") {
		v |= 8
	}
	return v
}

func (c *UpDown193) setValue(v int) {
	c.value = v & 0xF
	c.set("Q0", c.value&1 != 0)
	c.set("Q1", c.value&2 != 0)
	c.set("Q2", c.value&4 != 0)
	c.set("Q3", c.value&8 != 0)
}

func (c *UpDown193) Variables() map[string]int {
	return map[string]int{"Q": c.value}
}

func (c *UpDown193) SetVariable(name string, value int) bool {
	if name != "Q" {
		return false
	}
	c.setValue(value)
	return true
}

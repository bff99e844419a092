package component

import (
	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// Counter161 models an IC74161: synchronous 4-bit binary counter,
// rising-edge clocked. Active-low master reset takes precedence over
// everything else; active-low parallel load takes the next rising
// edge; the count advances on CEP AND CET; TC = (count==15) AND CET.
//
// Pins: VCC, GND, CLK, NCLR, NLOAD, CEP, CET, D0..D3, Q0..Q3, TC.
type Counter161 struct {
	Base

	count   uint8
	prevClk bool
}

func NewCounter161(id string, pins map[string]*network.Network) *Counter161 {
	return &Counter161{Base: NewBase(id, pins)}
}

func (c *Counter161) Propagate(log *logsink.Sink) {
	if !c.powered() {
		return
	}

	if !c.get("NCLR") {
		c.count = 0
		c.updateOutputs()
		return
	}

	clk := c.get("CLK")
	if clk && !c.prevClk {
		if !c.get("NLOAD") {
			var v uint8
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
			c.count = v
		} else if c.get("CEP") && c.get("CET") {
			c.count = (c.count + 1) & 0xF
		}
		c.updateOutputs()
	}

	c.set("TC", c.count == 15 && c.get("CET"))
	c.prevClk = clk
}

func (c *Counter161) updateOutputs() {
	c.set("Q0", c.count&1 != 0)
	c.set("Q1", c.count&2 != 0)
	c.set("Q2", c.count&4 != 0)
	c.set("Q3", c.count&8 != 0)
}

func (c *Counter161) Variables() map[string]int {
	return map[string]int{"Q": int(c.count)}
}

func (c *Counter161) SetVariable(name string, value int) bool {
	if name != "Q" {
		return false
	}
	c.count = uint8(value) & 0xF
	return true
}

package component

import (
	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// DFF273 models an IC74273: an 8-bit rising-edge clocked latch with
// active-low asynchronous master reset. Pins: VCC, GND, CLK, NCLR,
// D0..D7, Q0..Q7. Exposes variable "Q" (8 bits).
type DFF273 struct {
	Base

	state   uint8
	prevClk bool
}

func NewDFF273(id string, pins map[string]*network.Network) *DFF273 {
	return &DFF273{Base: NewBase(id, pins)}
}

func (c *DFF273) Propagate(log *logsink.Sink) {
	if !c.powered() {
		return
	}

	if !c.get("NCLR") {
		c.state = 0
		c.updateOutputs()
		c.prevClk = c.get("CLK")
		return
	}

	clk := c.get("CLK")
	if clk && !c.prevClk {
		c.state = c.readD()
	}

	c.updateOutputs()
	c.prevClk = clk
}

func (c *DFF273) readD() uint8 {
	var v uint8
	for i := 0; i < 8; i++ {
		if c.get(pinIdx("D", i)) {
			v |= 1 << uint(i)
		}
	}
	return v
}

func (c *DFF273) updateOutputs() {
	for i := 0; i < 8; i++ {
		c.set(pinIdx("Q", i), c.state&(1<<uint(i)) != 0)
	}
}

func (c *DFF273) Variables() map[string]int {
	return map[string]int{"Q": int(c.state)}
}

func (c *DFF273) SetVariable(name string, value int) bool {
	if name != "Q" {
		return false
	}
	c.state = uint8(value)
	return true
}

// DFF574 models an IC74574: an 8-bit rising-edge clocked register
// with active-low output enable; when OE is high the outputs are
// tri-stated (the network is left undriven). Pins: VCC, GND, CLK,
// NOE, D0..D7, Q0..Q7. Exposes variable "Q".
type DFF574 struct {
	Base

	state   uint8
	prevClk bool
}

func NewDFF574(id string, pins map[string]*network.Network) *DFF574 {
	return &DFF574{Base: NewBase(id, pins)}
}

func (c *DFF574) Propagate(log *logsink.Sink) {
	if !c.powered() {
		return
	}

	clk := c.get("CLK")
	if clk && !c.prevClk {
		c.state = c.readD()
	}
	c.prevClk = clk

	if c.get("NOE") {
		return
	}

	for i := 0; i < 8; i++ {
		c.set(pinIdx("Q", i), c.state&(1<<uint(i)) != 0)
	}
}

func (c *DFF574) readD() uint8 {
	var v uint8
	for i := 0; i < 8; i++ {
		if c.get(pinIdx("D", i)) {
			v |= 1 << uint(i)
		}
	}
	return v
}

func (c *DFF574) Variables() map[string]int {
	return map[string]int{"Q": int(c.state)}
}

func (c *DFF574) SetVariable(name string, value int) bool {
	if name != "Q" {
		return false
	}
	c.state = uint8(value)
	return true
}

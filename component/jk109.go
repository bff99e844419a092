package component

import (
	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// JK109 models an IC74109: two independent J-K' flip-flops, rising
// edge clocked, with active-low asynchronous preset and clear. When
// both preset and clear are asserted simultaneously Q is undefined by
// the datasheet; this implementation sets Q to TRUE (spec.md §4.2).
//
// Pins per unit i in {0,1}: VCC, GND, NCLR{i}, NPRE{i}, CLK{i}, J{i},
// NK{i}, Q{i}, NQ{i}.
type JK109 struct {
	Base

	q       [2]bool
	prevClk [2]bool
}

func NewJK109(id string, pins map[string]*network.Network) *JK109 {
	b := NewBase(id, pins)
	return &JK109{Base: b}
}

func (c *JK109) Propagate(log *logsink.Sink) {
	if !c.powered() {
		log.Log(c.Name(), "not powered, outputs float")
		return
	}

	for i := 0; i < 2; i++ {
		c.propagateUnit(i)
	}
}

func (c *JK109) propagateUnit(i int) {
	n := pinIdx("", i)
	clr := c.get("NCLR" + n) // active-low clear
	pre := c.get("NPRE" + n) // active-low preset

	switch {
	case !clr && pre:
		// clear asserted, preset not: Q -> 0
		c.q[i] = false
	case clr && !pre:
		// preset asserted, clear not: Q -> 1
		c.q[i] = true
	case !clr && !pre:
		// both asserted: undefined by datasheet, defined here as TRUE
		c.q[i] = true
	default:
		clk := c.get("CLK" + n)
		if clk && !c.prevClk[i] {
			j := c.get("J" + n)
			nk := c.get("NK" + n)
			switch {
			case !j && nk:
				// hold
			case !j && !nk:
				c.q[i] = false
			case j && nk:
				c.q[i] = true
			case j && !nk:
				c.q[i] = !c.q[i]
			}
		}
		c.prevClk[i] = clk
	}

	c.set("Q"+n, c.q[i])
	c.set("NQ"+n, !c.q[i])
}

package component

import (
	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// ALU181 models an IC74181: a 4-bit arithmetic/logic unit. M selects
// logic (true) or arithmetic (false) mode; CN is an active-low carry
// in. All 16 selections of both modes follow the 74181 datasheet
// truth table; in arithmetic mode the right-hand side is summed with
// carry-in modulo 16, with CN4 driven LOW when the unbounded sum
// overflows [0,15] (spec.md §4.2, §8 property 8).
//
// Pins: VCC, GND, A0..A3, B0..B3, S0..S3, M, CN, F0..F3, AEQB, P, G,
// CN4.
type ALU181 struct {
	Base
}

func NewALU181(id string, pins map[string]*network.Network) *ALU181 {
	return &ALU181{Base: NewBase(id, pins)}
}

func (c *ALU181) nibble(prefix string) int {
	v := 0
	for i := 0; i < 4; i++ {
		if c.get(pinIdx(prefix, i)) {
			v |= 1 << uint(i)
		}
	}
	return v
}

func (c *ALU181) Propagate(log *logsink.Sink) {
	if !c.powered() {
		log.Log(c.Name(), "not powered")
		return
	}

	a := c.nibble("A")
	b := c.nibble("B")
	s := c.nibble("S")
	m := c.get("M") // true = logic, false = arithmetic

	cIn := 0
	if !c.get("CN") {
		cIn = 1
	}

	var result int
	carryOut := false

	if m {
		logicOps := [16]func() int{
			func() int { return ^a },
			func() int { return ^(a | b) },
			func() int { return (^a) & b },
			func() int { return 0 },
			func() int { return ^(a & b) },
			func() int { return ^b },
			func() int { return a ^ b },
			func() int { return a & (^b) },
			func() int { return (^a) | b },
			func() int { return ^(a ^ b) },
			func() int { return b },
			func() int { return a & b },
			func() int { return 0xF },
			func() int { return a | (^b) },
			func() int { return a | b },
			func() int { return a },
		}
		result = logicOps[s]() & 0xF
	} else {
		abAnd := a & b
		arithOps := [16]func() int{
			func() int { return a },
			func() int { return a | b },
			func() int { return a | (^b & 0xF) },
			func() int { return -1 },
			func() int { return a + (a & (^b)) },
			func() int { return (a | b) + (a & (^b)) },
			func() int { return a - b - 1 },
			func() int { return (a & (^b)) - 1 },
			func() int { return a + abAnd },
			func() int { return a + b },
			func() int { return (a | (^b & 0xF)) + abAnd },
			func() int { return abAnd - 1 },
			func() int { return a + a },
			func() int { return (a | b) + a },
			func() int { return (a | (^b & 0xF)) + a },
			func() int { return a - 1 },
		}

		val := arithOps[s]() + cIn
		carryOut = val > 15 || val < 0
		result = val & 0xF
	}

	c.set("F0", result&1 != 0)
	c.set("F1", result&2 != 0)
	c.set("F2", result&4 != 0)
	c.set("F3", result&8 != 0)
	c.set("CN4", !carryOut)
	c.set("AEQB", result == 0xF)
	c.set("G", true)
	c.set("P", true)
}

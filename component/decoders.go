package component

import (
	"strconv"

	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// Decoder138 models an IC74138: 3-to-8 active-low decoder with
// enable = G1 AND NOT(NG2A) AND NOT(NG2B). Pins: VCC, GND, A0..A2,
// G1, NG2A, NG2B, Y0..Y7.
type Decoder138 struct {
	Base
}

func NewDecoder138(id string, pins map[string]*network.Network) *Decoder138 {
	return &Decoder138{Base: NewBase(id, pins)}
}

func (c *Decoder138) Propagate(log *logsink.Sink) {
	if !c.powered() {
		log.Log(c.Name(), "not powered, outputs float")
		return
	}

	enabled := c.get("G1") && !c.get("NG2A") && !c.get("NG2B")
	idx := 0
	if c.get("A0") {
		idx |= 1
	}
	if c.get("A1") {
		idx |= 2
	}
	if c.get("A2") {
		idx |= 4
	}

	for i := 0; i < 8; i++ {
		c.set(pinIdx("Y", i), !enabled || i != idx)
	}
}

// Decoder154 models an IC74154: 4-to-16 active-low decoder with dual
// active-low enable. Pins: VCC, GND, A0..A3, NE0, NE1, Y0..Y15.
type Decoder154 struct {
	Base
}

func NewDecoder154(id string, pins map[string]*network.Network) *Decoder154 {
	return &Decoder154{Base: NewBase(id, pins)}
}

func (c *Decoder154) Propagate(log *logsink.Sink) {
	if !c.powered() {
		log.Log(c.Name(), "not powered, outputs float")
		return
	}

	enabled := !c.get("NE0") && !c.get("NE1")
	idx := 0
	if c.get("A0") {
		idx |= 1
	}
	if c.get("A1") {
		idx |= 2
	}
	if c.get("A2") {
		idx |= 4
	}
	if c.get("A3") {
		idx |= 8
	}

	for i := 0; i < 16; i++ {
		c.set(decoderPin(i), !enabled || i != idx)
	}
}

func decoderPin(i int) string {
	return "Y" + strconv.Itoa(i)
}

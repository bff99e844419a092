package component

import (
	"strconv"

	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// Nand4 models an IC7400: four independent 2-input NAND gates.
// Pins: VCC, GND, A0..A3, B0..B3, Y0..Y3.
type Nand4 struct {
	Base
}

func NewNand4(id string, pins map[string]*network.Network) *Nand4 {
	b := NewBase(id, pins)
	return &Nand4{Base: b}
}

func (c *Nand4) Propagate(log *logsink.Sink) {
	if !c.powered() {
		log.Log(c.Name(), "not powered, outputs float")
		return
	}

	for i := 0; i < 4; i++ {
		a := c.get(pinIdx("A", i))
		b := c.get(pinIdx("B", i))
		c.set(pinIdx("Y", i), !(a && b))
	}
}

// Nor4 models an IC7402: four independent 2-input NOR gates.
// Pins: VCC, GND, A0..A3, B0..B3, Y0..Y3.
type Nor4 struct {
	Base
}

func NewNor4(id string, pins map[string]*network.Network) *Nor4 {
	b := NewBase(id, pins)
	return &Nor4{Base: b}
}

func (c *Nor4) Propagate(log *logsink.Sink) {
	if !c.powered() {
		log.Log(c.Name(), "not powered, outputs float")
		return
	}

	for i := 0; i < 4; i++ {
		a := c.get(pinIdx("A", i))
		b := c.get(pinIdx("B", i))
		c.set(pinIdx("Y", i), !(a || b))
	}
}

// Inv6 models an IC7404: six independent inverters.
// Pins: VCC, GND, A0..A5, Y0..Y5.
type Inv6 struct {
	Base
}

func NewInv6(id string, pins map[string]*network.Network) *Inv6 {
	b := NewBase(id, pins)
	return &Inv6{Base: b}
}

func (c *Inv6) Propagate(log *logsink.Sink) {
	if !c.powered() {
		log.Log(c.Name(), "not powered, outputs float")
		return
	}

	for i := 0; i < 6; i++ {
		c.set(pinIdx("Y", i), !c.get(pinIdx("A", i)))
	}
}

func pinIdx(prefix string, i int) string {
	return prefix + strconv.Itoa(i)
}

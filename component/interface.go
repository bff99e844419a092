package component

import (
	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// MemoryCallback is invoked by Interface on a falling clock edge to
// service a CPU-initiated memory access. read is true for a read
// cycle; for a write, value holds the byte being written. For a read
// the callback returns the byte to drive onto the data bus.
type MemoryCallback func(address uint16, read bool, value uint8) uint8

// Interface is the external boundary component: it watches the CPU's
// address/control lines and, on the falling edge of the clock,
// dispatches a memory read or write to a motherboard-supplied
// callback. It reads the ADDRESS and DATA pins, drives DATA with the
// byte returned by a read, and drives RESET/N_WAIT/N_CLK/INTREQ.
//
// Clock-edge detection samples the externally-set clock and clockNew
// values *before* clock is reassigned: falling edge is clock==true &&
// clockNew==false, checked first, with clock updated to clockNew only
// afterward. This corrects a defect in the reference implementation,
// which re-read its own "new" flag as if it were a pin name.
//
// Pins: ADDRESS0..ADDRESS15, DATA0..DATA7, INTREQ, RESET, N_CLK,
// N_HALT, N_INTACK, N_MEMREAD, N_MEMWRITE, N_WAIT, GND.
type Interface struct {
	Base

	clock    bool
	clockNew bool
	reset    bool
	wait     bool

	readCallback  MemoryCallback
	writeCallback MemoryCallback
}

func NewInterface(id string, pins map[string]*network.Network) *Interface {
	return &Interface{Base: NewBase(id, pins)}
}

// SetClock records the new clock level to be observed on the next
// Propagate; the transition itself is detected then, not here.
func (c *Interface) SetClock(level bool) { c.clockNew = level }

func (c *Interface) SetReset(on bool) { c.reset = on }

func (c *Interface) SetWait(on bool) { c.wait = on }

func (c *Interface) SetReadCallback(cb MemoryCallback)  { c.readCallback = cb }
func (c *Interface) SetWriteCallback(cb MemoryCallback) { c.writeCallback = cb }

func (c *Interface) address() uint16 {
	var v uint16
	for i := 0; i < 16; i++ {
		if c.get(pinIdx("ADDRESS", i)) {
			v |= 1 << uint(i)
		}
	}
	return v
}

func (c *Interface) data() uint8 {
	var v uint8
	for i := 0; i < 8; i++ {
		if c.get(pinIdx("DATA", i)) {
			v |= 1 << uint(i)
		}
	}
	return v
}

func (c *Interface) driveData(v uint8) {
	for i := 0; i < 8; i++ {
		c.set(pinIdx("DATA", i), v&(1<<uint(i)) != 0)
	}
}

func (c *Interface) Propagate(log *logsink.Sink) {
	c.set("RESET", c.reset)
	c.set("N_WAIT", !c.wait)
	c.set("N_CLK", !c.clockNew)
	c.set("INTREQ", false)

	fallingEdge := c.clock && !c.clockNew
	c.clock = c.clockNew

	if !fallingEdge {
		return
	}

	address := c.address()

	switch {
	case !c.get("N_MEMREAD"):
		if c.readCallback == nil {
			log.Warn(c.Name(), "memory read with no read callback bound")
			return
		}
		c.driveData(c.readCallback(address, true, 0))
	case !c.get("N_MEMWRITE"):
		if c.writeCallback == nil {
			log.Warn(c.Name(), "memory write with no write callback bound")
			return
		}
		c.writeCallback(address, false, c.data())
	}
}

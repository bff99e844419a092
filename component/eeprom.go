package component

import (
	"fmt"

	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// EEPROMSize is the byte capacity of a 28C256-equivalent EEPROM.
const EEPROMSize = 32768

// EEPROM models a 28C256-equivalent: 32768 bytes, 15 address lines,
// 8 data lines, active-low chip-select/output-enable/write-enable.
// Writes are rejected (write-protected ROM table); reads gate the
// data outputs only when NCS and NOE are asserted and NWE is
// deasserted, matching the microcode table ROM wiring (spec.md §4.2).
//
// Pins: VCC, GND, A0..A14, D0..D7, NCS, NOE, NWE.
type EEPROM struct {
	Base

	memory []byte
}

func NewEEPROM(id string, pins map[string]*network.Network) *EEPROM {
	return &EEPROM{
		Base:   NewBase(id, pins),
		memory: make([]byte, EEPROMSize),
	}
}

// LoadData preloads the EEPROM's contents at the given offset.
func (c *EEPROM) LoadData(data []byte, offset int) error {
	if offset < 0 || offset >= EEPROMSize {
		return fmt.Errorf("eeprom %s: offset %d out of bounds", c.Name(), offset)
	}
	if offset+len(data) > EEPROMSize {
		return fmt.Errorf("eeprom %s: %d bytes at offset %d exceeds %d-byte capacity", c.Name(), len(data), offset, EEPROMSize)
	}
	copy(c.memory[offset:], data)
	return nil
}

func (c *EEPROM) Propagate(log *logsink.Sink) {
	if !c.powered() {
		return
	}

	if c.get("NCS") {
		return
	}

	if !c.get("NWE") {
		log.Error(c.Name(), "write operation is not supported")
		return
	}

	if c.get("NOE") {
		return
	}

	address := 0
	for i := 0; i < 15; i++ {
		if c.get(pinIdx("A", i)) {
			address |= 1 << uint(i)
		}
	}

	data := c.memory[address]
	for i := 0; i < 8; i++ {
		c.set(pinIdx("D", i), data&(1<<uint(i)) != 0)
	}
}

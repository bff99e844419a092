// Package motherboard implements the fixed address decoder that
// backs the external Interface component's memory callbacks: a
// read-only ROM region, a RAM region, and a small stack region,
// everything else invalid.
package motherboard

import "fmt"

// Fixed memory map (spec.md §3/§6.4).
const (
	RomBase = 0x0000
	RomSize = 10240

	RamBase = 0x4000
	RamSize = 6144

	StackBase = 0xFBFF
	StackSize = 1025
)

// InvalidAddressError is returned by Read/Write for any address
// outside the three mapped regions.
type InvalidAddressError struct {
	Address uint16
	Write   bool
}

func (e *InvalidAddressError) Error() string {
	op := "read"
	if e.Write {
		op = "write"
	}
	return fmt.Sprintf("motherboard: invalid address for %s: 0x%04X", op, e.Address)
}

// Motherboard holds the three address-mapped memory regions and
// records the last InvalidAddress error raised by a memory access, so
// the engine can surface it out of the owning tick (spec.md §7).
type Motherboard struct {
	rom   [RomSize]byte
	ram   [RamSize]byte
	stack [StackSize]byte

	lastErr error
}

func New() *Motherboard {
	return &Motherboard{}
}

// LoadROM preloads the ROM region. data may be shorter than RomSize;
// the remainder stays zeroed.
func (m *Motherboard) LoadROM(data []byte) error {
	if len(data) > RomSize {
		return fmt.Errorf("motherboard: rom image of %d bytes exceeds %d-byte ROM", len(data), RomSize)
	}
	copy(m.rom[:], data)
	return nil
}

// Read returns the byte at address, or records and returns an
// InvalidAddressError if address maps to nothing.
func (m *Motherboard) Read(address uint16) (uint8, error) {
	switch {
	case address >= RomBase && int(address) < RomBase+RomSize:
		return m.rom[address-RomBase], nil
	case address >= RamBase && int(address) < RamBase+RamSize:
		return m.ram[address-RamBase], nil
	case int(address) >= StackBase && int(address)-StackBase < StackSize:
		return m.stack[int(address)-StackBase], nil
	default:
		err := &InvalidAddressError{Address: address}
		m.lastErr = err
		return 0, err
	}
}

// Write stores value at address. Writes to ROM silently succeed as a
// no-op (spec.md §6.4); writes outside every region record and return
// an InvalidAddressError.
func (m *Motherboard) Write(address uint16, value uint8) error {
	switch {
	case address >= RomBase && int(address) < RomBase+RomSize:
		return nil
	case address >= RamBase && int(address) < RamBase+RamSize:
		m.ram[address-RamBase] = value
		return nil
	case int(address) >= StackBase && int(address)-StackBase < StackSize:
		m.stack[int(address)-StackBase] = value
		return nil
	default:
		err := &InvalidAddressError{Address: address, Write: true}
		m.lastErr = err
		return err
	}
}

// TakeError returns and clears the last InvalidAddressError recorded
// by Read or Write since the previous call, or nil if none occurred.
func (m *Motherboard) TakeError() error {
	err := m.lastErr
	m.lastErr = nil
	return err
}

// ReadCallback adapts Read to the component.MemoryCallback shape
// expected by the external Interface.
func (m *Motherboard) ReadCallback(address uint16, read bool, value uint8) uint8 {
	b, _ := m.Read(address)
	return b
}

// WriteCallback adapts Write to the component.MemoryCallback shape
// expected by the external Interface.
func (m *Motherboard) WriteCallback(address uint16, read bool, value uint8) uint8 {
	_ = m.Write(address, value)
	return 0
}

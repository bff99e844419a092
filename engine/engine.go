// Package engine implements the simulation engine (spec.md §4.7): it
// owns the loaded CPU and the motherboard it is wired to, advances the
// simulation one tick at a time, and harvests every tick's observable
// state into a WaveformChunk for downstream consumers (debugger, VCD
// writer, TUI — none of which live in this core).
package engine

import (
	"fmt"

	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/monitoring"

	"github.com/draklowell/dragonfly8b9m-sim/component"
	"github.com/draklowell/dragonfly8b9m-sim/cpu"
	"github.com/draklowell/dragonfly8b9m-sim/loader"
	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/motherboard"
	"github.com/draklowell/dragonfly8b9m-sim/network"
	"github.com/draklowell/dragonfly8b9m-sim/observation"
	"github.com/draklowell/dragonfly8b9m-sim/waveform"
)

// WaveformChunk is the per-tick observation surface returned by Tick
// (spec.md §3). It is an alias of waveform.Chunk so callers can name
// either; the type lives in its own package to avoid an import cycle
// with the observation package, which renders chunks but must not
// depend on the engine that produces them.
type WaveformChunk = waveform.Chunk

// Engine owns the loaded CPU and motherboard and drives the tick loop.
// It is the sole point higher-level tools (debugger, waveform exporter,
// TUI) are expected to talk to.
type Engine struct {
	// RunID uniquely identifies this loaded run, so that logs from
	// multiple Engines loaded within one process (e.g. a long test
	// suite) can be told apart.
	RunID xid.ID

	cpu        *cpu.CPU
	mb         *motherboard.Motherboard
	tick       int
	monitor    *monitoring.Monitor
	components map[string]component.Component
}

// New constructs an unloaded Engine. Attach a monitor with WithMonitor
// before calling Load if long-run introspection is wanted.
func New() *Engine {
	return &Engine{RunID: xid.New()}
}

// WithMonitor attaches an akita monitoring.Monitor to the engine for
// long-running introspection. It has no effect on simulated behavior.
func (e *Engine) WithMonitor(m *monitoring.Monitor) *Engine {
	e.monitor = m
	return e
}

// Load parses and wires every module's netlist into a CPU, creates a
// Motherboard preloaded with romBytes, and binds the Motherboard's
// read/write callbacks to the CPU's external interface component
// (spec.md §4.6, §4.7).
func (e *Engine) Load(modules []loader.Module, tables [8][]byte, romBytes []byte) error {
	c, err := loader.Load(modules, tables)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	mb := motherboard.New()
	if err := mb.LoadROM(romBytes); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	c.Interface.SetReadCallback(func(addr uint16, read bool, value uint8) uint8 {
		return mb.ReadCallback(addr, read, value)
	})
	c.Interface.SetWriteCallback(func(addr uint16, read bool, value uint8) uint8 {
		return mb.WriteCallback(addr, read, value)
	})

	e.cpu = c
	e.mb = mb
	e.components = c.Components
	e.tick = 0

	return nil
}

// SetPower powers the backplane's VCC/GND rails on or off.
func (e *Engine) SetPower(on bool) {
	e.cpu.Backplane.SetPower(on)
}

// SetComponentVariable writes a named variable on a component (spec.md
// §6.5): register Q preload, or the external interface's
// CLOCK/RESET/WAIT. Returns false if the component does not exist or
// does not expose a settable variable by that name.
func (e *Engine) SetComponentVariable(componentName, varName string, value int) bool {
	comp, ok := e.components[componentName]
	if !ok {
		return false
	}

	if iface, ok := comp.(*component.Interface); ok {
		switch varName {
		case "CLOCK":
			iface.SetClock(value != 0)
			return true
		case "RESET":
			iface.SetReset(value != 0)
			return true
		case "WAIT":
			iface.SetWait(value != 0)
			return true
		}
	}

	setter, ok := comp.(component.VariableSetter)
	if !ok {
		return false
	}
	return setter.SetVariable(varName, value)
}

// GetComponentPins returns, for every component, a map from pin alias
// to the namespaced network name it is bound to (spec.md §4.7, §4.9),
// built by the observation package's alias-table logic over the CPU's
// deterministic component Order.
func (e *Engine) GetComponentPins() (map[string]map[string]string, error) {
	return observation.ComponentPins(e.cpu.Order, e.components)
}

// Tick advances the simulation by one propagation sweep and returns
// the resulting WaveformChunk. If the tick's memory access targeted an
// address outside the motherboard's mapped regions, the
// InvalidAddressError is returned alongside the chunk (spec.md §7):
// the chunk is still the caller's record of what happened on this
// tick, even though the access failed.
func (e *Engine) Tick() (*WaveformChunk, error) {
	sink := logsink.New()
	e.cpu.Propagate(sink)

	chunk := &WaveformChunk{
		Tick:           e.tick,
		NetworkStates:  make(map[string]network.State, len(e.cpu.Networks)),
		NetworkDrivers: make(map[string][]string, len(e.cpu.Networks)),
		Variables:      make(map[string]map[string]int),
		Logs:           sink.Drain(),
	}

	for name, n := range e.cpu.Networks {
		chunk.NetworkStates[name] = n.State()
		chunk.NetworkDrivers[name] = n.Drivers()
	}

	for _, name := range e.cpu.Order {
		if vh, ok := e.components[name].(component.VariableHolder); ok {
			chunk.Variables[name] = vh.Variables()
		}
	}

	e.tick++

	return chunk, e.mb.TakeError()
}

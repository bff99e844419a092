// Package waveform defines the per-tick observation snapshot
// (spec.md §3 "WaveformChunk"): the resolved state and driver list of
// every network, every component's named variables, and the tick's
// accumulated log entries. It is a pure data type with no behavior of
// its own so both the engine (which produces chunks) and the
// observation package (which renders them) can depend on it without a
// cycle.
package waveform

import (
	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// Chunk is the return value of Engine.Tick: a complete snapshot of
// everything observable about one propagation sweep.
type Chunk struct {
	Tick           int
	NetworkStates  map[string]network.State
	NetworkDrivers map[string][]string
	Variables      map[string]map[string]int
	Logs           []logsink.Entry
}

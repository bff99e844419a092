// Package cyclestepper turns the engine's raw ticks into CPU clock
// cycles (spec.md §4.8): it drives the external interface's CLOCK pin
// low for half a period, ticks once more with the clock still low to
// let latches settle, then drives it high for the other half.
package cyclestepper

import (
	"fmt"

	"github.com/draklowell/dragonfly8b9m-sim/engine"
)

const ifaceClockVar = "CLOCK"

// Stepper drives one Engine's external interface clock pin over
// successive ticks, one logical CPU cycle at a time.
type Stepper struct {
	eng        *engine.Engine
	ifaceName  string
	period     int
	cycleCount int
}

// Builder constructs a Stepper with the With*/Build chainable idiom
// used throughout this core's ambient configuration surface.
type Builder struct {
	eng       *engine.Engine
	ifaceName string
	period    int
}

// NewBuilder returns a Builder with period defaulted to 4, the
// smallest meaningful even period.
func NewBuilder() Builder {
	return Builder{period: 4}
}

// WithEngine sets the Engine the stepper drives.
func (b Builder) WithEngine(eng *engine.Engine) Builder {
	b.eng = eng
	return b
}

// WithInterface sets the namespaced name of the external interface
// component whose CLOCK variable the stepper writes.
func (b Builder) WithInterface(name string) Builder {
	b.ifaceName = name
	return b
}

// WithPeriod sets the number of ticks per logical CPU cycle. Must be
// an even integer >= 2 (spec.md §4.8).
func (b Builder) WithPeriod(period int) Builder {
	b.period = period
	return b
}

// Build validates the builder's settings and returns a ready Stepper.
func (b Builder) Build() (*Stepper, error) {
	if b.eng == nil {
		return nil, fmt.Errorf("cyclestepper: no engine set")
	}
	if b.ifaceName == "" {
		return nil, fmt.Errorf("cyclestepper: no interface component name set")
	}
	if b.period < 2 || b.period%2 != 0 {
		return nil, fmt.Errorf("cyclestepper: period must be an even integer >= 2, got %d", b.period)
	}
	return &Stepper{eng: b.eng, ifaceName: b.ifaceName, period: b.period}, nil
}

// Cycle returns the number of complete cycles run so far.
func (s *Stepper) Cycle() int { return s.cycleCount }

// Period returns the configured number of ticks per cycle.
func (s *Stepper) Period() int { return s.period }

// Step runs one complete low -> settle -> high excursion of the clock
// and returns the final chunk of the cycle (spec.md §4.8).
func (s *Stepper) Step() (*engine.WaveformChunk, error) {
	half := s.period / 2

	if !s.eng.SetComponentVariable(s.ifaceName, ifaceClockVar, 0) {
		return nil, fmt.Errorf("cyclestepper: no such interface component %q", s.ifaceName)
	}

	var chunk *engine.WaveformChunk
	var err error
	for i := 0; i < half; i++ {
		if chunk, err = s.eng.Tick(); err != nil {
			return chunk, err
		}
	}

	// One extra tick with CLOCK still low: latches fully settle before
	// the rising edge, matching the debugger's stepping convention.
	if chunk, err = s.eng.Tick(); err != nil {
		return chunk, err
	}

	s.eng.SetComponentVariable(s.ifaceName, ifaceClockVar, 1)
	for i := 0; i < half; i++ {
		if chunk, err = s.eng.Tick(); err != nil {
			return chunk, err
		}
	}

	s.cycleCount++

	return chunk, nil
}

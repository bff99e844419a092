// Package network implements the electrical nodes of the simulated
// circuit: tri-state networks that accumulate driver contributions
// during a tick and resolve to a single committed state at commit time.
package network

import "fmt"

// State is the resolved state of a Network.
type State int

const (
	// Floating means no component is driving the network.
	Floating State = iota
	// DrivenHigh means at least one component drives the network HIGH
	// and no component disagrees.
	DrivenHigh
	// DrivenLow means at least one component drives the network LOW
	// and no component disagrees.
	DrivenLow
	// Conflict means two distinct components drove opposite values.
	Conflict
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Floating:
		return "FLOATING"
	case DrivenHigh:
		return "DRIVEN_HIGH"
	case DrivenLow:
		return "DRIVEN_LOW"
	case Conflict:
		return "CONFLICT"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Network is a single electrical node. Readers only ever observe the
// committed state of the previous tick; writers only ever touch the
// pending accumulator for the current tick. Network is not safe for
// concurrent use — the simulator is strictly single-threaded.
type Network struct {
	// Name is the namespaced network name, e.g. "ALU:sum_out!".
	Name string

	committed State
	drivers   []string

	pending        State
	pendingDrivers []string
	// pendingSeen dedupes Drive calls from the same component within a
	// tick without scanning pendingDrivers.
	pendingSeen map[string]bool
}

// New creates a Network in the FLOATING state.
func New(name string) *Network {
	return &Network{
		Name:        name,
		committed:   Floating,
		pending:     Floating,
		pendingSeen: make(map[string]bool),
	}
}

// Drive accumulates a driver contribution for the current tick. A
// component driving the same pin twice in one tick is idempotent. Two
// components driving opposite values produce CONFLICT; two components
// driving the same value keep that driven value and both are recorded
// as drivers.
func (n *Network) Drive(componentID string, value bool) {
	if n.pendingSeen[componentID] {
		return
	}

	driven := DrivenLow
	if value {
		driven = DrivenHigh
	}

	switch n.pending {
	case Floating:
		n.pending = driven
	case driven:
		// same logic level, no conflict
	default:
		n.pending = Conflict
	}

	n.pendingSeen[componentID] = true
	n.pendingDrivers = append(n.pendingDrivers, componentID)
}

// Commit moves the pending accumulator into the committed snapshot and
// resets the accumulator to FLOATING. Must be called exactly once per
// tick, after every component has had a chance to call Drive.
func (n *Network) Commit() {
	n.committed = n.pending
	n.drivers = n.pendingDrivers

	n.pending = Floating
	n.pendingDrivers = nil
	n.pendingSeen = make(map[string]bool)
}

// State returns the committed state as of the end of the previous tick.
func (n *Network) State() State {
	return n.committed
}

// Drivers returns the ordered list of component ids that drove the
// network during the previous tick.
func (n *Network) Drivers() []string {
	return n.drivers
}

// Read returns true only when the committed state is DRIVEN_HIGH.
// DRIVEN_LOW, FLOATING and CONFLICT all read as false — callers that
// need to distinguish those must inspect State() directly.
func (n *Network) Read() bool {
	return n.committed == DrivenHigh
}

// IsFloating reports whether the committed state is FLOATING.
func (n *Network) IsFloating() bool {
	return n.committed == Floating
}

// PendingState returns the in-progress accumulator state for the
// current tick, before Commit. Privileged read used only by the
// Backplane's cross-module bus merge, which runs after every ordinary
// component has had a chance to Drive but before networks commit.
func (n *Network) PendingState() State {
	return n.pending
}

// PendingDrivers returns the in-progress accumulator driver list for
// the current tick. See PendingState.
func (n *Network) PendingDrivers() []string {
	return n.pendingDrivers
}

// OverwritePending replaces the pending accumulator outright, bypassing
// the normal Drive arbitration. Only the Backplane's cross-module union
// merge uses this: having read every bound module's pending state for a
// shared bus line, it writes the merged result back into each of them.
func (n *Network) OverwritePending(state State, drivers []string) {
	n.pending = state
	n.pendingDrivers = append([]string(nil), drivers...)
	n.pendingSeen = make(map[string]bool, len(drivers))
	for _, d := range drivers {
		n.pendingSeen[d] = true
	}
}

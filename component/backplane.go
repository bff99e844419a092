package component

import (
	"fmt"
	"sort"

	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// BackplaneVCCPins are the backplane pins tied to the power rail while
// the backplane is powered (spec.md §6.3).
var BackplaneVCCPins = []string{"A1", "A2", "A3", "A4", "A5", "B1", "B2", "B3", "B4", "B5"}

// BackplaneGNDPins are the backplane pins tied to ground whenever the
// backplane is powered (spec.md §6.3).
var BackplaneGNDPins = []string{
	"A12", "A13", "A23", "A32", "A41", "A50", "A59", "A63", "A64", "A65",
	"A66", "A70", "A71", "A72", "A73", "A74", "A75", "A76",
	"B12", "B13", "B23", "B32", "B41", "B50", "B59", "B62", "B63", "B64",
	"B65", "B66", "B67", "B68", "B69", "B70", "B71", "B72", "B75", "B76",
}

// Backplane is the passive bus joining every module's BusConnectors.
// It has no networks of its own: each of its 82+82 named pins is
// backed by the list of per-module local networks that some
// BusConnector has registered under that pin name. Its propagate
// drives the reserved power/ground rails, then resolves every shared
// pin by a union merge across all bound networks' pending state and
// writes the merged result back into each of them — the subtle
// cross-module synchronization spec.md §9 calls out, ported directly
// from the reference busconnector's "naive synchronization" pass so
// its exact driver-counting order is preserved.
type Backplane struct {
	id    string
	power bool
	bound map[string][]*network.Network
}

func NewBackplane() *Backplane {
	bp := &Backplane{id: "BP", bound: make(map[string][]*network.Network, 164)}
	for i := 1; i <= 82; i++ {
		bp.bound[fmt.Sprintf("A%d", i)] = nil
		bp.bound[fmt.Sprintf("B%d", i)] = nil
	}
	return bp
}

func (bp *Backplane) Name() string { return bp.id }

// SetPower turns the backplane's power rails on or off.
func (bp *Backplane) SetPower(on bool) { bp.power = on }

// Powered reports the current power state.
func (bp *Backplane) Powered() bool { return bp.power }

// Register binds a local network to a backplane pin name. Called by
// the loader once per BusConnector pin that matches a known backplane
// pin.
func (bp *Backplane) Register(pin string, n *network.Network) {
	if _, known := bp.bound[pin]; !known {
		return
	}
	bp.bound[pin] = append(bp.bound[pin], n)
}

// KnownPin reports whether pin names one of the 164 backplane lines.
func (bp *Backplane) KnownPin(pin string) bool {
	_, known := bp.bound[pin]
	return known
}

func (bp *Backplane) Propagate(log *logsink.Sink) {
	if bp.power {
		for _, p := range BackplaneVCCPins {
			for _, n := range bp.bound[p] {
				n.Drive(bp.id, true)
			}
		}
		for _, p := range BackplaneGNDPins {
			for _, n := range bp.bound[p] {
				n.Drive(bp.id, false)
			}
		}
	}

	for _, nets := range bp.bound {
		if len(nets) == 0 {
			continue
		}

		state := network.Floating
		driverSet := make(map[string]bool)

		for _, n := range nets {
			for _, d := range n.PendingDrivers() {
				driverSet[d] = true
			}

			ns := n.PendingState()
			switch {
			case state == network.Conflict:
				// already conflicting; keep accumulating drivers only
			case ns == network.Conflict:
				state = network.Conflict
			case ns != network.Floating && state == network.Floating:
				state = ns
			case ns == state:
				// agrees so far
			case ns != network.Floating:
				state = network.Conflict
			}
		}

		// The merge above can call a pin DRIVEN_X before every bound
		// network has been visited; re-check the full driver union now
		// that it's final (spec.md §9: DRIVEN_X iff exactly one driver).
		if state != network.Floating && state != network.Conflict && len(driverSet) != 1 {
			state = network.Conflict
		}

		drivers := make([]string, 0, len(driverSet))
		for d := range driverSet {
			drivers = append(drivers, d)
		}
		sort.Strings(drivers)

		for _, n := range nets {
			n.OverwritePending(state, drivers)
		}
	}
}

// Package netlist parses the Dragonfly 8b9m netlist text format: a
// flat stream of .ADD_COM/.ADD_TER/.TER directives describing a
// module's components and the networks wiring their pins together.
package netlist

import (
	"fmt"
	"regexp"
	"strings"
)

// fieldSep splits directive lines on runs of two or more spaces. The
// reference netlist generator emits a fixed 3- or 5-space gutter
// depending on directive, but treating any run of >=2 spaces as a
// field separator parses both without hardcoding either width.
var fieldSep = regexp.MustCompile(`\s{2,}`)

// FootprintsFilteredOut lists component footprints dropped during
// parsing: they carry no simulated behavior (test points).
var FootprintsFilteredOut = map[string]bool{
	"TestPoint:TestPoint_Pad_D1.0mm": true,
}

// TypesFilteredOut lists component type designators dropped outright
// regardless of footprint (bare decoupling capacitors).
var TypesFilteredOut = map[string]bool{
	"C": true,
}

// ResistorTypes lists component type designators treated as a
// two-terminal pull-up resistor: elided by merging its two networks,
// provided one of them is the VCC rail.
var ResistorTypes = map[string]bool{
	"R":     true,
	"5kOhm": true,
}

type rawComponent struct {
	Type      string
	Footprint string
}

type terminal struct {
	Component string
	Pin       string
}

// Component is one parsed, post-filtering netlist component: its
// declared type designator and a pin -> local network name map.
type Component struct {
	UUID string
	Type string
	Pins map[string]string
}

// Netlist is the parsed, filtered result of one module's netlist text.
type Netlist struct {
	Components []Component
	Networks   []string
}

// Parse parses one module's netlist text.
//
// .ADD_COM <uuid> "<type>" "<footprint>" declares a component.
// .ADD_TER <uuid> <pin> "<net>" opens a network named <net>, naming
// its first terminal. A following bare line or one prefixed .TER,
// "<uuid> <pin>", appends another terminal to the network most
// recently opened by .ADD_TER. Any other dot-directive is ignored.
//
// Resistors (ResistorTypes) are elided: their two connected networks
// are merged into one, which must be the VCC rail. Components whose
// footprint is in FootprintsFilteredOut, or whose type designator is
// in TypesFilteredOut, are dropped from the result but their networks
// survive with the remaining terminals.
func Parse(data string) (*Netlist, error) {
	components := make(map[string]rawComponent)
	networks := make(map[string][]terminal)
	var order []string
	var lastNet string

	for _, rawLine := range strings.Split(data, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, ".ADD_COM"):
			fields := fieldSep.Split(strings.TrimSpace(strings.TrimPrefix(line, ".ADD_COM")), -1)
			if len(fields) != 3 {
				return nil, fmt.Errorf("netlist: malformed .ADD_COM line: %q", line)
			}
			uuid, typeName, footprint := fields[0], unquote(fields[1]), unquote(fields[2])
			if _, exists := components[uuid]; exists {
				return nil, fmt.Errorf("netlist: component %s defined multiple times", uuid)
			}
			components[uuid] = rawComponent{Type: typeName, Footprint: footprint}
			order = append(order, uuid)

		case strings.HasPrefix(line, ".ADD_TER"):
			fields := fieldSep.Split(strings.TrimSpace(strings.TrimPrefix(line, ".ADD_TER")), -1)
			if len(fields) != 3 {
				return nil, fmt.Errorf("netlist: malformed .ADD_TER line: %q", line)
			}
			uuid, pin, netName := fields[0], fields[1], unquote(fields[2])
			if _, exists := networks[netName]; exists {
				return nil, fmt.Errorf("netlist: network %s defined multiple times", netName)
			}
			if _, exists := components[uuid]; !exists {
				return nil, fmt.Errorf("netlist: component %s not defined", uuid)
			}
			networks[netName] = []terminal{{Component: uuid, Pin: pin}}
			lastNet = netName

		case strings.HasPrefix(line, ".TER") || !strings.HasPrefix(line, "."):
			fields := fieldSep.Split(strings.TrimSpace(strings.TrimPrefix(line, ".TER")), -1)
			if len(fields) != 2 {
				return nil, fmt.Errorf("netlist: malformed terminal line: %q", line)
			}
			uuid, pin := fields[0], fields[1]
			if lastNet == "" {
				return nil, fmt.Errorf("netlist: terminal line found before any .ADD_TER")
			}
			if _, exists := components[uuid]; !exists {
				return nil, fmt.Errorf("netlist: component %s not defined", uuid)
			}
			networks[lastNet] = append(networks[lastNet], terminal{Component: uuid, Pin: pin})

		default:
			// other dot-directives carry no simulated meaning
		}
	}

	if err := replaceResistors(components, networks); err != nil {
		return nil, err
	}

	pinouts := make(map[string]map[string]string)
	netNames := make([]string, 0, len(networks))
	for netName, terms := range networks {
		netNames = append(netNames, netName)
		for _, t := range terms {
			if pinouts[t.Component] == nil {
				pinouts[t.Component] = make(map[string]string)
			}
			pinouts[t.Component][t.Pin] = netName
		}
	}

	result := &Netlist{Networks: netNames}
	for _, uuid := range order {
		c, ok := components[uuid]
		if !ok {
			continue // elided as a resistor
		}
		if FootprintsFilteredOut[c.Footprint] || TypesFilteredOut[c.Type] {
			continue
		}
		result.Components = append(result.Components, Component{
			UUID: uuid,
			Type: c.Type,
			Pins: pinouts[uuid],
		})
	}

	return result, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func replaceResistors(components map[string]rawComponent, networks map[string][]terminal) error {
	var toRemove []string

	for uuid, c := range components {
		if !ResistorTypes[c.Type] {
			continue
		}

		var connectedNets []string
		for netName, terms := range networks {
			for _, t := range terms {
				if t.Component == uuid {
					connectedNets = append(connectedNets, netName)
					break
				}
			}
		}

		if len(connectedNets) != 2 {
			return fmt.Errorf("netlist: resistor %s does not have exactly two connections", uuid)
		}

		var vccNet, otherNet string
		switch {
		case connectedNets[0] == "VCC":
			vccNet, otherNet = connectedNets[0], connectedNets[1]
		case connectedNets[1] == "VCC":
			vccNet, otherNet = connectedNets[1], connectedNets[0]
		default:
			return fmt.Errorf("netlist: resistor %s is not connected to VCC", uuid)
		}

		var merged []terminal
		for _, t := range networks[vccNet] {
			if t.Component != uuid {
				merged = append(merged, t)
			}
		}
		for _, t := range networks[otherNet] {
			if t.Component != uuid {
				merged = append(merged, t)
			}
		}
		networks[vccNet] = merged
		delete(networks, otherNet)

		toRemove = append(toRemove, uuid)
	}

	for _, uuid := range toRemove {
		delete(components, uuid)
	}

	return nil
}

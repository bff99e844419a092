// Package loader assembles one or more per-module netlists into a
// single wired CPU: it name-spaces every component and network by
// module, binds BusConnectors to the shared Backplane, verifies
// exactly one external Interface is present, and binds EEPROM
// microcode tables.
package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/draklowell/dragonfly8b9m-sim/component"
	"github.com/draklowell/dragonfly8b9m-sim/cpu"
	"github.com/draklowell/dragonfly8b9m-sim/netlist"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

// Module is one module's netlist source, keyed by the name its
// components and networks will be prefixed with.
type Module struct {
	Name string
	Data string
}

type simpleCtor func(id string, pins map[string]*network.Network) component.Component

func wrap[T component.Component](ctor func(string, map[string]*network.Network) T) simpleCtor {
	return func(id string, pins map[string]*network.Network) component.Component {
		return ctor(id, pins)
	}
}

// typeRegistry maps a netlist type designator to the component
// constructor it builds, grounded on the reference loader's MAPPING
// table (74LSxx and 74HCxx designators behave identically).
var typeRegistry = map[string]simpleCtor{
	"74LS00":  wrap(component.NewNand4),
	"74HC00":  wrap(component.NewNand4),
	"74LS02":  wrap(component.NewNor4),
	"74HC02":  wrap(component.NewNor4),
	"74LS04":  wrap(component.NewInv6),
	"74HC04":  wrap(component.NewInv6),
	"74LS109": wrap(component.NewJK109),
	"74HC109": wrap(component.NewJK109),
	"74LS138": wrap(component.NewDecoder138),
	"74HC138": wrap(component.NewDecoder138),
	"74LS154": wrap(component.NewDecoder154),
	"74HC154": wrap(component.NewDecoder154),
	"74LS161": wrap(component.NewCounter161),
	"74HC161": wrap(component.NewCounter161),
	"74LS181": wrap(component.NewALU181),
	"74HC181": wrap(component.NewALU181),
	"74LS193": wrap(component.NewUpDown193),
	"74HC193": wrap(component.NewUpDown193),
	"74LS245": wrap(component.NewTransceiver245),
	"74HC245": wrap(component.NewTransceiver245),
	"74LS273": wrap(component.NewDFF273),
	"74HC273": wrap(component.NewDFF273),
	"74LS574": wrap(component.NewDFF574),
	"74HC574": wrap(component.NewDFF574),
	"28C256":  wrap(component.NewEEPROM),
}

const busConnectorType = "BusConnector"
const interfaceType = "Conn_02x19_Counter_Clockwise"

// backplaneModuleName is reserved: it is the Backplane's own
// identity, so no ordinary module may claim it.
const backplaneModuleName = "BP"

// Load parses every module's netlist, name-spaces its components and
// networks, wires BusConnectors to a shared Backplane, and binds the
// eight microcode tables into the EEPROMs named TABLE1..TABLE8. tables
// must hold exactly 8 byte slices, each component.EEPROMSize bytes
// long.
func Load(modules []Module, tables [8][]byte) (*cpu.CPU, error) {
	backplane := component.NewBackplane()

	components := make(map[string]component.Component)
	var order []string
	networks := make(map[string]*network.Network)
	var iface *component.Interface

	for _, mod := range modules {
		if mod.Name == backplaneModuleName {
			return nil, fmt.Errorf("loader: module name %q is reserved for the backplane", mod.Name)
		}

		parsed, err := netlist.Parse(mod.Data)
		if err != nil {
			return nil, fmt.Errorf("loader: module %s: %w", mod.Name, err)
		}

		localNetworks := make(map[string]*network.Network, len(parsed.Networks))
		for _, netName := range parsed.Networks {
			if strings.Contains(netName, ":") {
				return nil, fmt.Errorf("loader: network name %q in module %s cannot contain ':'", netName, mod.Name)
			}
			fullName := mod.Name + ":" + netName + "!"
			n := network.New(fullName)
			localNetworks[netName] = n
			networks[fullName] = n
		}

		for _, decl := range parsed.Components {
			if strings.Contains(decl.UUID, ":") {
				return nil, fmt.Errorf("loader: component name %q in module %s cannot contain ':'", decl.UUID, mod.Name)
			}

			pins := make(map[string]*network.Network, len(decl.Pins))
			for pin, netName := range decl.Pins {
				pins[pin] = localNetworks[netName]
			}

			fullName := mod.Name + ":" + decl.UUID

			var comp component.Component
			switch decl.Type {
			case busConnectorType:
				bc := component.NewBusConnector(fullName, pins)
				component.BindBusConnector(bc, backplane)
				comp = bc
			case interfaceType:
				if iface != nil {
					return nil, fmt.Errorf("loader: multiple interfaces found (second in module %s)", mod.Name)
				}
				iface = component.NewInterface(fullName, pins)
				comp = iface
			default:
				ctor, ok := typeRegistry[decl.Type]
				if !ok {
					return nil, fmt.Errorf("loader: unknown component type %q in module %s", decl.Type, mod.Name)
				}
				comp = ctor(fullName, pins)
			}

			components[fullName] = comp
			order = append(order, fullName)
		}
	}

	if iface == nil {
		return nil, fmt.Errorf("loader: no external interface found")
	}

	if err := bindTables(components, tables); err != nil {
		return nil, err
	}

	return cpu.New(components, order, networks, iface, backplane), nil
}

// bindTables loads the eight microcode ROM images into the EEPROM
// components named TABLE1..TABLE8 within any module. Binding is by
// name suffix: an EEPROM's local name, stripped of its module prefix,
// must read "TABLE<n>" for n in 1..8, mapping to tables[n-1]. As a
// consistency check, a bound table's length must equal the EEPROM's
// capacity exactly.
func bindTables(components map[string]component.Component, tables [8][]byte) error {
	seen := make(map[int]bool, 8)

	for fullName, comp := range components {
		eeprom, ok := comp.(*component.EEPROM)
		if !ok {
			continue
		}

		sep := strings.IndexByte(fullName, ':')
		if sep < 0 {
			continue
		}
		localName := fullName[sep+1:]
		if !strings.HasPrefix(localName, "TABLE") {
			continue
		}

		n, err := strconv.Atoi(strings.TrimPrefix(localName, "TABLE"))
		if err != nil || n < 1 || n > 8 {
			return fmt.Errorf("loader: eeprom %s has a malformed TABLE suffix", fullName)
		}

		data := tables[n-1]
		if len(data) != component.EEPROMSize {
			return fmt.Errorf("loader: table%d has incorrect size: %d bytes", n-1, len(data))
		}

		if err := eeprom.LoadData(data, 0); err != nil {
			return fmt.Errorf("loader: %w", err)
		}
		seen[n-1] = true
	}

	if len(seen) != 8 {
		var missing []int
		for i := 0; i < 8; i++ {
			if !seen[i] {
				missing = append(missing, i)
			}
		}
		return fmt.Errorf("loader: missing EEPROM tables: %v", missing)
	}

	return nil
}

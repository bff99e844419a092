package observation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/draklowell/dragonfly8b9m-sim/waveform"
)

// DumpChunk renders a WaveformChunk's network states, drivers, and
// component variables as a human-readable table, the way a debugger
// or CLI front-end would format one tick's worth of observation data.
// It never errors: an empty chunk renders an empty table.
func DumpChunk(chunk *waveform.Chunk) string {
	var b strings.Builder

	fmt.Fprintf(&b, "tick %d\n", chunk.Tick)

	netNames := make([]string, 0, len(chunk.NetworkStates))
	for name := range chunk.NetworkStates {
		netNames = append(netNames, name)
	}
	sort.Strings(netNames)

	netTable := table.NewWriter()
	netTable.AppendHeader(table.Row{"network", "state", "drivers"})
	for _, name := range netNames {
		drivers := append([]string(nil), chunk.NetworkDrivers[name]...)
		sort.Strings(drivers)
		netTable.AppendRow(table.Row{name, chunk.NetworkStates[name].String(), strings.Join(drivers, ",")})
	}
	b.WriteString(netTable.Render())
	b.WriteString("\n")

	varNames := make([]string, 0, len(chunk.Variables))
	for name := range chunk.Variables {
		varNames = append(varNames, name)
	}
	sort.Strings(varNames)

	if len(varNames) > 0 {
		varTable := table.NewWriter()
		varTable.AppendHeader(table.Row{"component", "variable", "value"})
		for _, name := range varNames {
			vars := chunk.Variables[name]
			varKeys := make([]string, 0, len(vars))
			for k := range vars {
				varKeys = append(varKeys, k)
			}
			sort.Strings(varKeys)
			for _, k := range varKeys {
				varTable.AppendRow(table.Row{name, k, vars[k]})
			}
		}
		b.WriteString(varTable.Render())
		b.WriteString("\n")
	}

	for _, entry := range chunk.Logs {
		fmt.Fprintf(&b, "[%s] %s: %s\n", entry.Level, entry.Source, entry.Message)
	}

	return b.String()
}

package engine

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/process"
)

// StatsReporter periodically samples host CPU and RSS usage during a
// long step-until-halted run. It is purely diagnostic: nothing it
// observes feeds back into the simulated circuit.
type StatsReporter struct {
	every int
	proc  *process.Process
}

// NewStatsReporter builds a StatsReporter that samples every n calls
// to Sample.
func NewStatsReporter(every int) (*StatsReporter, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("engine: stats reporter: %w", err)
	}
	return &StatsReporter{every: every, proc: proc}, nil
}

// Sample reports host CPU percent and RSS if cycle is a multiple of
// the configured sampling period; otherwise it is a no-op. Intended to
// be called once per cycle from a cyclestepper loop.
func (r *StatsReporter) Sample(cycle int) (*Stats, error) {
	if r.every <= 0 || cycle%r.every != 0 {
		return nil, nil
	}

	cpuPct, err := cpu.Percent(0, false)
	if err != nil {
		return nil, fmt.Errorf("engine: sampling cpu percent: %w", err)
	}

	mem, err := r.proc.MemoryInfo()
	if err != nil {
		return nil, fmt.Errorf("engine: sampling memory info: %w", err)
	}

	stats := &Stats{Cycle: cycle, RSSBytes: mem.RSS}
	if len(cpuPct) > 0 {
		stats.CPUPercent = cpuPct[0]
	}
	return stats, nil
}

// Stats is one diagnostic sample taken by StatsReporter.
type Stats struct {
	Cycle      int
	CPUPercent float64
	RSSBytes   uint64
}

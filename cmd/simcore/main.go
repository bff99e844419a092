// Command simcore loads a Dragonfly 8b9m system manifest and runs it
// cycle by cycle, optionally dumping each cycle's WaveformChunk. It is
// a thin operator-facing front end over the engine/cyclestepper
// packages — the debugger, VCD writer, and TUI are separate consumers
// of the same chunk stream and are out of this core's scope.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/tebeka/atexit"

	"github.com/draklowell/dragonfly8b9m-sim/config"
	"github.com/draklowell/dragonfly8b9m-sim/cyclestepper"
	"github.com/draklowell/dragonfly8b9m-sim/observation"
)

func main() {
	manifestPath := flag.String("manifest", "", "path to a system manifest YAML file")
	iface := flag.String("interface", "", "namespaced name of the external interface component")
	period := flag.Int("period", 4, "ticks per CPU clock cycle")
	cycles := flag.Int("cycles", 1, "number of cycles to run")
	dump := flag.Bool("dump", false, "print each cycle's WaveformChunk")
	monitor := flag.Bool("monitor", false, "attach an akita monitoring.Monitor for introspection")
	flag.Parse()

	if *manifestPath == "" || *iface == "" {
		log.Fatal("simcore: -manifest and -interface are required")
	}

	manifest, err := config.LoadManifestFromYAML(*manifestPath)
	if err != nil {
		log.Fatalf("simcore: %v", err)
	}

	builder := config.NewBuilder(filepath.Dir(*manifestPath)).WithManifest(manifest)

	eng, err := builder.Build()
	if err != nil {
		log.Fatalf("simcore: %v", err)
	}

	if *monitor {
		m := monitoring.NewMonitor()
		eng = eng.WithMonitor(m)
	}

	eng.SetPower(true)

	stepper, err := cyclestepper.NewBuilder().
		WithEngine(eng).
		WithInterface(*iface).
		WithPeriod(*period).
		Build()
	if err != nil {
		log.Fatalf("simcore: %v", err)
	}

	atexit.Register(func() {
		fmt.Printf("simcore: run %s stopped after %d cycles\n", eng.RunID.String(), stepper.Cycle())
	})

	for i := 0; i < *cycles; i++ {
		chunk, err := stepper.Step()
		if err != nil {
			log.Fatalf("simcore: cycle %d: %v", stepper.Cycle(), err)
		}
		if *dump {
			fmt.Println(observation.DumpChunk(chunk))
		}
	}

	atexit.Exit(0)
}

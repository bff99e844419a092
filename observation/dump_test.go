package observation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/draklowell/dragonfly8b9m-sim/logsink"
	"github.com/draklowell/dragonfly8b9m-sim/network"
	"github.com/draklowell/dragonfly8b9m-sim/observation"
	"github.com/draklowell/dragonfly8b9m-sim/waveform"
)

var _ = Describe("DumpChunk", func() {
	It("renders network states, variables, and logs", func() {
		chunk := &waveform.Chunk{
			Tick: 7,
			NetworkStates: map[string]network.State{
				"M:net!": network.DrivenHigh,
			},
			NetworkDrivers: map[string][]string{
				"M:net!": {"M:U1"},
			},
			Variables: map[string]map[string]int{
				"M:U1": {"Q": 5},
			},
			Logs: []logsink.Entry{
				{Level: logsink.Warning, Source: "M:U1", Message: "test"},
			},
		}

		out := observation.DumpChunk(chunk)
		Expect(out).To(ContainSubstring("tick 7"))
		Expect(out).To(ContainSubstring("M:net!"))
		Expect(out).To(ContainSubstring("DRIVEN_HIGH"))
		Expect(out).To(ContainSubstring("Q"))
		Expect(out).To(ContainSubstring("WARNING"))
	})

	It("never errors on an empty chunk", func() {
		chunk := &waveform.Chunk{}
		Expect(func() { observation.DumpChunk(chunk) }).NotTo(Panic())
	})
})

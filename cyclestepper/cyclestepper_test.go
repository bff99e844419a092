package cyclestepper_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/draklowell/dragonfly8b9m-sim/component"
	"github.com/draklowell/dragonfly8b9m-sim/cyclestepper"
	"github.com/draklowell/dragonfly8b9m-sim/engine"
	"github.com/draklowell/dragonfly8b9m-sim/loader"
)

const ifaceName = "M1:IFACE1"

func fullTables() [8][]byte {
	var tables [8][]byte
	for i := range tables {
		tables[i] = make([]byte, component.EEPROMSize)
	}
	return tables
}

func netlistWithTables() string {
	var b strings.Builder
	b.WriteString(".ADD_COM IFACE1     \"Conn_02x19_Counter_Clockwise\"     \"Conn:Conn_02x19\"\n")
	for i := 1; i <= 8; i++ {
		b.WriteString(".ADD_COM TABLE")
		b.WriteString(string(rune('0' + i)))
		b.WriteString("     \"28C256\"     \"DIP:DIP-28\"\n")
	}
	return b.String()
}

func loadEngine() *engine.Engine {
	eng := engine.New()
	err := eng.Load([]loader.Module{{Name: "M1", Data: netlistWithTables()}}, fullTables(), make([]byte, 64))
	Expect(err).NotTo(HaveOccurred())
	return eng
}

var _ = Describe("Builder", func() {
	It("rejects an odd period", func() {
		_, err := cyclestepper.NewBuilder().
			WithEngine(loadEngine()).
			WithInterface(ifaceName).
			WithPeriod(3).
			Build()
		Expect(err).To(HaveOccurred())
	})

	It("rejects a missing engine", func() {
		_, err := cyclestepper.NewBuilder().WithInterface(ifaceName).Build()
		Expect(err).To(HaveOccurred())
	})

	It("builds with a default period of 4", func() {
		s, err := cyclestepper.NewBuilder().
			WithEngine(loadEngine()).
			WithInterface(ifaceName).
			Build()
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Period()).To(Equal(4))
	})
})

var _ = Describe("Stepper", func() {
	It("runs a full low-settle-high excursion per Step and counts cycles", func() {
		s, err := cyclestepper.NewBuilder().
			WithEngine(loadEngine()).
			WithInterface(ifaceName).
			WithPeriod(4).
			Build()
		Expect(err).NotTo(HaveOccurred())

		chunk, err := s.Step()
		Expect(err).NotTo(HaveOccurred())
		Expect(chunk).NotTo(BeNil())
		Expect(s.Cycle()).To(Equal(1))

		// period 4: 2 low ticks + 1 settle tick + 2 high ticks = 5 ticks
		Expect(chunk.Tick).To(Equal(4))

		_, err = s.Step()
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Cycle()).To(Equal(2))
	})
})

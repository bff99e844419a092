package component_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/draklowell/dragonfly8b9m-sim/component"
	"github.com/draklowell/dragonfly8b9m-sim/network"
)

var _ = Describe("EEPROM", func() {
	newEEPROM := func(address int, ncs, noe, nwe bool) (*component.EEPROM, map[string]*network.Network) {
		vcc, gnd := powerPins()
		pins := map[string]*network.Network{"VCC": vcc, "GND": gnd}

		ncsN := network.New("NCS!")
		setInput(ncsN, ncs)
		pins["NCS"] = ncsN
		noeN := network.New("NOE!")
		setInput(noeN, noe)
		pins["NOE"] = noeN
		nweN := network.New("NWE!")
		setInput(nweN, nwe)
		pins["NWE"] = nweN

		for i := 0; i < 15; i++ {
			a := network.New("A!")
			setInput(a, address&(1<<uint(i)) != 0)
			pins["A"+string(rune('0'+i))] = a
		}
		for i := 0; i < 8; i++ {
			pins["D"+string(rune('0'+i))] = network.New("D!")
		}

		return component.NewEEPROM("U1", pins), pins
	}

	readData := func(pins map[string]*network.Network) (value uint8, floating bool) {
		floating = true
		for i := 0; i < 8; i++ {
			n := pins["D"+string(rune('0'+i))]
			n.Commit()
			if !n.IsFloating() {
				floating = false
			}
			if n.Read() {
				value |= 1 << uint(i)
			}
		}
		return
	}

	It("drives data out when selected, output-enabled and not write-enabled", func() {
		c, pins := newEEPROM(2, false, false, true)
		Expect(c.LoadData([]byte{0xA5}, 2)).To(Succeed())

		c.Propagate(newSink())
		value, floating := readData(pins)

		Expect(floating).To(BeFalse())
		Expect(value).To(Equal(uint8(0xA5)))
	})

	It("leaves data floating when chip select is not asserted", func() {
		c, pins := newEEPROM(2, true, false, true)
		Expect(c.LoadData([]byte{0xA5}, 2)).To(Succeed())

		c.Propagate(newSink())
		_, floating := readData(pins)

		Expect(floating).To(BeTrue())
	})

	It("leaves data floating when output enable is not asserted", func() {
		c, pins := newEEPROM(2, false, true, true)
		Expect(c.LoadData([]byte{0xA5}, 2)).To(Succeed())

		c.Propagate(newSink())
		_, floating := readData(pins)

		Expect(floating).To(BeTrue())
	})

	It("logs an error and does not drive data on a write attempt", func() {
		c, pins := newEEPROM(2, false, false, false) // NWE asserted low: write
		sink := newSink()

		c.Propagate(sink)
		_, floating := readData(pins)

		Expect(floating).To(BeTrue())
		entries := sink.Drain()
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Level.String()).To(Equal("ERROR"))
	})

	It("rejects out-of-bounds LoadData offsets", func() {
		c, _ := newEEPROM(0, false, false, true)
		Expect(c.LoadData([]byte{1, 2, 3}, component.EEPROMSize-1)).NotTo(Succeed())
	})
})

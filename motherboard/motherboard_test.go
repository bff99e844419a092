package motherboard_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/draklowell/dragonfly8b9m-sim/motherboard"
)

var _ = Describe("Motherboard", func() {
	var mb *motherboard.Motherboard

	BeforeEach(func() {
		mb = motherboard.New()
	})

	It("reads preloaded ROM bytes", func() {
		rom := make([]byte, motherboard.RomSize)
		rom[2] = 0xA5
		Expect(mb.LoadROM(rom)).To(Succeed())

		v, err := mb.Read(0x0002)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint8(0xA5)))
	})

	It("silently ignores writes to ROM", func() {
		Expect(mb.Write(0x0010, 0xFF)).To(Succeed())
		v, err := mb.Read(0x0010)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint8(0)))
	})

	It("reads and writes RAM", func() {
		Expect(mb.Write(0x4000, 0x42)).To(Succeed())
		v, err := mb.Read(0x4000)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint8(0x42)))
	})

	It("reads and writes the stack region", func() {
		Expect(mb.Write(0xFFFF, 0x07)).To(Succeed())
		v, err := mb.Read(0xFFFF)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(uint8(0x07)))
	})

	It("fails with InvalidAddress outside every mapped region", func() {
		_, err := mb.Read(0x3000)
		Expect(err).To(HaveOccurred())
		Expect(err).To(BeAssignableToTypeOf(&motherboard.InvalidAddressError{}))
	})

	It("records the last InvalidAddress error for the engine to surface", func() {
		_, _ = mb.Read(0x3000)
		err := mb.TakeError()
		Expect(err).To(HaveOccurred())
		Expect(mb.TakeError()).To(BeNil())
	})
})

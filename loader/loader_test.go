package loader_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/draklowell/dragonfly8b9m-sim/component"
	"github.com/draklowell/dragonfly8b9m-sim/loader"
)

const ifaceNetlist = `
.ADD_COM IFACE1     "Conn_02x19_Counter_Clockwise"     "Conn:Conn_02x19"
`

func tableNetlist(names ...string) string {
	var b strings.Builder
	for _, n := range names {
		b.WriteString(".ADD_COM ")
		b.WriteString(n)
		b.WriteString("     \"28C256\"     \"DIP:DIP-28\"\n")
	}
	return b.String()
}

func fullTables() [8][]byte {
	var tables [8][]byte
	for i := range tables {
		tables[i] = make([]byte, component.EEPROMSize)
		tables[i][0] = byte(i + 1)
	}
	return tables
}

var _ = Describe("Load", func() {
	It("rejects a module named BP", func() {
		_, err := loader.Load([]loader.Module{{Name: "BP", Data: ""}}, fullTables())
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("reserved"))
	})

	It("rejects a component name containing a colon", func() {
		data := `
.ADD_COM U:1     "74LS00"     "DIP:DIP-14"
`
		_, err := loader.Load([]loader.Module{{Name: "M1", Data: data}}, fullTables())
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("':'"))
	})

	It("rejects a netlist with no interface", func() {
		data := `
.ADD_COM U1     "74LS00"     "DIP:DIP-14"
`
		_, err := loader.Load([]loader.Module{{Name: "M1", Data: data}}, fullTables())
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("no external interface"))
	})

	It("rejects a second interface", func() {
		data := ifaceNetlist + `
.ADD_COM IFACE2     "Conn_02x19_Counter_Clockwise"     "Conn:Conn_02x19"
`
		_, err := loader.Load([]loader.Module{{Name: "M1", Data: data}}, fullTables())
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("multiple interfaces"))
	})

	It("fails naming the missing table indices", func() {
		data := ifaceNetlist + tableNetlist("TABLE1", "TABLE2", "TABLE3", "TABLE4", "TABLE5", "TABLE6", "TABLE7")
		_, err := loader.Load([]loader.Module{{Name: "M1", Data: data}}, fullTables())
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("missing EEPROM tables"))
		Expect(err.Error()).To(ContainSubstring("7"))
	})

	It("wires a complete machine and binds all eight tables", func() {
		data := ifaceNetlist + tableNetlist(
			"TABLE1", "TABLE2", "TABLE3", "TABLE4",
			"TABLE5", "TABLE6", "TABLE7", "TABLE8",
		)
		c, err := loader.Load([]loader.Module{{Name: "M1", Data: data}}, fullTables())
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Interface).NotTo(BeNil())
		Expect(c.Backplane).NotTo(BeNil())
		Expect(c.Components).To(HaveLen(9))
	})
})

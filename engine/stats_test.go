package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/draklowell/dragonfly8b9m-sim/engine"
)

var _ = Describe("StatsReporter", func() {
	It("skips sampling on cycles that are not a multiple of the period", func() {
		r, err := engine.NewStatsReporter(10)
		Expect(err).NotTo(HaveOccurred())

		stats, err := r.Sample(3)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats).To(BeNil())
	})

	It("samples on a multiple of the configured period", func() {
		r, err := engine.NewStatsReporter(10)
		Expect(err).NotTo(HaveOccurred())

		stats, err := r.Sample(20)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats).NotTo(BeNil())
		Expect(stats.Cycle).To(Equal(20))
	})
})

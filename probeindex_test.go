// Copyright (c) 2024 Neomantra Corp

package idat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yhoogstrate/idat-tools"
)

var _ = Describe("ProbeIndex", func() {
	var matrix *idat.ProbeMatrix

	BeforeEach(func() {
		var err error
		matrix, err = idat.NewProbeMatrix(
			[]uint32{100, 200, 300},
			[]uint16{1, 2, 3},
			[]uint16{1000, 2000, 3000},
			[]uint8{9, 8, 7},
			[]uint32{100, 200, 300},
		)
		Expect(err).NotTo(HaveOccurred())
	})

	It("looks up a present probe id", func() {
		idx := idat.NewProbeIndex(matrix)
		Expect(idx.Len()).To(Equal(3))

		measurement, ok := idx.Get(200)
		Expect(ok).To(BeTrue())
		Expect(measurement).To(Equal(idat.ProbeMeasurement{
			ProbeID:       200,
			StdDev:        2,
			MeanIntensity: 2000,
			NBeads:        8,
			MidBlockID:    200,
		}))
	})

	It("reports absence for an unknown probe id", func() {
		idx := idat.NewProbeIndex(matrix)
		_, ok := idx.Get(999)
		Expect(ok).To(BeFalse())
	})

	It("returns the row index via Row", func() {
		idx := idat.NewProbeIndex(matrix)
		row, ok := idx.Row(300)
		Expect(ok).To(BeTrue())
		Expect(row).To(Equal(2))
	})
})

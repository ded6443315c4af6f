// Copyright (c) 2024 Neomantra Corp

package idat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yhoogstrate/idat-tools"
)

func buildProbeModel(means []uint16, stdDevs []uint16, nBeads []uint8) *idat.Model {
	model := idat.NewModel()
	probes, err := idat.NewProbeMatrix(
		[]uint32{10, 20, 30},
		stdDevs,
		means,
		nBeads,
		[]uint32{10, 20, 30},
	)
	Expect(err).NotTo(HaveOccurred())
	model.SetProbes(probes)
	Expect(model.SetSectionOrders(
		[]idat.SectionCode{idat.SectionArrayNProbes},
		[]idat.SectionCode{idat.SectionArrayNProbes},
	)).To(Succeed())
	return model
}

var _ = Describe("Mixer", func() {
	It("blends intensities linearly by fraction", func() {
		reference := buildProbeModel([]uint16{100, 200, 300}, []uint16{10, 10, 10}, []uint8{5, 5, 5})
		admixture := buildProbeModel([]uint16{300, 400, 500}, []uint16{20, 20, 20}, []uint8{5, 5, 5})

		mixer := idat.NewMixer(reference)
		mixed, err := mixer.Mix(admixture, 0.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(mixed.Probes().MeanIntensities()).To(Equal([]uint16{200, 300, 400}))
		Expect(mixed.Probes().StdDevs()).To(Equal([]uint16{15, 15, 15}))
		Expect(mixed.Probes().NBeads()).To(Equal([]uint8{10, 10, 10}))
	})

	It("returns the reference unchanged at fraction 0", func() {
		reference := buildProbeModel([]uint16{100, 200, 300}, []uint16{10, 10, 10}, []uint8{5, 5, 5})
		admixture := buildProbeModel([]uint16{999, 999, 999}, []uint16{1, 1, 1}, []uint8{1, 1, 1})

		mixer := idat.NewMixer(reference)
		mixed, err := mixer.Mix(admixture, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(mixed.Probes().MeanIntensities()).To(Equal(reference.Probes().MeanIntensities()))
	})

	It("saturates bead counts instead of overflowing", func() {
		reference := buildProbeModel([]uint16{100, 200, 300}, []uint16{10, 10, 10}, []uint8{250, 250, 250})
		admixture := buildProbeModel([]uint16{100, 200, 300}, []uint16{10, 10, 10}, []uint8{250, 250, 250})

		mixer := idat.NewMixer(reference)
		mixed, err := mixer.Mix(admixture, 0.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(mixed.Probes().NBeads()).To(Equal([]uint8{255, 255, 255}))
	})

	It("rejects a fraction outside [0, 1]", func() {
		reference := buildProbeModel([]uint16{1, 2, 3}, []uint16{1, 1, 1}, []uint8{1, 1, 1})
		admixture := buildProbeModel([]uint16{1, 2, 3}, []uint16{1, 1, 1}, []uint8{1, 1, 1})

		mixer := idat.NewMixer(reference)
		_, err := mixer.Mix(admixture, 1.5)
		Expect(err).To(MatchError(idat.ErrUsage))
	})

	It("rejects admixtures with a different probe universe", func() {
		reference := buildProbeModel([]uint16{1, 2, 3}, []uint16{1, 1, 1}, []uint8{1, 1, 1})

		other := idat.NewModel()
		probes, err := idat.NewProbeMatrix([]uint32{11, 22, 33}, []uint16{1, 1, 1}, []uint16{1, 2, 3}, []uint8{1, 1, 1}, []uint32{11, 22, 33})
		Expect(err).NotTo(HaveOccurred())
		other.SetProbes(probes)
		Expect(other.SetSectionOrders(
			[]idat.SectionCode{idat.SectionArrayNProbes},
			[]idat.SectionCode{idat.SectionArrayNProbes},
		)).To(Succeed())

		mixer := idat.NewMixer(reference)
		_, err = mixer.Mix(other, 0.5)
		Expect(err).To(MatchError(idat.ErrUsage))
	})
})

// Copyright (c) 2024 Neomantra Corp

package idat_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yhoogstrate/idat-tools"
)

func buildMinimalModel() *idat.Model {
	model := idat.NewModel()

	probes, err := idat.NewProbeMatrix(
		[]uint32{1001, 1002},
		[]uint16{10, 20},
		[]uint16{5000, 6000},
		[]uint8{3, 4},
		[]uint32{1001, 1002},
	)
	Expect(err).NotTo(HaveOccurred())
	model.SetProbes(probes)

	meta := model.Meta()
	meta.SetManifest("manifest.bpm")
	Expect(meta.SetBarcode("1234567890")).To(Succeed())
	Expect(meta.SetChipType("BeadChip 8x5")).To(Succeed())
	Expect(meta.SetChipLabel("R01C01")).To(Succeed())
	meta.SetOldStyleManifest("")
	meta.SetSampleID("sample-001")
	meta.SetDescription("a test array")
	meta.SetPlate("plate-1")
	meta.SetWell("A01")
	meta.SetUnknown1([4]byte{0, 0, 0, 0})
	meta.SetUnknown2("")
	meta.SetRedGreen(0)

	model.SetRunInfo([]idat.RunInfoEntry{
		{"Extract", "2024-01-01", "1.0", "block-a", "codeblock-a"},
	})

	indexOrder := []idat.SectionCode{
		idat.SectionArrayNProbes,
		idat.SectionProbeIDs,
		idat.SectionProbeStdDevs,
		idat.SectionProbeMeanIntensities,
		idat.SectionProbeNBeads,
		idat.SectionProbeMidBlock,
		idat.SectionArrayRedGreen,
		idat.SectionArrayManifest,
		idat.SectionArrayBarcode,
		idat.SectionArrayChipType,
		idat.SectionArrayChipLabel,
		idat.SectionArrayOldStyleManifest,
		idat.SectionArrayUnknown1,
		idat.SectionArraySampleID,
		idat.SectionArrayDescription,
		idat.SectionArrayPlate,
		idat.SectionArrayWell,
		idat.SectionArrayUnknown2,
		idat.SectionArrayRunInfo,
	}
	physicalOrder := make([]idat.SectionCode, len(indexOrder))
	copy(physicalOrder, indexOrder)
	physicalOrder[0], physicalOrder[len(physicalOrder)-1] = physicalOrder[len(physicalOrder)-1], physicalOrder[0]

	Expect(model.SetSectionOrders(indexOrder, physicalOrder)).To(Succeed())
	return model
}

var _ = Describe("Reader/Writer round trip", func() {
	It("round-trips a minimal two-probe file byte-for-byte reproducible", func() {
		model := buildMinimalModel()

		var buf bytes.Buffer
		Expect(idat.WriteModel(&buf, model)).To(Succeed())

		reread, err := idat.ReadModel(bytes.NewReader(buf.Bytes()))
		Expect(err).NotTo(HaveOccurred())

		Expect(reread.NProbes()).To(Equal(uint32(2)))
		Expect(reread.Probes().ProbeIDs()).To(Equal([]uint32{1001, 1002}))
		Expect(reread.Probes().MeanIntensities()).To(Equal([]uint16{5000, 6000}))
		Expect(reread.Meta().Barcode()).To(Equal("1234567890"))
		Expect(reread.Meta().ChipLabel()).To(Equal("R01C01"))
		Expect(reread.Meta().SampleID()).To(Equal("sample-001"))
		Expect(reread.RunInfo()).To(Equal(model.RunInfo()))

		Expect(reread.IndexOrder()).To(Equal(model.IndexOrder()))
		Expect(reread.PhysicalOrder()).To(Equal(model.PhysicalOrder()))

		var buf2 bytes.Buffer
		Expect(idat.WriteModel(&buf2, reread)).To(Succeed())
		Expect(buf2.Bytes()).To(Equal(buf.Bytes()))
	})

	It("refuses to write a Model with no probe matrix", func() {
		model := idat.NewModel()
		var buf bytes.Buffer
		err := idat.WriteModel(&buf, model)
		Expect(err).To(MatchError(idat.ErrInvariant))
		Expect(buf.Len()).To(Equal(0))
	})

	It("rejects a table of contents referencing an unknown section code", func() {
		model := buildMinimalModel()
		var buf bytes.Buffer
		Expect(idat.WriteModel(&buf, model)).To(Succeed())

		wire := buf.Bytes()
		// The first TOC entry's 2-byte code sits right after the 16-byte
		// file header; corrupt it to a code with no registry entry.
		wire[16] = 0xFF
		wire[17] = 0xFF

		_, err := idat.ReadModel(bytes.NewReader(wire))
		Expect(err).To(MatchError(idat.ErrFormat))
	})

	It("rejects a mismatched magic at the very first read", func() {
		wire := []byte("GZIPxxxxxxxxxxxx")
		_, err := idat.ReadModel(bytes.NewReader(wire))
		Expect(err).To(MatchError(idat.ErrFormat))
	})
})

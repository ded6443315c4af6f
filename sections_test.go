// Copyright (c) 2024 Neomantra Corp

package idat_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/yhoogstrate/idat-tools"
)

var _ = Describe("SectionCode", func() {
	It("names documented section codes", func() {
		Expect(idat.SectionProbeIDs.Name()).To(Equal("PROBE_IDS"))
		Expect(idat.SectionArrayNProbes.Name()).To(Equal("ARRAY_N_PROBES"))
		Expect(idat.SectionArrayRunInfo.Name()).To(Equal("ARRAY_RUN_INFO"))
	})

	It("reports an unknown code as not known", func() {
		code := idat.SectionCode(9999)
		Expect(code.IsKnown()).To(BeFalse())
		Expect(code.Name()).To(ContainSubstring("UNKNOWN"))
	})

	It("reports the kind of a known section", func() {
		kind, ok := idat.SectionProbeMidBlock.Kind()
		Expect(ok).To(BeTrue())
		Expect(kind).To(Equal(idat.KindSizedVectorU32))
	})
})

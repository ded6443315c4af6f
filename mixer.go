// Copyright (c) 2024 Neomantra Corp
//
// Mixer composes a reference Model and an "admixture" Model into a new
// Model. spec.md §4.5 mandates only the compatibility contract (magic,
// version, fraction range) and leaves the numeric composition policy an
// open question (spec.md §9). The decision taken here — recorded in
// DESIGN.md — is a simple linear blend of the per-probe intensity and
// standard-deviation columns, bead counts summed, everything else (probe
// identity, array metadata, section ordering) copied verbatim from the
// reference.

package idat

import "math"

// Mixer holds the reference Model that an admixture is blended against.
type Mixer struct {
	reference *Model
}

// NewMixer constructs a Mixer over a reference Model.
func NewMixer(reference *Model) *Mixer {
	return &Mixer{reference: reference}
}

// Mix composes the Mixer's reference Model with admixture at the given
// fraction, producing a new Model. fraction must be in [0, 1]; magic and
// version must match between reference and admixture; both models must
// describe the same probe universe (equal probe_ids, elementwise). Any
// violation is a UsageError.
func (mx *Mixer) Mix(admixture *Model, fraction float64) (*Model, error) {
	ref := mx.reference
	if fraction < 0 || fraction > 1 {
		return nil, usageErrorf("mixer fraction %f outside [0, 1]", fraction)
	}
	if ref.Header.Magic != admixture.Header.Magic {
		return nil, usageErrorf("reference magic %q does not match admixture magic %q", ref.Header.Magic, admixture.Header.Magic)
	}
	if ref.Header.Version != admixture.Header.Version {
		return nil, usageErrorf("reference version %d does not match admixture version %d", ref.Header.Version, admixture.Header.Version)
	}
	if ref.Probes() == nil || admixture.Probes() == nil {
		return nil, usageErrorf("both reference and admixture must have a probe matrix")
	}
	if ref.Probes().Len() != admixture.Probes().Len() {
		return nil, usageErrorf("reference has %d probes, admixture has %d", ref.Probes().Len(), admixture.Probes().Len())
	}
	refIDs := ref.Probes().ProbeIDs()
	admixIDs := admixture.Probes().ProbeIDs()
	for i := range refIDs {
		if refIDs[i] != admixIDs[i] {
			return nil, usageErrorf("reference and admixture probe_ids diverge at index %d (%d != %d)", i, refIDs[i], admixIDs[i])
		}
	}

	mixed := mx.blendProbes(admixture, fraction)

	out := NewModel()
	out.Header = ref.Header
	out.SetProbes(mixed)
	*out.Meta() = *ref.Meta()
	out.SetRunInfo(ref.RunInfo())
	if err := out.SetSectionOrders(ref.IndexOrder(), ref.PhysicalOrder()); err != nil {
		return nil, err
	}
	return out, nil
}

func (mx *Mixer) blendProbes(admixture *Model, fraction float64) *ProbeMatrix {
	ref := mx.reference.Probes()
	admix := admixture.Probes()
	n := ref.Len()

	means := make([]uint16, n)
	stdDevs := make([]uint16, n)
	nBeads := make([]uint8, n)
	for i := 0; i < n; i++ {
		means[i] = blendU16(ref.MeanIntensities()[i], admix.MeanIntensities()[i], fraction)
		stdDevs[i] = blendU16(ref.StdDevs()[i], admix.StdDevs()[i], fraction)
		nBeads[i] = saturatingAddU8(ref.NBeads()[i], admix.NBeads()[i])
	}

	mixed, err := NewProbeMatrix(ref.ProbeIDs(), stdDevs, means, nBeads, ref.MidBlock())
	if err != nil {
		// Unreachable: probe_ids/mid_block are copied verbatim from an
		// already-validated reference matrix.
		panic(err)
	}
	return mixed
}

func blendU16(refVal, admixVal uint16, fraction float64) uint16 {
	blended := float64(refVal)*(1-fraction) + float64(admixVal)*fraction
	return uint16(math.Round(blended))
}

func saturatingAddU8(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(sum)
}

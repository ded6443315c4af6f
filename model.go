// Copyright (c) 2024 Neomantra Corp
//
// In-memory representation of a parsed IDAT file. Every setter validates
// the invariant attached to its field in spec.md §3 and returns an
// InvariantError on violation, so every value a *Model holds has passed its
// field check; Validate covers the whole-Model checks (a probe matrix and
// section orderings are present) — replacing the source's runtime-typed
// setters with Go constructor-level validation (see the Design Notes
// remapping).

package idat

import (
	"fmt"
	"regexp"
	"strings"
)

// maxProbes bounds probe-count-driven allocations, per spec.md §5.
const maxProbes = 1 << 24

const expectedMagic = "IDAT"
const expectedVersion = uint64(3)
const expectedChipType = "BeadChip 8x5"

var (
	barcodeRe   = regexp.MustCompile(`^[0-9]+$`)
	chipLabelRe = regexp.MustCompile(`^R[0-9]+C[0-9]+$`)
)

///////////////////////////////////////////////////////////////////////////////

// FileHeader is the fixed 16-byte prefix common to every IDAT v3 file.
type FileHeader struct {
	Magic   string // always "IDAT"
	Version uint64 // always 3
}

// NewFileHeader validates magic and version per spec.md §3. Both are
// FormatErrors (spec.md §7): a file with the wrong magic or an
// unsupported version is malformed, not merely semantically inconsistent.
func NewFileHeader(magic string, version uint64) (FileHeader, error) {
	if magic != expectedMagic {
		return FileHeader{}, formatErrorf("magic %q, want %q", magic, expectedMagic)
	}
	if version != expectedVersion {
		return FileHeader{}, formatErrorf("unsupported IDAT version %d, want %d", version, expectedVersion)
	}
	return FileHeader{Magic: magic, Version: version}, nil
}

///////////////////////////////////////////////////////////////////////////////

// ProbeMatrix is the N-row, 5-column per-probe table, stored as a
// record-of-arrays (five parallel vectors) rather than an array-of-records
// so each column serializes contiguously, matching the on-disk columnar
// layout (Design Notes remapping of the source's pandas DataFrame).
type ProbeMatrix struct {
	probeIDs        []uint32
	stdDevs         []uint16
	meanIntensities []uint16
	nBeads          []uint8
	midBlock        []uint32
}

// NewProbeMatrix validates and constructs a ProbeMatrix. All five columns
// must have equal length. probeIDs must be strictly increasing and
// positive; midBlock must be elementwise equal to probeIDs (spec.md §3,
// §4.3 per-field validation, §8 property 5).
func NewProbeMatrix(probeIDs []uint32, stdDevs []uint16, meanIntensities []uint16, nBeads []uint8, midBlock []uint32) (*ProbeMatrix, error) {
	n := len(probeIDs)
	if n == 0 {
		return nil, invariantErrorf("probe matrix has zero rows")
	}
	if n > maxProbes {
		return nil, invariantErrorf("probe count %d exceeds ceiling %d", n, maxProbes)
	}
	if len(stdDevs) != n || len(meanIntensities) != n || len(nBeads) != n || len(midBlock) != n {
		return nil, invariantErrorf("probe matrix columns have mismatched lengths: ids=%d stddevs=%d means=%d nbeads=%d midblock=%d",
			n, len(stdDevs), len(meanIntensities), len(nBeads), len(midBlock))
	}

	var prev uint32
	for i, id := range probeIDs {
		if id == 0 {
			return nil, invariantErrorf("probe_ids[%d] is zero", i)
		}
		if i > 0 && id <= prev {
			return nil, invariantErrorf("probe_ids not strictly increasing at index %d (%d <= %d)", i, id, prev)
		}
		prev = id
	}
	for i := range probeIDs {
		if midBlock[i] != probeIDs[i] {
			return nil, invariantErrorf("probe_mid_block[%d]=%d does not equal probe_ids[%d]=%d", i, midBlock[i], i, probeIDs[i])
		}
	}

	return &ProbeMatrix{
		probeIDs:        probeIDs,
		stdDevs:         stdDevs,
		meanIntensities: meanIntensities,
		nBeads:          nBeads,
		midBlock:        midBlock,
	}, nil
}

// Len returns the number of probes (rows) in the matrix.
func (m *ProbeMatrix) Len() int { return len(m.probeIDs) }

func (m *ProbeMatrix) ProbeIDs() []uint32        { return m.probeIDs }
func (m *ProbeMatrix) StdDevs() []uint16         { return m.stdDevs }
func (m *ProbeMatrix) MeanIntensities() []uint16 { return m.meanIntensities }
func (m *ProbeMatrix) NBeads() []uint8           { return m.nBeads }
func (m *ProbeMatrix) MidBlock() []uint32        { return m.midBlock }

///////////////////////////////////////////////////////////////////////////////

// ArrayMeta holds the per-array string and scalar metadata fields (spec.md
// §3). Setters enforce the documented regex/literal invariants; fields
// with no documented meaning (Unknown1, Unknown2, RedGreen) are preserved
// verbatim with no validation, per spec.md §9's Open Questions.
type ArrayMeta struct {
	redGreen         uint32
	manifest         string
	barcode          string
	chipType         string
	chipLabel        string
	oldStyleManifest string
	sampleID         string
	description      string
	plate            string
	well             string
	unknown1         [4]byte
	unknown2         string
}

func (a *ArrayMeta) RedGreen() uint32         { return a.redGreen }
func (a *ArrayMeta) Manifest() string         { return a.manifest }
func (a *ArrayMeta) Barcode() string          { return a.barcode }
func (a *ArrayMeta) ChipType() string         { return a.chipType }
func (a *ArrayMeta) ChipLabel() string        { return a.chipLabel }
func (a *ArrayMeta) OldStyleManifest() string { return a.oldStyleManifest }
func (a *ArrayMeta) SampleID() string         { return a.sampleID }
func (a *ArrayMeta) Description() string      { return a.description }
func (a *ArrayMeta) Plate() string            { return a.plate }
func (a *ArrayMeta) Well() string             { return a.well }
func (a *ArrayMeta) Unknown1() [4]byte        { return a.unknown1 }
func (a *ArrayMeta) Unknown2() string         { return a.unknown2 }

// SetRedGreen sets the red/green channel marker. No validation is imposed;
// the source notes it is always observed as 0 but never enforces it.
func (a *ArrayMeta) SetRedGreen(v uint32) { a.redGreen = v }

func (a *ArrayMeta) SetManifest(v string) { a.manifest = v }

// SetBarcode validates v against `^[0-9]+$`.
func (a *ArrayMeta) SetBarcode(v string) error {
	if !barcodeRe.MatchString(v) {
		return invariantErrorf("barcode %q does not match ^[0-9]+$", v)
	}
	a.barcode = v
	return nil
}

// SetChipType validates v equals "BeadChip 8x5"; no other chip geometry is
// supported (spec.md §1 Non-goals).
func (a *ArrayMeta) SetChipType(v string) error {
	if v != expectedChipType {
		return invariantErrorf("unsupported chip type %q, only %q is supported", v, expectedChipType)
	}
	a.chipType = v
	return nil
}

// SetChipLabel validates v against `^R[0-9]+C[0-9]+$`.
func (a *ArrayMeta) SetChipLabel(v string) error {
	if !chipLabelRe.MatchString(v) {
		return invariantErrorf("chip label %q does not match ^R[0-9]+C[0-9]+$", v)
	}
	a.chipLabel = v
	return nil
}

func (a *ArrayMeta) SetOldStyleManifest(v string) { a.oldStyleManifest = v }
func (a *ArrayMeta) SetSampleID(v string)         { a.sampleID = v }
func (a *ArrayMeta) SetDescription(v string)      { a.description = v }
func (a *ArrayMeta) SetPlate(v string)            { a.plate = v }
func (a *ArrayMeta) SetWell(v string)             { a.well = v }
func (a *ArrayMeta) SetUnknown1(v [4]byte)        { a.unknown1 = v }
func (a *ArrayMeta) SetUnknown2(v string)         { a.unknown2 = v }

///////////////////////////////////////////////////////////////////////////////

// RunInfoEntry is one ordered 5-tuple of length-prefixed strings from the
// ARRAY_RUN_INFO section. The source assigns no names to the five fields,
// so they are addressed positionally.
type RunInfoEntry [5]string

///////////////////////////////////////////////////////////////////////////////

// Model is the fully-parsed, validated in-memory representation of an IDAT
// file. It is populated field-by-field by a Reader, then consumed
// read-only (by a Mixer or for inspection) or handed to a Writer. A Model
// is not safe for concurrent mutation; callers wanting parallel reads
// should construct independent Models from independent streams.
type Model struct {
	Header FileHeader

	// indexOrder is the order section codes appear in the table of
	// contents; physicalOrder is the order their bodies appear in the
	// file, i.e. indexOrder sorted by file offset ascending. The two are
	// tracked separately and both must survive a read/write round trip.
	indexOrder    []SectionCode
	physicalOrder []SectionCode

	probes *ProbeMatrix
	meta   ArrayMeta
	runInfo []RunInfoEntry
}

// NewModel constructs an empty Model with header fields pre-set to the
// only supported magic/version.
func NewModel() *Model {
	return &Model{Header: FileHeader{Magic: expectedMagic, Version: expectedVersion}}
}

// NProbes returns N, the probe count. It is zero until SetProbes is called.
func (m *Model) NProbes() uint32 {
	if m.probes == nil {
		return 0
	}
	return uint32(m.probes.Len())
}

// Probes returns the probe matrix, or nil if unset.
func (m *Model) Probes() *ProbeMatrix { return m.probes }

// SetProbes installs the probe matrix. The matrix itself is validated at
// construction (NewProbeMatrix); this only exists to attach it to the Model.
func (m *Model) SetProbes(pm *ProbeMatrix) { m.probes = pm }

// Meta returns the array metadata record.
func (m *Model) Meta() *ArrayMeta { return &m.meta }

// RunInfo returns the run-info tuples.
func (m *Model) RunInfo() []RunInfoEntry { return m.runInfo }

// SetRunInfo installs the run-info tuples. Empty is valid.
func (m *Model) SetRunInfo(entries []RunInfoEntry) { m.runInfo = entries }

// IndexOrder returns the section codes in table-of-contents order.
func (m *Model) IndexOrder() []SectionCode { return m.indexOrder }

// PhysicalOrder returns the section codes in on-disk body order.
func (m *Model) PhysicalOrder() []SectionCode { return m.physicalOrder }

// SetSectionOrders validates and installs both orderings. Every code must
// be a recognized section code, and the two orderings must be permutations
// of the same set (spec.md §3: "two orderings of the section table").
func (m *Model) SetSectionOrders(indexOrder, physicalOrder []SectionCode) error {
	if len(indexOrder) != len(physicalOrder) {
		return invariantErrorf("index order has %d entries, physical order has %d", len(indexOrder), len(physicalOrder))
	}
	counts := make(map[SectionCode]int, len(indexOrder))
	for _, c := range indexOrder {
		if !c.IsKnown() {
			return unknownSectionCodeError(uint16(c))
		}
		counts[c]++
	}
	for _, c := range physicalOrder {
		if !c.IsKnown() {
			return unknownSectionCodeError(uint16(c))
		}
		counts[c]--
	}
	for code, n := range counts {
		if n != 0 {
			return invariantErrorf("section %s appears in one order but not the other", code.Name())
		}
	}
	m.indexOrder = indexOrder
	m.physicalOrder = physicalOrder
	return nil
}

// Validate checks that the Model has a probe matrix and a non-empty section
// ordering whose index and physical orders have the same length. The probe
// count N is always the probe matrix's row count, so it needs no separate
// check. Reader and Writer both call this before trusting a Model.
func (m *Model) Validate() error {
	if m.probes == nil {
		return invariantErrorf("model has no probe matrix")
	}
	if len(m.indexOrder) == 0 {
		return invariantErrorf("model has no section ordering")
	}
	if len(m.indexOrder) != len(m.physicalOrder) {
		return invariantErrorf("index/physical section orderings have different lengths")
	}
	return nil
}

// String renders a human-readable one-paragraph summary: manifest,
// barcode, chip label, red/green marker, chip type, run info, and probe
// matrix shape — the Go analogue of the Python source's IDATdata.__str__.
func (m *Model) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "manifest:             %q\n", m.meta.manifest)
	fmt.Fprintf(&b, "manifest (old style): %q\n", m.meta.oldStyleManifest)
	fmt.Fprintf(&b, "unknown #1:           %v\n", m.meta.unknown1)
	fmt.Fprintf(&b, "sample id:            %q\n", m.meta.sampleID)
	fmt.Fprintf(&b, "description:          %q\n", m.meta.description)
	fmt.Fprintf(&b, "plate:                %q\n", m.meta.plate)
	fmt.Fprintf(&b, "well:                 %q\n", m.meta.well)
	fmt.Fprintf(&b, "unknown #2:           %q\n", m.meta.unknown2)
	fmt.Fprintf(&b, "run info:\n")
	for i, entry := range m.runInfo {
		fmt.Fprintf(&b, "  %d. %v\n", i+1, entry)
	}
	fmt.Fprintf(&b, "\n%s v%d: %s_%s (R/G: %d, %s)\n",
		m.Header.Magic, m.Header.Version, m.meta.barcode, m.meta.chipLabel, m.meta.redGreen, m.meta.chipType)
	if m.probes != nil {
		fmt.Fprintf(&b, "probe matrix: %d rows x 5 columns\n", m.probes.Len())
	}
	return b.String()
}

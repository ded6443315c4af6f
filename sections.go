// Copyright (c) 2024 Neomantra Corp
//
// Section registry: a fixed, compile-time table mapping numeric IDAT
// section codes to symbolic names and to the per-section decoding kind.
// This replaces the source's two parallel name<->code dictionaries with a
// single enum and a from/to-integer pair, per the Design Notes remapping.

package idat

import "fmt"

// SectionCode is the on-disk numeric identifier for an IDAT section.
type SectionCode uint16

const (
	SectionProbeIDs               SectionCode = 102
	SectionProbeStdDevs           SectionCode = 103
	SectionProbeMeanIntensities   SectionCode = 104
	SectionProbeNBeads            SectionCode = 107
	SectionProbeMidBlock          SectionCode = 200
	SectionArrayRunInfo           SectionCode = 300
	SectionArrayRedGreen          SectionCode = 400
	SectionArrayManifest          SectionCode = 401
	SectionArrayBarcode           SectionCode = 402
	SectionArrayChipType          SectionCode = 403
	SectionArrayChipLabel         SectionCode = 404
	SectionArrayOldStyleManifest  SectionCode = 405
	SectionArraySampleID          SectionCode = 406
	SectionArrayDescription       SectionCode = 407
	SectionArrayPlate             SectionCode = 408
	SectionArrayWell              SectionCode = 409
	SectionArrayUnknown1          SectionCode = 410
	SectionArrayUnknown2          SectionCode = 510
	SectionArrayNProbes           SectionCode = 1000
)

// SectionKind describes how a section's body is framed on the wire.
type SectionKind uint8

const (
	// KindScalarInt32 is a single little-endian u32.
	KindScalarInt32 SectionKind = iota
	// KindString is a varint-length-prefixed UTF-8 string.
	KindString
	// KindFixedTuple is a fixed number of raw bytes (ARRAY_UNKNOWN_1: u8 x 4).
	KindFixedTuple
	// KindVectorU32 is N little-endian u32 values, N = n_probes.
	KindVectorU32
	// KindVectorU16 is N little-endian u16 values, N = n_probes.
	KindVectorU16
	// KindVectorU8 is N raw bytes, N = n_probes.
	KindVectorU8
	// KindSizedVectorU32 is a u32 count, then that many little-endian u32
	// values; the count must equal n_probes (PROBE_MID_BLOCK).
	KindSizedVectorU32
	// KindRunInfo is a u32 count, then that many 5-tuples of strings.
	KindRunInfo
)

type sectionInfo struct {
	name string
	kind SectionKind
}

// sectionRegistry is the compile-time code -> (name, kind) table from
// spec.md §4.2. FixedTuple size (ARRAY_UNKNOWN_1) is always 4 bytes.
var sectionRegistry = map[SectionCode]sectionInfo{
	SectionProbeIDs:              {"PROBE_IDS", KindVectorU32},
	SectionProbeStdDevs:          {"PROBE_STD_DEVS", KindVectorU16},
	SectionProbeMeanIntensities:  {"PROBE_MEAN_INTENSITIES", KindVectorU16},
	SectionProbeNBeads:           {"PROBE_N_BEADS", KindVectorU8},
	SectionProbeMidBlock:         {"PROBE_MID_BLOCK", KindSizedVectorU32},
	SectionArrayRunInfo:          {"ARRAY_RUN_INFO", KindRunInfo},
	SectionArrayRedGreen:         {"ARRAY_RED_GREEN", KindScalarInt32},
	SectionArrayManifest:         {"ARRAY_MANIFEST", KindString},
	SectionArrayBarcode:          {"ARRAY_BARCODE", KindString},
	SectionArrayChipType:         {"ARRAY_CHIP_TYPE", KindString},
	SectionArrayChipLabel:        {"ARRAY_CHIP_LABEL", KindString},
	SectionArrayOldStyleManifest: {"ARRAY_OLD_STYLE_MANIFEST", KindString},
	SectionArraySampleID:         {"ARRAY_SAMPLE_ID", KindString},
	SectionArrayDescription:      {"ARRAY_DESCRIPTION", KindString},
	SectionArrayPlate:            {"ARRAY_PLATE", KindString},
	SectionArrayWell:             {"ARRAY_WELL", KindString},
	SectionArrayUnknown1:         {"ARRAY_UNKNOWN_1", KindFixedTuple},
	SectionArrayUnknown2:         {"ARRAY_UNKNOWN_2", KindString},
	SectionArrayNProbes:          {"ARRAY_N_PROBES", KindScalarInt32},
}

// allSectionCodes is the fixed set of codes every valid IDAT v3 file's
// table of contents must be drawn from, in no particular order.
var allSectionCodes = []SectionCode{
	SectionArrayNProbes,
	SectionProbeIDs,
	SectionProbeStdDevs,
	SectionProbeMeanIntensities,
	SectionProbeNBeads,
	SectionProbeMidBlock,
	SectionArrayRedGreen,
	SectionArrayManifest,
	SectionArrayBarcode,
	SectionArrayChipType,
	SectionArrayChipLabel,
	SectionArrayOldStyleManifest,
	SectionArrayUnknown1,
	SectionArraySampleID,
	SectionArrayDescription,
	SectionArrayPlate,
	SectionArrayWell,
	SectionArrayUnknown2,
	SectionArrayRunInfo,
}

// Name returns the symbolic section name, e.g. "PROBE_IDS".
func (c SectionCode) Name() string {
	if info, ok := sectionRegistry[c]; ok {
		return info.name
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint16(c))
}

// Kind returns the section's wire-layout kind, and false if c is not a
// recognized section code.
func (c SectionCode) Kind() (SectionKind, bool) {
	info, ok := sectionRegistry[c]
	return info.kind, ok
}

// IsKnown reports whether c is a recognized section code. An unrecognized
// code encountered while parsing a table of contents is a fatal FormatError
// per spec.md §4.2.
func (c SectionCode) IsKnown() bool {
	_, ok := sectionRegistry[c]
	return ok
}

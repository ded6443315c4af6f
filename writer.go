// Copyright (c) 2024 Neomantra Corp
//
// Writer serializes a Model back to an IDAT v3 stream: the table of
// contents is emitted in the Model's index order, pointing at offsets
// recomputed fresh; section bodies are emitted in the Model's physical
// order. The Writer is stateless over the Model it's given — no
// inheritance is needed, per the Design Notes remapping.

package idat

import (
	"io"
	"os"
	"path/filepath"
)

const fileHeaderSize = 4 + 8 + 4 // magic + version + section count
const tocEntrySize = 2 + 8       // code + offset

// WriteModel serializes model to w as a complete IDAT v3 file. All section
// sizes are computed before any byte is written, so a malformed Model
// (missing probes, empty section orders) is caught before any output is
// produced (spec.md §7).
func WriteModel(w io.Writer, model *Model) error {
	if err := model.Validate(); err != nil {
		return err
	}

	sizes := make(map[SectionCode]int, len(model.indexOrder))
	for _, code := range model.indexOrder {
		size, err := sectionBodySize(code, model)
		if err != nil {
			return err
		}
		sizes[code] = size
	}

	tocSize := fileHeaderSize + len(model.indexOrder)*tocEntrySize
	offsets := make(map[SectionCode]int64, len(model.physicalOrder))
	cursor := int64(tocSize)
	for _, code := range model.physicalOrder {
		offsets[code] = cursor
		cursor += int64(sizes[code])
	}

	if err := writeChars(w, model.Header.Magic); err != nil {
		return err
	}
	if err := writeUint64(w, model.Header.Version); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(len(model.indexOrder))); err != nil {
		return err
	}
	for _, code := range model.indexOrder {
		if err := writeUint16(w, uint16(code)); err != nil {
			return err
		}
		if err := writeUint64(w, uint64(offsets[code])); err != nil {
			return err
		}
	}

	for _, code := range model.physicalOrder {
		if err := writeSectionBody(w, code, model); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes model to a temporary file in the same directory as path
// and renames it into place on success, so a failed write never leaves a
// truncated file at path (spec.md §7).
func WriteFile(path string, model *Model) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".idat-tools-*.tmp")
	if err != nil {
		return ioErrorf("creating temp file: %s", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := WriteModel(tmp, model); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return ioErrorf("closing temp file: %s", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return ioErrorf("renaming temp file into place: %s", err)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////

func sectionBodySize(code SectionCode, model *Model) (int, error) {
	n := int(model.NProbes())
	switch code {
	case SectionArrayNProbes, SectionArrayRedGreen:
		return 4, nil
	case SectionProbeIDs:
		return 4 * n, nil
	case SectionProbeStdDevs, SectionProbeMeanIntensities:
		return 2 * n, nil
	case SectionProbeNBeads:
		return n, nil
	case SectionProbeMidBlock:
		return 4 + 4*n, nil
	case SectionArrayManifest:
		return EncodedStringLength(model.Meta().Manifest()), nil
	case SectionArrayBarcode:
		return EncodedStringLength(model.Meta().Barcode()), nil
	case SectionArrayChipType:
		return EncodedStringLength(model.Meta().ChipType()), nil
	case SectionArrayChipLabel:
		return EncodedStringLength(model.Meta().ChipLabel()), nil
	case SectionArrayOldStyleManifest:
		return EncodedStringLength(model.Meta().OldStyleManifest()), nil
	case SectionArraySampleID:
		return EncodedStringLength(model.Meta().SampleID()), nil
	case SectionArrayDescription:
		// Sized from its own field, not sample_id's — the source's writer
		// bug (spec.md §9) is deliberately not reproduced here.
		return EncodedStringLength(model.Meta().Description()), nil
	case SectionArrayPlate:
		return EncodedStringLength(model.Meta().Plate()), nil
	case SectionArrayWell:
		return EncodedStringLength(model.Meta().Well()), nil
	case SectionArrayUnknown1:
		return 4, nil
	case SectionArrayUnknown2:
		return EncodedStringLength(model.Meta().Unknown2()), nil
	case SectionArrayRunInfo:
		size := 4
		for _, entry := range model.RunInfo() {
			for _, s := range entry {
				size += EncodedStringLength(s)
			}
		}
		return size, nil
	default:
		return 0, unknownSectionCodeError(uint16(code))
	}
}

func writeSectionBody(w io.Writer, code SectionCode, model *Model) error {
	switch code {
	case SectionArrayNProbes:
		return writeUint32(w, model.NProbes())
	case SectionArrayRedGreen:
		return writeUint32(w, model.Meta().RedGreen())
	case SectionProbeIDs:
		for _, v := range model.Probes().ProbeIDs() {
			if err := writeUint32(w, v); err != nil {
				return err
			}
		}
		return nil
	case SectionProbeStdDevs:
		for _, v := range model.Probes().StdDevs() {
			if err := writeUint16(w, v); err != nil {
				return err
			}
		}
		return nil
	case SectionProbeMeanIntensities:
		for _, v := range model.Probes().MeanIntensities() {
			if err := writeUint16(w, v); err != nil {
				return err
			}
		}
		return nil
	case SectionProbeNBeads:
		_, err := w.Write(model.Probes().NBeads())
		return err
	case SectionProbeMidBlock:
		if err := writeUint32(w, model.NProbes()); err != nil {
			return err
		}
		for _, v := range model.Probes().MidBlock() {
			if err := writeUint32(w, v); err != nil {
				return err
			}
		}
		return nil
	case SectionArrayManifest:
		return writeString(w, model.Meta().Manifest())
	case SectionArrayBarcode:
		return writeString(w, model.Meta().Barcode())
	case SectionArrayChipType:
		return writeString(w, model.Meta().ChipType())
	case SectionArrayChipLabel:
		return writeString(w, model.Meta().ChipLabel())
	case SectionArrayOldStyleManifest:
		return writeString(w, model.Meta().OldStyleManifest())
	case SectionArraySampleID:
		return writeString(w, model.Meta().SampleID())
	case SectionArrayDescription:
		return writeString(w, model.Meta().Description())
	case SectionArrayPlate:
		return writeString(w, model.Meta().Plate())
	case SectionArrayWell:
		return writeString(w, model.Meta().Well())
	case SectionArrayUnknown1:
		u := model.Meta().Unknown1()
		_, err := w.Write(u[:])
		return err
	case SectionArrayUnknown2:
		return writeString(w, model.Meta().Unknown2())
	case SectionArrayRunInfo:
		entries := model.RunInfo()
		if err := writeUint32(w, uint32(len(entries))); err != nil {
			return err
		}
		for _, entry := range entries {
			for _, s := range entry {
				if err := writeString(w, s); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return unknownSectionCodeError(uint16(code))
	}
}

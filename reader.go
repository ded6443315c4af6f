// Copyright (c) 2024 Neomantra Corp
//
// Reader walks an IDAT file's table of contents and dispatches to
// per-section decoders, populating a Model. Every section body is reached
// by seeking to its recorded offset — the reader never relies on streaming
// adjacency between sections (spec.md §4.3).

package idat

import (
	"io"
	"sort"
)

// Reader parses an IDAT v3 stream into a Model.
type Reader struct {
	r io.ReadSeeker

	offsets map[SectionCode]int64
}

// NewReader wraps a seekable source. The source must support seeking
// because section bodies are visited in whatever order the reader finds
// convenient, not the order they appear on disk.
func NewReader(r io.ReadSeeker) *Reader {
	return &Reader{r: r, offsets: make(map[SectionCode]int64)}
}

// ReadModel reads and fully validates an IDAT v3 file from r, or any
// fatal FormatError/InvariantError/IOError encountered along the way. On
// error the returned Model is always nil — a failed read never yields a
// partially populated Model (spec.md §7).
func ReadModel(r io.ReadSeeker) (*Model, error) {
	reader := NewReader(r)
	return reader.Read()
}

// Read performs the full parse.
func (rd *Reader) Read() (*Model, error) {
	model := NewModel()

	header, err := rd.readFileHeader()
	if err != nil {
		return nil, err
	}
	model.Header = header

	indexOrder, physicalOrder, err := rd.readSectionTable()
	if err != nil {
		return nil, err
	}
	if err := model.SetSectionOrders(indexOrder, physicalOrder); err != nil {
		return nil, err
	}

	nProbes, err := rd.readNProbes()
	if err != nil {
		return nil, err
	}

	probes, err := rd.readProbeMatrix(nProbes)
	if err != nil {
		return nil, err
	}
	model.SetProbes(probes)

	if err := rd.readArrayMeta(model.Meta()); err != nil {
		return nil, err
	}

	runInfo, err := rd.readRunInfo()
	if err != nil {
		return nil, err
	}
	model.SetRunInfo(runInfo)

	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

///////////////////////////////////////////////////////////////////////////////

func (rd *Reader) seek(code SectionCode) error {
	offset, ok := rd.offsets[code]
	if !ok {
		return formatErrorf("section %s not present in table of contents", code.Name())
	}
	if _, err := rd.r.Seek(offset, io.SeekStart); err != nil {
		return ioErrorf("seeking to section %s at offset %d: %s", code.Name(), offset, err)
	}
	return nil
}

func (rd *Reader) readFileHeader() (FileHeader, error) {
	if _, err := rd.r.Seek(0, io.SeekStart); err != nil {
		return FileHeader{}, ioErrorf("seeking to file start: %s", err)
	}
	magic, err := readChars(rd.r, 4)
	if err != nil {
		return FileHeader{}, err
	}
	version, err := readUint64(rd.r)
	if err != nil {
		return FileHeader{}, err
	}
	return NewFileHeader(magic, version)
}

// readSectionTable reads the table of contents starting at offset 16 and
// returns the index order (as it appears in the TOC) and the physical
// order (sorted by file offset ascending). It also records each section's
// offset so readers can seek to bodies later.
func (rd *Reader) readSectionTable() (indexOrder []SectionCode, physicalOrder []SectionCode, err error) {
	if _, err = rd.r.Seek(12, io.SeekStart); err != nil {
		return nil, nil, ioErrorf("seeking to section count: %s", err)
	}
	k, err := readUint32(rd.r)
	if err != nil {
		return nil, nil, err
	}

	type entry struct {
		code   SectionCode
		offset int64
	}
	entries := make([]entry, 0, k)

	if _, err = rd.r.Seek(16, io.SeekStart); err != nil {
		return nil, nil, ioErrorf("seeking to table of contents: %s", err)
	}
	for i := uint32(0); i < k; i++ {
		rawCode, err := readUint16(rd.r)
		if err != nil {
			return nil, nil, err
		}
		offset, err := readUint64(rd.r)
		if err != nil {
			return nil, nil, err
		}
		code := SectionCode(rawCode)
		if !code.IsKnown() {
			return nil, nil, unknownSectionCodeError(rawCode)
		}
		entries = append(entries, entry{code: code, offset: int64(offset)})
		rd.offsets[code] = int64(offset)
	}

	indexOrder = make([]SectionCode, len(entries))
	for i, e := range entries {
		indexOrder[i] = e.code
	}

	sorted := make([]entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].offset < sorted[j].offset })
	physicalOrder = make([]SectionCode, len(sorted))
	for i, e := range sorted {
		physicalOrder[i] = e.code
	}

	return indexOrder, physicalOrder, nil
}

func (rd *Reader) readNProbes() (uint32, error) {
	if err := rd.seek(SectionArrayNProbes); err != nil {
		return 0, err
	}
	n, err := readUint32(rd.r)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, invariantErrorf("array_n_probes is zero")
	}
	if n > maxProbes {
		return 0, invariantErrorf("array_n_probes %d exceeds ceiling %d", n, maxProbes)
	}
	return n, nil
}

func (rd *Reader) readVectorU32(code SectionCode, n uint32) ([]uint32, error) {
	if err := rd.seek(code); err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		v, err := readUint32(rd.r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (rd *Reader) readVectorU16(code SectionCode, n uint32) ([]uint16, error) {
	if err := rd.seek(code); err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		v, err := readUint16(rd.r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (rd *Reader) readVectorU8(code SectionCode, n uint32) ([]uint8, error) {
	if err := rd.seek(code); err != nil {
		return nil, err
	}
	out := make([]uint8, n)
	if got, err := io.ReadFull(rd.r, out); err != nil {
		return nil, unexpectedBytesError(got, int(n))
	}
	return out, nil
}

func (rd *Reader) readProbeMatrix(n uint32) (*ProbeMatrix, error) {
	probeIDs, err := rd.readVectorU32(SectionProbeIDs, n)
	if err != nil {
		return nil, err
	}
	stdDevs, err := rd.readVectorU16(SectionProbeStdDevs, n)
	if err != nil {
		return nil, err
	}
	means, err := rd.readVectorU16(SectionProbeMeanIntensities, n)
	if err != nil {
		return nil, err
	}
	nBeads, err := rd.readVectorU8(SectionProbeNBeads, n)
	if err != nil {
		return nil, err
	}

	if err := rd.seek(SectionProbeMidBlock); err != nil {
		return nil, err
	}
	midCount, err := readUint32(rd.r)
	if err != nil {
		return nil, err
	}
	if midCount != n {
		return nil, invariantErrorf("probe_mid_block count %d does not equal n_probes %d", midCount, n)
	}
	midBlock := make([]uint32, n)
	for i := range midBlock {
		v, err := readUint32(rd.r)
		if err != nil {
			return nil, err
		}
		midBlock[i] = v
	}

	return NewProbeMatrix(probeIDs, stdDevs, means, nBeads, midBlock)
}

func (rd *Reader) readArrayMeta(meta *ArrayMeta) error {
	if err := rd.seek(SectionArrayRedGreen); err != nil {
		return err
	}
	redGreen, err := readUint32(rd.r)
	if err != nil {
		return err
	}
	meta.SetRedGreen(redGreen)

	if err := rd.seek(SectionArrayManifest); err != nil {
		return err
	}
	manifest, err := readString(rd.r)
	if err != nil {
		return err
	}
	meta.SetManifest(manifest)

	if err := rd.seek(SectionArrayBarcode); err != nil {
		return err
	}
	barcode, err := readString(rd.r)
	if err != nil {
		return err
	}
	if err := meta.SetBarcode(barcode); err != nil {
		return err
	}

	if err := rd.seek(SectionArrayChipType); err != nil {
		return err
	}
	chipType, err := readString(rd.r)
	if err != nil {
		return err
	}
	if err := meta.SetChipType(chipType); err != nil {
		return err
	}

	if err := rd.seek(SectionArrayChipLabel); err != nil {
		return err
	}
	chipLabel, err := readString(rd.r)
	if err != nil {
		return err
	}
	if err := meta.SetChipLabel(chipLabel); err != nil {
		return err
	}

	if err := rd.seek(SectionArrayOldStyleManifest); err != nil {
		return err
	}
	oldStyleManifest, err := readString(rd.r)
	if err != nil {
		return err
	}
	meta.SetOldStyleManifest(oldStyleManifest)

	if err := rd.seek(SectionArrayUnknown1); err != nil {
		return err
	}
	var unknown1 [4]byte
	for i := range unknown1 {
		b, err := readUint8(rd.r)
		if err != nil {
			return err
		}
		unknown1[i] = b
	}
	meta.SetUnknown1(unknown1)

	if err := rd.seek(SectionArraySampleID); err != nil {
		return err
	}
	sampleID, err := readString(rd.r)
	if err != nil {
		return err
	}
	meta.SetSampleID(sampleID)

	if err := rd.seek(SectionArrayDescription); err != nil {
		return err
	}
	description, err := readString(rd.r)
	if err != nil {
		return err
	}
	meta.SetDescription(description)

	if err := rd.seek(SectionArrayPlate); err != nil {
		return err
	}
	plate, err := readString(rd.r)
	if err != nil {
		return err
	}
	meta.SetPlate(plate)

	if err := rd.seek(SectionArrayWell); err != nil {
		return err
	}
	well, err := readString(rd.r)
	if err != nil {
		return err
	}
	meta.SetWell(well)

	if err := rd.seek(SectionArrayUnknown2); err != nil {
		return err
	}
	unknown2, err := readString(rd.r)
	if err != nil {
		return err
	}
	meta.SetUnknown2(unknown2)

	return nil
}

func (rd *Reader) readRunInfo() ([]RunInfoEntry, error) {
	if err := rd.seek(SectionArrayRunInfo); err != nil {
		return nil, err
	}
	count, err := readUint32(rd.r)
	if err != nil {
		return nil, err
	}
	entries := make([]RunInfoEntry, count)
	for i := range entries {
		var entry RunInfoEntry
		for j := range entry {
			s, err := readString(rd.r)
			if err != nil {
				return nil, err
			}
			entry[j] = s
		}
		entries[i] = entry
	}
	return entries, nil
}

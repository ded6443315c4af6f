// Copyright (c) 2024 Neomantra Corp
//
// ProbeIndex is the IDAT-domain analogue of the teacher's point-in-time
// symbol map: a fast probe_id -> row lookup built once from a ProbeMatrix,
// for callers that need random access to a single probe's measurements
// rather than iterating the whole matrix.

package idat

// ProbeIndex maps probe_id to its row index within a ProbeMatrix.
type ProbeIndex struct {
	matrix   *ProbeMatrix
	rowByID  map[uint32]int
}

// NewProbeIndex builds a ProbeIndex over matrix. Because ProbeMatrix
// guarantees probe_ids are strictly increasing, this could bsearch
// instead, but a map keeps the lookup O(1) and the construction O(n)
// regardless of how callers later mutate their own copies of the ID slice.
func NewProbeIndex(matrix *ProbeMatrix) *ProbeIndex {
	ids := matrix.ProbeIDs()
	idx := &ProbeIndex{matrix: matrix, rowByID: make(map[uint32]int, len(ids))}
	for i, id := range ids {
		idx.rowByID[id] = i
	}
	return idx
}

// Len returns the number of probes indexed.
func (idx *ProbeIndex) Len() int { return len(idx.rowByID) }

// Row returns the row index for probeID, and false if probeID is not
// present in the matrix.
func (idx *ProbeIndex) Row(probeID uint32) (int, bool) {
	row, ok := idx.rowByID[probeID]
	return row, ok
}

// ProbeMeasurement is one probe's full row, copied out of the columnar
// ProbeMatrix for convenient single-probe access.
type ProbeMeasurement struct {
	ProbeID         uint32
	StdDev          uint16
	MeanIntensity   uint16
	NBeads          uint8
	MidBlockID      uint32
}

// Get returns the full measurement row for probeID, and false if absent.
func (idx *ProbeIndex) Get(probeID uint32) (ProbeMeasurement, bool) {
	row, ok := idx.rowByID[probeID]
	if !ok {
		return ProbeMeasurement{}, false
	}
	return ProbeMeasurement{
		ProbeID:       idx.matrix.ProbeIDs()[row],
		StdDev:        idx.matrix.StdDevs()[row],
		MeanIntensity: idx.matrix.MeanIntensities()[row],
		NBeads:        idx.matrix.NBeads()[row],
		MidBlockID:    idx.matrix.MidBlock()[row],
	}, true
}

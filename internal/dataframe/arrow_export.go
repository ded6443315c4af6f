// Copyright (c) 2024 Neomantra Corp
//
// ProbeMatrixRecord builds an Arrow RecordBatch from a ProbeMatrix, the
// direct Go analogue of the source's pandas.DataFrame conversion (see
// original_source/idattools/idat.py, IDATdata.probes). Grounded on the
// teacher's use of apache/arrow-go/v18 for the Parquet schema layer
// (internal/file/parquet_writer.go); this package goes one level lower
// and builds the in-memory columnar batch directly.

package dataframe

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/yhoogstrate/idat-tools"
)

// ProbeMatrixSchema is the Arrow schema shared by every RecordBatch built
// from a ProbeMatrix: one column per on-disk probe section.
var ProbeMatrixSchema = arrow.NewSchema([]arrow.Field{
	{Name: "probe_id", Type: arrow.PrimitiveTypes.Uint32},
	{Name: "std_dev", Type: arrow.PrimitiveTypes.Uint16},
	{Name: "mean_intensity", Type: arrow.PrimitiveTypes.Uint16},
	{Name: "n_beads", Type: arrow.PrimitiveTypes.Uint8},
	{Name: "mid_block", Type: arrow.PrimitiveTypes.Uint32},
}, nil)

// ProbeMatrixRecord builds an Arrow arrow.Record holding one row per probe,
// columns in the same order as ProbeMatrixSchema. The caller owns the
// returned Record and must call Release on it.
func ProbeMatrixRecord(matrix *idat.ProbeMatrix) arrow.Record {
	pool := memory.NewGoAllocator()

	idBuilder := array.NewUint32Builder(pool)
	defer idBuilder.Release()
	stdDevBuilder := array.NewUint16Builder(pool)
	defer stdDevBuilder.Release()
	meanBuilder := array.NewUint16Builder(pool)
	defer meanBuilder.Release()
	nBeadsBuilder := array.NewUint8Builder(pool)
	defer nBeadsBuilder.Release()
	midBlockBuilder := array.NewUint32Builder(pool)
	defer midBlockBuilder.Release()

	idBuilder.AppendValues(matrix.ProbeIDs(), nil)
	stdDevBuilder.AppendValues(matrix.StdDevs(), nil)
	meanBuilder.AppendValues(matrix.MeanIntensities(), nil)
	nBeadsBuilder.AppendValues(matrix.NBeads(), nil)
	midBlockBuilder.AppendValues(matrix.MidBlock(), nil)

	idArr := idBuilder.NewArray()
	defer idArr.Release()
	stdDevArr := stdDevBuilder.NewArray()
	defer stdDevArr.Release()
	meanArr := meanBuilder.NewArray()
	defer meanArr.Release()
	nBeadsArr := nBeadsBuilder.NewArray()
	defer nBeadsArr.Release()
	midBlockArr := midBlockBuilder.NewArray()
	defer midBlockArr.Release()

	return array.NewRecord(ProbeMatrixSchema, []arrow.Array{
		idArr, stdDevArr, meanArr, nBeadsArr, midBlockArr,
	}, int64(matrix.Len()))
}

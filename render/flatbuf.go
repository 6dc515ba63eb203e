package render

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// FlatBuffer renders rows as a FlatBuffers-encoded table, for callers that
// want a binary, zero-copy-on-read export format instead of text/JSON.
// The layout is hand-built against the flatbuffers.Builder low-level API
// rather than generated from a .fbs schema (there is nothing schema-shaped
// enough about a column/value grid to warrant one):
//
//	Table (root):
//	  0: columns   [string]
//	  1: rows      [RowTable]
//
//	RowTable:
//	  0: values    [string]
func FlatBuffer(rows []Row) ([]byte, error) {
	b := flatbuffers.NewBuilder(1024)

	var columns []string
	if len(rows) > 0 {
		columns = rows[0].Columns
	}

	colOffsets := make([]flatbuffers.UOffsetT, len(columns))
	for i, c := range columns {
		colOffsets[i] = b.CreateString(c)
	}
	colsVec := buildStringVector(b, colOffsets)

	rowOffsets := make([]flatbuffers.UOffsetT, len(rows))
	for i, r := range rows {
		valOffsets := make([]flatbuffers.UOffsetT, len(r.Values))
		for j, v := range r.Values {
			valOffsets[j] = b.CreateString(v)
		}
		valuesVec := buildStringVector(b, valOffsets)

		b.StartObject(1)
		b.PrependUOffsetTSlot(0, valuesVec, 0)
		rowOffsets[i] = b.EndObject()
	}
	rowsVec := buildOffsetVector(b, rowOffsets)

	b.StartObject(2)
	b.PrependUOffsetTSlot(0, colsVec, 0)
	b.PrependUOffsetTSlot(1, rowsVec, 0)
	root := b.EndObject()

	b.Finish(root)
	return b.FinishedBytes(), nil
}

func buildStringVector(b *flatbuffers.Builder, offsets []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	return buildOffsetVector(b, offsets)
}

func buildOffsetVector(b *flatbuffers.Builder, offsets []flatbuffers.UOffsetT) flatbuffers.UOffsetT {
	b.StartVector(flatbuffers.SizeUOffsetT, len(offsets), flatbuffers.SizeUOffsetT)
	for i := len(offsets) - 1; i >= 0; i-- {
		b.PrependUOffsetT(offsets[i])
	}
	return b.EndVector(len(offsets))
}

// DecodeFlatBuffer reverses FlatBuffer, for tooling that reads back a
// previously exported .fb file.
func DecodeFlatBuffer(data []byte) ([]Row, error) {
	root := &flatbuffers.Table{}
	root.Bytes = data
	root.Pos = flatbuffers.GetUOffsetT(data)

	columns := readStringVector(root, 4) // vtable slot 0 -> byte offset 4

	rows := []Row{}
	if rowsRel := root.Offset(6); rowsRel != 0 { // vtable slot 1 -> byte offset 6
		vec := root.Vector(root.Pos + flatbuffers.UOffsetT(rowsRel))
		n := root.VectorLen(root.Pos + flatbuffers.UOffsetT(rowsRel))
		for i := 0; i < n; i++ {
			rowTablePos := root.Indirect(vec + flatbuffers.UOffsetT(i)*4)
			rowTable := &flatbuffers.Table{Bytes: data, Pos: rowTablePos}
			values := readStringVector(rowTable, 4)
			rows = append(rows, Row{Columns: columns, Values: values})
		}
	}

	return rows, nil
}

// readStringVector reads a [string] field at the given vtable byte offset
// (4, 6, 8, ... per field index) from t, returning nil if the field is
// absent.
func readStringVector(t *flatbuffers.Table, vtableOffset flatbuffers.VOffsetT) []string {
	rel := t.Offset(vtableOffset)
	if rel == 0 {
		return nil
	}
	abs := t.Pos + flatbuffers.UOffsetT(rel)
	vec := t.Vector(abs)
	n := t.VectorLen(abs)

	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = t.String(vec + flatbuffers.UOffsetT(i)*4)
	}
	return out
}

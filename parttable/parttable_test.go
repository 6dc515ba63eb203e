package parttable

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func record(ptype, subtype byte, offset, size uint32, name string, flags uint32) []byte {
	rec := make([]byte, RecordSize)
	rec[0], rec[1] = magicBytes[0], magicBytes[1]
	rec[2] = ptype
	rec[3] = subtype
	binary.LittleEndian.PutUint32(rec[4:8], offset)
	binary.LittleEndian.PutUint32(rec[8:12], size)
	copy(rec[12:28], name)
	binary.LittleEndian.PutUint32(rec[28:32], flags)
	return rec
}

// S7: two-record table.
func TestDecodeTwoRecordTable(t *testing.T) {
	var data []byte
	data = append(data, record(1, 2, 0x9000, 0x6000, "nvs", 0)...)   // data/nvs
	data = append(data, record(0, 0, 0x10000, 0x100000, "factory", 0)...) // app/factory
	data = append(data, make([]byte, HashSize)...)

	table, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, table.Partitions, 2)

	p0 := table.Partitions[0]
	require.Equal(t, "nvs", p0.Name)
	require.Equal(t, TypeData, p0.Type.Kind)
	require.Equal(t, SubDataNvs, p0.Subtype.Kind)
	require.Equal(t, uint32(0x9000), p0.Offset)
	require.Equal(t, uint32(0x6000), p0.Size)

	p1 := table.Partitions[1]
	require.Equal(t, "factory", p1.Name)
	require.Equal(t, TypeApp, p1.Type.Kind)
	require.Equal(t, SubAppFactory, p1.Subtype.Kind)
	require.Equal(t, uint32(0x10000), p1.Offset)
	require.Equal(t, uint32(0x100000), p1.Size)

	var wantHash [HashSize]byte
	require.Equal(t, wantHash, table.Hash)
}

func TestDecodeRejectsMissingHash(t *testing.T) {
	data := record(1, 2, 0, 0, "nvs", 0)
	_, err := Decode(data)
	require.ErrorIs(t, err, ErrShortInput)
}

func TestDecodeRejectsEmptyTable(t *testing.T) {
	_, err := Decode(make([]byte, HashSize))
	require.ErrorIs(t, err, ErrNoPartitions)
}

func TestPartitionTypeRoundTrip(t *testing.T) {
	tests := []struct {
		value byte
		kind  PartitionTypeKind
	}{
		{0, TypeApp},
		{1, TypeData},
		{64, TypeCustom},
		{254, TypeCustom},
		{255, TypeAny},
		{2, TypeInvalid},
		{63, TypeInvalid},
	}

	for _, tt := range tests {
		got := partitionTypeFromByte(tt.value)
		require.Equal(t, tt.kind, got.Kind, "value=%d", tt.value)
	}
}

func TestAppSubtypeOtaRange(t *testing.T) {
	app := PartitionType{Kind: TypeApp}
	for v := byte(16); v <= 31; v++ {
		sub := subtypeFromByte(app, v)
		require.NotEqual(t, SubInvalid, sub.Kind)
	}

	sub := subtypeFromByte(app, 200)
	require.Equal(t, SubInvalid, sub.Kind)
	require.Equal(t, byte(200), sub.Value)
}

func TestMaxPartitionsBound(t *testing.T) {
	var data []byte
	for i := 0; i < MaxPartitions+1; i++ {
		data = append(data, record(64, 0, uint32(i), 0x1000, "p", 0)...)
	}
	data = append(data, make([]byte, HashSize)...)

	table, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, table.Partitions, MaxPartitions)
}

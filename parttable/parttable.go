package parttable

import (
	"fmt"

	"github.com/halide-systems/nvsinspect/bytesio"
)

// RecordSize is the fixed size of one partition table record.
const RecordSize = 32

// HashSize is the size of the trailing MD5-style hash, decoded verbatim
// and never verified.
const HashSize = 32

// MaxPartitions is the largest number of records a table may hold.
const MaxPartitions = 95

var magicBytes = [2]byte{0xaa, 0x50}

// Partition is one flash region descriptor.
type Partition struct {
	Name      string
	Type      PartitionType
	Subtype   Subtype
	Offset    uint32
	Size      uint32
	Flags     uint32
}

// PartitionTable is an ordered list of partitions plus the trailing hash.
type PartitionTable struct {
	Partitions []Partition
	Hash       [HashSize]byte
}

// Decode parses data as a complete partition table image: up to
// MaxPartitions fixed 32-byte records followed by a 32-byte hash.
func Decode(data []byte) (*PartitionTable, error) {
	cur := bytesio.NewCursor(data)

	var partitions []Partition
	for len(partitions) < MaxPartitions {
		if cur.Remaining() < RecordSize {
			return nil, fmt.Errorf("parttable: reading record %d: %w", len(partitions), ErrShortInput)
		}

		magic, err := cur.ReadBytes(2)
		if err != nil {
			return nil, fmt.Errorf("parttable: reading record magic: %w", ErrShortInput)
		}
		if magic[0] != magicBytes[0] || magic[1] != magicBytes[1] {
			// Back up so the hash reader below sees these bytes; a
			// non-matching magic ends the partition list.
			cur = bytesio.NewCursor(data[cur.Pos()-2:])
			break
		}

		partition, err := decodePartition(cur)
		if err != nil {
			return nil, fmt.Errorf("parttable: decoding record %d: %w", len(partitions), err)
		}
		partitions = append(partitions, partition)
	}

	if len(partitions) == 0 {
		return nil, ErrNoPartitions
	}

	hashBytes, err := cur.ReadBytes(HashSize)
	if err != nil {
		return nil, fmt.Errorf("parttable: reading trailing hash: %w", ErrShortInput)
	}

	var table PartitionTable
	table.Partitions = partitions
	copy(table.Hash[:], hashBytes)

	return &table, nil
}

// decodePartition reads one record's fields after its magic has already
// been consumed by the caller.
func decodePartition(cur *bytesio.Cursor) (Partition, error) {
	typeByte, err := cur.ReadU8()
	if err != nil {
		return Partition{}, fmt.Errorf("reading type: %w", ErrShortInput)
	}
	subtypeByte, err := cur.ReadU8()
	if err != nil {
		return Partition{}, fmt.Errorf("reading subtype: %w", ErrShortInput)
	}
	offset, err := cur.ReadU32()
	if err != nil {
		return Partition{}, fmt.Errorf("reading offset: %w", ErrShortInput)
	}
	size, err := cur.ReadU32()
	if err != nil {
		return Partition{}, fmt.Errorf("reading size: %w", ErrShortInput)
	}
	nameField, err := cur.ReadBytes(16)
	if err != nil {
		return Partition{}, fmt.Errorf("reading name: %w", ErrShortInput)
	}
	flags, err := cur.ReadU32()
	if err != nil {
		return Partition{}, fmt.Errorf("reading flags: %w", ErrShortInput)
	}

	ptype := partitionTypeFromByte(typeByte)
	subtype := subtypeFromByte(ptype, subtypeByte)

	return Partition{
		Name:    decodeName(nameField),
		Type:    ptype,
		Subtype: subtype,
		Offset:  offset,
		Size:    size,
		Flags:   flags,
	}, nil
}

// decodeName decodes a 16-byte NUL-padded name field. Unlike an NVS key
// field, a missing terminator yields an empty name rather than an error
// (matching the original tool's leniency here).
func decodeName(field []byte) string {
	for i, b := range field {
		if b == 0 {
			return string(field[:i])
		}
	}
	return ""
}

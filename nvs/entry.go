package nvs

import (
	"fmt"

	"github.com/halide-systems/nvsinspect/bytesio"
)

// Entry is a reconstructed logical key/value record, possibly spanning
// multiple 32-byte slots.
type Entry struct {
	NamespaceID uint8
	Span        uint8
	ChunkIndex  uint8
	EntryCRC32  uint32
	Key         string
	Value       Value

	PageIndex uint8
	SlotStart uint8
	SlotEnd   uint8
}

const entryHeaderAndKeySize = 8 + 16

// decodeEntry decodes one record starting at payload[0], which must be the
// first byte of slot firstSlot within page pageIndex. It returns the
// decoded entry and the unconsumed remainder of payload.
func decodeEntry(payload []byte, pageIndex, firstSlot uint8) (Entry, []byte, error) {
	cur := bytesio.NewCursor(payload)

	ns, err := cur.ReadU8()
	if err != nil {
		return Entry{}, nil, fmt.Errorf("nvs: reading entry namespace id: %w", ErrShortInput)
	}
	tag, err := cur.ReadU8()
	if err != nil {
		return Entry{}, nil, fmt.Errorf("nvs: reading entry type tag: %w", ErrShortInput)
	}
	span, err := cur.ReadU8()
	if err != nil {
		return Entry{}, nil, fmt.Errorf("nvs: reading entry span: %w", ErrShortInput)
	}
	chunkIndex, err := cur.ReadU8()
	if err != nil {
		return Entry{}, nil, fmt.Errorf("nvs: reading entry chunk index: %w", ErrShortInput)
	}
	crc, err := cur.ReadU32()
	if err != nil {
		return Entry{}, nil, fmt.Errorf("nvs: reading entry crc32: %w", ErrShortInput)
	}

	keyField, err := cur.ReadBytes(16)
	if err != nil {
		return Entry{}, nil, fmt.Errorf("nvs: reading entry key field: %w", ErrShortInput)
	}
	key, err := bytesio.ReadFixedString(keyField)
	if err != nil {
		return Entry{}, nil, fmt.Errorf("%w: %w", ErrMalformedKey, err)
	}

	maxSpan := usableSlots - int(firstSlot)
	if span < 1 || int(span) > maxSpan {
		return Entry{}, nil, fmt.Errorf("nvs: entry span %d out of bounds at slot %d: %w", span, firstSlot, ErrShortInput)
	}

	totalBytes := int(span) * 32
	if totalBytes > len(payload) {
		return Entry{}, nil, fmt.Errorf("nvs: entry claims %d bytes, only %d remain: %w", totalBytes, len(payload), ErrShortInput)
	}
	tailAndDataLen := totalBytes - entryHeaderAndKeySize

	value, err := decodeValue(tag, cur, span, tailAndDataLen)
	if err != nil {
		return Entry{}, nil, err
	}

	entry := Entry{
		NamespaceID: ns,
		Span:        span,
		ChunkIndex:  chunkIndex,
		EntryCRC32:  crc,
		Key:         key,
		Value:       value,
		PageIndex:   pageIndex,
		SlotStart:   firstSlot,
		SlotEnd:     firstSlot + span,
	}

	return entry, payload[totalBytes:], nil
}

// decodeValue reads the type-tag-dependent tail (and, for legacy blobs,
// the data spanning subsequent slots) from cur. tailAndDataLen is the
// number of bytes remaining in the entry after its 8-byte header and
// 16-byte key field.
func decodeValue(tag byte, cur *bytesio.Cursor, span uint8, tailAndDataLen int) (Value, error) {
	switch tag {
	case tagU8:
		v, err := cur.ReadU8()
		if err != nil {
			return Value{}, fmt.Errorf("nvs: reading u8 value: %w", ErrShortInput)
		}
		if _, err := cur.ReadBytes(7); err != nil {
			return Value{}, fmt.Errorf("nvs: reading u8 padding: %w", ErrShortInput)
		}
		return Value{Kind: KindU8, U8: v}, nil

	case tagI8:
		v, err := cur.ReadI8()
		if err != nil {
			return Value{}, fmt.Errorf("nvs: reading i8 value: %w", ErrShortInput)
		}
		if _, err := cur.ReadBytes(7); err != nil {
			return Value{}, fmt.Errorf("nvs: reading i8 padding: %w", ErrShortInput)
		}
		return Value{Kind: KindI8, I8: v}, nil

	case tagU16:
		v, err := cur.ReadU16()
		if err != nil {
			return Value{}, fmt.Errorf("nvs: reading u16 value: %w", ErrShortInput)
		}
		if _, err := cur.ReadBytes(6); err != nil {
			return Value{}, fmt.Errorf("nvs: reading u16 padding: %w", ErrShortInput)
		}
		return Value{Kind: KindU16, U16: v}, nil

	case tagI16:
		v, err := cur.ReadI16()
		if err != nil {
			return Value{}, fmt.Errorf("nvs: reading i16 value: %w", ErrShortInput)
		}
		if _, err := cur.ReadBytes(6); err != nil {
			return Value{}, fmt.Errorf("nvs: reading i16 padding: %w", ErrShortInput)
		}
		return Value{Kind: KindI16, I16: v}, nil

	case tagU32:
		v, err := cur.ReadU32()
		if err != nil {
			return Value{}, fmt.Errorf("nvs: reading u32 value: %w", ErrShortInput)
		}
		if _, err := cur.ReadBytes(4); err != nil {
			return Value{}, fmt.Errorf("nvs: reading u32 padding: %w", ErrShortInput)
		}
		return Value{Kind: KindU32, U32: v}, nil

	case tagI32:
		v, err := cur.ReadI32()
		if err != nil {
			return Value{}, fmt.Errorf("nvs: reading i32 value: %w", ErrShortInput)
		}
		if _, err := cur.ReadBytes(4); err != nil {
			return Value{}, fmt.Errorf("nvs: reading i32 padding: %w", ErrShortInput)
		}
		return Value{Kind: KindI32, I32: v}, nil

	case tagU64:
		v, err := cur.ReadU64()
		if err != nil {
			return Value{}, fmt.Errorf("nvs: reading u64 value: %w", ErrShortInput)
		}
		return Value{Kind: KindU64, U64: v}, nil

	case tagI64:
		v, err := cur.ReadI64()
		if err != nil {
			return Value{}, fmt.Errorf("nvs: reading i64 value: %w", ErrShortInput)
		}
		return Value{Kind: KindI64, I64: v}, nil

	case tagBlob:
		size, err := cur.ReadU16()
		if err != nil {
			return Value{}, fmt.Errorf("nvs: reading blob size: %w", ErrShortInput)
		}
		if _, err := cur.ReadU16(); err != nil { // reserved
			return Value{}, fmt.Errorf("nvs: reading blob reserved field: %w", ErrShortInput)
		}
		if _, err := cur.ReadU32(); err != nil { // legacy blob crc32, not verified
			return Value{}, fmt.Errorf("nvs: reading blob crc32: %w", ErrShortInput)
		}

		roundedSize := (int(size) + 31) &^ 31
		expectedSpan := 1 + roundedSize/32
		if int(span) != expectedSpan {
			return Value{}, fmt.Errorf("nvs: blob span %d does not match computed span %d: %w", span, expectedSpan, ErrShortInput)
		}

		data, err := cur.ReadBytes(int(size))
		if err != nil {
			return Value{}, fmt.Errorf("nvs: reading blob data: %w", ErrShortInput)
		}
		padding := roundedSize - int(size)
		if _, err := cur.ReadBytes(padding); err != nil {
			return Value{}, fmt.Errorf("nvs: reading blob padding: %w", ErrShortInput)
		}

		return Value{Kind: KindBlob, Blob: data}, nil

	case tagString, tagBlobData, tagBlobIndex:
		raw, err := cur.ReadBytes(tailAndDataLen)
		if err != nil {
			return Value{}, fmt.Errorf("nvs: reading raw value bytes: %w", ErrShortInput)
		}
		return Value{Kind: KindRaw, RawTag: tag, RawBytes: raw}, nil

	case tagAny:
		if _, err := cur.ReadBytes(tailAndDataLen); err != nil {
			return Value{}, fmt.Errorf("nvs: reading sentinel tail bytes: %w", ErrShortInput)
		}
		return Value{Kind: KindAny}, nil

	default:
		return Value{}, &UnknownValueTypeError{Tag: tag}
	}
}

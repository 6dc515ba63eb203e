package nvs

import "fmt"

// ValueKind discriminates the Value tagged union.
type ValueKind int

const (
	KindU8 ValueKind = iota
	KindI8
	KindU16
	KindI16
	KindU32
	KindI32
	KindU64
	KindI64
	KindString
	KindBlob
	KindRaw // String (0x21), BlobData (0x42), BlobIndex (0x48): surfaced, not decoded.
	KindAny
)

// Value-type wire tags, as laid out in the NVS entry header.
const (
	tagU8        byte = 0x01
	tagI8        byte = 0x11
	tagU16       byte = 0x02
	tagI16       byte = 0x12
	tagU32       byte = 0x04
	tagI32       byte = 0x14
	tagU64       byte = 0x08
	tagI64       byte = 0x18
	tagString    byte = 0x21
	tagBlob      byte = 0x41
	tagBlobData  byte = 0x42
	tagBlobIndex byte = 0x48
	tagAny       byte = 0xff
)

// Value is the tagged union of everything an NVS entry can hold. Only the
// field matching Kind is meaningful.
type Value struct {
	Kind ValueKind

	U8  uint8
	I8  int8
	U16 uint16
	I16 int16
	U32 uint32
	I32 int32
	U64 uint64
	I64 int64

	Str string // KindString (reserved; not emitted by the current decoder, see KindRaw)
	Blob []byte // KindBlob: legacy (tag 0x41) blob payload

	RawTag   byte   // KindRaw: the original wire tag (0x21, 0x42, or 0x48)
	RawBytes []byte // KindRaw: the undecoded slot bytes belonging to this record
}

func (v Value) String() string {
	switch v.Kind {
	case KindU8:
		return fmt.Sprintf("%d", v.U8)
	case KindI8:
		return fmt.Sprintf("%d", v.I8)
	case KindU16:
		return fmt.Sprintf("%d", v.U16)
	case KindI16:
		return fmt.Sprintf("%d", v.I16)
	case KindU32:
		return fmt.Sprintf("%d", v.U32)
	case KindI32:
		return fmt.Sprintf("%d", v.I32)
	case KindU64:
		return fmt.Sprintf("%d", v.U64)
	case KindI64:
		return fmt.Sprintf("%d", v.I64)
	case KindString:
		return v.Str
	case KindBlob:
		return fmt.Sprintf("%x", v.Blob)
	case KindRaw:
		return fmt.Sprintf("raw(tag=0x%02x, %d bytes)", v.RawTag, len(v.RawBytes))
	case KindAny:
		return "<any>"
	default:
		return "<unknown>"
	}
}

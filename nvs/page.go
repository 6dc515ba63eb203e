package nvs

import (
	"fmt"

	"github.com/halide-systems/nvsinspect/bytesio"
)

// PageSize is the fixed size of one NVS page on flash.
const PageSize = 4096

const (
	payloadSize = usableSlots * 32 // 4032
	reservedLen = 19
)

// Page represents one 4096-byte region of an NVS image.
type Page struct {
	State       PageState
	SeqNo       uint32
	Version     uint8
	Reserved    [reservedLen]byte
	HeaderCRC32 uint32

	bitmap  *slotBitmap
	Payload [payloadSize]byte
}

// SlotStates returns all 128 slot-state entries derived from the page's
// bitmap. Only indices [0, 126) back a real payload slot; the trailing two
// are the bitmap's own storage and must never be dereferenced.
func (p Page) SlotStates() [slotBitmapLen]SlotState {
	return p.bitmap.states()
}

// Bitmap re-encodes the decoded slot bitmap back to its original 32-byte
// on-disk form.
func (p Page) Bitmap() [32]byte {
	return p.bitmap.encode()
}

// decodePage consumes exactly PageSize bytes and produces one Page.
func decodePage(data []byte) (Page, error) {
	if len(data) != PageSize {
		return Page{}, fmt.Errorf("nvs: page buffer is %d bytes, want %d: %w", len(data), PageSize, ErrShortInput)
	}

	cur := bytesio.NewCursor(data)

	magic, err := cur.ReadU32()
	if err != nil {
		return Page{}, err
	}
	state, err := pageStateFromMagic(magic)
	if err != nil {
		return Page{}, err
	}

	seqNo, err := cur.ReadU32()
	if err != nil {
		return Page{}, err
	}
	version, err := cur.ReadU8()
	if err != nil {
		return Page{}, err
	}
	reservedBytes, err := cur.ReadBytes(reservedLen)
	if err != nil {
		return Page{}, err
	}
	headerCRC, err := cur.ReadU32()
	if err != nil {
		return Page{}, err
	}
	bitmapBytes, err := cur.ReadBytes(32)
	if err != nil {
		return Page{}, err
	}
	payloadBytes, err := cur.ReadBytes(payloadSize)
	if err != nil {
		return Page{}, err
	}

	var rawBitmap [32]byte
	copy(rawBitmap[:], bitmapBytes)
	bitmap, _, err := decodeSlotBitmap(rawBitmap)
	if err != nil {
		return Page{}, err
	}

	var page Page
	page.State = state
	page.SeqNo = seqNo
	page.Version = version
	copy(page.Reserved[:], reservedBytes)
	page.HeaderCRC32 = headerCRC
	page.bitmap = bitmap
	copy(page.Payload[:], payloadBytes)

	return page, nil
}

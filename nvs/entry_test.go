package nvs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeEntrySpanBounds(t *testing.T) {
	payload := make([]byte, payloadSize)

	// span == 0 is invalid.
	payload[2] = 0
	_, _, err := decodeEntry(payload, 0, 0)
	require.ErrorIs(t, err, ErrShortInput)

	// span larger than what remains from this slot onward is invalid.
	payload[2] = 127
	_, _, err = decodeEntry(payload, 0, 0)
	require.ErrorIs(t, err, ErrShortInput)
}

func TestDecodeEntryUnknownType(t *testing.T) {
	slot := scalarEntrySlot(1, 0x99, 1, 0xff, "k", [8]byte{})
	payload := make([]byte, payloadSize)
	copy(payload, slot[:])

	_, _, err := decodeEntry(payload, 0, 0)
	require.Error(t, err)

	var want *UnknownValueTypeError
	require.ErrorAs(t, err, &want)
	require.Equal(t, byte(0x99), want.Tag)
}

func TestDecodeEntryMalformedKey(t *testing.T) {
	var slot [32]byte
	slot[0] = 1
	slot[1] = tagU8
	slot[2] = 1
	slot[3] = 0xff
	for i := 8; i < 24; i++ {
		slot[i] = 'x' // no NUL terminator anywhere in the 16-byte key field
	}
	payload := make([]byte, payloadSize)
	copy(payload, slot[:])

	_, _, err := decodeEntry(payload, 0, 0)
	require.ErrorIs(t, err, ErrMalformedKey)
}

func TestDecodeEntrySlotAccounting(t *testing.T) {
	data := make([]byte, 50)
	slots := blobEntrySlots(3, 0xff, "big", data)
	require.Len(t, slots, 3) // 1 header slot + ceil(50/32)=2 data slots

	payload := make([]byte, payloadSize)
	for i, s := range slots {
		copy(payload[i*32:], s[:])
	}

	e, remainder, err := decodeEntry(payload, 0, 5)
	require.NoError(t, err)
	require.Equal(t, uint8(5), e.SlotStart)
	require.Equal(t, uint8(8), e.SlotEnd)
	require.Equal(t, uint8(3), e.Span)
	require.Equal(t, data, e.Value.Blob)
	require.Len(t, remainder, payloadSize-3*32)
}

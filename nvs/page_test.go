package nvs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodePageWrongLength(t *testing.T) {
	_, err := decodePage(make([]byte, 100))
	require.ErrorIs(t, err, ErrShortInput)
}

func TestDecodePageFieldLayout(t *testing.T) {
	var payload [payloadSize]byte
	page := buildPage(magicFull, 42, 7, allSlots(stateEmpty), payload)

	p, err := decodePage(page)
	require.NoError(t, err)
	require.Equal(t, PageFull, p.State)
	require.Equal(t, uint32(42), p.SeqNo)
	require.Equal(t, uint8(7), p.Version)
}

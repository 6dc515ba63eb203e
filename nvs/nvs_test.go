package nvs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func fillPayload(slots ...[32]byte) [payloadSize]byte {
	var payload [payloadSize]byte
	for i := range payload {
		payload[i] = 0xff
	}
	for i, s := range slots {
		copy(payload[i*32:], s[:])
	}
	return payload
}

// S1: empty page.
func TestDecodeEmptyPage(t *testing.T) {
	var payload [payloadSize]byte
	for i := range payload {
		payload[i] = 0xff
	}
	page := buildPage(magicEmpty, 0, 0, allSlots(stateEmpty), payload)

	store, err := Decode(page, false, nil)
	require.NoError(t, err)
	require.Len(t, store.Pages(), 1)
	require.Equal(t, PageEmpty, store.Pages()[0].State)

	states := store.Pages()[0].SlotStates()
	require.Len(t, states, slotBitmapLen)
	for _, s := range states {
		require.Equal(t, SlotEmpty, s)
	}
	require.Empty(t, store.Entries())
}

// S2: single U32 record.
func TestDecodeSingleU32Record(t *testing.T) {
	slot := scalarEntrySlot(1, tagU32, 1, 0xff, "wifi_chan", u32Tail(11))
	states := allSlots(stateEmpty)
	states[0] = stateWritten

	page := buildPage(magicActive, 1, 0, states, fillPayload(slot))

	store, err := Decode(page, false, nil)
	require.NoError(t, err)
	require.Len(t, store.Entries(), 1)

	e := store.Entries()[0]
	require.Equal(t, uint8(1), e.NamespaceID)
	require.Equal(t, "wifi_chan", e.Key)
	require.Equal(t, KindU32, e.Value.Kind)
	require.Equal(t, uint32(11), e.Value.U32)
	require.Equal(t, uint8(1), e.SlotEnd-e.SlotStart)
}

// S3: namespace declaration.
func TestDecodeNamespaceDeclaration(t *testing.T) {
	nsSlot := scalarEntrySlot(0, tagU8, 1, 0xff, "storage", u8Tail(1))
	dataSlot := scalarEntrySlot(1, tagU32, 1, 0xff, "wifi_chan", u32Tail(11))

	states := allSlots(stateEmpty)
	states[0] = stateWritten
	states[1] = stateWritten

	page := buildPage(magicActive, 1, 0, states, fillPayload(nsSlot, dataSlot))

	store, err := Decode(page, false, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"storage"}, store.Namespaces())

	ns, ok := store.Namespace("storage")
	require.True(t, ok)
	require.Len(t, ns, 1)
	require.Equal(t, "wifi_chan", ns["wifi_chan"].Key)
}

// S4: legacy blob across two slots.
func TestDecodeLegacyBlobAcrossTwoSlots(t *testing.T) {
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i + 1)
	}
	slots := blobEntrySlots(1, 0xff, "blobkey", data)
	require.Len(t, slots, 2)

	states := allSlots(stateEmpty)
	states[0] = stateWritten
	states[1] = stateWritten

	page := buildPage(magicActive, 1, 0, states, fillPayload(slots[0], slots[1]))

	store, err := Decode(page, false, nil)
	require.NoError(t, err)
	require.Len(t, store.Entries(), 1)

	e := store.Entries()[0]
	require.Equal(t, KindBlob, e.Value.Kind)
	require.Equal(t, data, e.Value.Blob)
	require.Equal(t, uint8(e.SlotStart+2), e.SlotEnd)
}

// S5: erased record hidden by default, shown with includeErased.
func TestDecodeErasedRecordVisibility(t *testing.T) {
	slot := scalarEntrySlot(1, tagU32, 1, 0xff, "wifi_chan", u32Tail(11))
	states := allSlots(stateEmpty)
	states[0] = stateErased

	page := buildPage(magicActive, 1, 0, states, fillPayload(slot))

	hidden, err := Decode(page, false, nil)
	require.NoError(t, err)
	require.Empty(t, hidden.Entries())

	shown, err := Decode(page, true, nil)
	require.NoError(t, err)
	require.Len(t, shown.Entries(), 1)
	require.Equal(t, "wifi_chan", shown.Entries()[0].Key)
}

// S6: unknown page magic.
func TestDecodeUnknownPageMagic(t *testing.T) {
	page := buildPage(0x12345678, 0, 0, allSlots(stateEmpty), [payloadSize]byte{})

	_, err := Decode(page, false, nil)
	require.Error(t, err)

	var want *UnknownPageStateError
	require.ErrorAs(t, err, &want)
	require.Equal(t, uint32(0x12345678), want.Magic)
}

// S8: raw/unimplemented value tags surface instead of failing.
func TestDecodeRawValueTag(t *testing.T) {
	slot := scalarEntrySlot(1, tagString, 1, 0xff, "greeting", [8]byte{'h', 'i', 0, 0, 0, 0, 0, 0})
	states := allSlots(stateEmpty)
	states[0] = stateWritten

	page := buildPage(magicActive, 1, 0, states, fillPayload(slot))

	store, err := Decode(page, false, nil)
	require.NoError(t, err)
	require.Len(t, store.Entries(), 1)

	v := store.Entries()[0].Value
	require.Equal(t, KindRaw, v.Kind)
	require.Equal(t, byte(tagString), v.RawTag)
	require.Len(t, v.RawBytes, 8)
}

// S9: bloom accelerator never produces a false negative.
func TestBloomNeverFalseNegative(t *testing.T) {
	nsSlot := scalarEntrySlot(0, tagU8, 1, 0xff, "storage", u8Tail(1))
	dataSlot := scalarEntrySlot(1, tagU32, 1, 0xff, "wifi_chan", u32Tail(11))

	states := allSlots(stateEmpty)
	states[0] = stateWritten
	states[1] = stateWritten

	page := buildPage(magicActive, 1, 0, states, fillPayload(nsSlot, dataSlot))

	store, err := Decode(page, false, nil)
	require.NoError(t, err)

	require.True(t, store.MightContainKey("storage", "wifi_chan"))
}

// S10: fingerprint stability across repeated decodes of the same bytes.
func TestFingerprintStable(t *testing.T) {
	page := buildPage(magicEmpty, 0, 0, allSlots(stateEmpty), [payloadSize]byte{})

	a, err := Decode(page, false, nil)
	require.NoError(t, err)
	b, err := Decode(page, false, nil)
	require.NoError(t, err)

	require.Equal(t, a.Fingerprint(), b.Fingerprint())
}

// Invariant: re-encoding a decoded bitmap reproduces the original bytes.
func TestBitmapRoundTrip(t *testing.T) {
	states := allSlots(stateEmpty)
	states[5] = stateErased

	page := buildPage(magicActive, 1, 0, states, [payloadSize]byte{})

	store, err := Decode(page, false, nil)
	require.NoError(t, err)

	want := packBitmap(states)
	got := store.Pages()[0].Bitmap()
	require.Equal(t, want, got)
}

// Invariant: page count tracks input length, and every page exposes the
// documented slot/payload sizes.
func TestPageCountAndShape(t *testing.T) {
	empty := buildPage(magicEmpty, 0, 0, allSlots(stateEmpty), [payloadSize]byte{})
	data := make([]byte, 0, len(empty)*2)
	data = append(data, empty...)
	data = append(data, empty...)

	store, err := Decode(data, false, nil)
	require.NoError(t, err)
	require.Len(t, store.Pages(), len(data)/PageSize)

	for _, p := range store.Pages() {
		require.Len(t, p.SlotStates(), slotBitmapLen)
		require.Len(t, p.Payload, payloadSize)
	}
}

// Invariant: short/misaligned input is a decode error.
func TestDecodeRejectsMisalignedInput(t *testing.T) {
	_, err := Decode(make([]byte, 100), false, nil)
	require.ErrorIs(t, err, ErrShortInput)

	_, err = Decode(nil, false, nil)
	require.ErrorIs(t, err, ErrShortInput)
}

// Invariant: dangling namespace references are logged, not fatal, and the
// entry is simply left out of every namespace index.
func TestDanglingNamespaceIsNonFatal(t *testing.T) {
	slot := scalarEntrySlot(7, tagU32, 1, 0xff, "orphan", u32Tail(1))
	states := allSlots(stateEmpty)
	states[0] = stateWritten

	page := buildPage(magicActive, 1, 0, states, fillPayload(slot))

	store, err := Decode(page, false, nil)
	require.NoError(t, err)
	require.Len(t, store.Entries(), 1, "orphaned record still appears in the raw entry list")

	for _, name := range store.Namespaces() {
		ns, _ := store.Namespace(name)
		for _, e := range ns {
			require.NotEqual(t, "orphan", e.Key)
		}
	}
}

func TestEntryDeepEqual(t *testing.T) {
	slot := scalarEntrySlot(1, tagU16, 1, 0xff, "k", func() [8]byte {
		var t [8]byte
		t[0], t[1] = 0x34, 0x12
		return t
	}())
	states := allSlots(stateEmpty)
	states[0] = stateWritten

	page := buildPage(magicActive, 1, 0, states, fillPayload(slot))

	store, err := Decode(page, false, nil)
	require.NoError(t, err)

	want := Entry{
		NamespaceID: 1,
		Span:        1,
		ChunkIndex:  0xff,
		Key:         "k",
		Value:       Value{Kind: KindU16, U16: 0x1234},
		PageIndex:   0,
		SlotStart:   0,
		SlotEnd:     1,
	}

	diff := cmp.Diff(want, store.Entries()[0], cmpopts.IgnoreFields(Entry{}, "EntryCRC32"))
	require.Empty(t, diff, "decoded entry mismatch (-want +got)")
}

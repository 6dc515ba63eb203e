package nvs

import "github.com/bits-and-blooms/bitset"

// slotBitmapLen is the number of slot-state entries a 32-byte bitmap
// describes: 8 little-endian u32 words, 16 two-bit positions each.
const slotBitmapLen = 128

// usableSlots is the number of payload slots a page actually holds; the
// trailing two bitmap positions describe the bitmap's own storage and are
// never dereferenced.
const usableSlots = 126

// slotBitmap stores the per-slot two-bit allocation state as two bit
// planes (low bit, high bit) so that every slot state is a pair of
// constant-time bitset lookups instead of a byte-array scan.
type slotBitmap struct {
	low  *bitset.BitSet
	high *bitset.BitSet
}

func decodeSlotBitmap(raw [32]byte) (*slotBitmap, [slotBitmapLen]SlotState, error) {
	bm := &slotBitmap{
		low:  bitset.New(slotBitmapLen),
		high: bitset.New(slotBitmapLen),
	}

	var states [slotBitmapLen]SlotState

	for word := 0; word < 8; word++ {
		w := uint32(raw[word*4]) | uint32(raw[word*4+1])<<8 |
			uint32(raw[word*4+2])<<16 | uint32(raw[word*4+3])<<24

		for i := 0; i < 16; i++ {
			slot := uint(word*16 + i)
			bits := byte((w >> (i * 2)) & 0b11)

			state, err := slotStateFromBits(bits)
			if err != nil {
				return nil, states, err
			}
			states[slot] = state

			if bits&0b01 != 0 {
				bm.low.Set(slot)
			}
			if bits&0b10 != 0 {
				bm.high.Set(slot)
			}
		}
	}

	return bm, states, nil
}

// encode reproduces the original 32-byte bitmap from the decoded bit
// planes (testable property: re-encoding round-trips the input).
func (bm *slotBitmap) encode() [32]byte {
	var raw [32]byte

	for word := 0; word < 8; word++ {
		var w uint32
		for i := 0; i < 16; i++ {
			slot := uint(word*16 + i)
			var bits uint32
			if bm.low.Test(slot) {
				bits |= 0b01
			}
			if bm.high.Test(slot) {
				bits |= 0b10
			}
			w |= bits << (i * 2)
		}
		raw[word*4] = byte(w)
		raw[word*4+1] = byte(w >> 8)
		raw[word*4+2] = byte(w >> 16)
		raw[word*4+3] = byte(w >> 24)
	}

	return raw
}

func (bm *slotBitmap) states() [slotBitmapLen]SlotState {
	var states [slotBitmapLen]SlotState
	for slot := uint(0); slot < slotBitmapLen; slot++ {
		bits := byte(0)
		if bm.low.Test(slot) {
			bits |= 0b01
		}
		if bm.high.Test(slot) {
			bits |= 0b10
		}
		state, err := slotStateFromBits(bits)
		if err != nil {
			// Bit planes are only ever populated via decodeSlotBitmap,
			// which already validated every slot.
			panic(err)
		}
		states[slot] = state
	}
	return states
}

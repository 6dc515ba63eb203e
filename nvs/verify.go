package nvs

import "hash/crc32"

// VerifyPageCRC recomputes a page header's CRC32 and reports whether it
// matches the stored HeaderCRC32. CRCs are never checked automatically by
// Decode; callers that need the guarantee call this explicitly.
//
// The checksum covers the same fields esp-idf covers: sequence number,
// version, the reserved bytes, and the slot bitmap.
func VerifyPageCRC(p Page) bool {
	h := crc32.NewIEEE()

	var seqNo [4]byte
	seqNo[0] = byte(p.SeqNo)
	seqNo[1] = byte(p.SeqNo >> 8)
	seqNo[2] = byte(p.SeqNo >> 16)
	seqNo[3] = byte(p.SeqNo >> 24)

	_, _ = h.Write(seqNo[:])
	_, _ = h.Write([]byte{p.Version})
	_, _ = h.Write(p.Reserved[:])
	bitmap := p.Bitmap()
	_, _ = h.Write(bitmap[:])

	return h.Sum32() == p.HeaderCRC32
}

// VerifyEntryCRC recomputes an entry's CRC32 over its namespace id, type
// tag, span, chunk index, 16-byte key field, and, for blob and raw values
// only, the value bytes, and reports whether it matches the stored
// EntryCRC32. Fixed-width scalar values are not part of the checksum.
// Not called from the decode path.
func VerifyEntryCRC(e Entry, typeTag byte) bool {
	h := crc32.NewIEEE()

	_, _ = h.Write([]byte{e.NamespaceID, typeTag, e.Span, e.ChunkIndex})

	var keyField [16]byte
	copy(keyField[:], e.Key)
	_, _ = h.Write(keyField[:])

	switch e.Value.Kind {
	case KindBlob:
		_, _ = h.Write(e.Value.Blob)
	case KindRaw:
		_, _ = h.Write(e.Value.RawBytes)
	}

	return h.Sum32() == e.EntryCRC32
}

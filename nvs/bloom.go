package nvs

import "github.com/bits-and-blooms/bloom/v3"

// keyFingerprint is the bloom-filter element identity: a record's
// namespace name joined with its key, since keys are only unique within a
// namespace.
func keyFingerprint(namespace, key string) string {
	return namespace + "\x00" + key
}

// buildKeyBloom constructs a membership accelerator over every (namespace,
// key) pair actually present in the decoded entry list. It never produces
// false negatives; MightContainKey true is a hint to re-check, not proof.
func buildKeyBloom(entries []Entry, nsNames map[uint8]string) *bloom.BloomFilter {
	n := uint(len(entries))
	if n == 0 {
		n = 1
	}
	filter := bloom.NewWithEstimates(n, 0.01)

	for _, e := range entries {
		ns := nsNames[e.NamespaceID]
		filter.AddString(keyFingerprint(ns, e.Key))
	}

	return filter
}

// MightContainKey reports whether key might exist in namespace ns. A false
// result is certain; a true result must still be confirmed via Namespace.
func (n *Nvs) MightContainKey(ns, key string) bool {
	if n.bloom == nil {
		return true
	}
	return n.bloom.TestString(keyFingerprint(ns, key))
}

package nvs

import "github.com/cespare/xxhash/v2"

// Fingerprint returns an xxhash64 digest of the raw bytes this Nvs was
// decoded from. Two decodes of byte-identical images always agree; it is
// not a semantic hash of the decoded object graph.
func (n *Nvs) Fingerprint() uint64 {
	return n.fingerprint
}

func fingerprintBytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Package nvs decodes esp-idf NVS (non-volatile storage) partition images:
// a log-structured key/value store spread across fixed 4096-byte pages.
package nvs

import (
	"fmt"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/halide-systems/nvsinspect/nvslog"
)

// Nvs is the decoded, queryable contents of one NVS partition image. It is
// immutable after construction and safe to share across goroutines.
type Nvs struct {
	pages   []Page
	entries []Entry

	nsNameByID map[uint8]string
	nsIDByName map[string]uint8
	nsEntries  map[uint8][]int // namespace id -> indices into entries, insertion order

	includeErased bool
	bloom         *bloom.BloomFilter
	fingerprint   uint64
}

// Decode parses data as a complete NVS partition image. includeErased
// controls whether records whose slot state is Erased are decoded and
// surfaced (they are always skipped when their slot state is Empty).
// logger may be nil, in which case diagnostics go to a default stderr
// logger.
func Decode(data []byte, includeErased bool, logger *nvslog.Logger) (*Nvs, error) {
	if logger == nil {
		logger = nvslog.Default()
	}

	if len(data) == 0 || len(data)%PageSize != 0 {
		return nil, fmt.Errorf("nvs: image length %d is not a positive multiple of %d: %w", len(data), PageSize, ErrShortInput)
	}

	numPages := len(data) / PageSize
	pages := make([]Page, 0, numPages)
	for i := 0; i < numPages; i++ {
		page, err := decodePage(data[i*PageSize : (i+1)*PageSize])
		if err != nil {
			return nil, fmt.Errorf("nvs: decoding page %d: %w", i, err)
		}
		pages = append(pages, page)
	}

	n := &Nvs{
		pages:         pages,
		nsNameByID:    map[uint8]string{},
		nsIDByName:    map[string]uint8{},
		nsEntries:     map[uint8][]int{},
		includeErased: includeErased,
	}

	for pageIdx, page := range pages {
		if err := n.assemblePage(uint8(pageIdx), page, logger); err != nil {
			return nil, fmt.Errorf("nvs: assembling page %d: %w", pageIdx, err)
		}
	}

	n.bloom = buildKeyBloom(n.entries, n.nsNameByID)
	n.fingerprint = fingerprintBytes(data)

	return n, nil
}

func (n *Nvs) assemblePage(pageIdx uint8, page Page, logger *nvslog.Logger) error {
	states := page.SlotStates()
	payload := page.Payload[:]

	slot := 0
	for slot < usableSlots {
		state := states[slot]

		if state == SlotEmpty || (state == SlotErased && !n.includeErased) {
			slot++
			payload = payload[32:]
			continue
		}

		entry, remainder, err := decodeEntry(payload, pageIdx, uint8(slot))
		if err != nil {
			return err
		}
		payload = remainder
		slot = int(entry.SlotEnd)

		if entry.NamespaceID == 0 {
			if entry.Value.Kind != KindU8 {
				return fmt.Errorf("nvs: namespace record %q: %w", entry.Key, ErrNamespaceTypeMismatch)
			}
			id := entry.Value.U8
			n.nsNameByID[id] = entry.Key
			n.nsIDByName[entry.Key] = id
			if _, ok := n.nsEntries[id]; !ok {
				n.nsEntries[id] = nil
			}
			continue
		}

		n.entries = append(n.entries, entry)
		idx := len(n.entries) - 1

		if _, ok := n.nsNameByID[entry.NamespaceID]; !ok {
			logger.Warnf("dangling namespace reference: entry %q refers to unknown namespace id %d (page %d, slot %d)",
				entry.Key, entry.NamespaceID, pageIdx, entry.SlotStart)
			continue
		}

		n.nsEntries[entry.NamespaceID] = append(n.nsEntries[entry.NamespaceID], idx)
	}

	return nil
}

// Namespaces returns the declared namespace names, in unspecified order.
func (n *Nvs) Namespaces() []string {
	names := make([]string, 0, len(n.nsNameByID))
	for _, name := range n.nsNameByID {
		names = append(names, name)
	}
	return names
}

// Namespace returns a key -> Entry mapping for the given namespace name,
// unique by key within that namespace at query time: duplicate keys
// resolve to the latest entry in file order. The second return value is
// false if the namespace name is unknown.
func (n *Nvs) Namespace(name string) (map[string]Entry, bool) {
	id, ok := n.nsIDByName[name]
	if !ok {
		return nil, false
	}

	out := make(map[string]Entry)
	for _, idx := range n.nsEntries[id] {
		e := n.entries[idx]
		out[e.Key] = e
	}
	return out, true
}

// Entries returns all non-namespace-declaring records, in file order.
func (n *Nvs) Entries() []Entry {
	return n.entries
}

// Pages returns all decoded pages, in file order.
func (n *Nvs) Pages() []Page {
	return n.pages
}

package render

import (
	"bytes"
	"encoding/csv"
)

// CSV renders rows as RFC 4180 CSV: a header line followed by one line per
// row, matching the original tool's plain CSV export.
func CSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if len(rows) > 0 {
		if err := w.Write(rows[0].Columns); err != nil {
			return nil, err
		}
	}
	for _, r := range rows {
		if err := w.Write(r.Values); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

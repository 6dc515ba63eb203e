package render

import (
	"bytes"
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Text renders rows as a column-aligned table, truncating the last
// column (to no less than 8 cells) if the table would overflow the
// terminal width.
func Text(rows []Row) ([]byte, error) {
	if len(rows) == 0 {
		return []byte("(no rows)\n"), nil
	}

	widths := make([]int, len(rows[0].Columns))
	for i, c := range rows[0].Columns {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, r := range rows {
		for i, v := range r.Values {
			if w := runewidth.StringWidth(v); w > widths[i] {
				widths[i] = w
			}
		}
	}

	total := terminalWidth()
	budget := 0
	for _, w := range widths {
		budget += w + 2
	}
	if budget > total && len(widths) > 0 {
		shrinkLastColumn(widths, budget-total)
	}

	var buf bytes.Buffer
	writeRow(&buf, rows[0].Columns, widths)
	for _, r := range rows {
		writeRow(&buf, r.Values, widths)
	}
	return buf.Bytes(), nil
}

func shrinkLastColumn(widths []int, excess int) {
	last := len(widths) - 1
	widths[last] -= excess
	if widths[last] < 8 {
		widths[last] = 8
	}
}

func writeRow(buf *bytes.Buffer, cells []string, widths []int) {
	for i, cell := range cells {
		w := widths[i]
		if runewidth.StringWidth(cell) > w {
			cell = runewidth.Truncate(cell, w, "…")
		}
		fmt.Fprintf(buf, "%-*s  ", w, cell)
	}
	buf.WriteByte('\n')
}

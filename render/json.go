package render

import "encoding/json"

// JSON renders rows as an array of column->value objects.
func JSON(rows []Row) ([]byte, error) {
	out := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		obj := make(map[string]string, len(r.Columns))
		for i, c := range r.Columns {
			obj[c] = r.Values[i]
		}
		out = append(out, obj)
	}
	return json.MarshalIndent(out, "", "  ")
}

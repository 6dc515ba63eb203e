package render

import "gopkg.in/yaml.v3"

// YAML renders rows the same shape as JSON (one mapping per row), for
// callers who prefer a human-editable export format.
func YAML(rows []Row) ([]byte, error) {
	out := make([]map[string]string, 0, len(rows))
	for _, r := range rows {
		obj := make(map[string]string, len(r.Columns))
		for i, c := range r.Columns {
			obj[c] = r.Values[i]
		}
		out = append(out, obj)
	}
	return yaml.Marshal(out)
}

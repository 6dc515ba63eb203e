// Package render formats decoded NVS and partition-table objects for the
// CLI front-ends in cmd/nvscat and cmd/parttool.
package render

import "fmt"

// Row is one renderable record: an NVS entry or a partition, flattened to
// named columns so every format (text, csv, json, yaml, fb) shares one
// source of truth.
type Row struct {
	Columns []string
	Values  []string
}

// ErrUnknownFormat is returned by Lookup for an unrecognized --output value.
var ErrUnknownFormat = fmt.Errorf("render: unknown output format")

// Format renders a slice of Row and returns the encoded bytes.
type Format func(rows []Row) ([]byte, error)

// Lookup resolves a --output flag value to its Format function.
func Lookup(name string) (Format, error) {
	switch name {
	case "text", "":
		return Text, nil
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	case "yaml":
		return YAML, nil
	case "fb":
		return FlatBuffer, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
	}
}

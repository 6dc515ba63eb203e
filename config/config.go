// Package config loads CLI defaults from an optional HuJSON
// (JSON-with-comments) file, falling back to built-in defaults when the
// file is absent.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds the CLI defaults both nvscat and parttool read at startup.
type Config struct {
	OutputFormat   string `json:"output_format,omitempty"`
	IncludeErased  bool   `json:"include_erased,omitempty"`
	Color          bool   `json:"color,omitempty"`
}

// Default returns the built-in configuration used when no config file is
// present or specified.
func Default() Config {
	return Config{
		OutputFormat:  "text",
		IncludeErased: false,
		Color:         true,
	}
}

// FileName is the default config file name looked up in the user's home
// directory.
const FileName = ".nvsinspectrc"

// DefaultPath returns the conventional config path, or "" if the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, FileName)
}

// Load reads and parses the HuJSON config file at path, merging it over
// Default(). A missing file is not an error. An empty path uses
// DefaultPath().
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return cfg, fmt.Errorf("config: %s is not valid HuJSON: %w", path, err)
	}

	var overlay Config
	if err := json.Unmarshal(standardized, &overlay); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}

	return merge(cfg, overlay, standardized), nil
}

// merge overlays non-zero-value fields from overlay onto base. Booleans
// need an explicit-presence check since json.Unmarshal can't distinguish
// "false" from "absent" on its own.
func merge(base, overlay Config, raw []byte) Config {
	if overlay.OutputFormat != "" {
		base.OutputFormat = overlay.OutputFormat
	}

	var presence map[string]json.RawMessage
	_ = json.Unmarshal(raw, &presence)

	if _, ok := presence["include_erased"]; ok {
		base.IncludeErased = overlay.IncludeErased
	}
	if _, ok := presence["color"]; ok {
		base.Color = overlay.Color
	}

	return base
}

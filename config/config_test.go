package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverlaysProvidedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nvsinspectrc")
	contents := `{
		// comments are fine, this is HuJSON
		"output_format": "json",
		"include_erased": true,
	}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "json", cfg.OutputFormat)
	require.True(t, cfg.IncludeErased)
	require.True(t, cfg.Color) // untouched field keeps its default
}

func TestLoadRejectsInvalidHuJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nvsinspectrc")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

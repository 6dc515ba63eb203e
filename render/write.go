package render

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// WriteFile writes data to path atomically (write-to-temp, rename), so a
// crash or concurrent reader never observes a partial export. An empty
// path writes to stdout instead.
func WriteFile(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("render: writing %s: %w", path, err)
	}
	return nil
}

package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compress applies the named --compress codec to already-rendered output.
// An empty name is a no-op, returning data unchanged.
func Compress(name string, data []byte) ([]byte, error) {
	switch name {
	case "", "none":
		return data, nil
	case "zstd":
		return compressZstd(data)
	case "lz4":
		return compressLZ4(data)
	default:
		return nil, fmt.Errorf("render: unknown compression codec %q", name)
	}
}

func compressZstd(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("render: creating zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

func compressLZ4(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("render: lz4 compressing: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("render: closing lz4 writer: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress, for tooling that reads back a compressed
// export.
func Decompress(name string, data []byte) ([]byte, error) {
	switch name {
	case "", "none":
		return data, nil
	case "zstd":
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("render: creating zstd reader: %w", err)
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	case "lz4":
		r := lz4.NewReader(bytes.NewReader(data))
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("render: lz4 decompressing: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("render: unknown compression codec %q", name)
	}
}

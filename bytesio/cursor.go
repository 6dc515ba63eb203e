// Package bytesio provides small helpers for reading fixed-width
// little-endian fields out of a byte slice. Only ReadBytes and the string
// readers allocate, to return owned values.
package bytesio

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// ErrShortRead is returned when a read would run past the end of the
// underlying slice.
var ErrShortRead = fmt.Errorf("bytesio: short read")

// Cursor reads sequential fields from a byte slice without copying the
// backing array except where an owned value (e.g. a string) must be
// produced.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor wraps buf for sequential reads starting at offset 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

func (c *Cursor) take(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, ErrShortRead
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadU8 reads one byte.
func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadI8 reads one signed byte.
func (c *Cursor) ReadI8() (int8, error) {
	v, err := c.ReadU8()
	return int8(v), err
}

// ReadU16 reads a little-endian uint16.
func (c *Cursor) ReadU16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadI16 reads a little-endian int16.
func (c *Cursor) ReadI16() (int16, error) {
	v, err := c.ReadU16()
	return int16(v), err
}

// ReadU32 reads a little-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadI32 reads a little-endian int32.
func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

// ReadU64 reads a little-endian uint64.
func (c *Cursor) ReadU64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadI64 reads a little-endian int64.
func (c *Cursor) ReadI64() (int64, error) {
	v, err := c.ReadU64()
	return int64(v), err
}

// ReadBytes returns the next n bytes, copied into a new owned slice.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadFixedString reads an n-byte field holding a NUL-terminated UTF-8
// string. It is an error for the field to contain no NUL terminator.
func ReadFixedString(field []byte) (string, error) {
	idx := -1
	for i, b := range field {
		if b == 0 {
			idx = i
			break
		}
	}
	if idx == -1 {
		return "", fmt.Errorf("bytesio: no NUL terminator in fixed field")
	}
	s := field[:idx]
	if !utf8.Valid(s) {
		return "", fmt.Errorf("bytesio: fixed field is not valid UTF-8")
	}
	return string(s), nil
}

// ReadFixedStringField reads n bytes from the cursor and decodes them as a
// NUL-terminated fixed string.
func (c *Cursor) ReadFixedStringField(n int) (string, error) {
	b, err := c.take(n)
	if err != nil {
		return "", err
	}
	return ReadFixedString(b)
}

package ot

import (
	"encoding/binary"
	"errors"
)

// Reading and writing bytes of a font's binary representation

var errBufferBounds = errors.New("buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// binarySegm is a segment of byte data with bounds-checked accessors.
type binarySegm []byte

// view returns n bytes at the given offset.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n < 0 || offset > len(b) || n > len(b)-offset {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// clampedView returns up to n bytes at the given offset, cut at the end of
// the segment. It is an error if offset lies beyond the end.
func (b binarySegm) clampedView(offset, n int) (binarySegm, error) {
	if offset < 0 || n < 0 || offset > len(b) {
		return nil, errBufferBounds
	}
	if n > len(b)-offset {
		n = len(b) - offset
	}
	return b[offset : offset+n], nil
}

func (b binarySegm) putU32(offset int, v uint32) error {
	if offset < 0 || offset+4 > len(b) {
		return errBufferBounds
	}
	binary.BigEndian.PutUint32(b[offset:], v)
	return nil
}

// splice replaces the bytes in [at, at+n) with data and returns the resulting
// segment. The segment will grow or shrink by len(data)-n bytes.
func (b binarySegm) splice(at, n int, data []byte) (binarySegm, error) {
	if at < 0 || n < 0 || at > len(b) || n > len(b)-at {
		return b, errBufferBounds
	}
	delta := len(data) - n
	if delta == 0 {
		copy(b[at:], data)
		return b, nil
	}
	out := make(binarySegm, 0, len(b)+delta)
	out = append(out, b[:at]...)
	out = append(out, data...)
	out = append(out, b[at+n:]...)
	return out, nil
}

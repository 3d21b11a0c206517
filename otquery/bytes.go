package otquery

import "encoding/binary"

func u16(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}

func i16(b []byte) int16 {
	return int16(binary.BigEndian.Uint16(b))
}

// fieldReader decodes consecutive big-endian fields of a fixed-layout table.
// Callers check the table size up front; reading past the end panics.
type fieldReader struct {
	b  []byte
	at int
}

func (r *fieldReader) u16() uint16 {
	v := u16(r.b[r.at:])
	r.at += 2
	return v
}

func (r *fieldReader) i16() int16 {
	return int16(r.u16())
}

func (r *fieldReader) u32() uint32 {
	v := binary.BigEndian.Uint32(r.b[r.at:])
	r.at += 4
	return v
}

// longDateTime reads a 64-bit count of seconds since 1904-01-01.
func (r *fieldReader) longDateTime() int64 {
	v := int64(binary.BigEndian.Uint64(r.b[r.at:]))
	r.at += 8
	return v
}

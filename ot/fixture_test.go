package ot

import (
	"encoding/binary"
	"testing"
)

// fixtureTable describes a table of a synthetic test font.
type fixtureTable struct {
	tag  string
	data []byte
	gap  int // number of zero bytes in front of the table's (padded) content
}

// fixtureFont lays out tables in directory order, each padded to 4 bytes,
// with correct checksums and checksum adjustment.
type fixtureFont struct {
	absolute   bool
	scaler     uint32
	badSums    bool // leave all table checksums at zero
	skipAdjust bool // leave the adjustment of 'head' at zero
}

func (ff fixtureFont) build(t testing.TB, tables ...fixtureTable) []byte {
	t.Helper()
	scaler := ff.scaler
	if scaler == 0 {
		scaler = ScalerTrueType
	}
	n := len(tables)
	dataStart := HeaderSize + n*TableRecordSize
	var blob []byte
	offsets := make([]int, n)
	for i, tbl := range tables {
		blob = append(blob, make([]byte, tbl.gap)...)
		offsets[i] = len(blob)
		blob = append(blob, tbl.data...)
		for len(blob)%4 != 0 {
			blob = append(blob, 0)
		}
	}
	font := make([]byte, dataStart+len(blob))
	binary.BigEndian.PutUint32(font[0:], scaler)
	binary.BigEndian.PutUint16(font[4:], uint16(n))
	sr, es, rs := searchParams(n)
	binary.BigEndian.PutUint16(font[6:], sr)
	binary.BigEndian.PutUint16(font[8:], es)
	binary.BigEndian.PutUint16(font[10:], rs)
	copy(font[dataStart:], blob)
	headPos := -1
	for i, tbl := range tables {
		rec := font[HeaderSize+i*TableRecordSize:]
		copy(rec[0:4], []byte(tbl.tag))
		if !ff.badSums {
			binary.BigEndian.PutUint32(rec[4:], Checksum(tbl.data))
		}
		off := offsets[i]
		if ff.absolute {
			off += dataStart
		}
		binary.BigEndian.PutUint32(rec[8:], uint32(off))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(tbl.data)))
		if tbl.tag == "head" {
			headPos = dataStart + offsets[i]
		}
	}
	if headPos >= 0 && !ff.skipAdjust {
		binary.BigEndian.PutUint32(font[headPos+8:], 0)
		binary.BigEndian.PutUint32(font[headPos+8:], ChecksumMagic-WordSum(font))
	}
	return font
}

// headTable creates a 54-byte table 'head' with a few plausible values.
func headTable() []byte {
	b := make([]byte, 54)
	binary.BigEndian.PutUint32(b[0:], 0x00010000)  // version
	binary.BigEndian.PutUint32(b[4:], 0x00018000)  // font revision
	binary.BigEndian.PutUint32(b[12:], 0x5F0F3CF5) // magic number
	binary.BigEndian.PutUint16(b[18:], 1000)       // units per em
	return b
}

// payload creates n bytes of recognizable content.
func payload(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i*7)
	}
	return b
}

func mustParse(t testing.TB, font []byte, opts ...ParseOption) *FontImage {
	t.Helper()
	img, err := Parse(font, opts...)
	if err != nil {
		t.Fatalf("cannot parse test font: %v", err)
	}
	return img
}

func recordOf(t testing.TB, img *FontImage, tag string) *TableRecord {
	t.Helper()
	rec, ok := img.Find(T(tag)).Unwrap()
	if !ok {
		t.Fatalf("expected table '%s' to be present", tag)
	}
	return rec
}

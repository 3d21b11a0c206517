package ot

import (
	"fmt"
	"math/bits"
)

// Scaler types found in the offset table of a font file.
//
// OpenType fonts that contain TrueType outlines should use the value of 0x00010000
// for the scaler type. OpenType fonts containing CFF data (version 1 or 2) should
// use 0x4F54544F ('OTTO', when re-interpreted as a Tag).
// The Apple specification for TrueType fonts allows for 'true' and 'typ1'.
const (
	ScalerTrueType uint32 = 0x00010000
	ScalerOTTO     uint32 = 0x4f54544f
	ScalerTrue     uint32 = 0x74727565
	ScalerTyp1     uint32 = 0x74797031
)

// Sizes of the fixed parts of a font file.
const (
	HeaderSize      = 12 // offset table
	TableRecordSize = 16 // one entry of the table directory
)

// Checksum related constants of table 'head'.
const (
	// ChecksumMagic is the value the word-sum of a complete font file has to
	// equal, once field checkSumAdjustment of table 'head' is set correctly.
	ChecksumMagic uint32 = 0xB1B0AFBA
	// HeadAdjustmentOffset is the byte position of field checkSumAdjustment
	// within table 'head'.
	HeadAdjustmentOffset = 8
)

// Header is the offset table at the start of a font file.
// Fields SearchRange, EntrySelector and RangeShift are carried through unmodified,
// unless a client calls FontImage.NormalizeSearchParams.
type Header struct {
	ScalerType    uint32
	NumTables     uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

// IsTrueType reports whether the scaler type is 0x00010000, which is the value
// expected for Windows TrueType/OpenType fonts.
func (h Header) IsTrueType() bool {
	return h.ScalerType == ScalerTrueType
}

func (h Header) String() string {
	return fmt.Sprintf("[%s tables=%d sr=%d es=%d rs=%d]", Tag(h.ScalerType).Printable(),
		h.NumTables, h.SearchRange, h.EntrySelector, h.RangeShift)
}

// searchParams calculates the binary search parameters of the offset table
// for a given number of tables.
func searchParams(numTables int) (searchRange, entrySelector, rangeShift uint16) {
	if numTables <= 0 {
		return 0, 0, 0
	}
	sel := bits.Len(uint(numTables)) - 1
	searchRange = uint16(1 << (sel + 4))
	entrySelector = uint16(sel)
	rangeShift = uint16(16 * (numTables - 1<<sel))
	return
}

// --- Tag -------------------------------------------------------------------

// Tag is defined by the spec as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline.
//
// Tags read from a font file are not guaranteed to consist of ASCII characters.
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("cmap"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

// Bytes returns the 4 raw bytes of a tag.
func (t Tag) Bytes() [4]byte {
	return [4]byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
}

func (t Tag) String() string {
	b := t.Bytes()
	return string(b[:])
}

// Printable returns the tag as a string, with non-printable bytes replaced by
// their hex code. Useful for tracing garbage tags of fuzzed fonts.
func (t Tag) Printable() string {
	var s []byte
	for _, c := range t.Bytes() {
		if c >= 0x20 && c < 0x7f {
			s = append(s, c)
		} else {
			s = append(s, fmt.Sprintf("\\x%02x", c)...)
		}
	}
	return string(s)
}

// IsWordTag reports whether the tag contains at least one word character,
// i.e. one of [0-9A-Za-z_]. Tags of all-blank, all-zero or otherwise garbled
// directory entries fail this test.
func (t Tag) IsWordTag() bool {
	for _, c := range t.Bytes() {
		if c == '_' || (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			return true
		}
	}
	return false
}

// TagHead is the tag of table 'head', which holds the checksum adjustment.
var TagHead = T("head")

// --- Table records ---------------------------------------------------------

// TableRecord is an entry of the table directory.
//
// Length is the exact length of the table's content, without padding.
// Offset locates the table content, see FontImage for how offsets are interpreted.
// Offsets need not be monotonic with respect to directory order.
type TableRecord struct {
	Tag      Tag
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// NewTableRecord creates a fully initialized table record.
func NewTableRecord(tag Tag, offset, length, checksum uint32) *TableRecord {
	return &TableRecord{
		Tag:      tag,
		Checksum: checksum,
		Offset:   offset,
		Length:   length,
	}
}

func (rec *TableRecord) String() string {
	if rec == nil {
		return "<nil record>"
	}
	return fmt.Sprintf("'%s' @%d+%d sum=%08x", rec.Tag.Printable(), rec.Offset, rec.Length, rec.Checksum)
}

// end returns the (unpadded) end offset of a table record.
func (rec *TableRecord) end() uint64 {
	return uint64(rec.Offset) + uint64(rec.Length)
}

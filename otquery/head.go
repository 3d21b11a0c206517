package otquery

import (
	"encoding/binary"

	"github.com/npillmayer/sfntfix/ot"
)

// HeadTableInfo is a typed view of table 'head'.
type HeadTableInfo struct {
	MajorVersion, MinorVersion uint16
	FontRevision               uint32
	CheckSumAdjustment         uint32
	MagicNumber                uint32
	Flags                      uint16
	UnitsPerEm                 uint16
	Created, Modified          int64 // seconds since 1904
	XMin, YMin, XMax, YMax     int16
	MacStyle                   uint16
	LowestRecPPEM              uint16
	FontDirectionHint          int16
	IndexToLocFormat           int16
	GlyphDataFormat            int16
}

const headTableSize = 54

// HeadMagicNumber is the value of field magicNumber of a well-formed 'head' table.
const HeadMagicNumber = 0x5F0F3CF5

// HeadInfo decodes table 'head'. It fails if the table is missing or shorter
// than 54 bytes.
func HeadInfo(img *ot.FontImage) (HeadTableInfo, bool) {
	var info HeadTableInfo
	if img == nil {
		return info, false
	}
	b, ok := img.Table(ot.TagHead)
	if !ok {
		return info, false
	}
	if len(b) < headTableSize {
		tracer().Debugf("head table too short: %d", len(b))
		return info, false
	}
	r := fieldReader{b: b}
	info.MajorVersion, info.MinorVersion = r.u16(), r.u16()
	info.FontRevision = r.u32()
	info.CheckSumAdjustment = r.u32()
	info.MagicNumber = r.u32()
	info.Flags, info.UnitsPerEm = r.u16(), r.u16()
	info.Created, info.Modified = r.longDateTime(), r.longDateTime()
	info.XMin, info.YMin, info.XMax, info.YMax = r.i16(), r.i16(), r.i16(), r.i16()
	info.MacStyle, info.LowestRecPPEM = r.u16(), r.u16()
	info.FontDirectionHint = r.i16()
	info.IndexToLocFormat = r.i16()
	info.GlyphDataFormat = r.i16()
	return info, true
}

// ChecksumAdjustment returns field checkSumAdjustment of table 'head'.
// Only the first 12 bytes of the table need to be present.
func ChecksumAdjustment(img *ot.FontImage) (uint32, bool) {
	if img == nil {
		return 0, false
	}
	b, ok := img.Table(ot.TagHead)
	if !ok || len(b) < ot.HeadAdjustmentOffset+4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(b[ot.HeadAdjustmentOffset:]), true
}

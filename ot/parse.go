package ot

import (
	"fmt"
)

// ParseOption guides and influences the parsing of a font binary and the
// behaviour of the resulting FontImage.
type ParseOption int

const (
	// AbsoluteOffsets interprets table offsets as positions within the font file,
	// as is the norm for fonts in the wild. Without this option, offsets are
	// relative to the start of the table data.
	AbsoluteOffsets ParseOption = iota
	// SkipInvalidTags lets the checksum sweep skip records with garbled tags and
	// continue with the next record. Without this option, the first record
	// without any word character in its tag will end the sweep.
	SkipInvalidTags
	// StrictHeader rejects fonts with a scaler type other than 0x00010000.
	// Without this option, such fonts are accepted with a warning.
	StrictHeader
)

func (o ParseOption) String() string {
	switch o {
	case AbsoluteOffsets:
		return "AbsoluteOffsets"
	case SkipInvalidTags:
		return "SkipInvalidTags"
	case StrictHeader:
		return "StrictHeader"
	}
	return fmt.Sprintf("ParseOption(%d)", int(o))
}

// Parse parses an SFNT font binary into a FontImage.
//
// Parse reads the 12-byte offset table, then NumTables directory records of 16
// bytes each. All remaining bytes are treated as table data; tables are located
// within it by their offsets, not by sequential reading. The FontImage holds a
// copy of the table data, thus clients are free to re-use font.
//
// Only a truncated offset table or table directory will result in an error.
// Issues with table data, such as records pointing outside of the font, are
// recorded as warnings (see FontImage.Warnings), as mutated fonts are expected
// to be imperfect.
func Parse(font []byte, opts ...ParseOption) (*FontImage, error) {
	src := binarySegm(font)
	hb, err := src.view(0, HeaderSize)
	if err != nil {
		return nil, errFontFormat("Header", 0,
			fmt.Sprintf("font binary of %d bytes too short for offset table", len(font)))
	}
	h := Header{
		ScalerType:    u32(hb[0:4]),
		NumTables:     u16(hb[4:6]),
		SearchRange:   u16(hb[6:8]),
		EntrySelector: u16(hb[8:10]),
		RangeShift:    u16(hb[10:12]),
	}
	tracer().Debugf("header = %v", h)
	img := &FontImage{header: h}
	for _, opt := range opts {
		switch opt {
		case AbsoluteOffsets:
			img.absolute = true
		case SkipInvalidTags:
			img.skipInvalidTags = true
		case StrictHeader:
			img.strict = true
		}
	}
	ec := &errorCollector{}
	if h.IsTrueType() {
		tracer().Debugf("valid Windows TTF/OTF")
	} else if img.strict {
		return nil, errFontFormat("Header", 0, fmt.Sprintf("scaler type not supported: %08x", h.ScalerType))
	} else {
		ec.addWarning(0, fmt.Sprintf("unexpected scaler type %08x ('%s'), trying anyway",
			h.ScalerType, Tag(h.ScalerType).Printable()), 0)
	}
	n := int(h.NumTables)
	buf, err := src.view(HeaderSize, n*TableRecordSize)
	if err != nil {
		return nil, errFontFormat("TableRecords", HeaderSize,
			fmt.Sprintf("table directory of %d records exceeds font binary of %d bytes", n, len(font)))
	}
	records := make([]*TableRecord, 0, n)
	for b := buf; len(b) > 0; b = b[TableRecordSize:] {
		rec := NewTableRecord(MakeTag(b[0:4]), u32(b[8:12]), u32(b[12:16]), u32(b[4:8]))
		tracer().Debugf("table record %s", rec)
		records = append(records, rec)
	}
	img.dir = NewDirectory(records...)
	rest := src[HeaderSize+len(buf):]
	img.data = make(binarySegm, len(rest))
	copy(img.data, rest)
	for _, rec := range records {
		if _, ok := img.contentRange(rec); !ok {
			ec.addWarning(rec.Tag, fmt.Sprintf("table content [%d…%d) out of bounds", rec.Offset, rec.end()),
				rec.Offset)
		}
	}
	if ec.hasWarnings() {
		tracer().Infof("parsing produced %d warnings", len(ec.warnings))
	}
	img.warnings = ec.warnings
	return img, nil
}

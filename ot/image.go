package ot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// FontImage is an editable representation of an SFNT font binary.
// It consists of the offset table (Header), the table directory and the table
// data, which is a single contiguous blob addressed by the offsets and lengths
// of the directory records.
//
// A FontImage is created by Parse, mutated in place by UpdateTable and
// InsertTable, and finally converted back to bytes with Serialize.
// A FontImage is not safe for concurrent use; it is expected to be used by a
// single owner for its lifetime.
type FontImage struct {
	header          Header
	dir             *Directory
	data            binarySegm // table data, owned by the image
	absolute        bool       // offsets relative to start of file
	skipInvalidTags bool       // sweep continues after garbled tags
	strict          bool       // reject unexpected scaler types
	warnings        []FontWarning
	lastSweep       *SweepReport
}

// Header returns the offset table of the font.
// NumTables always equals the number of directory records.
func (img *FontImage) Header() Header {
	return img.header
}

// Directory returns the table directory of the font.
func (img *FontImage) Directory() *Directory {
	return img.dir
}

// Find looks up a table record by tag.
func (img *FontImage) Find(tag Tag) Option[*TableRecord] {
	return img.dir.Find(tag)
}

// Warnings returns all warnings encountered during parsing.
func (img *FontImage) Warnings() []FontWarning {
	if img.warnings == nil {
		return []FontWarning{}
	}
	return img.warnings
}

// LastSweep returns the report of the most recent checksum repair, if any.
func (img *FontImage) LastSweep() Option[*SweepReport] {
	if img.lastSweep == nil {
		return None[*SweepReport]()
	}
	return Some(img.lastSweep)
}

// AbsoluteOffsets reports whether table offsets are interpreted as positions
// within the font file, instead of positions within the table data.
func (img *FontImage) AbsoluteOffsets() bool {
	return img.absolute
}

// DataSize returns the size of the table data in bytes.
func (img *FontImage) DataSize() int {
	return len(img.data)
}

// Size returns the size of the serialized font in bytes.
func (img *FontImage) Size() int {
	return img.dataStart() + len(img.data)
}

// Clone returns a deep copy of the image, including its parse options.
// The report of the last sweep is not carried over.
func (img *FontImage) Clone() *FontImage {
	c := *img
	recs := make([]*TableRecord, img.dir.Len())
	for i, rec := range img.dir.Records() {
		r := *rec
		recs[i] = &r
	}
	c.dir = NewDirectory(recs...)
	c.data = bytes.Clone(img.data)
	c.warnings = append([]FontWarning(nil), img.warnings...)
	c.lastSweep = nil
	return &c
}

// --- Addressing ------------------------------------------------------------

// dataStart is the position of the table data within the serialized font.
func (img *FontImage) dataStart() int {
	return HeaderSize + TableRecordSize*img.dir.Len()
}

// blobIndex maps a directory offset to an index into the table data.
func (img *FontImage) blobIndex(offset uint32) (int, bool) {
	if !img.absolute {
		return int(offset), true
	}
	at := int(offset) - img.dataStart()
	return at, at >= 0
}

// filePos maps a table record to the position of its content within the
// serialized font.
func (img *FontImage) filePos(rec *TableRecord) (int, bool) {
	at, ok := img.blobIndex(rec.Offset)
	if !ok {
		return 0, false
	}
	return img.dataStart() + at, true
}

// contentRange returns the start index of a table's content within the table
// data, if the content lies completely within it.
func (img *FontImage) contentRange(rec *TableRecord) (int, bool) {
	at, ok := img.blobIndex(rec.Offset)
	if !ok || at > len(img.data) || int(rec.Length) > len(img.data)-at {
		return 0, false
	}
	return at, true
}

// Table returns a copy of the content of a table. If the table does not exist
// or its directory record points outside of the table data, Table returns false.
func (img *FontImage) Table(tag Tag) ([]byte, bool) {
	rec, ok := img.dir.Find(tag).Unwrap()
	if !ok {
		return nil, false
	}
	at, ok := img.contentRange(rec)
	if !ok {
		return nil, false
	}
	return bytes.Clone(img.data[at : at+int(rec.Length)]), true
}

// --- Editing ---------------------------------------------------------------

// UpdateTable replaces the content of an existing table with data.
//
// The table data will grow or shrink by the difference in length. All other
// tables located at or behind the original offset of the table will be moved by
// this difference, regardless of their position in the directory. The length of
// the table's record is set to len(data). The record's checksum is stale
// afterwards, unless fix is set, which will call FixChecksums.
//
// If no table with the given tag exists, ErrTableNotFound is returned. If the
// table's record points outside the table data, ErrTableBounds is returned.
// In both cases the image is left unchanged.
func (img *FontImage) UpdateTable(tag Tag, data []byte, fix bool) error {
	tracer().Debugf("updating table '%s'", tag.Printable())
	rec, ok := img.dir.Find(tag).Unwrap()
	if !ok {
		return fmt.Errorf("cannot update table '%s': %w", tag.Printable(), ErrTableNotFound)
	}
	if err := img.replaceContent(rec, data); err != nil {
		return err
	}
	if fix {
		img.FixChecksums()
	}
	return nil
}

func (img *FontImage) replaceContent(rec *TableRecord, data []byte) error {
	if uint64(len(data)) > math.MaxUint32 {
		return &FontError{
			Table:    rec.Tag,
			Section:  "TableData",
			Issue:    fmt.Sprintf("new content of %d bytes exceeds 32 bit length", len(data)),
			Severity: SeverityMajor,
			Offset:   rec.Offset,
			Err:      ErrTableBounds,
		}
	}
	at, ok := img.contentRange(rec)
	if !ok {
		return &FontError{
			Table:    rec.Tag,
			Section:  "TableData",
			Issue:    fmt.Sprintf("content [%d…%d) not within table data of %d bytes", rec.Offset, rec.end(), len(img.data)),
			Severity: SeverityMajor,
			Offset:   rec.Offset,
			Err:      ErrTableBounds,
		}
	}
	delta := int64(len(data)) - int64(rec.Length)
	tracer().Debugf("new data %d bytes, existing data %d bytes, delta = %d", len(data), rec.Length, delta)
	spliced, err := img.data.splice(at, int(rec.Length), data)
	if err != nil {
		return err
	}
	img.data = spliced
	img.dir.RelocateAfter(rec.Offset, delta, rec)
	rec.Length = uint32(len(data))
	return nil
}

// InsertTable inserts a new table at directory position pos, with content data.
// Positions beyond the end of the directory append the table; negative positions
// insert at the front.
//
// The content of the new table is placed directly behind the content of its
// predecessor in directory order, or at the start of the table data if there is
// no predecessor. Tables located at or behind this position will be moved
// accordingly. The header's table count is incremented. If fix is set,
// FixChecksums is called.
//
// A tag may occur only once, inserting an existing tag results in
// ErrDuplicateTable. If the predecessor's record points outside the table data,
// ErrTableBounds is returned. In both cases the image is left unchanged.
func (img *FontImage) InsertTable(tag Tag, data []byte, pos int, fix bool) error {
	tracer().Debugf("inserting table '%s' at position %d", tag.Printable(), pos)
	if img.dir.Find(tag).IsSome() {
		return fmt.Errorf("cannot insert table '%s': %w", tag.Printable(), ErrDuplicateTable)
	}
	if img.dir.Len() >= math.MaxUint16 {
		return &FontError{
			Table:    tag,
			Section:  "TableRecords",
			Issue:    "table directory is full",
			Severity: SeverityMajor,
			Err:      ErrTableBounds,
		}
	}
	pos = img.dir.clampPosition(pos)
	var shift int64 // directory growth as seen by absolute offsets
	if img.absolute {
		shift = TableRecordSize
	}
	offset := int64(0)
	if img.absolute {
		offset = int64(img.dataStart()) + shift
	}
	if pos > 0 {
		pred := img.dir.Records()[pos-1]
		offset = int64(pred.Offset) + shift + int64(pred.Length)
	}
	at := offset
	if img.absolute {
		at -= int64(img.dataStart()) + shift
	}
	if offset > math.MaxUint32 || at < 0 || at > int64(len(img.data)) {
		return &FontError{
			Table:    tag,
			Section:  "TableRecords",
			Issue:    fmt.Sprintf("insertion offset %d not within table data of %d bytes", offset, len(img.data)),
			Severity: SeverityMajor,
			Err:      ErrTableBounds,
		}
	}
	if shift != 0 {
		img.dir.shiftAll(shift)
	}
	rec := NewTableRecord(tag, uint32(offset), 0, 0)
	img.dir.InsertAt(pos, rec)
	img.header.NumTables++
	tracer().Debugf("placeholder %s at directory position %d", rec, pos)
	return img.UpdateTable(tag, data, fix)
}

// NormalizeSearchParams recalculates fields SearchRange, EntrySelector and
// RangeShift of the header from the number of tables. Editing operations will
// never do this on their own.
func (img *FontImage) NormalizeSearchParams() {
	sr, es, rs := searchParams(img.dir.Len())
	img.header.SearchRange, img.header.EntrySelector, img.header.RangeShift = sr, es, rs
}

// --- Serialization ---------------------------------------------------------

// Serialize converts the image back to a font binary: the offset table, all
// directory records in directory order, and the table data.
// For an unmodified image the result is identical to the parsed binary.
func (img *FontImage) Serialize() []byte {
	out := make([]byte, img.Size())
	img.putHeader(out)
	copy(out[img.dataStart():], img.data)
	return out
}

// WriteTo writes the serialized font to w.
func (img *FontImage) WriteTo(w io.Writer) (int64, error) {
	head := make([]byte, img.dataStart())
	img.putHeader(head)
	n, err := w.Write(head)
	total := int64(n)
	if err != nil {
		return total, err
	}
	n, err = w.Write(img.data)
	total += int64(n)
	return total, err
}

// putHeader writes offset table and table directory to b.
func (img *FontImage) putHeader(b []byte) {
	h := img.header
	binary.BigEndian.PutUint32(b[0:], h.ScalerType)
	binary.BigEndian.PutUint16(b[4:], h.NumTables)
	binary.BigEndian.PutUint16(b[6:], h.SearchRange)
	binary.BigEndian.PutUint16(b[8:], h.EntrySelector)
	binary.BigEndian.PutUint16(b[10:], h.RangeShift)
	at := HeaderSize
	for _, rec := range img.dir.Records() {
		binary.BigEndian.PutUint32(b[at:], uint32(rec.Tag))
		binary.BigEndian.PutUint32(b[at+4:], rec.Checksum)
		binary.BigEndian.PutUint32(b[at+8:], rec.Offset)
		binary.BigEndian.PutUint32(b[at+12:], rec.Length)
		at += TableRecordSize
	}
}

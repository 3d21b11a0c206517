package ot

import "math"

// Directory is the ordered collection of table records of a font.
// Directory order is the order records are serialized in, and is independent
// of the order of table contents in the font's data.
//
// Lookup is by exact tag. If a font binary contains more than one record with
// the same tag, Find will return the first of them; all of them are kept to
// preserve the binary layout.
type Directory struct {
	records []*TableRecord
}

// NewDirectory creates a directory from a list of records, in order.
func NewDirectory(records ...*TableRecord) *Directory {
	d := &Directory{records: make([]*TableRecord, 0, len(records))}
	d.records = append(d.records, records...)
	return d
}

// Len returns the number of records.
func (d *Directory) Len() int {
	return len(d.records)
}

// Records returns the records in directory order.
// Clients must not modify the returned slice, but may inspect the records.
func (d *Directory) Records() []*TableRecord {
	return d.records
}

// Tags returns the tags of all records, in directory order.
func (d *Directory) Tags() []Tag {
	tags := make([]Tag, len(d.records))
	for i, rec := range d.records {
		tags[i] = rec.Tag
	}
	return tags
}

// Index returns the directory position of the first record with the given tag,
// or -1.
func (d *Directory) Index(tag Tag) int {
	for i, rec := range d.records {
		if rec.Tag == tag {
			return i
		}
	}
	return -1
}

// Find looks up a record by tag.
func (d *Directory) Find(tag Tag) Option[*TableRecord] {
	if i := d.Index(tag); i >= 0 {
		return Some(d.records[i])
	}
	return None[*TableRecord]()
}

// clampPosition clamps an insertion position to [0…Len].
func (d *Directory) clampPosition(pos int) int {
	if pos < 0 {
		return 0
	} else if pos > len(d.records) {
		return len(d.records)
	}
	return pos
}

// InsertAt inserts a record at a directory position. Positions beyond the end
// of the directory append the record. InsertAt will not change any offsets.
// It returns the position the record has actually been inserted at.
func (d *Directory) InsertAt(pos int, rec *TableRecord) int {
	pos = d.clampPosition(pos)
	d.records = append(d.records, nil)
	copy(d.records[pos+1:], d.records[pos:])
	d.records[pos] = rec
	return pos
}

// RelocateAfter adds delta to the offset of every record with an offset
// greater than or equal to pivot, except for record exclude (which may be nil).
// Directory order is irrelevant for this: tables are moved if they are
// located behind the pivot in the font's data.
//
// Offsets which would become negative are set to 0, offsets which would exceed
// 2^32-1 are capped. Both may happen only for overlapping tables.
// RelocateAfter returns the number of records moved.
func (d *Directory) RelocateAfter(pivot uint32, delta int64, exclude *TableRecord) int {
	if delta == 0 {
		return 0
	}
	moved := 0
	for _, rec := range d.records {
		if rec == exclude || rec.Offset < pivot {
			continue
		}
		off := int64(rec.Offset) + delta
		if off < 0 {
			tracer().Infof("relocation of %s below 0, clamped", rec)
			off = 0
		} else if off > math.MaxUint32 {
			tracer().Infof("relocation of %s beyond 32 bit, capped", rec)
			off = math.MaxUint32
		}
		tracer().Debugf("relocate %s by %d", rec, delta)
		rec.Offset = uint32(off)
		moved++
	}
	return moved
}

// shiftAll adds delta to the offsets of all records.
func (d *Directory) shiftAll(delta int64) {
	d.RelocateAfter(0, delta, nil)
}

package ot

import (
	"fmt"
	"strings"
)

// TableStatus is the outcome of checking a single table's checksum.
type TableStatus int

const (
	StatusNotVisited  TableStatus = iota // sweep has been aborted before this table
	StatusValid                          // stored checksum is correct
	StatusRepaired                       // stored checksum was wrong and has been replaced
	StatusSkippedHead                    // table 'head' is handled by the global checksum
	StatusInvalidTag                     // tag without any word character
	StatusFault                          // table content could not be read
)

func (s TableStatus) String() string {
	switch s {
	case StatusNotVisited:
		return "not visited"
	case StatusValid:
		return "ok"
	case StatusRepaired:
		return "repaired"
	case StatusSkippedHead:
		return "head"
	case StatusInvalidTag:
		return "invalid tag"
	case StatusFault:
		return "fault"
	}
	return "?"
}

// TableResult reports on the checksum of a single table.
type TableResult struct {
	Tag      Tag
	Status   TableStatus
	Stored   uint32 // checksum stored in the directory before the sweep
	Computed uint32 // checksum calculated from the table content
	Err      error  // reason for StatusFault
}

// GlobalResult reports on the repair of the checksum adjustment in table 'head'.
type GlobalResult struct {
	Skipped    bool   // no adjustment possible, see SweepReport.GlobalErr
	Previous   uint32 // adjustment value found in table 'head'
	Adjustment uint32 // correct adjustment value, now stored in table 'head'
}

// Changed reports whether the adjustment had to be corrected.
func (g GlobalResult) Changed() bool {
	return !g.Skipped && g.Previous != g.Adjustment
}

// SweepReport collects the outcome of a checksum repair.
// Results are in directory order.
type SweepReport struct {
	Results   []TableResult
	Aborted   bool // an invalid tag has stopped the table sweep
	Global    GlobalResult
	GlobalErr error // reason for a skipped global repair; never fatal
}

// Count returns the number of tables with a given status.
func (r *SweepReport) Count(status TableStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

func (r *SweepReport) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("sweep: %d tables, %d ok, %d repaired, %d faults",
		len(r.Results), r.Count(StatusValid), r.Count(StatusRepaired), r.Count(StatusFault)))
	if r.Aborted {
		sb.WriteString(", aborted")
	}
	if r.Global.Skipped {
		sb.WriteString("; global: skipped")
	} else {
		sb.WriteString(fmt.Sprintf("; global: %08x", r.Global.Adjustment))
	}
	return sb.String()
}

// FixChecksums repairs the checksums of all tables, then the checksum
// adjustment of table 'head'. Findings are traced and reported, but never
// returned as errors: making imperfect fonts acceptable is the whole point.
func (img *FontImage) FixChecksums() *SweepReport {
	report := img.FixTableSums()
	report.Global, report.GlobalErr = img.FixGlobalChecksum()
	tracer().Debugf("%s", report.String())
	img.lastSweep = report
	return report
}

// FixTableSums checks the checksum of every table in directory order, and
// replaces stored checksums which are wrong.
//
// Table contents are taken from the serialized font, with a length of
// Length+3 bytes. This rounds the table up to the next 4-byte boundary
// without rounding the length. The bytes are summed as big-endian uint32
// words, with trailing bytes not filling a word ignored.
//
// Table 'head' is never repaired, as its content includes the checksum
// adjustment (see FixGlobalChecksum). Tables which cannot be read are skipped
// and reported with StatusFault. With AbsoluteOffsets this includes records
// whose offset points into the offset table or the table directory: their
// content is not summed, even though these bytes exist in the file.
// A record with a tag not containing a single word character aborts the
// complete sweep, unless the image has been parsed with option SkipInvalidTags.
func (img *FontImage) FixTableSums() *SweepReport {
	raw := binarySegm(img.Serialize())
	recs := img.dir.Records()
	report := &SweepReport{Results: make([]TableResult, len(recs))}
	for i, rec := range recs {
		report.Results[i] = TableResult{Tag: rec.Tag, Stored: rec.Checksum}
	}
	for i, rec := range recs {
		res := &report.Results[i]
		if !rec.Tag.IsWordTag() {
			res.Status = StatusInvalidTag
			if img.skipInvalidTags {
				tracer().Infof("skipping invalid table tagged '%s'", rec.Tag.Printable())
				continue
			}
			tracer().Infof("invalid table tagged '%s', stopping checksum sweep", rec.Tag.Printable())
			report.Aborted = true
			break
		}
		sum, err := img.tableSum(raw, rec)
		if err != nil {
			res.Status, res.Err = StatusFault, err
			tracer().Infof("error processing table '%s': %v", rec.Tag.Printable(), err)
			continue
		}
		res.Computed = sum
		switch {
		case rec.Tag == TagHead:
			res.Status = StatusSkippedHead
		case sum == rec.Checksum:
			res.Status = StatusValid
		default:
			tracer().Debugf("'%s' checksum error (%08x), should be %08x, fixing",
				rec.Tag.Printable(), rec.Checksum, sum)
			rec.Checksum = sum
			res.Status = StatusRepaired
		}
	}
	return report
}

// tableSum calculates the padded checksum of a table within a serialized font.
func (img *FontImage) tableSum(raw binarySegm, rec *TableRecord) (uint32, error) {
	pos, ok := img.filePos(rec)
	if !ok {
		return 0, &FontError{
			Table:    rec.Tag,
			Section:  "TableRecords",
			Issue:    "offset points into offset table or directory",
			Severity: SeverityMinor,
			Offset:   rec.Offset,
			Err:      ErrTableBounds,
		}
	}
	sum, err := paddedTableSum(raw, pos, int(rec.Length))
	if err != nil {
		return 0, &FontError{
			Table:    rec.Tag,
			Section:  "TableData",
			Issue:    fmt.Sprintf("content [%d…%d) beyond end of font (%d bytes)", pos, pos+int(rec.Length), len(raw)),
			Severity: SeverityMinor,
			Offset:   rec.Offset,
			Err:      ErrTableBounds,
		}
	}
	return sum, nil
}

// FixGlobalChecksum sets field checkSumAdjustment of table 'head', such that
// the word sum of the complete serialized font equals 0xB1B0AFBA.
//
// The field is set to zero, the font is serialized and summed as big-endian
// uint32 words, and the adjustment is set to 0xB1B0AFBA minus this sum.
// Trailing bytes of a font whose size is not a multiple of 4 are ignored.
//
// Without a table 'head' (or with one too short to hold the field) the repair
// is skipped and an error wrapping ErrMissingHeadTable or ErrTableBounds is
// returned for inspection; the image is unchanged in this case.
func (img *FontImage) FixGlobalChecksum() (GlobalResult, error) {
	rec, ok := img.dir.Find(TagHead).Unwrap()
	if !ok {
		tracer().Infof("no head table, can't examine checksum adjustment")
		return GlobalResult{Skipped: true}, ErrMissingHeadTable
	}
	at, ok := img.contentRange(rec)
	if !ok || rec.Length < HeadAdjustmentOffset+4 {
		tracer().Infof("head table %s unusable, can't examine checksum adjustment", rec)
		return GlobalResult{Skipped: true}, &FontError{
			Table:    TagHead,
			Section:  "checkSumAdjustment",
			Issue:    "table too short or out of bounds",
			Severity: SeverityMinor,
			Offset:   rec.Offset,
			Err:      ErrTableBounds,
		}
	}
	field := at + HeadAdjustmentOffset
	res := GlobalResult{Previous: u32(img.data[field:])}
	_ = img.data.putU32(field, 0)
	res.Adjustment = ChecksumAdjustment(WordSum(img.Serialize()))
	_ = img.data.putU32(field, res.Adjustment)
	if res.Changed() {
		tracer().Debugf("check adjust error - stored %08x, should be %08x, fixed", res.Previous, res.Adjustment)
	} else {
		tracer().Debugf("check adjust %08x matches stored value", res.Adjustment)
	}
	return res, nil
}

package otquery

import (
	"fmt"
	"strings"

	"github.com/npillmayer/sfntfix/ot"
)

// IntegrityReport summarizes the findings of Verify.
type IntegrityReport struct {
	Sweep          *ot.SweepReport // checksum sweep, performed on a copy of the image
	GlobalOK       bool            // whole-font word sum equals 0xB1B0AFBA
	HeadMagicOK    bool            // table 'head' present with a correct magic number
	SearchParamsOK bool            // header search fields match the number of tables
	MaxPOK         bool            // table 'maxp' present and complete for its version
	Warnings       []ot.FontWarning
}

// Mismatches returns the tags of all tables with a wrong stored checksum.
func (r IntegrityReport) Mismatches() []ot.Tag {
	var tags []ot.Tag
	for _, res := range r.Sweep.Results {
		if res.Status == ot.StatusRepaired {
			tags = append(tags, res.Tag)
		}
	}
	return tags
}

// OK reports whether a font image will pass the checksum tests of a font
// consumer. Search parameters, head magic and maxp are informational only.
func (r IntegrityReport) OK() bool {
	return r.GlobalOK && len(r.Mismatches()) == 0 && r.Sweep.Count(ot.StatusFault) == 0
}

func (r IntegrityReport) String() string {
	var sb strings.Builder
	if r.OK() {
		sb.WriteString("checksums ok")
	} else {
		sb.WriteString("checksums broken")
	}
	if m := r.Mismatches(); len(m) > 0 {
		sb.WriteString(fmt.Sprintf(", %d table checksum(s) wrong", len(m)))
	}
	if !r.GlobalOK {
		sb.WriteString(", checksum adjustment wrong")
	}
	if !r.HeadMagicOK {
		sb.WriteString(", head magic missing")
	}
	if !r.MaxPOK {
		sb.WriteString(", maxp missing or truncated")
	}
	if !r.SearchParamsOK {
		sb.WriteString(", search params not normalized")
	}
	return sb.String()
}

// Verify checks the integrity of a font image, without changing it.
func Verify(img *ot.FontImage) IntegrityReport {
	scratch := img.Clone()
	report := IntegrityReport{
		Sweep:    scratch.FixTableSums(),
		GlobalOK: ot.VerifyGlobal(img.Serialize()),
		Warnings: img.Warnings(),
	}
	if head, ok := HeadInfo(img); ok {
		report.HeadMagicOK = head.MagicNumber == HeadMagicNumber
	}
	if maxp, ok := MaxPInfo(img); ok {
		report.MaxPOK = !maxp.Truncated
	}
	scratch.NormalizeSearchParams()
	report.SearchParamsOK = scratch.Header() == img.Header()
	tracer().Debugf("verify: %s", report.String())
	return report
}

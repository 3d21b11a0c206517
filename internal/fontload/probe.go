package fontload

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/sfnt"
	"seehuhn.de/go/sfnt/header"
)

// Acceptance is the verdict of a single font parser on a font binary.
type Acceptance struct {
	Consumer string // name of the parser
	Accepted bool
	Detail   string // information extracted by an accepting parser
	Err      error  // reason for rejection
}

func (a Acceptance) String() string {
	if a.Accepted {
		return fmt.Sprintf("%s: accepted (%s)", a.Consumer, a.Detail)
	}
	return fmt.Sprintf("%s: rejected (%v)", a.Consumer, a.Err)
}

// Consumer names used in Acceptance records.
const (
	ConsumerXImage = "x/image/font/sfnt"
	ConsumerGoText = "go-text/opentype"
	ConsumerHeader = "seehuhn/sfnt/header"
)

// Probe hands a font binary to independent SFNT parsers and reports whether
// they accept it. Probe never fails; rejections are part of the result.
func Probe(fbytes []byte) []Acceptance {
	verdicts := []Acceptance{probeXImage(fbytes), probeGoText(fbytes), probeHeader(fbytes)}
	for _, v := range verdicts {
		tracer().Debugf("probe %s", v)
	}
	return verdicts
}

// Accepted reports whether all parsers have accepted a font.
func Accepted(verdicts []Acceptance) bool {
	for _, v := range verdicts {
		if !v.Accepted {
			return false
		}
	}
	return len(verdicts) > 0
}

func probeXImage(fbytes []byte) (a Acceptance) {
	a.Consumer = ConsumerXImage
	defer func() {
		if r := recover(); r != nil {
			a.Accepted, a.Err = false, fmt.Errorf("parser panic: %v", r)
		}
	}()
	f, err := sfnt.Parse(fbytes)
	if err != nil {
		a.Err = err
		return
	}
	a.Accepted = true
	a.Detail = fmt.Sprintf("%d glyphs", f.NumGlyphs())
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		a.Detail += ", " + name
	}
	return
}

func probeGoText(fbytes []byte) (a Acceptance) {
	a.Consumer = ConsumerGoText
	defer func() {
		if r := recover(); r != nil {
			a.Accepted, a.Err = false, fmt.Errorf("parser panic: %v", r)
		}
	}()
	ld, err := opentype.NewLoader(bytes.NewReader(fbytes))
	if err != nil {
		a.Err = err
		return
	}
	tags := ld.Tables()
	var unreadable []string
	for _, tag := range tags {
		if _, err := ld.RawTable(tag); err != nil {
			unreadable = append(unreadable, fmt.Sprint(tag))
		}
	}
	if len(unreadable) > 0 {
		a.Err = fmt.Errorf("cannot read tables %s", strings.Join(unreadable, ", "))
		return
	}
	a.Accepted = true
	a.Detail = fmt.Sprintf("%d tables", len(tags))
	return
}

// probeHeader checks the table directory only. It insists on file-absolute,
// non-overlapping table offsets.
func probeHeader(fbytes []byte) (a Acceptance) {
	a.Consumer = ConsumerHeader
	defer func() {
		if r := recover(); r != nil {
			a.Accepted, a.Err = false, fmt.Errorf("parser panic: %v", r)
		}
	}()
	r := bytes.NewReader(fbytes)
	info, err := header.Read(r)
	if err != nil {
		a.Err = err
		return
	}
	if _, err := info.ReadTableBytes(r, "head"); err != nil {
		a.Err = err
		return
	}
	a.Accepted = true
	a.Detail = fmt.Sprintf("%d tables", len(info.Toc))
	return
}

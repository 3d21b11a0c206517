/*
Package sfntfix edits SFNT font files (TrueType and OpenType) with arbitrary
table payloads, and repairs their checksums afterwards.

The main use case is fuzz testing of font consumers: a font with a mutated
table is only useful as a test case if it is not rejected for a checksum
mismatch before the mutated table is even looked at. The functions of this
package operate on complete font binaries; see package `ot` for editing a
parsed font image step by step.

	font, _ := os.ReadFile("myfont.ttf")
	mutated, err := sfntfix.ReplaceTable(font, ot.T("cmap"), garbage, ot.AbsoluteOffsets)

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sfntfix

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sfntfix/internal/fontload"
	"github.com/npillmayer/sfntfix/ot"
	"github.com/npillmayer/sfntfix/otquery"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'sfntfix'
func tracer() tracing.Trace {
	return tracing.Select("sfntfix")
}

// Repair recomputes all table checksums and the checksum adjustment of a font
// binary. It returns the repaired binary together with a report of the findings.
func Repair(font []byte, opts ...ot.ParseOption) ([]byte, *ot.SweepReport, error) {
	img, err := ot.Parse(font, opts...)
	if err != nil {
		return nil, nil, err
	}
	report := img.FixChecksums()
	tracer().Infof("repair: %s", report)
	return img.Serialize(), report, nil
}

// ReplaceTable replaces the content of table tag of a font binary with data,
// and repairs the checksums of the result.
func ReplaceTable(font []byte, tag ot.Tag, data []byte, opts ...ot.ParseOption) ([]byte, error) {
	img, err := ot.Parse(font, opts...)
	if err != nil {
		return nil, err
	}
	if err = img.UpdateTable(tag, data, true); err != nil {
		return nil, err
	}
	return img.Serialize(), nil
}

// InjectTable inserts a new table into a font binary at directory position pos,
// and repairs the checksums of the result. Positions beyond the end of the
// directory append the table.
func InjectTable(font []byte, tag ot.Tag, data []byte, pos int, opts ...ot.ParseOption) ([]byte, error) {
	img, err := ot.Parse(font, opts...)
	if err != nil {
		return nil, err
	}
	if err = img.InsertTable(tag, data, pos, true); err != nil {
		return nil, err
	}
	return img.Serialize(), nil
}

// LoadFont loads a font file into an editable font image.
func LoadFont(fontfile string, opts ...ot.ParseOption) (*ot.FontImage, error) {
	f, err := fontload.LoadFontImage(fontfile, opts...)
	if err != nil {
		return nil, err
	}
	return f.Image, nil
}

// SaveFont writes a font image to a file.
func SaveFont(fontfile string, img *ot.FontImage) error {
	return fontload.WriteFont(fontfile, img)
}

// FamilyName extracts family and subfamily names from a font's `name` table.
//
// Returned values are empty if no matching records exist or if records cannot be
// decoded by the current name-table reader.
func FamilyName(img *ot.FontImage) (family, subfamily string) {
	for nameId, stringValue := range otquery.NamesRange(img) {
		switch nameId {
		case sfnt.NameIDFamily:
			if family == "" {
				family = stringValue
			}
		case sfnt.NameIDSubfamily:
			if subfamily == "" {
				subfamily = stringValue
			}
		}
	}
	return
}

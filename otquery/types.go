package otquery

import (
	"github.com/npillmayer/sfntfix/ot"
	"golang.org/x/image/font/sfnt"
)

// FontMetricsInfo contains selected metric information for a font.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units // ad-hoc units per em
	Ascent, Descent sfnt.Units // ascender and descender
	MaxAdvance      sfnt.Units // maximum advance width value in 'hhea' table
	LineGap         sfnt.Units // typographic line gap
}

// FontType returns the font type, derived from the scaler type of the header.
func FontType(img *ot.FontImage) string {
	if img == nil {
		return "unknown"
	}
	switch img.Header().ScalerType {
	case ot.ScalerTrueType, ot.ScalerTrue:
		return "TrueType"
	case ot.ScalerOTTO:
		return "OpenType (CFF)"
	case ot.ScalerTyp1:
		return "PostScript Type 1"
	}
	return "unknown"
}

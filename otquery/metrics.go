package otquery

import (
	"github.com/npillmayer/sfntfix/ot"
	"golang.org/x/image/font/sfnt"
)

const (
	hheaMinSize = 12
	os2TypoSize = 72 // covers sTypoAscender and sTypoDescender
)

// FontMetrics retrieves selected metrics of a font. Metrics of tables which are
// missing or too short are left at zero.
func FontMetrics(img *ot.FontImage) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if img == nil {
		return metrics
	}
	if hhea, ok := img.Table(ot.T("hhea")); ok && len(hhea) >= hheaMinSize {
		metrics.Ascent = sfnt.Units(i16(hhea[4:]))
		metrics.Descent = sfnt.Units(i16(hhea[6:]))
		metrics.LineGap = sfnt.Units(i16(hhea[8:]))
		metrics.MaxAdvance = sfnt.Units(u16(hhea[10:]))
	}
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		if os2, ok := img.Table(ot.T("OS/2")); ok && len(os2) >= os2TypoSize {
			tracer().Debugf("OS/2")
			a := sfnt.Units(i16(os2[68:]))
			if a > metrics.Ascent {
				tracer().Debugf("override of ascent: %d -> %d", metrics.Ascent, a)
				metrics.Ascent = a
			}
			d := sfnt.Units(i16(os2[70:]))
			if d < metrics.Descent {
				tracer().Debugf("override of descent: %d -> %d", metrics.Descent, d)
				metrics.Descent = d
			}
		}
	}
	if head, ok := HeadInfo(img); ok {
		metrics.UnitsPerEm = sfnt.Units(head.UnitsPerEm)
	}
	return metrics
}

package otquery

import (
	"github.com/npillmayer/sfntfix/ot"
)

// Versions of table 'maxp'. Version 0.5 is used by CFF fonts and carries the
// glyph count only.
const (
	MaxPVersion05 = 0x00005000
	MaxPVersion10 = 0x00010000
)

// MaxPTableInfo is a typed view of table 'maxp'.
type MaxPTableInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16
	// Truncated is set for a version 1.0 table too short to hold the
	// TrueType profile. The profile fields are zero then.
	Truncated bool
	Profile   MaxPProfile
}

// MaxPProfile holds the TrueType limits of a version 1.0 'maxp' table, in
// table order.
type MaxPProfile struct {
	MaxPoints, MaxContours                   uint16
	MaxCompositePoints, MaxCompositeContours uint16
	MaxZones, MaxTwilightPoints, MaxStorage  uint16
	MaxFunctionDefs, MaxInstructionDefs      uint16
	MaxStackElements, MaxSizeOfInstructions  uint16
	MaxComponentElements, MaxComponentDepth  uint16
}

const (
	maxpMinSize = 6
	maxpV10Size = 32
)

// MaxPInfo decodes table 'maxp'. It fails if the table is missing or too
// short for the glyph count. A version 1.0 table without a complete profile
// is reported as Truncated.
func MaxPInfo(img *ot.FontImage) (MaxPTableInfo, bool) {
	var info MaxPTableInfo
	if img == nil {
		return info, false
	}
	b, ok := img.Table(ot.T("maxp"))
	if !ok || len(b) < maxpMinSize {
		return info, false
	}
	r := fieldReader{b: b}
	info.VersionFixed = r.u32()
	info.NumGlyphs = r.u16()
	if info.VersionFixed != MaxPVersion10 {
		return info, true
	}
	if len(b) < maxpV10Size {
		tracer().Debugf("maxp 1.0 table too short: %d", len(b))
		info.Truncated = true
		return info, true
	}
	p := &info.Profile
	for _, field := range []*uint16{
		&p.MaxPoints, &p.MaxContours, &p.MaxCompositePoints, &p.MaxCompositeContours,
		&p.MaxZones, &p.MaxTwilightPoints, &p.MaxStorage, &p.MaxFunctionDefs,
		&p.MaxInstructionDefs, &p.MaxStackElements, &p.MaxSizeOfInstructions,
		&p.MaxComponentElements, &p.MaxComponentDepth,
	} {
		*field = r.u16()
	}
	return info, true
}

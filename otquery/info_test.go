package otquery

import (
	"encoding/binary"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sfntfix/ot"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	img *ot.FontImage
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.query")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("font.sfnt").SetTraceLevel(tracing.LevelError)
	env.img = buildTestFont(env.T())
	tracing.Select("font.sfnt").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *InfoTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestFontTypeInfo() {
	fti := FontType(env.img)
	env.Equal("TrueType", fti, "expected font type of test font to be TrueType")
	env.Equal("unknown", FontType(nil))
}

func (env *InfoTestEnviron) TestGeneralInfo() {
	info := NameInfo(env.img)
	env.T().Logf("info = %v", info)
	fam, ok := info["family"]
	env.Require().True(ok, "font familiy identifier not found in font info")
	env.Equal("Sfntfix Sans", fam, "expected Windows family name to win over Macintosh one")
	env.Equal("Regular", info["subfamily"])
	env.Equal("Mac Full é", info["full"], "expected Mac Roman name to be decoded")
	_, ok = info["postscript"]
	env.False(ok)
}

func (env *InfoTestEnviron) TestNamesRange() {
	var ids []sfnt.NameID
	for id := range NamesRange(env.img) {
		ids = append(ids, id)
		if len(ids) == 2 {
			break
		}
	}
	env.Equal([]sfnt.NameID{sfnt.NameIDFamily, sfnt.NameIDFull}, ids)
}

func (env *InfoTestEnviron) TestHeadInfo() {
	h, ok := HeadInfo(env.img)
	env.Require().True(ok, "expected to decode table 'head'")
	env.Equal(uint16(2048), h.UnitsPerEm, "expected matching UnitsPerEm")
	env.Equal(int16(1), h.IndexToLocFormat, "expected matching IndexToLocFormat")
	env.Equal(uint32(HeadMagicNumber), h.MagicNumber, "expected OpenType head magic number")
	adj, ok := ChecksumAdjustment(env.img)
	env.Require().True(ok)
	env.Equal(h.CheckSumAdjustment, adj)
	env.NotZero(adj, "expected checksum adjustment to be set by insertion")
}

func (env *InfoTestEnviron) TestMaxPInfo() {
	m, ok := MaxPInfo(env.img)
	env.Require().True(ok, "expected to decode table 'maxp'")
	env.Equal(uint16(7), m.NumGlyphs, "expected matching numGlyphs")
	env.Equal(uint32(0x00005000), m.VersionFixed)
	env.False(m.Truncated, "version 0.5 has no TrueType profile")
	env.Equal(MaxPProfile{}, m.Profile)
}

func (env *InfoTestEnviron) TestMaxPProfile() {
	img := env.img.Clone()
	maxp := make([]byte, 32)
	binary.BigEndian.PutUint32(maxp[0:], MaxPVersion10)
	binary.BigEndian.PutUint16(maxp[4:], 9)
	binary.BigEndian.PutUint16(maxp[6:], 300) // maxPoints
	binary.BigEndian.PutUint16(maxp[30:], 2)  // maxComponentDepth
	env.Require().NoError(img.UpdateTable(ot.T("maxp"), maxp, true))
	m, ok := MaxPInfo(img)
	env.Require().True(ok)
	env.False(m.Truncated)
	env.Equal(uint16(9), m.NumGlyphs)
	env.Equal(uint16(300), m.Profile.MaxPoints)
	env.Equal(uint16(2), m.Profile.MaxComponentDepth)
	env.True(Verify(img).MaxPOK)
}

func (env *InfoTestEnviron) TestVerifyTruncatedMaxP() {
	img := env.img.Clone()
	maxp := []byte{0, 1, 0, 0, 0, 9, 0, 0} // version 1.0 without profile
	env.Require().NoError(img.UpdateTable(ot.T("maxp"), maxp, true))
	m, ok := MaxPInfo(img)
	env.Require().True(ok)
	env.True(m.Truncated)
	env.Equal(uint16(9), m.NumGlyphs)
	r := Verify(img)
	env.False(r.MaxPOK)
	env.True(r.OK(), "a truncated maxp does not break checksums")
	env.Contains(r.String(), "maxp missing or truncated")
}

func (env *InfoTestEnviron) TestFontMetrics() {
	m := FontMetrics(env.img)
	env.Equal(sfnt.Units(2048), m.UnitsPerEm)
	env.Equal(sfnt.Units(1900), m.Ascent)
	env.Equal(sfnt.Units(-500), m.Descent)
	env.Equal(sfnt.Units(67), m.LineGap)
	env.Equal(sfnt.Units(2100), m.MaxAdvance)
}

func (env *InfoTestEnviron) TestVerify() {
	r := Verify(env.img)
	env.True(r.OK(), "expected test font to be consistent, is: %s", r)
	env.True(r.HeadMagicOK)
	env.True(r.MaxPOK)
	env.False(r.SearchParamsOK, "insertion must not normalize search params")
	//
	broken := env.img.Clone()
	env.Require().NoError(broken.UpdateTable(ot.T("maxp"), []byte{0, 0, 0x50, 0, 0, 9}, false))
	before := broken.Serialize()
	r = Verify(broken)
	env.False(r.OK())
	env.False(r.GlobalOK)
	env.Equal([]ot.Tag{ot.T("maxp")}, r.Mismatches())
	env.Equal(before, broken.Serialize(), "Verify must not change the image")
	env.Contains(r.String(), "1 table checksum(s) wrong")
}

func (env *InfoTestEnviron) TestMissingTables() {
	img, err := ot.Parse(emptyFont())
	env.Require().NoError(err)
	_, ok := HeadInfo(img)
	env.False(ok)
	_, ok = MaxPInfo(img)
	env.False(ok)
	env.Empty(NameInfo(img))
	env.Equal(FontMetricsInfo{}, FontMetrics(img))
	r := Verify(img)
	env.False(r.HeadMagicOK)
	env.False(r.MaxPOK)
	env.False(r.GlobalOK)
}

// --- Helpers ----------------------------------------------------------

func emptyFont() []byte {
	return []byte{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
}

// buildTestFont creates a font from scratch by appending tables to an empty font.
func buildTestFont(t *testing.T) *ot.FontImage {
	img, err := ot.Parse(emptyFont())
	if err != nil {
		t.Fatal(err)
	}
	head := make([]byte, 54)
	binary.BigEndian.PutUint32(head[0:], 0x00010000)
	binary.BigEndian.PutUint32(head[12:], HeadMagicNumber)
	binary.BigEndian.PutUint16(head[18:], 2048)
	binary.BigEndian.PutUint16(head[50:], 1)
	hhea := make([]byte, 36)
	binary.BigEndian.PutUint32(hhea[0:], 0x00010000)
	binary.BigEndian.PutUint16(hhea[4:], 1900)
	binary.BigEndian.PutUint16(hhea[6:], uint16(0xffff-500+1))
	binary.BigEndian.PutUint16(hhea[8:], 67)
	binary.BigEndian.PutUint16(hhea[10:], 2100)
	maxp := []byte{0, 0, 0x50, 0, 0, 7}
	name := nameTable([]nameEntry{
		{1, 0, sfnt.NameIDFamily, []byte("Mac Sans")},
		{1, 0, sfnt.NameIDFull, []byte("Mac Full \x8e")}, // e-acute in Mac Roman
		{3, 1, sfnt.NameIDFamily, utf16be("Sfntfix Sans")},
		{3, 1, sfnt.NameIDSubfamily, utf16be("Regular")},
		{3, 10, sfnt.NameIDPostScript, utf16be("unsupported")},
	})
	for _, tbl := range []struct {
		tag  string
		data []byte
	}{{"head", head}, {"hhea", hhea}, {"maxp", maxp}, {"name", name}} {
		if err := img.InsertTable(ot.T(tbl.tag), tbl.data, img.Directory().Len(), true); err != nil {
			t.Fatal(err)
		}
	}
	return img
}

type nameEntry struct {
	platform, encoding uint16
	id                 sfnt.NameID
	value              []byte
}

func nameTable(entries []nameEntry) []byte {
	strOff := nameHeaderSize + len(entries)*nameRecordSize
	b := make([]byte, strOff)
	binary.BigEndian.PutUint16(b[2:], uint16(len(entries)))
	binary.BigEndian.PutUint16(b[4:], uint16(strOff))
	for i, e := range entries {
		rec := b[nameHeaderSize+i*nameRecordSize:]
		binary.BigEndian.PutUint16(rec[0:], e.platform)
		binary.BigEndian.PutUint16(rec[2:], e.encoding)
		binary.BigEndian.PutUint16(rec[6:], uint16(e.id))
		binary.BigEndian.PutUint16(rec[8:], uint16(len(e.value)))
		binary.BigEndian.PutUint16(rec[10:], uint16(len(b)-strOff))
		b = append(b, e.value...)
	}
	return b
}

func utf16be(s string) []byte {
	b := make([]byte, 0, 2*len(s))
	for _, c := range []byte(s) {
		b = append(b, 0, c)
	}
	return b
}

package fontload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sfntfix/ot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFont(t *testing.T, opts ...ot.ParseOption) []byte {
	t.Helper()
	img, err := ot.Parse([]byte{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, opts...)
	require.NoError(t, err)
	head := make([]byte, 54)
	head[12], head[13], head[14], head[15] = 0x5F, 0x0F, 0x3C, 0xF5
	require.NoError(t, img.InsertTable(ot.T("head"), head, 0, false))
	require.NoError(t, img.InsertTable(ot.T("maxp"), []byte{0, 0, 0x50, 0, 0, 3}, 1, true))
	return img.Serialize()
}

func TestLoadAndWrite(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.load")
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ttf")
	font := testFont(t)
	require.NoError(t, os.WriteFile(path, font, 0o644))
	f, err := LoadFontImage(path)
	require.NoError(t, err)
	require.Equal(t, path, f.Filepath)
	require.Equal(t, 2, f.Image.Directory().Len())
	require.NoError(t, f.Image.UpdateTable(ot.T("maxp"), []byte{0, 0, 0x50, 0, 0, 9}, true))
	out := filepath.Join(dir, "out.ttf")
	require.NoError(t, WriteFont(out, f.Image))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, f.Image.Serialize(), b)
	require.True(t, ot.VerifyGlobal(b))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2, "no temporary files must be left behind")
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadFontImage(filepath.Join(t.TempDir(), "missing.ttf"))
	require.ErrorIs(t, err, os.ErrNotExist)
	path := filepath.Join(t.TempDir(), "short.ttf")
	require.NoError(t, os.WriteFile(path, []byte{0, 1, 0}, 0o644))
	_, err = LoadFontImage(path)
	require.ErrorIs(t, err, ot.ErrParse)
	assert.Contains(t, err.Error(), path)
}

func TestProbeRejectsGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.load")
	defer teardown()
	//
	verdicts := Probe([]byte("this is not a font at all"))
	require.Len(t, verdicts, 3)
	assert.Equal(t, ConsumerXImage, verdicts[0].Consumer)
	assert.Equal(t, ConsumerGoText, verdicts[1].Consumer)
	assert.Equal(t, ConsumerHeader, verdicts[2].Consumer)
	for _, v := range verdicts {
		assert.False(t, v.Accepted, v.String())
		assert.Error(t, v.Err)
	}
	assert.False(t, Accepted(verdicts))
	assert.False(t, Accepted(nil))
}

func TestProbeTableDirectory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.load")
	defer teardown()
	//
	verdicts := Probe(testFont(t))
	gotext := verdicts[1]
	require.True(t, gotext.Accepted, gotext.String())
	assert.Equal(t, "2 tables", gotext.Detail)
}

func TestProbeOffsetOrigin(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.load")
	defer teardown()
	//
	// file-absolute offsets: 'head' at 44, 'maxp' directly behind it at 98
	verdicts := Probe(testFont(t, ot.AbsoluteOffsets))
	require.Len(t, verdicts, 3)
	assert.True(t, verdicts[1].Accepted, verdicts[1].String())
	dir := verdicts[2]
	require.True(t, dir.Accepted, dir.String())
	assert.Equal(t, "2 tables", dir.Detail)
	assert.False(t, verdicts[0].Accepted, "x/image requires word-aligned table offsets")
	assert.False(t, Accepted(verdicts))
	//
	// offsets relative to the table data point into the directory
	dir = Probe(testFont(t))[2]
	assert.False(t, dir.Accepted, dir.String())
	assert.Error(t, dir.Err)
}

package ot

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.sfnt")
	defer teardown()
	//
	tag := Tag(0x636d6170)
	if tag.String() != "cmap" {
		t.Errorf("expected tag 0x636d6170 to be 'cmap', is %s", tag.String())
	}
	tag = MakeTag([]byte("cmap"))
	if tag.String() != "cmap" {
		t.Errorf("expected tag MakeTag(cmap) to be 'cmap', is %s", tag.String())
	}
	tag = T("cmap")
	if tag.String() != "cmap" {
		t.Errorf("expected tag T(cmap) to be 'cmap', is %s", tag.String())
	}
	if T("cvt") != T("cvt ") {
		t.Errorf("expected short tag to be padded with blanks")
	}
	if T("abcdef") != T("abcd") {
		t.Errorf("expected long tag to be cut")
	}
}

func TestTagPrintable(t *testing.T) {
	tag := MakeTag([]byte{'a', 0, 'b', 0xff})
	if p := tag.Printable(); p != `a\x00b\xff` {
		t.Errorf("expected printable tag to escape garbage, is %q", p)
	}
}

func TestWordTags(t *testing.T) {
	for _, tc := range []struct {
		tag  Tag
		word bool
	}{
		{T("head"), true},
		{T("OS/2"), true},
		{T("cvt "), true},
		{T("____"), true},
		{T("    "), false},
		{MakeTag([]byte{0, 0, 0, 0}), false},
		{MakeTag([]byte{'/', '/', 0xfe, '-'}), false},
		{MakeTag([]byte{0, 0, 0, '7'}), true},
	} {
		if tc.tag.IsWordTag() != tc.word {
			t.Errorf("expected IsWordTag('%s') = %v", tc.tag.Printable(), tc.word)
		}
	}
}

func TestSearchParams(t *testing.T) {
	for _, tc := range []struct {
		n          int
		sr, es, rs uint16
	}{
		{0, 0, 0, 0},
		{1, 16, 0, 0},
		{2, 32, 1, 0},
		{9, 128, 3, 16},
		{16, 256, 4, 0},
	} {
		sr, es, rs := searchParams(tc.n)
		if sr != tc.sr || es != tc.es || rs != tc.rs {
			t.Errorf("searchParams(%d) = (%d,%d,%d), expected (%d,%d,%d)", tc.n, sr, es, rs, tc.sr, tc.es, tc.rs)
		}
	}
}

func TestOption(t *testing.T) {
	o := Some(3)
	if v, ok := o.Unwrap(); !ok || v != 3 {
		t.Errorf("expected Some(3) to unwrap to 3")
	}
	n := None[int]()
	if n.IsSome() || n.Or(7) != 7 {
		t.Errorf("expected None to fall back to default")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("expected MustUnwrap of None to panic")
		}
	}()
	n.MustUnwrap()
}

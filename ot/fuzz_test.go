package ot

import (
	"bytes"
	"testing"
)

func FuzzParseSerialize(f *testing.F) {
	f.Add(fixtureFont{}.build(f, threeTables()...))
	f.Add(fixtureFont{absolute: true}.build(f, threeTables()...))
	f.Add([]byte{0, 1, 0, 0, 0, 1, 0, 16, 0, 0, 0, 0})
	f.Fuzz(func(t *testing.T, font []byte) {
		img, err := Parse(font)
		if err != nil {
			return
		}
		if out := img.Serialize(); !bytes.Equal(out, font) {
			t.Fatalf("round trip changed font of %d bytes", len(font))
		}
		img.FixChecksums() // must not panic on arbitrary input
		if img.Size() != len(font) {
			t.Fatalf("checksum repair changed font size")
		}
	})
}

func FuzzUpdateTable(f *testing.F) {
	f.Add([]byte("hello"), false)
	f.Add([]byte{}, true)
	f.Add(payload(100, 3), true)
	f.Fuzz(func(t *testing.T, data []byte, absolute bool) {
		var opts []ParseOption
		if absolute {
			opts = append(opts, AbsoluteOffsets)
		}
		img := mustParse(t, fixtureFont{absolute: absolute}.build(t, threeTables()...), opts...)
		size := img.Size()
		cmap := recordOf(t, img, "cmap").Length
		if err := img.UpdateTable(T("cmap"), data, true); err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if img.Size() != size-int(cmap)+len(data) {
			t.Fatalf("font size not adjusted to new content")
		}
		b, ok := img.Table(T("cmap"))
		if !ok || !bytes.Equal(b, data) {
			t.Fatalf("table content differs from update")
		}
		if b, _ := img.Table(T("glyf")); !bytes.Equal(b, payload(40, 9)) {
			t.Fatalf("relocated table 'glyf' has been damaged")
		}
		if !VerifyGlobal(img.Serialize()) {
			t.Fatalf("global checksum invariant violated")
		}
	})
}

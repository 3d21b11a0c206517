/*
Package fontload reads font files into editable font images, writes edited
images back to disk, and probes whether independent font parsers accept a font
binary.

Probing is the point of editing fonts with mutated tables: a mutation is only
useful for testing a font consumer if the consumer's container parser does not
reject the font up front.
*/
package fontload

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sfntfix/ot"
	"github.com/npillmayer/sfntfix/otquery"
)

// tracer writes to trace with key 'font.load'
func tracer() tracing.Trace {
	return tracing.Select("font.load")
}

// ScalableFont is a font image together with its origin.
type ScalableFont struct {
	Fontname string
	Filepath string // empty for fonts parsed from memory
	Binary   []byte // raw data as loaded
	Image    *ot.FontImage
}

// LoadFontImage loads an SFNT font (TTF or OTF) from a file.
func LoadFontImage(fontfile string, opts ...ot.ParseOption) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseFontImage(bytez, opts...)
	if err != nil {
		return nil, fmt.Errorf("font file %s: %w", fontfile, err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseFontImage loads an SFNT font (TTF or OTF) from memory.
func ParseFontImage(fbytes []byte, opts ...ot.ParseOption) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	if f.Image, err = ot.Parse(fbytes, opts...); err != nil {
		return nil, err
	}
	if name, ok := otquery.NameInfo(f.Image)["full"]; ok {
		f.Fontname = name
		tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	}
	return f, nil
}

// WriteFont serializes a font image to a file. The file is replaced atomically,
// i.e. the data is written to a temporary file in the same directory first.
func WriteFont(fontfile string, img *ot.FontImage) error {
	dir := filepath.Dir(fontfile)
	tmp, err := os.CreateTemp(dir, ".sfntfix-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after successful rename
	n, err := img.WriteTo(tmp)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("writing font %s: %w", fontfile, err)
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), fontfile); err != nil {
		return err
	}
	tracer().Infof("wrote %d bytes to %s", n, fontfile)
	return nil
}

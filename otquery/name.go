package otquery

import (
	"fmt"
	"iter"

	"github.com/npillmayer/sfntfix/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

const (
	nameHeaderSize = 6
	nameRecordSize = 12
)

// nameKey identifies a NameRecord entry in OpenType table 'name'.
// The key follows the OpenType NameRecord fields directly.
type nameKey struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16      // not interpreted
	Name     sfnt.NameID // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
}

type PlatformID uint16

const (
	PlatformIDUnicode   PlatformID = 0
	PlatformIDMacintosh PlatformID = 1
	PlatformIDWindows   PlatformID = 3
)

type EncodingID uint16

const (
	EncodingIDUnicodeBMP    EncodingID = 3
	EncodingIDMacRoman      EncodingID = 0 // with PlatformIDMacintosh
	EncodingIDWindowsSymbol EncodingID = 0 // for now we will not support symbol fonts
	EncodingIDWindowsBMP    EncodingID = 1
)

// NamesRange yields decoded `(nameID, value)` pairs from a font's OpenType
// `name` table.
//
// Only currently supported encodings are yielded (Unicode BMP, Windows BMP and
// Mac Roman), and malformed or out-of-bounds records are skipped.
func NamesRange(img *ot.FontImage) iter.Seq2[sfnt.NameID, string] {
	return func(yield func(sfnt.NameID, string) bool) {
		for key, value := range nameRecords(img) {
			if !yield(key.Name, value) {
				return
			}
		}
	}
}

func nameRecords(img *ot.FontImage) iter.Seq2[nameKey, string] {
	binary := checkNameTableSafe(img)
	return func(yield func(nameKey, string) bool) {
		if binary == nil {
			return
		}
		count := int(u16(binary[2:4])) // number of name records
		stringStorageOffset := int(u16(binary[4:6]))
		for i := range count {
			recordSlice := binary[nameHeaderSize+i*nameRecordSize : nameHeaderSize+(i+1)*nameRecordSize]
			key := nameKey{
				Platform: PlatformID(u16(recordSlice[0:2])),
				Encoding: EncodingID(u16(recordSlice[2:4])),
				Language: u16(recordSlice[4:6]),
				Name:     sfnt.NameID(u16(recordSlice[6:8])),
			}
			if !isSupportedNameEncoding(key) {
				continue
			}
			strLen := int(u16(recordSlice[8:10]))
			recordOffset := int(u16(recordSlice[10:12]))
			start := stringStorageOffset + recordOffset
			end := start + strLen
			if end > len(binary) {
				continue
			}
			stringValue, err := decodeName(key, binary[start:end])
			if err != nil || stringValue == "" {
				continue
			}
			if !yield(key, stringValue) {
				return
			}
		}
	}
}

// NameInfo collects the most common names of a font into a map, with keys
// "family", "subfamily", "full", "version" and "postscript".
// Names from Unicode or Windows records are preferred over Macintosh ones.
func NameInfo(img *ot.FontImage) map[string]string {
	info := make(map[string]string)
	fromMac := make(map[string]bool)
	for key, value := range nameRecords(img) {
		var k string
		switch key.Name {
		case sfnt.NameIDFamily:
			k = "family"
		case sfnt.NameIDSubfamily:
			k = "subfamily"
		case sfnt.NameIDFull:
			k = "full"
		case sfnt.NameIDVersion:
			k = "version"
		case sfnt.NameIDPostScript:
			k = "postscript"
		default:
			continue
		}
		isMac := key.Platform == PlatformIDMacintosh
		if _, exists := info[k]; exists && (isMac || !fromMac[k]) {
			continue
		}
		info[k] = value
		fromMac[k] = isMac
	}
	return info
}

// checkNameTableSafe checks if the name table is safe to use, i.e. no out-of-bounds access,
// no empty tables, etc.
func checkNameTableSafe(img *ot.FontImage) []byte {
	if img == nil {
		return nil
	}
	b, ok := img.Table(ot.T("name"))
	if !ok {
		tracer().Debugf("no name table found in font")
		return nil
	}
	if len(b) < nameHeaderSize {
		tracer().Debugf("name table too short: %d", len(b))
		return nil
	}
	count := int(u16(b[2:4]))
	strOff := int(u16(b[4:6]))
	if strOff > len(b) {
		tracer().Debugf("name table invalid string offset: %d", strOff)
		return nil
	}
	recordsEnd := nameHeaderSize + count*nameRecordSize
	if recordsEnd > len(b) {
		tracer().Debugf("name table record section out of bounds: count=%d", count)
		return nil
	}
	return b
}

func isSupportedNameEncoding(key nameKey) bool {
	return (key.Platform == PlatformIDUnicode && key.Encoding == EncodingIDUnicodeBMP) ||
		(key.Platform == PlatformIDWindows && key.Encoding == EncodingIDWindowsBMP) ||
		(key.Platform == PlatformIDMacintosh && key.Encoding == EncodingIDMacRoman)
}

func decodeName(key nameKey, str []byte) (string, error) {
	if key.Platform == PlatformIDMacintosh {
		s, err := charmap.Macintosh.NewDecoder().Bytes(str)
		if err != nil {
			return "", fmt.Errorf("decoding Mac Roman error: %v", err)
		}
		return string(s), nil
	}
	return decodeNameUTF16(str)
}

func decodeNameUTF16(str []byte) (string, error) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	decoder := enc.NewDecoder()
	s, err := decoder.Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 error: %v", err)
	}
	return string(s), nil
}

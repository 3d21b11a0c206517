package ot

import "encoding/binary"

// Checksums of SFNT fonts are sums of big-endian uint32 words, modulo 2^32.

// WordSum sums b as a sequence of big-endian uint32 words, modulo 2^32.
// Trailing bytes not filling a complete word are ignored. This mirrors how
// the table sweep and the whole-file sum treat their input.
func WordSum(b []byte) uint32 {
	var sum uint32
	for i := 0; i+4 <= len(b); i += 4 {
		sum += binary.BigEndian.Uint32(b[i:])
	}
	return sum
}

// Checksum calculates the standard SFNT table checksum of b, i.e. the word sum
// of b padded with zeros to a multiple of 4 bytes.
func Checksum(b []byte) uint32 {
	sum := WordSum(b)
	if rem := len(b) % 4; rem > 0 {
		var last [4]byte
		copy(last[:], b[len(b)-rem:])
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}

// ChecksumAdjustment calculates the value for field checkSumAdjustment of table
// 'head', given the word sum of the complete font file with the adjustment
// field set to zero.
func ChecksumAdjustment(fileSum uint32) uint32 {
	return ChecksumMagic - fileSum
}

// VerifyGlobal reports whether the word sum of a complete font binary equals
// the magic constant 0xB1B0AFBA, i.e. whether the checksum adjustment of the
// font is set correctly.
func VerifyGlobal(font []byte) bool {
	return WordSum(font) == ChecksumMagic
}

// paddedTableSum calculates the checksum of a table in the serialized font,
// located at file position pos with length n. Following the reference
// behaviour of the font fixer, the slice taken is n+3 bytes long, which rounds
// up to the next word boundary without the need to round n; it is cut at the
// end of the file. The table's content itself has to lie within the file.
func paddedTableSum(file binarySegm, pos, n int) (uint32, error) {
	if _, err := file.view(pos, n); err != nil {
		return 0, err
	}
	padded, err := file.clampedView(pos, n+3)
	if err != nil {
		return 0, err
	}
	return WordSum(padded), nil
}

// Package conv converts between byte offsets and rune indices.
//
// Engines that work on runes report positions as rune indices, while resub
// works on byte offsets into UTF-8 text. The helpers here translate between
// the two.
package conv

import (
	"sort"
	"unicode/utf8"
)

// RuneOffsets decodes b into runes and returns them with a table mapping
// rune index to byte offset. The table has one extra entry, len(b), so
// offsets[i+1]-offsets[i] is the encoded width of rune i.
//
// Invalid bytes decode to utf8.RuneError with width 1, matching how Go
// ranges over a string.
func RuneOffsets(b []byte) ([]rune, []int) {
	n := utf8.RuneCount(b)
	runes := make([]rune, 0, n)
	offsets := make([]int, 0, n+1)
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		runes = append(runes, r)
		offsets = append(offsets, i)
		i += size
	}
	offsets = append(offsets, len(b))
	return runes, offsets
}

// ByteToRune returns the index of the first rune that starts at or after
// byte offset off, given a table built by RuneOffsets. An offset inside a
// multi-byte rune rounds up to the next rune.
func ByteToRune(offsets []int, off int) int {
	return sort.SearchInts(offsets, off)
}

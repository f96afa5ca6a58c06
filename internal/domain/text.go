package domain

import (
	"strings"
	"unicode/utf8"
)

// Bounds of the ideograph block accepted as dictionary script. The upper bound
// is the last code point of the original CJK Unified Ideographs allocation.
const (
	HanFirst rune = '一'
	HanLast  rune = '龥'
)

// IsHan reports whether r lies in [HanFirst, HanLast].
func IsHan(r rune) bool {
	return r >= HanFirst && r <= HanLast
}

// RuneLen returns the number of characters in s, not bytes.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// TrimTitle strips surrounding whitespace, including the trailing newline
// and a UTF-8 byte order mark left over from the first line of a file.
func TrimTitle(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.TrimSpace(s)
}

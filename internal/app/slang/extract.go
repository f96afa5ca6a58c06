// Package slang harvests internet-slang words from wiki markup.
package slang

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
)

const (
	DefaultGlossPrefix = "形容"
	DefaultMinLen      = 2
	DefaultMaxLen      = 9
)

var hanRun = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]+`)

// ExtractOptions tunes word extraction.
type ExtractOptions struct {
	// GlossPrefix marks descriptive phrases ("形容...") that are not words.
	GlossPrefix string
	MinLen      int
	MaxLen      int
}

// DefaultExtractOptions returns the stock extraction settings.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{GlossPrefix: DefaultGlossPrefix, MinLen: DefaultMinLen, MaxLen: DefaultMaxLen}
}

// Extract collects standalone runs of Han characters from wikitext, line by
// line. A run counts only when it is MinLen..MaxLen runes long and is not
// glued to another letter, digit or underscore on either side.
func Extract(wikitext string, opts ExtractOptions) *WordSet {
	words := NewWordSet()
	for _, line := range strings.Split(wikitext, "\n") {
		for _, word := range lineWords(line, opts) {
			words.Add(word)
		}
	}
	return words
}

func lineWords(line string, opts ExtractOptions) []string {
	var out []string
	for _, loc := range hanRun.FindAllStringIndex(line, -1) {
		start, end := loc[0], loc[1]
		word := line[start:end]

		n := domain.RuneLen(word)
		if n < opts.MinLen || n > opts.MaxLen {
			continue
		}
		if start > 0 {
			if r, _ := utf8.DecodeLastRuneInString(line[:start]); isWordRune(r) {
				continue
			}
		}
		if end < len(line) {
			if r, _ := utf8.DecodeRuneInString(line[end:]); isWordRune(r) {
				continue
			}
		}
		if opts.GlossPrefix != "" && strings.HasPrefix(word, opts.GlossPrefix) {
			continue
		}
		out = append(out, word)
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

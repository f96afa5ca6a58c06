// Package transcribe turns normalized titles into tone-numbered pinyin and
// detects titles the engine could not transcribe.
package transcribe

import (
	"strings"

	"github.com/mozillazg/go-pinyin"

	"github.com/heartmarshall/zhwiki-pinyin/internal/lexicon"
)

// Transcriber produces Tone3 pinyin ("zhong1 guo2") for a title.
// Runes unknown to the engine are passed through; consecutive unknown runes
// form a single syllable.
type Transcriber struct {
	tables *lexicon.Tables
	lookup func(r rune) []string
}

// New creates a Transcriber backed by go-pinyin.
func New(tables *lexicon.Tables) *Transcriber {
	args := pinyin.NewArgs()
	args.Style = pinyin.Tone3
	args.Heteronym = false

	return &Transcriber{
		tables: tables,
		lookup: func(r rune) []string {
			return pinyin.SinglePinyin(r, args)
		},
	}
}

// Syllables returns one syllable per recognized character, with the fix-up
// table applied. Phrase readings from the lexicon win over the engine's
// per-character default, longest phrase first.
func (t *Transcriber) Syllables(text string) []string {
	var (
		out     []string
		pending strings.Builder
	)
	flush := func() {
		if pending.Len() > 0 {
			out = append(out, pending.String())
			pending.Reset()
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); {
		if phrase, n := t.tables.MatchPhrase(runes[i:]); n > 0 {
			flush()
			for _, s := range phrase {
				out = append(out, t.fix(s))
			}
			i += n
			continue
		}
		r := runes[i]
		i++
		pys := t.lookup(r)
		if len(pys) == 0 || pys[0] == "" {
			pending.WriteRune(r)
			continue
		}
		flush()
		out = append(out, t.fix(pys[0]))
	}
	flush()
	return out
}

// Transcribe returns the space-joined syllables of text.
func (t *Transcriber) Transcribe(text string) string {
	return Join(t.Syllables(text))
}

// fix replaces a syllable from the fix-up table. A trailing tone digit is kept:
// with n -> en, both "n" and "n2" are rewritten ("en", "en2").
func (t *Transcriber) fix(syllable string) string {
	if fixed, ok := t.tables.PinyinFix(syllable); ok {
		return fixed
	}
	n := len(syllable)
	if n < 2 {
		return syllable
	}
	tone := syllable[n-1]
	if tone < '1' || tone > '5' {
		return syllable
	}
	if fixed, ok := t.tables.PinyinFix(syllable[:n-1]); ok {
		return fixed + string(tone)
	}
	return syllable
}

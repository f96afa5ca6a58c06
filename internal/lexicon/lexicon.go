// Package lexicon holds the static word tables used by the title filter and
// the pinyin fix-up step. Tables are built once and never mutated.
package lexicon

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
)

//go:embed tables.yaml
var defaultTables []byte

// file is the YAML layout of a tables document.
type file struct {
	Surnames       []string          `yaml:"surnames"`
	DoubleSurnames []string          `yaml:"double_surnames"`
	ListSuffixes   []string          `yaml:"list_suffixes"`
	DateAlphabet   string            `yaml:"date_alphabet"`
	PinyinFixes    map[string]string `yaml:"pinyin_fixes"`
	Phrases        map[string]string `yaml:"phrases"`
}

// Tables is the read-only lexicon shared by the filter and the transcriber.
type Tables struct {
	surnames       []string
	doubleSurnames []string
	listSuffixes   []string
	dateAlphabet   map[rune]struct{}
	pinyinFixes    map[string]string
	phrases        map[string][]string
	maxPhrase      int
}

// Default returns the tables embedded in the binary.
// It panics if the embedded document is broken, which is a build defect.
func Default() *Tables {
	t, err := Parse(defaultTables)
	if err != nil {
		panic(fmt.Sprintf("lexicon: embedded tables: %v", err))
	}
	return t
}

// Load reads tables from a YAML file. An empty path returns Default().
func Load(path string) (*Tables, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: read %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon: %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates a tables document.
// Double surnames are merged into the surname list, so three-character
// titles are checked against both.
func Parse(data []byte) (*Tables, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	t := &Tables{
		surnames:       mergeUnique(f.Surnames, f.DoubleSurnames),
		doubleSurnames: mergeUnique(f.DoubleSurnames),
		listSuffixes:   mergeUnique(f.ListSuffixes),
		dateAlphabet:   make(map[rune]struct{}, utf8.RuneCountInString(f.DateAlphabet)),
		pinyinFixes:    make(map[string]string, len(f.PinyinFixes)),
		phrases:        make(map[string][]string, len(f.Phrases)),
	}
	for _, r := range f.DateAlphabet {
		t.dateAlphabet[r] = struct{}{}
	}
	for k, v := range f.PinyinFixes {
		t.pinyinFixes[k] = v
	}
	for word, reading := range f.Phrases {
		t.phrases[word] = strings.Fields(reading)
		if n := utf8.RuneCountInString(word); n > t.maxPhrase {
			t.maxPhrase = n
		}
	}
	return t, nil
}

func (f file) validate() error {
	var errs []domain.FieldError
	if len(f.Surnames) == 0 {
		errs = append(errs, domain.FieldError{Field: "surnames", Message: "must not be empty"})
	}
	if strings.TrimSpace(f.DateAlphabet) == "" {
		errs = append(errs, domain.FieldError{Field: "date_alphabet", Message: "must not be empty"})
	}
	for name, list := range map[string][]string{
		"surnames":        f.Surnames,
		"double_surnames": f.DoubleSurnames,
		"list_suffixes":   f.ListSuffixes,
	} {
		for _, s := range list {
			if strings.TrimSpace(s) == "" {
				errs = append(errs, domain.FieldError{Field: name, Message: "contains an empty entry"})
				break
			}
		}
	}
	for _, s := range f.DoubleSurnames {
		if utf8.RuneCountInString(s) != 2 {
			errs = append(errs, domain.FieldError{Field: "double_surnames", Message: fmt.Sprintf("%q is not two characters", s)})
		}
	}
	for k, v := range f.PinyinFixes {
		if k == "" || v == "" {
			errs = append(errs, domain.FieldError{Field: "pinyin_fixes", Message: "keys and values must be non-empty"})
			break
		}
	}
	for word, reading := range f.Phrases {
		runes := utf8.RuneCountInString(word)
		if runes < 2 {
			errs = append(errs, domain.FieldError{Field: "phrases", Message: fmt.Sprintf("%q is shorter than two characters", word)})
			continue
		}
		if n := len(strings.Fields(reading)); n != runes {
			errs = append(errs, domain.FieldError{Field: "phrases", Message: fmt.Sprintf("%q has %d syllables for %d characters", word, n, runes)})
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// HasSurnamePrefix reports whether s starts with any surname, single or double.
func (t *Tables) HasSurnamePrefix(s string) bool {
	return hasAnyPrefix(s, t.surnames)
}

// HasDoubleSurnamePrefix reports whether s starts with a double surname.
func (t *Tables) HasDoubleSurnamePrefix(s string) bool {
	return hasAnyPrefix(s, t.doubleSurnames)
}

// HasListSuffix reports whether s ends with a list-page suffix.
func (t *Tables) HasListSuffix(s string) bool {
	for _, suffix := range t.listSuffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// InDateAlphabet reports whether r is a numeral or date-unit character.
func (t *Tables) InDateAlphabet(r rune) bool {
	_, ok := t.dateAlphabet[r]
	return ok
}

// PinyinFix returns the replacement for a syllable, if any.
func (t *Tables) PinyinFix(syllable string) (string, bool) {
	fixed, ok := t.pinyinFixes[syllable]
	return fixed, ok
}

// MatchPhrase returns the reading of the longest phrase that text starts
// with and its length in runes. n is 0 when no phrase matches.
func (t *Tables) MatchPhrase(text []rune) (syllables []string, n int) {
	for l := min(t.maxPhrase, len(text)); l >= 2; l-- {
		if s, ok := t.phrases[string(text[:l])]; ok {
			return s, l
		}
	}
	return nil, 0
}

// PhraseCount returns the number of phrase readings.
func (t *Tables) PhraseCount() int { return len(t.phrases) }

// SurnameCount returns the number of surname prefixes, double surnames included.
func (t *Tables) SurnameCount() int { return len(t.surnames) }

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// mergeUnique concatenates lists, dropping repeats and keeping first-seen order.
func mergeUnique(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

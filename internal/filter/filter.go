// Package filter decides whether a Wikipedia title is worth a dictionary entry.
package filter

import (
	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
	"github.com/heartmarshall/zhwiki-pinyin/internal/lexicon"
)

const (
	DefaultMinLen = 2
	DefaultMaxLen = 4
)

// Reason names the rule that rejected a title.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonScript        Reason = "script"
	ReasonTooShort      Reason = "too_short"
	ReasonTooLong       Reason = "too_long"
	ReasonSurname       Reason = "surname"
	ReasonDoubleSurname Reason = "double_surname"
	ReasonListPage      Reason = "list_page"
	ReasonDate          Reason = "date"
	ReasonDuplicate     Reason = "adjacent_duplicate"
)

// AllReasons lists rejection reasons in evaluation order.
var AllReasons = []Reason{
	ReasonScript,
	ReasonTooShort,
	ReasonTooLong,
	ReasonSurname,
	ReasonDoubleSurname,
	ReasonListPage,
	ReasonDate,
	ReasonDuplicate,
}

// Filter is a stateless title filter. The previous title is supplied by the
// caller on every call; Filter never stores it.
type Filter struct {
	tables *lexicon.Tables
	minLen int
	maxLen int
}

// Option configures a Filter.
type Option func(*Filter)

// WithLengthBounds overrides the accepted character count range (inclusive).
func WithLengthBounds(minLen, maxLen int) Option {
	return func(f *Filter) {
		f.minLen = minLen
		f.maxLen = maxLen
	}
}

// New creates a Filter over the given tables.
func New(tables *lexicon.Tables, opts ...Option) *Filter {
	f := &Filter{
		tables: tables,
		minLen: DefaultMinLen,
		maxLen: DefaultMaxLen,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// IsGoodTitle reports whether title should become a dictionary entry.
// previous is the last accepted title, or "" if there is none.
func (f *Filter) IsGoodTitle(title, previous string) bool {
	return f.Check(title, previous) == ReasonNone
}

// Check runs the rules in order, cheapest first, and returns the first one
// that rejects the title, or ReasonNone.
func (f *Filter) Check(title, previous string) Reason {
	if notHan(title) {
		return ReasonScript
	}

	n := domain.RuneLen(title)
	if tooShort(n, f.minLen) {
		return ReasonTooShort
	}
	if tooLong(n, f.maxLen) {
		return ReasonTooLong
	}

	// Three-character titles are mostly personal names.
	if surnamePrefixed(title, n, f.tables) {
		return ReasonSurname
	}
	if doubleSurnamePrefixed(title, n, f.tables) {
		return ReasonDoubleSurname
	}

	if listPage(title, f.tables) {
		return ReasonListPage
	}
	if dateExpression(title, f.tables) {
		return ReasonDate
	}
	if extendsPrevious(title, previous) {
		return ReasonDuplicate
	}
	return ReasonNone
}

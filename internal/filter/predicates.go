package filter

import (
	"strings"

	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
	"github.com/heartmarshall/zhwiki-pinyin/internal/lexicon"
)

// Each predicate returns true when the title must be rejected.

// notHan rejects empty titles and titles with any rune outside the ideograph block.
func notHan(title string) bool {
	if title == "" {
		return true
	}
	for _, r := range title {
		if !domain.IsHan(r) {
			return true
		}
	}
	return false
}

func tooShort(n, minLen int) bool { return n < minLen }

func tooLong(n, maxLen int) bool { return n > maxLen }

// surnamePrefixed applies only to three-character titles.
func surnamePrefixed(title string, n int, t *lexicon.Tables) bool {
	return n == 3 && t.HasSurnamePrefix(title)
}

// doubleSurnamePrefixed applies only to four-character titles.
func doubleSurnamePrefixed(title string, n int, t *lexicon.Tables) bool {
	return n == 4 && t.HasDoubleSurnamePrefix(title)
}

func listPage(title string, t *lexicon.Tables) bool {
	return t.HasListSuffix(title)
}

// dateExpression rejects titles made only of numeral and date-unit characters.
func dateExpression(title string, t *lexicon.Tables) bool {
	if title == "" {
		return false
	}
	for _, r := range title {
		if !t.InDateAlphabet(r) {
			return false
		}
	}
	return true
}

// extendsPrevious rejects a title that begins with the previously accepted
// title when that title has at least three characters.
func extendsPrevious(title, previous string) bool {
	return previous != "" &&
		domain.RuneLen(previous) >= 3 &&
		strings.HasPrefix(title, previous)
}

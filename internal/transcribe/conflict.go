package transcribe

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/zhwiki-pinyin/internal/domain"
)

// Separator joins syllables in the output.
const Separator = " "

// Join concatenates syllables with Separator.
func Join(syllables []string) string {
	return strings.Join(syllables, Separator)
}

// IsConflict reports whether the transcription is just the word echoed back,
// which means the engine did not recognize it.
func IsConflict(word, pinyin string) bool {
	return pinyin == word
}

// NewRecord pairs a word with its transcription. It returns
// domain.ErrTranscriptionConflict when the two are identical.
func NewRecord(word, pinyin string) (domain.Record, error) {
	if IsConflict(word, pinyin) {
		return domain.Record{}, fmt.Errorf("%q: %w", word, domain.ErrTranscriptionConflict)
	}
	return domain.Record{Word: word, Pinyin: pinyin}, nil
}

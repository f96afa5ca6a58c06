package domain

import (
	"time"

	"github.com/google/uuid"
)

// RecordSeparator joins word and pinyin in the dictionary line format.
const RecordSeparator = "\t"

// Record is one generated dictionary entry.
// Pinyin is never textually identical to Word.
type Record struct {
	Word   string
	Pinyin string
}

// String renders the record as "word<TAB>pinyin".
func (r Record) String() string {
	return r.Word + RecordSeparator + r.Pinyin
}

// PinyinEntry is the persisted form of a Record.
type PinyinEntry struct {
	ID        uuid.UUID
	Word      string
	Pinyin    string
	Source    string
	CreatedAt time.Time
}

// NewPinyinEntry builds a storable entry from a generated record.
func NewPinyinEntry(r Record, source string, now time.Time) PinyinEntry {
	return PinyinEntry{
		ID:        uuid.New(),
		Word:      r.Word,
		Pinyin:    r.Pinyin,
		Source:    source,
		CreatedAt: now,
	}
}

package slang

// WordSet keeps unique words in first-seen order.
type WordSet struct {
	index map[string]struct{}
	words []string
}

// NewWordSet creates an empty WordSet.
func NewWordSet() *WordSet {
	return &WordSet{index: make(map[string]struct{})}
}

// Add inserts word and reports whether it was new.
func (s *WordSet) Add(word string) bool {
	if _, ok := s.index[word]; ok {
		return false
	}
	s.index[word] = struct{}{}
	s.words = append(s.words, word)
	return true
}

func (s *WordSet) Contains(word string) bool {
	_, ok := s.index[word]
	return ok
}

func (s *WordSet) Len() int { return len(s.words) }

// Words returns a copy of the words in insertion order.
func (s *WordSet) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

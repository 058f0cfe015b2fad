package digest

// orderedSet tracks paragraph texts in first-seen order. It makes the
// per-document de-duplication invariant explicit: Add returns false when
// the text was already present, and Values preserves insertion order.
type orderedSet struct {
	seen map[string]struct{}
	keys []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

// Add inserts text and reports whether it was newly added.
func (s *orderedSet) Add(text string) bool {
	if _, ok := s.seen[text]; ok {
		return false
	}
	s.seen[text] = struct{}{}
	s.keys = append(s.keys, text)
	return true
}

// Contains reports whether text has been added.
func (s *orderedSet) Contains(text string) bool {
	_, ok := s.seen[text]
	return ok
}

// Values returns the texts in insertion order.
func (s *orderedSet) Values() []string {
	return s.keys
}

// Len returns the number of distinct texts.
func (s *orderedSet) Len() int {
	return len(s.keys)
}

package promo

// mapSet implements Set using a map for O(1) lookups.
type mapSet struct {
	codes map[string]struct{}
}

// NewMapSet creates a new map-based code set.
func NewMapSet(capacity int) Set {
	return &mapSet{
		codes: make(map[string]struct{}, capacity),
	}
}

// Contains checks if a code exists in the set. Codes compare
// case-sensitively.
func (s *mapSet) Contains(code string) bool {
	_, exists := s.codes[code]
	return exists
}

// Size returns the number of codes in the set.
func (s *mapSet) Size() int {
	return len(s.codes)
}

// Add adds a code to the set.
func (s *mapSet) Add(code string) {
	s.codes[code] = struct{}{}
}

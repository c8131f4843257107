package favorites

import "slices"

// Set is a set of product IDs that remembers insertion order.
// The zero value is not usable; use NewSet.
type Set struct {
	ids   []int64
	index map[int64]struct{}
}

// NewSet creates a set from ids, dropping duplicates after the first.
func NewSet(ids ...int64) *Set {
	s := &Set{
		ids:   make([]int64, 0, len(ids)),
		index: make(map[int64]struct{}, len(ids)),
	}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

// Has reports whether id is in the set. A nil set contains nothing.
func (s *Set) Has(id int64) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// Toggle removes id if present, otherwise adds it. It returns whether id is
// in the set afterwards. Two toggles of the same id leave the set unchanged.
func (s *Set) Toggle(id int64) bool {
	if s.Has(id) {
		s.remove(id)
		return false
	}
	s.add(id)
	return true
}

// Len returns the number of IDs.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns the members in insertion order.
func (s *Set) IDs() []int64 {
	if s == nil {
		return []int64{}
	}
	return slices.Clone(s.ids)
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	return NewSet(s.IDs()...)
}

// Equal reports whether both sets hold the same members, ignoring order.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, id := range s.IDs() {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

func (s *Set) add(id int64) {
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *Set) remove(id int64) {
	delete(s.index, id)
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
	}
}

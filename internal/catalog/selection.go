package catalog

import "sort"

// Selection is the set of selected record ids.
type Selection struct {
	ids map[int]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: map[int]struct{}{}}
}

// Toggle flips the membership of id.
func (s *Selection) Toggle(id int) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAllVisible clears the selection when its size equals the number of
// visible ids, otherwise replaces it with exactly the visible ids.
// Only cardinalities are compared, not the sets themselves.
func (s *Selection) SelectAllVisible(visibleIDs []int) {
	if len(s.ids) == len(visibleIDs) {
		s.ids = map[int]struct{}{}
		return
	}
	next := make(map[int]struct{}, len(visibleIDs))
	for _, id := range visibleIDs {
		next[id] = struct{}{}
	}
	s.ids = next
}

// Remove drops id from the selection.
func (s *Selection) Remove(id int) {
	delete(s.ids, id)
}

// Has reports whether id is selected.
func (s *Selection) Has(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the selection size.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Clone returns an independent copy.
func (s *Selection) Clone() *Selection {
	next := make(map[int]struct{}, len(s.ids))
	for id := range s.ids {
		next[id] = struct{}{}
	}
	return &Selection{ids: next}
}

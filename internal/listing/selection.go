package listing

import "sort"

// Selection is a set of employee ids. It is not tied to the current page or
// filter, so ids stay selected after their rows scroll out of view.
type Selection struct {
	ids map[int64]struct{}
}

func NewSelection(ids ...int64) *Selection {
	s := &Selection{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s *Selection) Toggle(id int64) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// ToggleAllVisible clears the selection when it already equals visible
// exactly, and otherwise replaces it with visible.
func (s *Selection) ToggleAllVisible(visible []int64) {
	if s.equals(visible) {
		s.Clear()
		return
	}
	s.ids = make(map[int64]struct{}, len(visible))
	for _, id := range visible {
		s.ids[id] = struct{}{}
	}
}

func (s *Selection) Contains(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int {
	return len(s.ids)
}

func (s *Selection) Clear() {
	s.ids = make(map[int64]struct{})
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Selection) equals(ids []int64) bool {
	uniq := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		uniq[id] = struct{}{}
	}
	if len(uniq) != len(s.ids) {
		return false
	}
	for id := range uniq {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}

package listing

import "go-employee-admin/internal/domain"

// State holds the table view parameters and the selection of one admin session.
// Changing a filter or the sort returns to the first page; changing the page does not.
type State struct {
	Params    Params
	Selection *Selection
}

func NewState() *State {
	return &State{Params: DefaultParams(), Selection: NewSelection()}
}

func (s *State) SetQuery(q string) {
	s.Params.Query = q
	s.Params.Page = 1
}

func (s *State) SetDepartment(d string) {
	s.Params.Department = d
	s.Params.Page = 1
}

func (s *State) SetPosition(p string) {
	s.Params.Position = p
	s.Params.Page = 1
}

// ToggleSort flips the direction when key is already the active ascending
// sort and otherwise sorts by key ascending.
func (s *State) ToggleSort(key SortKey) {
	if s.Params.SortKey == key && s.Params.SortDir == SortAsc {
		s.Params.SortDir = SortDesc
	} else {
		s.Params.SortKey = key
		s.Params.SortDir = SortAsc
	}
	s.Params.Page = 1
}

func (s *State) SetPage(page int) {
	s.Params.Page = page
}

// View applies the current parameters, clamping the page into range first.
func (s *State) View(employees []domain.Employee) Result {
	res := Apply(employees, s.Params)
	if clamped := ClampPage(s.Params.Page, res.TotalPages); clamped != s.Params.Page {
		s.Params.Page = clamped
		res = Apply(employees, s.Params)
	}
	return res
}

// VisibleIDs returns the ids of the rows on the current page.
func (r Result) VisibleIDs() []int64 {
	ids := make([]int64, len(r.Visible))
	for i, e := range r.Visible {
		ids[i] = e.ID
	}
	return ids
}

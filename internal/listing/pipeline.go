package listing

import (
	"sort"
	"strconv"
	"strings"

	"go-employee-admin/internal/domain"
)

type Result struct {
	Visible       []domain.Employee
	TotalFiltered int
	TotalPages    int
	Page          int
	PerPage       int
}

// Apply runs search, department filter, position filter, sort and
// pagination in that order. The input slice is never modified.
// Page is used as given: a page past the end yields no visible rows.
func Apply(employees []domain.Employee, p Params) Result {
	filtered := Filter(employees, p)

	page := p.Page
	if page < 1 {
		page = 1
	}

	res := Result{
		TotalFiltered: len(filtered),
		TotalPages:    TotalPages(len(filtered)),
		Page:          page,
		PerPage:       ItemsPerPage,
	}

	start := (page - 1) * ItemsPerPage
	if start >= len(filtered) {
		res.Visible = []domain.Employee{}
		return res
	}
	end := start + ItemsPerPage
	if end > len(filtered) {
		end = len(filtered)
	}
	res.Visible = filtered[start:end]
	return res
}

// Filter returns the searched, filtered and sorted collection without paginating it.
func Filter(employees []domain.Employee, p Params) []domain.Employee {
	q := strings.ToLower(p.Query)

	out := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if q != "" && !matchesQuery(e, q) {
			continue
		}
		if p.Department != "" && e.Department.String() != p.Department {
			continue
		}
		if p.Position != "" && e.Position != p.Position {
			continue
		}
		out = append(out, e)
	}

	if p.SortKey != SortNone {
		sortEmployees(out, p.SortKey, p.SortDir)
	}
	return out
}

func TotalPages(total int) int {
	return (total + ItemsPerPage - 1) / ItemsPerPage
}

// ClampPage keeps page within [1, totalPages]. With no pages it returns 1.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 || page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

func matchesQuery(e domain.Employee, q string) bool {
	for _, field := range []string{e.FirstName, e.LastName, e.Email, e.Position, e.Department.String()} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func sortEmployees(list []domain.Employee, key SortKey, dir SortDirection) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := sortValue(list[i], key), sortValue(list[j], key)
		if dir == SortDesc {
			return a > b
		}
		return a < b
	})
}

// sortValue compares ids by their decimal string, so "10" sorts before "2".
func sortValue(e domain.Employee, key SortKey) string {
	switch key {
	case SortID:
		return strconv.FormatInt(e.ID, 10)
	case SortFirstName:
		return e.FirstName
	case SortEmail:
		return e.Email
	case SortPosition:
		return e.Position
	case SortDepartment:
		return e.Department.String()
	}
	return ""
}

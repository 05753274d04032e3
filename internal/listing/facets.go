package listing

import "go-employee-admin/internal/domain"

// Facets returns the distinct non-empty departments and positions in first-seen order.
func Facets(employees []domain.Employee) (departments, positions []string) {
	departments = []string{}
	positions = []string{}
	seenDept := make(map[string]struct{})
	seenPos := make(map[string]struct{})

	for _, e := range employees {
		if d := e.Department.String(); d != "" {
			if _, ok := seenDept[d]; !ok {
				seenDept[d] = struct{}{}
				departments = append(departments, d)
			}
		}
		if e.Position != "" {
			if _, ok := seenPos[e.Position]; !ok {
				seenPos[e.Position] = struct{}{}
				positions = append(positions, e.Position)
			}
		}
	}
	return departments, positions
}

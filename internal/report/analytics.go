package report

import (
	"math"
	"time"

	"go-employee-admin/internal/domain"
)

const Unassigned = "Unassigned"

type Bucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Summary struct {
	TotalEmployees int `json:"totalEmployees"`
	Departments    int `json:"departments"`
	Positions      int `json:"positions"`
	AvgPerDept     int `json:"avgPerDept"`
}

type GrowthPoint struct {
	Month     string `json:"month"`
	Employees int    `json:"employees"`
}

type Dashboard struct {
	TotalEmployees int `json:"totalEmployees"`
	Departments    int `json:"departments"`
	NewThisMonth   int `json:"newThisMonth"`
}

type Dimension string

const (
	ByDepartment Dimension = "department"
	ByPosition   Dimension = "position"
)

// Label is the column title used when the breakdown is exported.
func (d Dimension) Label() string {
	if d == ByPosition {
		return "Position"
	}
	return "Department"
}

func ParseDimension(s string) (Dimension, bool) {
	switch Dimension(s) {
	case ByDepartment, "":
		return ByDepartment, true
	case ByPosition:
		return ByPosition, true
	}
	return "", false
}

// Breakdown counts employees per department or position in first-seen
// order. Empty values are counted under Unassigned.
func Breakdown(employees []domain.Employee, by Dimension) []Bucket {
	index := make(map[string]int)
	out := []Bucket{}
	for _, e := range employees {
		name := e.Department.String()
		if by == ByPosition {
			name = e.Position
		}
		if name == "" {
			name = Unassigned
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, Bucket{Name: name})
		}
		out[i].Count++
	}
	return out
}

func Summarize(employees []domain.Employee) Summary {
	depts := distinct(employees, func(e domain.Employee) string { return e.Department.String() })
	positions := distinct(employees, func(e domain.Employee) string { return e.Position })

	s := Summary{
		TotalEmployees: len(employees),
		Departments:    depts,
		Positions:      positions,
	}
	if depts > 0 {
		s.AvgPerDept = int(math.Round(float64(len(employees)) / float64(depts)))
	}
	return s
}

func BuildDashboard(employees []domain.Employee, now time.Time) Dashboard {
	d := Dashboard{
		TotalEmployees: len(employees),
		Departments:    distinct(employees, func(e domain.Employee) string { return e.Department.String() }),
	}
	y, m, _ := now.Date()
	for _, e := range employees {
		if e.CreatedAt.IsZero() {
			continue
		}
		ey, em, _ := e.CreatedAt.In(now.Location()).Date()
		if ey == y && em == m {
			d.NewThisMonth++
		}
	}
	return d
}

// Growth returns the cumulative headcount at the end of each of the last
// months months, oldest first. Records without a creation time count in
// every month.
func Growth(employees []domain.Employee, now time.Time, months int) []GrowthPoint {
	if months < 1 {
		return []GrowthPoint{}
	}
	out := make([]GrowthPoint, 0, months)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for k := months - 1; k >= 0; k-- {
		start := first.AddDate(0, -k, 0)
		end := start.AddDate(0, 1, 0)
		count := 0
		for _, e := range employees {
			if e.CreatedAt.IsZero() || e.CreatedAt.Before(end) {
				count++
			}
		}
		out = append(out, GrowthPoint{Month: start.Format("Jan 2006"), Employees: count})
	}
	return out
}

func distinct(employees []domain.Employee, field func(domain.Employee) string) int {
	seen := make(map[string]struct{})
	for _, e := range employees {
		if v := field(e); v != "" {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

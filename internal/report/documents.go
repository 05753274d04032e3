package report

import (
	"math"
	"strings"

	"go-employee-admin/internal/domain"
)

const (
	CategoryAll     = "All"
	CategoryPolicy  = "Policy"
	CategoryHR      = "HR"
	CategoryGeneral = "General"
)

type Document struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Size       string `json:"size"`
	UploadedBy string `json:"uploadedBy"`
	UploadDate string `json:"uploadDate"`
	Downloads  int    `json:"downloads"`
	Employees  int    `json:"employees,omitempty"`
}

type DocumentFilter struct {
	Query    string
	Category string
}

type DocumentCatalogue struct {
	Documents      []Document `json:"documents"`
	TotalDocuments int        `json:"totalDocuments"`
	TotalDownloads int        `json:"totalDownloads"`
	Categories     []string   `json:"categories"`
	EmptyMessage   string     `json:"emptyMessage,omitempty"`
}

// Documents derives the document catalogue from the employee list: a
// roster per department, a job description per position, and the
// handbook and organisation chart once anyone is employed.
func Documents(employees []domain.Employee, date string) []Document {
	docs := []Document{}
	next := func(d Document) {
		d.ID = len(docs) + 1
		docs = append(docs, d)
	}

	for _, b := range Breakdown(withDepartment(employees), ByDepartment) {
		next(Document{
			Name:       b.Name + " - Employee Roster.pdf",
			Category:   CategoryHR,
			Size:       "245 KB",
			UploadedBy: "System",
			UploadDate: date,
			Downloads:  10 + b.Count,
			Employees:  b.Count,
		})
	}

	for _, b := range Breakdown(withPosition(employees), ByPosition) {
		next(Document{
			Name:       b.Name + " - Job Description.docx",
			Category:   CategoryHR,
			Size:       "128 KB",
			UploadedBy: "HR Manager",
			UploadDate: date,
			Downloads:  5 + b.Count,
		})
	}

	if n := len(employees); n > 0 {
		next(Document{
			Name:       "Employee Handbook 2025.pdf",
			Category:   CategoryPolicy,
			Size:       "2.4 MB",
			UploadedBy: "Admin",
			UploadDate: "2025-01-15",
			Downloads:  n * 2,
		})
		next(Document{
			Name:       "Organization Chart.pdf",
			Category:   CategoryGeneral,
			Size:       "890 KB",
			UploadedBy: "Admin",
			UploadDate: date,
			Downloads:  int(math.Floor(float64(n) * 1.5)),
		})
	}
	return docs
}

// FilterDocuments matches the query against name or category without
// regard to case. An empty or "All" category keeps every category.
func FilterDocuments(docs []Document, f DocumentFilter) []Document {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := []Document{}
	for _, d := range docs {
		if q != "" &&
			!strings.Contains(strings.ToLower(d.Name), q) &&
			!strings.Contains(strings.ToLower(d.Category), q) {
			continue
		}
		if f.Category != "" && f.Category != CategoryAll && d.Category != f.Category {
			continue
		}
		out = append(out, d)
	}
	return out
}

func BuildCatalogue(employees []domain.Employee, f DocumentFilter, date string) DocumentCatalogue {
	all := Documents(employees, date)
	docs := FilterDocuments(all, f)

	c := DocumentCatalogue{
		Documents:      docs,
		TotalDocuments: len(all),
		Categories:     []string{CategoryAll, CategoryPolicy, CategoryHR, CategoryGeneral},
	}
	for _, d := range all {
		c.TotalDownloads += d.Downloads
	}
	if len(docs) == 0 {
		if len(employees) == 0 {
			c.EmptyMessage = "No documents yet. Add employees to generate documents."
		} else {
			c.EmptyMessage = "No documents match your search."
		}
	}
	return c
}

func withDepartment(employees []domain.Employee) []domain.Employee {
	out := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if e.Department != "" {
			out = append(out, e)
		}
	}
	return out
}

func withPosition(employees []domain.Employee) []domain.Employee {
	out := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if e.Position != "" {
			out = append(out, e)
		}
	}
	return out
}

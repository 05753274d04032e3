package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-employee-admin/internal/domain"
	"go-employee-admin/internal/report"
)

var employeeHeader = []string{"ID", "First Name", "Last Name", "Email", "Position", "Department"}

// EmployeesCSV writes one row per employee in the order given. Fields
// containing a comma, quote or line break are quoted; everything else is
// written verbatim. No newline follows the last row.
func EmployeesCSV(w io.Writer, employees []domain.Employee) error {
	rows := make([][]string, 0, len(employees)+1)
	rows = append(rows, employeeHeader)
	for _, e := range employees {
		rows = append(rows, employeeRow(e))
	}
	return writeRows(w, rows)
}

// BreakdownCSV writes the per-bucket counts with their share of total.
func BreakdownCSV(w io.Writer, label string, buckets []report.Bucket, total int) error {
	rows := make([][]string, 0, len(buckets)+1)
	rows = append(rows, []string{label, "Employee Count", "Percentage"})
	for _, b := range buckets {
		rows = append(rows, []string{b.Name, strconv.Itoa(b.Count), Percentage(b.Count, total)})
	}
	return writeRows(w, rows)
}

// Percentage formats count/total with one decimal. A zero total gives "0.0%".
func Percentage(count, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}

func employeeRow(e domain.Employee) []string {
	return []string{
		strconv.FormatInt(e.ID, 10),
		e.FirstName,
		e.LastName,
		e.Email,
		e.Position,
		e.Department.String(),
	}
}

func writeRows(w io.Writer, rows [][]string) error {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, field := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quoteField(field))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// quoteField wraps field in double quotes only when it holds a delimiter,
// a quote or a line break. Leading and trailing spaces are kept as is.
func quoteField(field string) string {
	if !strings.ContainsAny(field, ",\"\r\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

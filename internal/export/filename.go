package export

import (
	"fmt"
	"time"
)

const (
	EmployeesCSVFilename  = "employees.csv"
	EmployeesXLSXFilename = "employees.xlsx"
)

// DatedFilename builds names like "employee-report-2026-01-31.pdf".
func DatedFilename(prefix, ext string, t time.Time) string {
	return fmt.Sprintf("%s-%s.%s", prefix, t.Format(time.DateOnly), ext)
}

func DirectoryPDFFilename(t time.Time) string {
	return DatedFilename("employee-report", "pdf", t)
}

func BreakdownCSVFilename(label string, t time.Time) string {
	return DatedFilename(label+"-report", "csv", t)
}

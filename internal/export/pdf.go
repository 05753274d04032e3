package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"go-employee-admin/internal/domain"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin    = 14.0
	pdfRowHeight = 8.0
	pdfFooterGap = 20.0
)

var directoryColumns = []struct {
	title string
	width float64
}{
	{"ID", 15},
	{"Name", 40},
	{"Email", 50},
	{"Position", 35},
	{"Department", 35},
}

// DirectoryPDF renders every employee, in the order given, as an A4
// directory with a title block, a table whose header repeats on each
// page, and a "Page i of n" footer.
func DirectoryPDF(w io.Writer, employees []domain.Employee, generatedAt time.Time) error {
	return newDirectoryDoc(employees, generatedAt).Output(w)
}

func newDirectoryDoc(employees []domain.Employee, generatedAt time.Time) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfFooterGap)
	pdf.AliasNbPages("")
	pdf.SetTitle("Employee Report", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	stamp := generatedAt.Format(time.DateOnly)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d of {nb} | Generated: %s", pdf.PageNo(), stamp),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(79, 70, 229)
	pdf.CellFormat(0, 10, "Employee Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, "Generated: "+generatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Employees: %d", len(employees)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, "Employee Directory", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	drawHeader(pdf)

	_, pageHeight := pdf.GetPageSize()
	for i, e := range employees {
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfFooterGap {
			pdf.AddPage()
			drawHeader(pdf)
		}

		fill := i%2 == 1
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFillColor(245, 247, 250)
		for c, v := range directoryRow(e) {
			width := directoryColumns[c].width
			pdf.CellFormat(width, pdfRowHeight, fit(pdf, tr(v), width-2), "", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf
}

func drawHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(79, 70, 229)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range directoryColumns {
		pdf.CellFormat(col.width, pdfRowHeight, col.title, "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func directoryRow(e domain.Employee) []string {
	return []string{
		"#" + strconv.FormatInt(e.ID, 10),
		e.FullName(),
		e.Email,
		orNA(e.Position),
		orNA(e.Department.String()),
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// fit shortens an already translated single-byte string until it fits width.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"..") > width {
		s = s[:len(s)-1]
	}
	return s + ".."
}

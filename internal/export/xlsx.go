package export

import (
	"io"

	"go-employee-admin/internal/domain"

	"github.com/xuri/excelize/v2"
)

const employeesSheet = "Employees"

// EmployeesXLSX writes the same columns as EmployeesCSV into a single sheet workbook.
func EmployeesXLSX(w io.Writer, employees []domain.Employee) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", employeesSheet); err != nil {
		return err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4F46E5"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for col, title := range employeeHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(employeesSheet, cell, title); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(employeesSheet, "A1", "F1", header); err != nil {
		return err
	}

	for i, e := range employees {
		row := i + 2
		values := []any{e.ID, e.FirstName, e.LastName, e.Email, e.Position, e.Department.String()}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(employeesSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(employeesSheet, "A", "A", 8); err != nil {
		return err
	}
	if err := f.SetColWidth(employeesSheet, "B", "F", 22); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

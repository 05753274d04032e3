package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"go-employee-admin/internal/client"
	"go-employee-admin/internal/domain"
	"go-employee-admin/internal/listing"
)

const emptyEmployees = "No employees found"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// renderEmployees prints one page of the table. A nil selection hides the
// checkbox column.
func renderEmployees(w io.Writer, res listing.Result, sel *listing.Selection) error {
	if res.TotalFiltered == 0 {
		_, err := fmt.Fprintln(w, emptyEmployees)
		return err
	}

	tw := newTable(w)
	if sel != nil {
		fmt.Fprint(tw, "\t")
	}
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPOSITION\tDEPARTMENT")
	for _, e := range res.Visible {
		if sel != nil {
			mark := "[ ]"
			if sel.Contains(e.ID) {
				mark = "[x]"
			}
			fmt.Fprintf(tw, "%s\t", mark)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			e.ID, e.FullName(), e.Email, dash(e.Position), dash(e.Department.String()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Page %d of %d (%d employees)\n", res.Page, res.TotalPages, res.TotalFiltered)
	return err
}

func renderEmployee(w io.Writer, e domain.Employee) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID\t%d\n", e.ID)
	fmt.Fprintf(tw, "Name\t%s\n", e.FullName())
	fmt.Fprintf(tw, "Email\t%s\n", e.Email)
	fmt.Fprintf(tw, "Position\t%s\n", dash(e.Position))
	fmt.Fprintf(tw, "Department\t%s\n", dash(e.Department.String()))
	return tw.Flush()
}

func renderDepartments(w io.Writer, depts []client.Department) error {
	if len(depts) == 0 {
		_, err := fmt.Fprintln(w, "No departments found")
		return err
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tMANAGER\tEMPLOYEES\tDESCRIPTION")
	for _, d := range depts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			d.ID, d.Name, dash(d.Manager), strconv.FormatInt(d.EmployeeCount, 10), dash(d.Description))
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"go-employee-admin/internal/domain"
	"go-employee-admin/internal/export"
	"go-employee-admin/internal/listing"

	"github.com/spf13/cobra"
)

func (a *app) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write employees to a file",
	}
	cmd.AddCommand(
		a.exportTableCommand("csv", export.EmployeesCSVFilename, export.EmployeesCSV),
		a.exportTableCommand("xlsx", export.EmployeesXLSXFilename, export.EmployeesXLSX),
		a.exportPDFCommand(),
	)
	return cmd
}

// exportTableCommand writes every filtered row in sort order, not just one page.
func (a *app) exportTableCommand(
	format, defaultName string,
	write func(w io.Writer, employees []domain.Employee) error,
) *cobra.Command {
	var (
		filters filterFlags
		output  string
	)
	cmd := &cobra.Command{
		Use:   format,
		Short: fmt.Sprintf("Export the filtered employee table as %s", format),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := a.api.ListEmployees(cmd.Context())
			if err != nil {
				return fail(err, "Failed to load employees")
			}
			rows := listing.Filter(all, filters.params())

			var buf bytes.Buffer
			if err := write(&buf, rows); err != nil {
				return err
			}
			if output == "" {
				output = defaultName
			}
			return writeFile(cmd, output, buf.Bytes(), len(rows))
		},
	}
	filters.register(cmd, false)
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default "+defaultName+")")
	return cmd
}

// exportPDFCommand writes the whole directory in fetch order.
func (a *app) exportPDFCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Export the full employee directory as PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := a.api.ListEmployees(cmd.Context())
			if err != nil {
				return fail(err, "Failed to load employees")
			}

			now := time.Now()
			var buf bytes.Buffer
			if err := export.DirectoryPDF(&buf, all, now); err != nil {
				return fmt.Errorf("generate pdf: %w", err)
			}
			if output == "" {
				output = export.DirectoryPDFFilename(now)
			}
			return writeFile(cmd, output, buf.Bytes(), len(all))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default employee-report-<date>.pdf)")
	return cmd
}

func writeFile(cmd *cobra.Command, path string, body []byte, rows int) error {
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d employees to %s\n", rows, path)
	return nil
}

package cli

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"go-employee-admin/internal/export"
	"go-employee-admin/internal/report"

	"github.com/spf13/cobra"
)

func (a *app) reportsCommand() *cobra.Command {
	var (
		by     string
		output string
	)
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Headcount summary, breakdown and growth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dim, ok := report.ParseDimension(by)
			if !ok {
				return fmt.Errorf("unknown breakdown %q, use department or position", by)
			}
			all, err := a.api.ListEmployees(cmd.Context())
			if err != nil {
				return fail(err, "Failed to load employees")
			}

			out := cmd.OutOrStdout()
			if cmd.Flags().Changed("output") {
				var buf bytes.Buffer
				if err := export.BreakdownCSV(&buf, dim.Label(), report.Breakdown(all, dim), len(all)); err != nil {
					return err
				}
				return writeFile(cmd, output, buf.Bytes(), len(all))
			}

			now := time.Now()
			s := report.Summarize(all)
			fmt.Fprintf(out, "Total employees: %d\nDepartments: %d\nPositions: %d\nAverage per department: %d\n\n",
				s.TotalEmployees, s.Departments, s.Positions, s.AvgPerDept)

			if err := renderBreakdown(out, dim, report.Breakdown(all, dim), len(all)); err != nil {
				return err
			}

			fmt.Fprintln(out)
			tw := newTable(out)
			fmt.Fprintln(tw, "MONTH\tEMPLOYEES")
			for _, p := range report.Growth(all, now, 6) {
				fmt.Fprintf(tw, "%s\t%d\n", p.Month, p.Employees)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&by, "by", "department", "breakdown by department or position")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the breakdown as CSV to this file")
	return cmd
}

func renderBreakdown(w io.Writer, dim report.Dimension, buckets []report.Bucket, total int) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "%s\tEMPLOYEES\tSHARE\n", dim.Label())
	for _, b := range buckets {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", b.Name, b.Count, export.Percentage(b.Count, total))
	}
	return tw.Flush()
}

func (a *app) documentsCommand() *cobra.Command {
	var f report.DocumentFilter
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "Browse the generated document catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := a.api.ListEmployees(cmd.Context())
			if err != nil {
				return fail(err, "Failed to load employees")
			}

			c := report.BuildCatalogue(all, f, time.Now().Format(time.DateOnly))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Documents: %d  Downloads: %d\n", c.TotalDocuments, c.TotalDownloads)
			if len(c.Documents) == 0 {
				fmt.Fprintln(out, c.EmptyMessage)
				return nil
			}

			tw := newTable(out)
			fmt.Fprintln(tw, "NAME\tCATEGORY\tSIZE\tUPLOADED BY\tDATE\tDOWNLOADS")
			for _, d := range c.Documents {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
					d.Name, d.Category, d.Size, d.UploadedBy, d.UploadDate, d.Downloads)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&f.Query, "query", "q", "", "search name or category")
	cmd.Flags().StringVar(&f.Category, "category", report.CategoryAll, "All, Policy, HR or General")
	return cmd
}

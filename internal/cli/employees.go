package cli

import (
	"errors"
	"fmt"
	"strconv"

	"go-employee-admin/internal/client"
	"go-employee-admin/internal/listing"

	"github.com/spf13/cobra"
)

type filterFlags struct {
	query      string
	department string
	position   string
	sortBy     string
	sortDir    string
	page       int
}

func (f *filterFlags) register(cmd *cobra.Command, withPage bool) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "search first name, last name, email, position or department")
	cmd.Flags().StringVar(&f.department, "department", "", "only this department (exact)")
	cmd.Flags().StringVar(&f.position, "position", "", "only this position (exact)")
	cmd.Flags().StringVar(&f.sortBy, "sort", "", "sort by id, firstName, email, position or department")
	cmd.Flags().StringVar(&f.sortDir, "dir", "asc", "sort direction, asc or desc")
	if withPage {
		cmd.Flags().IntVar(&f.page, "page", 1, "page number")
	}
}

func (f *filterFlags) params() listing.Params {
	p := listing.DefaultParams()
	p.Query = f.query
	p.Department = f.department
	p.Position = f.position
	p.SortKey = listing.ParseSortKey(f.sortBy)
	p.SortDir = listing.ParseSortDirection(f.sortDir)
	if f.page > 0 {
		p.Page = f.page
	}
	return p
}

type employeeFlags struct {
	firstName  string
	lastName   string
	email      string
	position   string
	department string
}

func (f *employeeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.position, "position", "", "position")
	cmd.Flags().StringVar(&f.department, "department", "", "department name")
}

// apply overwrites the fields of in whose flags were given on the command line.
func (f *employeeFlags) apply(cmd *cobra.Command, in client.EmployeeInput) client.EmployeeInput {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("first-name", &in.FirstName, f.firstName)
	set("last-name", &in.LastName, f.lastName)
	set("email", &in.Email, f.email)
	set("position", &in.Position, f.position)
	set("department", &in.Department, f.department)
	return in
}

func (a *app) employeesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"emp"},
		Short:   "List and manage employees",
	}
	cmd.AddCommand(
		a.employeesListCommand(),
		a.employeesShowCommand(),
		a.employeesCreateCommand(),
		a.employeesUpdateCommand(),
		a.employeesDeleteCommand(),
	)
	return cmd
}

func (a *app) employeesListCommand() *cobra.Command {
	var filters filterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of the employee table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := a.api.ListEmployees(cmd.Context())
			if err != nil {
				return fail(err, "Failed to load employees")
			}

			state := listing.NewState()
			state.Params = filters.params()
			return renderEmployees(cmd.OutOrStdout(), state.View(all), nil)
		},
	}
	filters.register(cmd, true)
	return cmd
}

func (a *app) employeesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			e, err := a.api.GetEmployee(cmd.Context(), id)
			if err != nil {
				return fail(err, "Failed to load employee")
			}
			return renderEmployee(cmd.OutOrStdout(), e)
		},
	}
}

func (a *app) employeesCreateCommand() *cobra.Command {
	var f employeeFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := f.apply(cmd, client.EmployeeInput{})
			if err := client.ValidateEmployee(in); err != nil {
				return fail(err, "Invalid employee")
			}
			e, err := a.api.CreateEmployee(cmd.Context(), in)
			if err != nil {
				return fail(err, "Failed to create employee")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Employee created successfully (#%d %s)\n", e.ID, e.FullName())
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) employeesUpdateCommand() *cobra.Command {
	var f employeeFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an employee; omitted fields keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.api.GetEmployee(cmd.Context(), id)
			if err != nil {
				return fail(err, "Failed to load employee")
			}

			in := f.apply(cmd, client.EmployeeInput{
				FirstName:  current.FirstName,
				LastName:   current.LastName,
				Email:      current.Email,
				Position:   current.Position,
				Department: current.Department.String(),
			})
			if err := client.ValidateEmployee(in); err != nil {
				return fail(err, "Invalid employee")
			}
			if _, err := a.api.UpdateEmployee(cmd.Context(), id, in); err != nil {
				return fail(err, "Failed to update employee")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Employee updated successfully")
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) employeesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete one or more employees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			out := cmd.OutOrStdout()
			if len(ids) == 1 {
				if err := a.api.DeleteEmployee(cmd.Context(), ids[0]); err != nil {
					return fail(err, "Failed to delete employee")
				}
				fmt.Fprintln(out, "Employee deleted successfully")
				return nil
			}

			if err := a.api.BulkDeleteEmployees(cmd.Context(), ids); err != nil {
				return errors.New(bulkDeleteFailed)
			}
			fmt.Fprintf(out, "%d employees deleted successfully\n", len(ids))
			return nil
		},
	}
}

const bulkDeleteFailed = "Failed to delete some employees; refresh to see which remain"

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

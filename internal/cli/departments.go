package cli

import (
	"errors"
	"fmt"

	"go-employee-admin/internal/client"

	"github.com/spf13/cobra"
)

type departmentFlags struct {
	name        string
	description string
	manager     string
}

func (f *departmentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "department name")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.manager, "manager", "", "manager name")
}

func (f *departmentFlags) apply(cmd *cobra.Command, in client.DepartmentInput) client.DepartmentInput {
	if cmd.Flags().Changed("name") {
		in.Name = f.name
	}
	if cmd.Flags().Changed("description") {
		in.Description = f.description
	}
	if cmd.Flags().Changed("manager") {
		in.Manager = f.manager
	}
	return in
}

func (a *app) departmentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "departments",
		Aliases: []string{"dept"},
		Short:   "List and manage departments",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List departments with their employee counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			depts, err := a.api.ListDepartments(cmd.Context())
			if err != nil {
				return fail(err, "Failed to load departments")
			}
			return renderDepartments(cmd.OutOrStdout(), depts)
		},
	}

	var createFlags departmentFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := createFlags.apply(cmd, client.DepartmentInput{})
			if in.Name == "" {
				return errors.New("Department name is required")
			}
			d, err := a.api.CreateDepartment(cmd.Context(), in)
			if err != nil {
				return fail(err, "Failed to create department")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Department created successfully (#%d %s)\n", d.ID, d.Name)
			return nil
		},
	}
	createFlags.register(create)

	var updateFlags departmentFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a department; omitted fields keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.api.GetDepartment(cmd.Context(), id)
			if err != nil {
				return fail(err, "Failed to load department")
			}
			in := updateFlags.apply(cmd, client.DepartmentInput{
				Name:        current.Name,
				Description: current.Description,
				Manager:     current.Manager,
			})
			if _, err := a.api.UpdateDepartment(cmd.Context(), id, in); err != nil {
				return fail(err, "Failed to update department")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Department updated successfully")
			return nil
		},
	}
	updateFlags.register(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a department; its employees become unassigned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.api.DeleteDepartment(cmd.Context(), id); err != nil {
				return fail(err, "Failed to delete department")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Department deleted successfully")
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}

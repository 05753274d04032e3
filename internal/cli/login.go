package cli

import (
	"fmt"

	"go-employee-admin/internal/client"

	"github.com/spf13/cobra"
)

func (a *app) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Start a session for the employee with this email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			login, err := a.api.Login(cmd.Context(), args[0])
			if err != nil {
				return fail(err, "Login failed")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Welcome, %s\n", login.Employee.FullName())
			fmt.Fprintf(out, "Session expires %s\n", login.ExpiresAt.Local().Format("2006-01-02 15:04"))
			fmt.Fprintf(out, "export EMPADMIN_TOKEN=%s\n", login.Token)
			return nil
		},
	}
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api.Logout(cmd.Context()); err != nil {
				return fail(err, "Logout failed")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (a *app) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the signed-in employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.api.Profile(cmd.Context())
			if err != nil {
				return fail(err, "Failed to load profile")
			}
			return renderEmployee(cmd.OutOrStdout(), me)
		},
	}

	var f employeeFlags
	update := &cobra.Command{
		Use:   "update",
		Short: "Change your own record; omitted fields keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.api.Profile(cmd.Context())
			if err != nil {
				return fail(err, "Failed to load profile")
			}
			in := f.apply(cmd, client.EmployeeInput{
				FirstName:  me.FirstName,
				LastName:   me.LastName,
				Email:      me.Email,
				Position:   me.Position,
				Department: me.Department.String(),
			})
			if err := client.ValidateEmployee(in); err != nil {
				return fail(err, "Invalid profile")
			}
			if _, err := a.api.UpdateProfile(cmd.Context(), in); err != nil {
				return fail(err, "Failed to update profile")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated successfully")
			return nil
		},
	}
	f.register(update)

	cmd.AddCommand(update)
	return cmd
}

package app

import (
	"context"

	"go-employee-admin/internal/department"
	"go-employee-admin/internal/employee"

	"go.uber.org/zap"
)

const (
	seedDepartment = "Management"
	seedAdminEmail = "admin@company.com"
)

// seedDefaults creates the Management department and its admin on a
// database without employees, so there is always someone to log in as.
func seedDefaults(
	ctx context.Context,
	departments department.Service,
	employees employee.Service,
	logger *zap.Logger,
) error {
	existing, err := employees.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	depts, err := departments.GetAll(ctx)
	if err != nil {
		return err
	}
	if !hasDepartment(depts, seedDepartment) {
		if _, err := departments.Create(ctx, department.CreateDepartmentRequest{
			Name:        seedDepartment,
			Description: "Management Department",
			Manager:     "Admin",
		}); err != nil {
			return err
		}
	}

	if _, err := employees.Create(ctx, employee.CreateEmployeeRequest{
		FirstName:  "Admin",
		LastName:   "User",
		Email:      seedAdminEmail,
		Position:   "Administrator",
		Department: seedDepartment,
	}); err != nil {
		return err
	}

	logger.Info("default admin seeded", zap.String("email", seedAdminEmail))
	return nil
}

func hasDepartment(depts []department.DepartmentResponse, name string) bool {
	for _, d := range depts {
		if d.Name == name {
			return true
		}
	}
	return false
}

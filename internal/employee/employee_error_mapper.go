package employee

import (
	"errors"
	"strings"

	departmenterrors "go-employee-admin/internal/department/errors"
	employeeerrors "go-employee-admin/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employees_email" {
			return employeeerrors.ErrEmployeeAlreadyExists
		}
		// another request created the department between lookup and insert
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_departments_name" {
			return departmenterrors.ErrDepartmentAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employees_email") {
		return employeeerrors.ErrEmployeeAlreadyExists
	}
	// sqlite: "UNIQUE constraint failed: employees.email"
	if strings.Contains(errMsg, "unique constraint failed") && strings.Contains(errMsg, "employees.email") {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	if strings.Contains(errMsg, "unique constraint failed") && strings.Contains(errMsg, "departments.name") {
		return departmenterrors.ErrDepartmentAlreadyExists
	}

	return err
}

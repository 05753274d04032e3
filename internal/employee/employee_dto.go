package employee

import "go-employee-admin/internal/domain"

// CreateEmployeeRequest accepts department either as a name or as {"name": ...}.
type CreateEmployeeRequest struct {
	FirstName  string                `json:"firstName" binding:"required"`
	LastName   string                `json:"lastName"`
	Email      string                `json:"email" binding:"required,emailaddr"`
	Position   string                `json:"position"`
	Department domain.DepartmentName `json:"department"`
}

type UpdateEmployeeRequest = CreateEmployeeRequest

type EmployeeOptions struct {
	Departments []string `json:"departments"`
	Positions   []string `json:"positions"`
}

type TableResponse struct {
	Employees   []domain.Employee `json:"employees"`
	Departments []string          `json:"departments"`
	Positions   []string          `json:"positions"`
	SortBy      string            `json:"sortBy,omitempty"`
	SortDir     string            `json:"sortDir"`
}

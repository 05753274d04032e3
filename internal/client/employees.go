package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go-employee-admin/internal/domain"

	"golang.org/x/sync/errgroup"
)

// EmployeeInput is the body of an employee create or update.
type EmployeeInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Position   string `json:"position"`
	Department string `json:"department"`
}

// ValidateEmployee checks the required fields and the email shape.
func ValidateEmployee(in EmployeeInput) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return &ValidationError{Field: "firstName", Message: "First name is required"}
	}
	if strings.TrimSpace(in.Email) == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}
	if !domain.ValidEmail(in.Email) {
		return &ValidationError{Field: "email", Message: "Email is invalid"}
	}
	return nil
}

func (c *Client) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	out := []domain.Employee{}
	if err := c.do(ctx, http.MethodGet, "/employees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetEmployee(ctx context.Context, id int64) (domain.Employee, error) {
	var out domain.Employee
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/employees/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateEmployee(ctx context.Context, in EmployeeInput) (domain.Employee, error) {
	var out domain.Employee
	err := c.do(ctx, http.MethodPost, "/employees", in, &out)
	return out, err
}

func (c *Client) UpdateEmployee(ctx context.Context, id int64, in EmployeeInput) (domain.Employee, error) {
	var out domain.Employee
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/employees/%d", id), in, &out)
	return out, err
}

func (c *Client) DeleteEmployee(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/employees/%d", id), nil, nil)
}

// BulkDeleteEmployees deletes every id concurrently and waits for all of
// them. Any failure yields one error wrapping ErrBulkDelete; deletes that
// succeeded stay deleted and the caller must refetch to see what is left.
func (c *Client) BulkDeleteEmployees(ctx context.Context, ids []int64) error {
	var g errgroup.Group
	for _, id := range ids {
		id := id
		g.Go(func() error {
			return c.DeleteEmployee(ctx, id)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrBulkDelete, err)
	}
	return nil
}

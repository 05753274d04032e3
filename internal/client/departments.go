package client

import (
	"context"
	"fmt"
	"net/http"
)

type Department struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Manager       string `json:"manager,omitempty"`
	EmployeeCount int64  `json:"employeeCount"`
}

type DepartmentInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Manager     string `json:"manager"`
}

func (c *Client) ListDepartments(ctx context.Context) ([]Department, error) {
	out := []Department{}
	if err := c.do(ctx, http.MethodGet, "/departments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDepartment(ctx context.Context, id int64) (Department, error) {
	var out Department
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/departments/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateDepartment(ctx context.Context, in DepartmentInput) (Department, error) {
	var out Department
	err := c.do(ctx, http.MethodPost, "/departments", in, &out)
	return out, err
}

func (c *Client) UpdateDepartment(ctx context.Context, id int64, in DepartmentInput) (Department, error) {
	var out Department
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/departments/%d", id), in, &out)
	return out, err
}

func (c *Client) DeleteDepartment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/departments/%d", id), nil, nil)
}

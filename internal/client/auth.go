package client

import (
	"context"
	"net/http"
	"time"

	"go-employee-admin/internal/domain"
)

type Login struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Employee  domain.Employee `json:"employee"`
}

// Login looks the employee up by email and starts a session. An unknown
// email yields an error matching ErrNotFound. On success the client sends
// the new token with every later request.
func (c *Client) Login(ctx context.Context, email string) (Login, error) {
	var out Login
	if err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{"email": email}, &out); err != nil {
		return Login{}, err
	}
	c.SetToken(out.Token)
	return out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) Profile(ctx context.Context) (domain.Employee, error) {
	var out domain.Employee
	err := c.do(ctx, http.MethodGet, "/profile", nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, in EmployeeInput) (domain.Employee, error) {
	var out domain.Employee
	err := c.do(ctx, http.MethodPut, "/profile", in, &out)
	return out, err
}

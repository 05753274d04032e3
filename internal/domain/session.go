package domain

import "time"

// Session identifies the admin signed in for a request. It is created at
// login, removed at logout, and handed to whatever needs to know who is acting.
type Session struct {
	ID         string    `json:"id"`
	EmployeeID int64     `json:"employeeId"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

func (s Session) DisplayName() string {
	if s.FirstName != "" {
		return s.FirstName
	}
	return s.Email
}

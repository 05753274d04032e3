package auth

import (
	"time"

	"go-employee-admin/internal/domain"
)

const sessionKeyPrefix = "session:"

// sessionRecord is the Redis value of a session.
type sessionRecord struct {
	ID         string    `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func toRecord(s domain.Session, issuedAt time.Time) sessionRecord {
	return sessionRecord{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Email:      s.Email,
		FirstName:  s.FirstName,
		LastName:   s.LastName,
		IssuedAt:   issuedAt,
		ExpiresAt:  s.ExpiresAt,
	}
}

func (r sessionRecord) toDomain() domain.Session {
	return domain.Session{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Email:      r.Email,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		ExpiresAt:  r.ExpiresAt,
	}
}

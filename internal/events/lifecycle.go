package events

import "time"

const LifecycleTopic = "admin.employee.lifecycle.v1"

const (
	EmployeeCreated   = "employee.created"
	EmployeeUpdated   = "employee.updated"
	EmployeeDeleted   = "employee.deleted"
	DepartmentCreated = "department.created"
	DepartmentUpdated = "department.updated"
	DepartmentDeleted = "department.deleted"
)

type EmployeeEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID int64     `json:"employee_id"`
	Email      string    `json:"email,omitempty"`
	Department string    `json:"department,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type DepartmentEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	DepartmentID int64     `json:"department_id"`
	Name         string    `json:"name"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Envelope is the part every lifecycle message shares.
type Envelope struct {
	EventType string `json:"event_type"`
	RequestID string `json:"request_id,omitempty"`
}

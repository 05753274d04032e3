package department

import (
	"time"
)

type Department struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"size:255;not null;uniqueIndex:uq_departments_name"`
	Description string    `gorm:"size:500;not null;default:''"`
	Manager     string    `gorm:"size:255;not null;default:''"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// DepartmentWithCount is a department row joined with the number of
// employees assigned to it.
type DepartmentWithCount struct {
	ID            int64
	Name          string
	Description   string
	Manager       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	EmployeeCount int64
}

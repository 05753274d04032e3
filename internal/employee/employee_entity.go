package employee

import (
	"time"
)

type Employee struct {
	ID           int64          `gorm:"primaryKey;autoIncrement"`
	FirstName    string         `gorm:"size:100;not null"`
	LastName     string         `gorm:"size:100;not null;default:''"`
	Email        string         `gorm:"size:255;not null;uniqueIndex:uq_employees_email"`
	Position     string         `gorm:"size:100;not null;default:''"`
	DepartmentID *int64         `gorm:"index"`
	Department   *DepartmentRef `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

// DepartmentRef is the slice of a department row an employee needs: its
// name for display and its id for the foreign key.
type DepartmentRef struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (DepartmentRef) TableName() string {
	return "departments"
}

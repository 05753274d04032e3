package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Employee is the record every listing, export and report works on.
type Employee struct {
	ID         int64          `json:"id"`
	FirstName  string         `json:"firstName"`
	LastName   string         `json:"lastName"`
	Email      string         `json:"email"`
	Position   string         `json:"position"`
	Department DepartmentName `json:"department"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// DepartmentName is the display name of an employee's department.
// It decodes from a plain string, an object carrying a "name" field, or null.
type DepartmentName string

func (d DepartmentName) String() string {
	return string(d)
}

func (d *DepartmentName) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = DepartmentName(s)
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*d = DepartmentName(obj.Name)
	return nil
}

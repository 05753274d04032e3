package domain_test

import (
	"encoding/json"
	"testing"

	"go-employee-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentName_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.DepartmentName
	}{
		{"plain string", `{"department":"IT"}`, "IT"},
		{"object with name", `{"department":{"id":3,"name":"Ops"}}`, "Ops"},
		{"null", `{"department":null}`, ""},
		{"missing", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e domain.Employee
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &e))
			assert.Equal(t, tt.want, e.Department)
		})
	}

	t.Run("encodes as plain string", func(t *testing.T) {
		b, err := json.Marshal(domain.Employee{ID: 1, FirstName: "A", Department: "HR"})
		require.NoError(t, err)
		assert.Contains(t, string(b), `"department":"HR"`)
	})
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "john.doe@company.com", "x@y.z"}
	invalid := []string{"", "a@b", "@b.com", "a b@c.com", "a@.com", "a@b.", "plain"}

	for _, s := range valid {
		assert.True(t, domain.ValidEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, domain.ValidEmail(s), s)
	}
}

func TestEmployee_FullName(t *testing.T) {
	assert.Equal(t, "Jane Smith", domain.Employee{FirstName: "Jane", LastName: "Smith"}.FullName())
	assert.Equal(t, "Jane", domain.Employee{FirstName: "Jane"}.FullName())
}

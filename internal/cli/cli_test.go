package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"go-employee-admin/internal/cli"
	"go-employee-admin/internal/client"
	"go-employee-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAPI struct {
	employees map[int64]domain.Employee
	failIDs   map[int64]bool
	created   []client.EmployeeInput
	updated   map[int64]client.EmployeeInput
	listErr   error
}

func newFakeAPI(seed ...domain.Employee) *fakeAPI {
	f := &fakeAPI{
		employees: map[int64]domain.Employee{},
		failIDs:   map[int64]bool{},
		updated:   map[int64]client.EmployeeInput{},
	}
	for _, e := range seed {
		f.employees[e.ID] = e
	}
	return f
}

func (f *fakeAPI) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAPI) GetEmployee(ctx context.Context, id int64) (domain.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return domain.Employee{}, &client.APIError{Status: 404, Code: "NOT_FOUND", Message: "Employee not found"}
	}
	return e, nil
}

func (f *fakeAPI) CreateEmployee(ctx context.Context, in client.EmployeeInput) (domain.Employee, error) {
	f.created = append(f.created, in)
	id := int64(len(f.employees) + 1)
	e := domain.Employee{ID: id, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}
	f.employees[id] = e
	return e, nil
}

func (f *fakeAPI) UpdateEmployee(ctx context.Context, id int64, in client.EmployeeInput) (domain.Employee, error) {
	f.updated[id] = in
	return f.employees[id], nil
}

func (f *fakeAPI) DeleteEmployee(ctx context.Context, id int64) error {
	if f.failIDs[id] {
		return &client.APIError{Status: 500, Message: "Internal server error"}
	}
	delete(f.employees, id)
	return nil
}

func (f *fakeAPI) BulkDeleteEmployees(ctx context.Context, ids []int64) error {
	var failed bool
	for _, id := range ids {
		if err := f.DeleteEmployee(ctx, id); err != nil {
			failed = true
		}
	}
	if failed {
		return client.ErrBulkDelete
	}
	return nil
}

func (f *fakeAPI) ListDepartments(ctx context.Context) ([]client.Department, error) {
	return []client.Department{{ID: 1, Name: "IT", Manager: "Ada", EmployeeCount: 2}}, nil
}

func (f *fakeAPI) GetDepartment(ctx context.Context, id int64) (client.Department, error) {
	return client.Department{ID: id, Name: "IT", Manager: "Ada"}, nil
}

func (f *fakeAPI) CreateDepartment(ctx context.Context, in client.DepartmentInput) (client.Department, error) {
	return client.Department{ID: 2, Name: in.Name}, nil
}

func (f *fakeAPI) UpdateDepartment(ctx context.Context, id int64, in client.DepartmentInput) (client.Department, error) {
	return client.Department{ID: id, Name: in.Name}, nil
}

func (f *fakeAPI) DeleteDepartment(ctx context.Context, id int64) error {
	return nil
}

func (f *fakeAPI) Login(ctx context.Context, email string) (client.Login, error) {
	if email != "admin@company.com" {
		return client.Login{}, &client.APIError{Status: 404, Message: "No employee found with this email"}
	}
	return client.Login{Token: "tok-1", Employee: domain.Employee{FirstName: "Admin", LastName: "User"}}, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	return nil
}

func (f *fakeAPI) Profile(ctx context.Context) (domain.Employee, error) {
	return f.GetEmployee(ctx, 1)
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, in client.EmployeeInput) (domain.Employee, error) {
	return f.UpdateEmployee(ctx, 1, in)
}

func staff() []domain.Employee {
	return []domain.Employee{
		{ID: 1, FirstName: "John", LastName: "Doe", Email: "john@x.com", Position: "Dev", Department: "IT"},
		{ID: 2, FirstName: "Jane", LastName: "Smith", Email: "jane@x.com", Position: "Mgr", Department: "HR"},
	}
}

func run(t *testing.T, api *fakeAPI, stdin string, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCommand(func(cfg cli.Config, logger *zap.Logger) cli.API { return api })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEmployeesList(t *testing.T) {
	t.Run("sorted and filtered", func(t *testing.T) {
		out, err := run(t, newFakeAPI(staff()...), "", "employees", "list", "--sort", "firstName")
		require.NoError(t, err)

		assert.Less(t, strings.Index(out, "Jane Smith"), strings.Index(out, "John Doe"))
		assert.Contains(t, out, "Page 1 of 1 (2 employees)")
	})

	t.Run("department filter", func(t *testing.T) {
		out, err := run(t, newFakeAPI(staff()...), "", "employees", "list", "--department", "HR")
		require.NoError(t, err)

		assert.Contains(t, out, "Jane Smith")
		assert.NotContains(t, out, "John Doe")
		assert.Contains(t, out, "(1 employees)")
	})

	t.Run("empty", func(t *testing.T) {
		out, err := run(t, newFakeAPI(), "", "employees", "list")
		require.NoError(t, err)
		assert.Equal(t, "No employees found\n", out)
	})

	t.Run("load failure", func(t *testing.T) {
		api := newFakeAPI()
		api.listErr = errors.New("dial tcp: connection refused")
		_, err := run(t, api, "", "employees", "list")
		assert.EqualError(t, err, "Failed to load employees")
	})
}

func TestEmployeesCreate(t *testing.T) {
	t.Run("validation stops the request", func(t *testing.T) {
		api := newFakeAPI()
		_, err := run(t, api, "", "employees", "create", "--first-name", "Ann", "--email", "ann@nowhere")

		assert.EqualError(t, err, "Email is invalid")
		assert.Empty(t, api.created)
	})

	t.Run("created", func(t *testing.T) {
		api := newFakeAPI()
		out, err := run(t, api, "", "employees", "create", "--first-name", "Ann", "--email", "ann@x.com", "--department", "Ops")

		require.NoError(t, err)
		assert.Contains(t, out, "Employee created successfully (#1 Ann)")
		require.Len(t, api.created, 1)
		assert.Equal(t, "Ops", api.created[0].Department)
	})
}

func TestEmployeesUpdate_KeepsOmittedFields(t *testing.T) {
	api := newFakeAPI(staff()...)

	_, err := run(t, api, "", "employees", "update", "1", "--position", "Lead")

	require.NoError(t, err)
	assert.Equal(t, client.EmployeeInput{
		FirstName: "John", LastName: "Doe", Email: "john@x.com", Position: "Lead", Department: "IT",
	}, api.updated[1])
}

func TestEmployeesDelete_PartialFailure(t *testing.T) {
	api := newFakeAPI(staff()...)
	api.failIDs[2] = true

	_, err := run(t, api, "", "employees", "delete", "1", "2")

	assert.EqualError(t, err, "Failed to delete some employees; refresh to see which remain")
	_, stillThere := api.employees[2]
	assert.True(t, stillThere)
	_, gone := api.employees[1]
	assert.False(t, gone)
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	out, err := run(t, newFakeAPI(staff()...), "", "export", "csv", "--sort", "firstName", "--dir", "desc", "-o", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 employees to "+path)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"ID,First Name,Last Name,Email,Position,Department\n"+
			"1,John,Doe,john@x.com,Dev,IT\n"+
			"2,Jane,Smith,jane@x.com,Mgr,HR",
		string(body))
}

func TestExportPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dir.pdf")

	_, err := run(t, newFakeAPI(staff()...), "", "export", "pdf", "-o", path)

	require.NoError(t, err)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestReports(t *testing.T) {
	out, err := run(t, newFakeAPI(staff()...), "", "reports", "--by", "position")

	require.NoError(t, err)
	assert.Contains(t, out, "Total employees: 2")
	assert.Contains(t, out, "50.0%")

	_, err = run(t, newFakeAPI(), "", "reports", "--by", "salary")
	assert.Error(t, err)
}

func TestReports_CSVWithNoEmployees(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.csv")

	_, err := run(t, newFakeAPI(), "", "reports", "-o", path)

	require.NoError(t, err)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Department,Employee Count,Percentage", string(body))
}

func TestDocuments(t *testing.T) {
	out, err := run(t, newFakeAPI(), "", "documents")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents yet. Add employees to generate documents.")

	out, err = run(t, newFakeAPI(staff()...), "", "documents", "--category", "Policy")
	require.NoError(t, err)
	assert.Contains(t, out, "Employee Handbook 2025.pdf")
	assert.NotContains(t, out, "Roster")
}

func TestDepartmentsList(t *testing.T) {
	out, err := run(t, newFakeAPI(), "", "departments", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "IT")
	assert.Contains(t, out, "Ada")
}

func TestLogin(t *testing.T) {
	out, err := run(t, newFakeAPI(), "", "login", "admin@company.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, Admin User")
	assert.Contains(t, out, "export EMPADMIN_TOKEN=tok-1")

	_, err = run(t, newFakeAPI(), "", "login", "ghost@x.com")
	assert.EqualError(t, err, "No employee found with this email")
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("EMPADMIN_BASE_URL", "http://api.internal/api/v1")
	t.Setenv("EMPADMIN_TOKEN", "env-token")

	var got cli.Config
	root := cli.NewRootCommand(func(cfg cli.Config, logger *zap.Logger) cli.API {
		got = cfg
		return newFakeAPI()
	})
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"employees", "list"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "http://api.internal/api/v1", got.BaseURL)
	assert.Equal(t, "env-token", got.Token)
}

func TestBrowse_SelectionSurvivesSearch(t *testing.T) {
	api := newFakeAPI(staff()...)
	script := strings.Join([]string{
		"sel 1",
		"search Jane",
		"search",
		"delete",
		"quit",
	}, "\n")

	out, err := run(t, api, script, "browse")

	require.NoError(t, err)
	assert.Contains(t, out, "1 selected")
	assert.Contains(t, out, "! 1 employees deleted successfully")
	_, gone := api.employees[1]
	assert.False(t, gone)
}

func TestBrowse_SelectAllAndPartialDelete(t *testing.T) {
	var seed []domain.Employee
	for i := 1; i <= 12; i++ {
		seed = append(seed, domain.Employee{ID: int64(i), FirstName: fmt.Sprintf("E%02d", i), Email: fmt.Sprintf("e%d@x.com", i)})
	}
	api := newFakeAPI(seed...)
	api.failIDs[3] = true

	out, err := run(t, api, "all\ndelete\npage 9\nquit\n", "browse")

	require.NoError(t, err)
	assert.Contains(t, out, "10 selected")
	assert.Contains(t, out, "! Failed to delete some employees; refresh to see which remain")
	assert.Len(t, api.employees, 3)
	assert.Contains(t, out, "Page 1 of 1 (3 employees)")
}

func TestBrowse_EmptyAndUnknownCommand(t *testing.T) {
	out, err := run(t, newFakeAPI(), "bogus\n", "browse")

	require.NoError(t, err)
	assert.Contains(t, out, "No employees found")
	assert.Contains(t, out, `! Unknown command "bogus", type help`)
}

func TestProfileUpdate(t *testing.T) {
	api := newFakeAPI(staff()...)

	out, err := run(t, api, "", "profile", "update", "--last-name", "Roe")

	require.NoError(t, err)
	assert.Contains(t, out, "Profile updated successfully")
	assert.Equal(t, "Roe", api.updated[1].LastName)
	assert.Equal(t, "john@x.com", api.updated[1].Email)

	out, err = run(t, api, "", "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "John Doe")
}

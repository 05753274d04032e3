package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"go-employee-admin/internal/client"
	"go-employee-admin/internal/domain"
	"go-employee-admin/internal/shared/apperror"
	"go-employee-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory stand-in for the employee endpoints.
type fakeAPI struct {
	mu        sync.Mutex
	employees map[int64]domain.Employee
	failIDs   map[int64]bool
	lastAuth  string
}

func newFakeAPI(seed ...domain.Employee) *fakeAPI {
	f := &fakeAPI{employees: map[int64]domain.Employee{}, failIDs: map[int64]bool{}}
	for _, e := range seed {
		f.employees[e.ID] = e
	}
	return f
}

func (f *fakeAPI) server(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1")

	api.GET("/employees", func(c *gin.Context) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastAuth = c.GetHeader("Authorization")
		out := make([]domain.Employee, 0, len(f.employees))
		for _, e := range f.employees {
			out = append(out, e)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		response.Success(c, http.StatusOK, out, nil)
	})

	api.GET("/employees/:id", func(c *gin.Context) {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		f.mu.Lock()
		e, ok := f.employees[id]
		f.mu.Unlock()
		if !ok {
			response.Error(c, http.StatusNotFound, apperror.CodeNotFound, "Employee not found", nil)
			return
		}
		response.Success(c, http.StatusOK, e, nil)
	})

	api.POST("/employees", func(c *gin.Context) {
		// department arrives in its object form to check normalisation
		c.Data(http.StatusCreated, "application/json",
			[]byte(`{"ok":true,"data":{"id":9,"firstName":"Ann","email":"ann@x.com","department":{"name":"Ops"}}}`))
	})

	api.DELETE("/employees/:id", func(c *gin.Context) {
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.failIDs[id] {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "Internal server error", nil)
			return
		}
		delete(f.employees, id)
		response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
	})

	api.POST("/auth/login", func(c *gin.Context) {
		var body struct {
			Email string `json:"email"`
		}
		_ = c.ShouldBindJSON(&body)
		if body.Email != "admin@company.com" {
			response.Error(c, http.StatusNotFound, apperror.CodeNotFound, "No employee found with this email", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{
			"token":    "tok-1",
			"employee": gin.H{"id": 1, "firstName": "Admin", "email": body.Email},
		}, nil)
	})

	api.GET("/departments", func(c *gin.Context) {
		response.Success(c, http.StatusOK, []gin.H{{"id": 1, "name": "IT", "employeeCount": 3}}, nil)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func seed() []domain.Employee {
	return []domain.Employee{
		{ID: 1, FirstName: "John", LastName: "Doe", Email: "john@x.com", Position: "Dev", Department: "IT"},
		{ID: 2, FirstName: "Jane", LastName: "Smith", Email: "jane@x.com", Position: "Mgr", Department: "HR"},
	}
}

func TestClient_ListAndGet(t *testing.T) {
	api := newFakeAPI(seed()...)
	c := client.New(api.server(t).URL + "/api/v1/")
	ctx := context.Background()

	list, err := c.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed(), list)

	e, err := c.GetEmployee(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Jane", e.FirstName)

	_, err = c.GetEmployee(ctx, 42)
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, "Employee not found", client.Message(err, "Something went wrong"))
}

func TestClient_CreateNormalisesDepartment(t *testing.T) {
	api := newFakeAPI()
	c := client.New(api.server(t).URL + "/api/v1")

	e, err := c.CreateEmployee(context.Background(), client.EmployeeInput{FirstName: "Ann", Email: "ann@x.com", Department: "Ops"})

	require.NoError(t, err)
	assert.Equal(t, int64(9), e.ID)
	assert.Equal(t, domain.DepartmentName("Ops"), e.Department)
}

func TestClient_BulkDelete_PartialFailure(t *testing.T) {
	api := newFakeAPI(seed()...)
	api.failIDs[2] = true
	c := client.New(api.server(t).URL + "/api/v1")
	ctx := context.Background()

	err := c.BulkDeleteEmployees(ctx, []int64{1, 2})

	require.Error(t, err)
	assert.ErrorIs(t, err, client.ErrBulkDelete)

	list, err := c.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].ID)
}

func TestClient_BulkDelete_AllSucceed(t *testing.T) {
	api := newFakeAPI(seed()...)
	c := client.New(api.server(t).URL + "/api/v1")
	ctx := context.Background()

	require.NoError(t, c.BulkDeleteEmployees(ctx, []int64{1, 2}))

	list, err := c.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClient_Login(t *testing.T) {
	api := newFakeAPI(seed()...)
	c := client.New(api.server(t).URL + "/api/v1")
	ctx := context.Background()

	_, err := c.Login(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, "No employee found with this email", client.Message(err, "Login failed"))

	login, err := c.Login(ctx, "admin@company.com")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", login.Token)
	assert.Equal(t, "Admin", login.Employee.FirstName)

	_, err = c.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", api.lastAuth)
}

func TestClient_ListDepartments(t *testing.T) {
	api := newFakeAPI()
	c := client.New(api.server(t).URL + "/api/v1")

	depts, err := c.ListDepartments(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []client.Department{{ID: 1, Name: "IT", EmployeeCount: 3}}, depts)
}

func TestClient_TransportError(t *testing.T) {
	c := client.New("http://127.0.0.1:1")

	_, err := c.ListEmployees(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Failed to load employees", client.Message(err, "Failed to load employees"))
}

func TestValidateEmployee(t *testing.T) {
	tests := []struct {
		name string
		in   client.EmployeeInput
		want string
	}{
		{"valid", client.EmployeeInput{FirstName: "A", Email: "a@b.co"}, ""},
		{"missing first name", client.EmployeeInput{FirstName: "  ", Email: "a@b.co"}, "First name is required"},
		{"missing email", client.EmployeeInput{FirstName: "A"}, "Email is required"},
		{"no dot in domain", client.EmployeeInput{FirstName: "A", Email: "a@b"}, "Email is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.ValidateEmployee(tt.in)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *client.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.want, client.Message(err, ""))
		})
	}
}

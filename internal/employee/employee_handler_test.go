package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-employee-admin/internal/domain"
	"go-employee-admin/internal/employee"
	employeeerrors "go-employee-admin/internal/employee/errors"
	"go-employee-admin/internal/shared/apperror"
	"go-employee-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	CreateFn     func(ctx context.Context, req employee.CreateEmployeeRequest) (domain.Employee, error)
	GetAllFn     func(ctx context.Context) ([]domain.Employee, error)
	GetOptionsFn func(ctx context.Context) (employee.EmployeeOptions, error)
	GetByIDFn    func(ctx context.Context, id int64) (domain.Employee, error)
	GetByEmailFn func(ctx context.Context, email string) (domain.Employee, error)
	UpdateFn     func(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (domain.Employee, error)
	DeleteFn     func(ctx context.Context, id int64) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (domain.Employee, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]domain.Employee, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context) (employee.EmployeeOptions, error) {
	return f.GetOptionsFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id int64) (domain.Employee, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) GetByEmail(ctx context.Context, email string) (domain.Employee, error) {
	return f.GetByEmailFn(ctx, email)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (domain.Employee, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id int64) error {
	return f.DeleteFn(ctx, id)
}

type recordingObserver struct {
	format string
	rows   int
}

func (r *recordingObserver) ObserveExport(format string, rows int) {
	r.format = format
	r.rows = rows
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	return gin.New()
}

type envelope struct {
	Ok    bool                     `json:"ok"`
	Data  json.RawMessage          `json:"data"`
	Meta  *response.PaginationMeta `json:"meta"`
	Error *response.ErrorBody      `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func sampleEmployees(n int) []domain.Employee {
	out := make([]domain.Employee, n)
	for i := range out {
		dept := "IT"
		if i%2 == 1 {
			dept = "HR"
		}
		out[i] = domain.Employee{
			ID:         int64(i + 1),
			FirstName:  fmt.Sprintf("Emp%02d", i+1),
			Email:      fmt.Sprintf("emp%02d@x.com", i+1),
			Position:   "Dev",
			Department: domain.DepartmentName(dept),
		}
	}
	return out
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success - department given as object", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (domain.Employee, error) {
				assert.Equal(t, "John", req.FirstName)
				assert.Equal(t, domain.DepartmentName("IT"), req.Department)
				return domain.Employee{ID: 1, FirstName: req.FirstName, Email: req.Email, Department: req.Department}, nil
			},
		}
		h := employee.NewHandler(svc, nil)
		r := setupRouter()
		r.POST("/employees", h.Create)

		body := `{"firstName":"John","email":"john@x.com","department":{"name":"IT"}}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"department":"IT"`)
	})

	t.Run("missing first name", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{}, nil)
		r := setupRouter()
		r.POST("/employees", h.Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"email":"a@b.co"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, "First name is required", env.Error.Message)
	})

	t.Run("malformed email", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{}, nil)
		r := setupRouter()
		r.POST("/employees", h.Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees",
			strings.NewReader(`{"firstName":"A","email":"a@nodot"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email is invalid", decode(t, w).Error.Message)
	})

	t.Run("duplicate email -> 409", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (domain.Employee, error) {
				return domain.Employee{}, employeeerrors.ErrEmployeeAlreadyExists
			},
		}
		h := employee.NewHandler(svc, nil)
		r := setupRouter()
		r.POST("/employees", h.Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees",
			strings.NewReader(`{"firstName":"A","email":"a@b.co"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context) ([]domain.Employee, error) {
			return sampleEmployees(3), nil
		},
	}
	h := employee.NewHandler(svc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/employees", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(3), env.Meta.Total)
}

func TestEmployeeHandler_GetTable(t *testing.T) {
	run := func(t *testing.T, all []domain.Employee, query string) (envelope, employee.TableResponse) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context) ([]domain.Employee, error) { return all, nil },
		}
		h := employee.NewHandler(svc, nil)
		r := setupRouter()
		r.GET("/employees/table", h.GetTable)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/table"+query, nil))
		require.Equal(t, http.StatusOK, w.Code)

		env := decode(t, w)
		var table employee.TableResponse
		require.NoError(t, json.Unmarshal(env.Data, &table))
		return env, table
	}

	t.Run("filters by department and sorts descending", func(t *testing.T) {
		env, table := run(t, sampleEmployees(25), "?department=HR&sort_by=firstName&sort_dir=desc")

		assert.Equal(t, int64(12), env.Meta.Total)
		assert.Equal(t, 2, env.Meta.TotalPages)
		require.Len(t, table.Employees, 10)
		assert.Equal(t, "Emp24", table.Employees[0].FirstName)
		assert.Equal(t, []string{"IT", "HR"}, table.Departments)
		assert.Equal(t, "desc", table.SortDir)
	})

	t.Run("page past the end is clamped to the last page", func(t *testing.T) {
		env, table := run(t, sampleEmployees(25), "?page=9")

		assert.Equal(t, 3, env.Meta.Page)
		require.Len(t, table.Employees, 5)
		assert.Equal(t, int64(21), table.Employees[0].ID)
	})

	t.Run("empty collection", func(t *testing.T) {
		env, table := run(t, []domain.Employee{}, "")

		assert.Equal(t, int64(0), env.Meta.Total)
		assert.Equal(t, 0, env.Meta.TotalPages)
		assert.Empty(t, table.Employees)
	})
}

func TestEmployeeHandler_Export(t *testing.T) {
	all := []domain.Employee{
		{ID: 1, FirstName: "John", LastName: "Doe", Email: "john@x.com", Position: "Dev", Department: "IT"},
		{ID: 2, FirstName: "Jane", LastName: "Smith", Email: "jane@x.com", Position: "Mgr", Department: "HR"},
	}
	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context) ([]domain.Employee, error) { return all, nil },
	}

	t.Run("csv uses filter and sort but not pagination", func(t *testing.T) {
		obs := &recordingObserver{}
		h := employee.NewHandler(svc, obs)
		r := setupRouter()
		r.GET("/employees/export", h.Export)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/export?sort_by=firstName", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "employees.csv")
		assert.Equal(t,
			"ID,First Name,Last Name,Email,Position,Department\n"+
				"2,Jane,Smith,jane@x.com,Mgr,HR\n"+
				"1,John,Doe,john@x.com,Dev,IT",
			w.Body.String())
		assert.Equal(t, "csv", obs.format)
		assert.Equal(t, 2, obs.rows)
	})

	t.Run("xlsx", func(t *testing.T) {
		h := employee.NewHandler(svc, nil)
		r := setupRouter()
		r.GET("/employees/export", h.Export)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/export?format=xlsx", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
		assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
	})

	t.Run("unknown format", func(t *testing.T) {
		h := employee.NewHandler(svc, nil)
		r := setupRouter()
		r.GET("/employees/export", h.Export)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/export?format=pdf", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_GetById(t *testing.T) {
	svc := &fakeEmployeeService{
		GetByIDFn: func(ctx context.Context, id int64) (domain.Employee, error) {
			if id == 404 {
				return domain.Employee{}, employeeerrors.ErrEmployeeNotFound
			}
			return domain.Employee{ID: id, FirstName: "John"}, nil
		},
	}
	h := employee.NewHandler(svc, nil)
	r := setupRouter()
	r.GET("/employees/:id", h.GetById)

	cases := []struct {
		path   string
		status int
	}{
		{"/employees/7", http.StatusOK},
		{"/employees/404", http.StatusNotFound},
		{"/employees/abc", http.StatusBadRequest},
		{"/employees/0", http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, tc.status, w.Code, tc.path)
	}
}

func TestEmployeeHandler_Update(t *testing.T) {
	svc := &fakeEmployeeService{
		UpdateFn: func(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) (domain.Employee, error) {
			assert.Equal(t, int64(3), id)
			return domain.Employee{ID: id, FirstName: req.FirstName, Email: req.Email}, nil
		},
	}
	h := employee.NewHandler(svc, nil)
	r := setupRouter()
	r.PUT("/employees/:id", h.Update)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/employees/3",
		strings.NewReader(`{"firstName":"Jane","email":"jane@x.com","department":null}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"firstName":"Jane"`)
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id int64) error { return nil },
		}
		h := employee.NewHandler(svc, nil)
		r := setupRouter()
		r.DELETE("/employees/:id", h.Delete)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unexpected error is reported as internal", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id int64) error { return errors.New("boom") },
		}
		h := employee.NewHandler(svc, nil)
		r := setupRouter()
		r.DELETE("/employees/:id", h.Delete)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/1", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})
}

package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-employee-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginationMeta(t *testing.T) {
	assert.Equal(t, 3, response.NewPaginationMeta(21, 1, 10).TotalPages)
	assert.Equal(t, 0, response.NewPaginationMeta(0, 1, 10).TotalPages)
	assert.Equal(t, 0, response.NewPaginationMeta(5, 1, 0).TotalPages)
}

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Error(c, http.StatusConflict, "CONFLICT", "Department with name 'IT' already exists", nil)

	var env response.ApiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Ok)
	require.NotNil(t, env.Error)
	assert.Equal(t, "Department with name 'IT' already exists", env.Error.Message)
}

func TestAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Attachment(c, "employees.csv", "text/csv", []byte("ID"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="employees.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID", w.Body.String())
}

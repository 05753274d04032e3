package employee

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	employeeerrors "go-employee-admin/internal/employee/errors"
	"go-employee-admin/internal/export"
	"go-employee-admin/internal/listing"
	"go-employee-admin/internal/shared/apperror"
	"go-employee-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	exports export.Observer
	logger  *zap.Logger
}

func NewHandler(service Service, exports export.Observer, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	if exports == nil {
		exports = export.NopObserver{}
	}
	return &Handler{service: service, exports: exports, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("employee request validation failed", zap.String("path", c.FullPath()), zap.Error(err))
	h.writeServiceError(c, apperror.MapValidationError(err))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// GetAll returns the whole collection in fetch order.
func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.PaginationMeta{Total: int64(len(resp))}
	response.Success(c, http.StatusOK, resp, &meta)
}

// GetTable serves one page of the searched, filtered and sorted table.
// A page past the end is pulled back to the last page.
func (h *Handler) GetTable(c *gin.Context) {
	all, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	p := viewParams(c)
	res := listing.Apply(all, p)
	if page := listing.ClampPage(p.Page, res.TotalPages); page != p.Page {
		p.Page = page
		res = listing.Apply(all, p)
	}

	depts, positions := listing.Facets(all)
	meta := response.NewPaginationMeta(int64(res.TotalFiltered), res.Page, res.PerPage)
	response.Success(c, http.StatusOK, TableResponse{
		Employees:   res.Visible,
		Departments: depts,
		Positions:   positions,
		SortBy:      string(p.SortKey),
		SortDir:     string(p.SortDir),
	}, &meta)
}

func (h *Handler) GetOptions(c *gin.Context) {
	resp, err := h.service.GetOptions(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Export downloads the filtered and sorted collection, every page of it.
func (h *Handler) Export(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	if format != "csv" && format != "xlsx" {
		h.writeServiceError(c, employeeerrors.ErrUnsupportedExportFormat)
		return
	}

	all, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	rows := listing.Filter(all, viewParams(c))

	var buf bytes.Buffer
	switch format {
	case "xlsx":
		err = export.EmployeesXLSX(&buf, rows)
	default:
		err = export.EmployeesCSV(&buf, rows)
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.exports.ObserveExport(format, len(rows))
	h.logger.Info("employees exported", zap.String("format", format), zap.Int("rows", len(rows)))

	if format == "xlsx" {
		response.Attachment(c, export.EmployeesXLSXFilename,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
		return
	}
	response.Attachment(c, export.EmployeesCSVFilename, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) GetById(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		h.writeServiceError(c, employeeerrors.ErrInvalidEmployeeID)
		return 0, false
	}
	return id, true
}

func viewParams(c *gin.Context) listing.Params {
	return listing.Params{
		Query:      c.Query("q"),
		Department: c.Query("department"),
		Position:   c.Query("position"),
		SortKey:    listing.ParseSortKey(c.Query("sort_by")),
		SortDir:    listing.ParseSortDirection(c.Query("sort_dir")),
		Page:       listing.ParsePage(c.DefaultQuery("page", "1")),
	}
}

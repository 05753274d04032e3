package report_http

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"go-employee-admin/internal/domain"
	"go-employee-admin/internal/export"
	"go-employee-admin/internal/report"
	reporterrors "go-employee-admin/internal/report/errors"
	"go-employee-admin/internal/shared/apperror"
	"go-employee-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const growthMonths = 6

// EmployeeSource supplies the collection every report is derived from.
type EmployeeSource interface {
	GetAll(ctx context.Context) ([]domain.Employee, error)
}

type Handler struct {
	source  EmployeeSource
	exports export.Observer
	now     func() time.Time
	logger  *zap.Logger
}

func NewHandler(source EmployeeSource, exports export.Observer, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	if exports == nil {
		exports = export.NopObserver{}
	}
	return &Handler{source: source, exports: exports, now: time.Now, logger: l}
}

// WithClock replaces the time source used for dates, growth and filenames.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	h.now = now
	return h
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("report request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) employees(c *gin.Context) ([]domain.Employee, bool) {
	all, err := h.source.GetAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	return all, true
}

func (h *Handler) Summary(c *gin.Context) {
	all, ok := h.employees(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, report.Summarize(all), nil)
}

type breakdownResponse struct {
	By      report.Dimension `json:"by"`
	Total   int              `json:"total"`
	Buckets []report.Bucket  `json:"buckets"`
}

func (h *Handler) Breakdown(c *gin.Context) {
	by, ok := report.ParseDimension(c.Query("by"))
	if !ok {
		h.writeError(c, reporterrors.ErrInvalidDimension)
		return
	}
	all, ok := h.employees(c)
	if !ok {
		return
	}

	response.Success(c, http.StatusOK, breakdownResponse{
		By:      by,
		Total:   len(all),
		Buckets: report.Breakdown(all, by),
	}, nil)
}

func (h *Handler) BreakdownCSV(c *gin.Context) {
	by, ok := report.ParseDimension(c.Query("by"))
	if !ok {
		h.writeError(c, reporterrors.ErrInvalidDimension)
		return
	}
	all, ok := h.employees(c)
	if !ok {
		return
	}

	buckets := report.Breakdown(all, by)
	var buf bytes.Buffer
	if err := export.BreakdownCSV(&buf, by.Label(), buckets, len(all)); err != nil {
		h.writeError(c, apperror.Wrap(err, reporterrors.ErrReportGenerationFailed.Code,
			reporterrors.ErrReportGenerationFailed.Message, http.StatusInternalServerError))
		return
	}

	h.exports.ObserveExport("breakdown_csv", len(buckets))
	response.Attachment(c, export.BreakdownCSVFilename(by.Label(), h.now()),
		"text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) Growth(c *gin.Context) {
	all, ok := h.employees(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, report.Growth(all, h.now(), growthMonths), nil)
}

// DirectoryPDF renders every employee in fetch order, ignoring any filter.
func (h *Handler) DirectoryPDF(c *gin.Context) {
	all, ok := h.employees(c)
	if !ok {
		return
	}

	now := h.now()
	var buf bytes.Buffer
	if err := export.DirectoryPDF(&buf, all, now); err != nil {
		h.writeError(c, apperror.Wrap(err, reporterrors.ErrReportGenerationFailed.Code,
			reporterrors.ErrReportGenerationFailed.Message, http.StatusInternalServerError))
		return
	}

	h.exports.ObserveExport("pdf", len(all))
	h.logger.Info("employee directory exported", zap.Int("rows", len(all)))
	response.Attachment(c, export.DirectoryPDFFilename(now), "application/pdf", buf.Bytes())
}

func (h *Handler) Dashboard(c *gin.Context) {
	all, ok := h.employees(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, report.BuildDashboard(all, h.now()), nil)
}

func (h *Handler) Documents(c *gin.Context) {
	all, ok := h.employees(c)
	if !ok {
		return
	}

	catalogue := report.BuildCatalogue(all, report.DocumentFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	}, h.now().Format(time.DateOnly))
	response.Success(c, http.StatusOK, catalogue, nil)
}

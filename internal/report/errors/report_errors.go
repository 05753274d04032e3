package reporterrors

import (
	"go-employee-admin/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidDimension = apperror.New(
		apperror.CodeInvalidInput,
		"Breakdown must be by department or position",
		http.StatusBadRequest,
	)
	ErrReportGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to generate report",
		http.StatusInternalServerError,
	)
)

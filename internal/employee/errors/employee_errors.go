package employeeerrors

import (
	"go-employee-admin/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee with the same email already exists",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmail = apperror.New(
		apperror.CodeInvalidInput,
		"Email is invalid",
		http.StatusBadRequest,
	)
	ErrEmailRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Email is required",
		http.StatusBadRequest,
	)
	ErrFirstNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"First name is required",
		http.StatusBadRequest,
	)
	ErrUnsupportedExportFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Unsupported export format",
		http.StatusBadRequest,
	)
)

package autherrors

import (
	"go-employee-admin/internal/shared/apperror"
	"net/http"
)

var (
	ErrUnknownEmail = apperror.New(
		apperror.CodeNotFound,
		"No employee found with this email",
		http.StatusNotFound,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid session token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Session has expired",
		http.StatusUnauthorized,
	)
	ErrSessionNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Session not found or already logged out",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to issue session token",
		http.StatusInternalServerError,
	)
)

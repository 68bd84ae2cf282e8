package alerterrors

import (
	"net/http"

	"go-presence/internal/shared/apperror"
)

var (
	ErrAlertNotFound = apperror.New(
		apperror.CodeNotFound,
		"Alert not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Alert cannot change to the requested status",
		http.StatusConflict,
	)
	ErrInvalidSeverity = apperror.New(
		apperror.CodeInvalidInput,
		"Severity must be low, medium or high",
		http.StatusBadRequest,
	)
	ErrInvalidAlertType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown alert type",
		http.StatusBadRequest,
	)
)

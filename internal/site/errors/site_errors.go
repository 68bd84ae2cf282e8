package siteerrors

import (
	"net/http"

	"go-presence/internal/shared/apperror"
)

var (
	ErrSiteNotFound = apperror.New(
		apperror.CodeNotFound,
		"Site not found",
		http.StatusNotFound,
	)
	ErrSiteAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Site with the same name already exists",
		http.StatusConflict,
	)
	ErrInvalidRadius = apperror.New(
		apperror.CodeInvalidInput,
		"Geofence radius must be greater than zero",
		http.StatusBadRequest,
	)
	ErrSiteInactive = apperror.New(
		apperror.CodeInvalidState,
		"Site is not active",
		http.StatusBadRequest,
	)
)

package pairerrors

import (
	"net/http"

	"go-presence/internal/shared/apperror"
)

var (
	ErrPairNotFound = apperror.New(
		apperror.CodeNotFound,
		"Pair not found",
		http.StatusNotFound,
	)
	ErrSelfPair = apperror.New(
		apperror.CodeInvalidInput,
		"A pair must consist of two different employees",
		http.StatusBadRequest,
	)
	ErrEmployeeAlreadyPaired = apperror.New(
		apperror.CodeConflict,
		"Employee already has an active pair at this site",
		http.StatusConflict,
	)
	ErrNoActivePair = apperror.New(
		apperror.CodeNotFound,
		"Employee has no active pair at this site",
		http.StatusNotFound,
	)
)

package sessionerrors

import (
	"net/http"

	"go-presence/internal/shared/apperror"
)

var (
	ErrSessionNotFound = apperror.New(
		apperror.CodeNotFound,
		"presence session not found",
		http.StatusNotFound,
	)
	ErrNoActiveSession = apperror.New(
		apperror.CodeNotFound,
		"no active presence session for this employee",
		http.StatusNotFound,
	)
	ErrActiveSessionExists = apperror.New(
		apperror.CodeConflict,
		"an active presence session already exists",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"presence session status transition is not allowed",
		http.StatusConflict,
	)
	ErrDailyCheckInLimit = apperror.New(
		apperror.CodeInvalidState,
		"daily check-in limit reached",
		http.StatusTooManyRequests,
	)
	ErrLocationConsentRequired = apperror.New(
		apperror.CodeInvalidState,
		"location consent is required to start a presence session",
		http.StatusConflict,
	)
	ErrNotPairPartner = apperror.New(
		apperror.CodeVerificationFailed,
		"pair code was not generated by the registered pair partner",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidFaceSample = apperror.New(
		apperror.CodeInvalidInput,
		"face sample is not valid base64 data",
		http.StatusBadRequest,
	)
)

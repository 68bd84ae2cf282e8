package verificationerrors

import (
	"net/http"

	"go-presence/internal/shared/apperror"
)

var (
	ErrOutsideGeofence = apperror.New(
		apperror.CodeVerificationFailed,
		"location is outside the authorized site zone",
		http.StatusUnprocessableEntity,
	)
	ErrFaceNotVerified = apperror.New(
		apperror.CodeVerificationFailed,
		"face recognition failed",
		http.StatusUnprocessableEntity,
	)
	ErrWrongAnswer = apperror.New(
		apperror.CodeVerificationFailed,
		"security answer does not match",
		http.StatusUnprocessableEntity,
	)
	ErrFactorOrder = apperror.New(
		apperror.CodeInvalidState,
		"verification factor submitted out of order",
		http.StatusBadRequest,
	)
	ErrChallengeIncomplete = apperror.New(
		apperror.CodeInvalidState,
		"verification challenge is not complete",
		http.StatusBadRequest,
	)
	ErrChallengeComplete = apperror.New(
		apperror.CodeInvalidState,
		"verification challenge is already complete",
		http.StatusBadRequest,
	)
	ErrPairCodeNotFound = apperror.New(
		apperror.CodeVerificationFailed,
		"pair code not found or already used",
		http.StatusUnprocessableEntity,
	)
	ErrPairCodeExpired = apperror.New(
		apperror.CodeVerificationFailed,
		"pair code has expired",
		http.StatusUnprocessableEntity,
	)
	ErrPairCodeSelfClaim = apperror.New(
		apperror.CodeVerificationFailed,
		"pair code cannot be claimed by its generator",
		http.StatusUnprocessableEntity,
	)
	ErrPairNotClaimed = apperror.New(
		apperror.CodeInvalidState,
		"no pair code has been claimed for this validation",
		http.StatusBadRequest,
	)
	ErrPairNotConfirmed = apperror.New(
		apperror.CodeInvalidInput,
		"pair presence must be explicitly confirmed by the claimant",
		http.StatusBadRequest,
	)
)

package participationerrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrParticipationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Participation not found",
		http.StatusNotFound,
	)

	ErrInvalidParticipationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid participation ID",
		http.StatusBadRequest,
	)

	ErrAlreadyEnrolled = apperror.New(
		apperror.CodeConflict,
		"User is already enrolled in this cycle",
		http.StatusBadRequest,
	)

	ErrUserNotInTenant = apperror.New(
		apperror.CodeInvalidInput,
		"User does not belong to this tenant",
		http.StatusBadRequest,
	)

	ErrCycleNotEnrollable = apperror.New(
		apperror.CodeInvalidState,
		"Cycle is not open for enrollment",
		http.StatusBadRequest,
	)

	ErrCycleFull = apperror.New(
		apperror.CodeInvalidState,
		"Cycle has reached its participant limit",
		http.StatusBadRequest,
	)

	ErrJourneyUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Participation status transition not allowed",
		http.StatusBadRequest,
	)
)

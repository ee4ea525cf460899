package cycleerrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrCycleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Stage cycle not found",
		http.StatusNotFound,
	)

	ErrInvalidCycleID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid stage cycle ID",
		http.StatusBadRequest,
	)

	ErrCycleHasParticipants = apperror.New(
		apperror.CodeInvalidState,
		"Cycle has enrolled participants and cannot be deleted",
		http.StatusBadRequest,
	)
)

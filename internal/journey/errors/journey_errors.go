package journeyerrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrJourneyNotFound = apperror.New(
		apperror.CodeNotFound,
		"Journey record not found",
		http.StatusNotFound,
	)

	ErrInvalidJourneyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid journey record ID",
		http.StatusBadRequest,
	)

	ErrJourneyUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found in this tenant",
		http.StatusNotFound,
	)
)

package locationerrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrLocationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Location not found",
		http.StatusNotFound,
	)

	ErrInvalidLocationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid location ID",
		http.StatusBadRequest,
	)
)

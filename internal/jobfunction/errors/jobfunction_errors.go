package jobfunctionerrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrFunctionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Job function not found",
		http.StatusNotFound,
	)

	ErrInvalidFunctionID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid job function ID",
		http.StatusBadRequest,
	)
)

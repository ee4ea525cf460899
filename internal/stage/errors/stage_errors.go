package stageerrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrStageNotFound = apperror.New(
		apperror.CodeNotFound,
		"Formative stage not found",
		http.StatusNotFound,
	)

	ErrInvalidStageID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid formative stage ID",
		http.StatusBadRequest,
	)
)

package acompanhamentoerrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrAcompanhamentoNotFound = apperror.New(
		apperror.CodeNotFound,
		"Acompanhamento not found",
		http.StatusNotFound,
	)

	ErrInvalidAcompanhamentoID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid acompanhamento ID",
		http.StatusBadRequest,
	)

	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"Only the creating formador or an admin can change this record",
		http.StatusForbidden,
	)

	ErrFormadorOnly = apperror.New(
		apperror.CodeForbidden,
		"Only formadores and admins can do this",
		http.StatusForbidden,
	)
)

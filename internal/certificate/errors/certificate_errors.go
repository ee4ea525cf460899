package certificateerrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrCertificateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Certificate not found",
		http.StatusNotFound,
	)

	ErrInvalidCertificateID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid certificate ID",
		http.StatusBadRequest,
	)

	ErrCertificateForbidden = apperror.New(
		apperror.CodeForbidden,
		"You cannot access this certificate",
		http.StatusForbidden,
	)
)

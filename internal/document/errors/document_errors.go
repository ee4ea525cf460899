package documenterrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)

	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid document ID",
		http.StatusBadRequest,
	)

	ErrContentRestricted = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this content",
		http.StatusForbidden,
	)

	ErrNoFileAttached = apperror.New(
		apperror.CodeInvalidState,
		"Document has no file attached",
		http.StatusBadRequest,
	)
)

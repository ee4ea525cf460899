package subcategoryerrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrSubcategoryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Subcategory not found",
		http.StatusNotFound,
	)

	ErrInvalidSubcategoryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid subcategory ID",
		http.StatusBadRequest,
	)

	ErrSubcategoryInUse = apperror.New(
		apperror.CodeInvalidState,
		"Subcategory still has content and cannot be deleted",
		http.StatusBadRequest,
	)
)

package tenanterrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrTenantNotFound = apperror.New(
		apperror.CodeNotFound,
		"Tenant not found",
		http.StatusNotFound,
	)

	ErrSlugTaken = apperror.New(
		apperror.CodeConflict,
		"Tenant slug already in use",
		http.StatusBadRequest,
	)

	ErrInvalidSlug = apperror.New(
		apperror.CodeInvalidInput,
		"Slug must be at least 3 characters of lowercase letters, digits and hyphens",
		http.StatusBadRequest,
	)

	ErrTenantInactive = apperror.New(
		apperror.CodeForbidden,
		"Tenant is not active",
		http.StatusForbidden,
	)

	ErrNoTenant = apperror.New(
		apperror.CodeForbidden,
		"User is not associated with any tenant",
		http.StatusForbidden,
	)

	ErrUserLimitReached = apperror.New(
		apperror.CodeInvalidState,
		"Tenant user limit reached",
		http.StatusBadRequest,
	)

	ErrInvalidTenantID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid tenant ID",
		http.StatusBadRequest,
	)
)

package autherrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid or malformed token",
		http.StatusUnauthorized,
	)

	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token has expired",
		http.StatusUnauthorized,
	)

	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid refresh token",
		http.StatusUnauthorized,
	)

	ErrUserInactive = apperror.New(
		apperror.CodeUnauthorized,
		"User is inactive",
		http.StatusUnauthorized,
	)

	ErrTenantRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Tenant slug is required",
		http.StatusBadRequest,
	)

	ErrResetTokenUsed = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid or already used token",
		http.StatusBadRequest,
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not generate token",
		http.StatusInternalServerError,
	)
)

package usererrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"Email already registered in this tenant",
		http.StatusBadRequest,
	)

	ErrCPFTaken = apperror.New(
		apperror.CodeConflict,
		"CPF already registered in this tenant",
		http.StatusBadRequest,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrForbiddenFields = apperror.New(
		apperror.CodeForbidden,
		"You cannot change these fields on your own profile",
		http.StatusForbidden,
	)

	ErrNotYourProfile = apperror.New(
		apperror.CodeForbidden,
		"You can only edit your own profile",
		http.StatusForbidden,
	)

	ErrOwnerProtected = apperror.New(
		apperror.CodeInvalidState,
		"The tenant owner cannot be demoted or removed",
		http.StatusBadRequest,
	)

	ErrSelfDelete = apperror.New(
		apperror.CodeInvalidState,
		"You cannot delete your own account",
		http.StatusBadRequest,
	)

	ErrUserInactive = apperror.New(
		apperror.CodeForbidden,
		"User is inactive",
		http.StatusForbidden,
	)
)

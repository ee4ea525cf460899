package assessmenterrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrAssessmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Assessment not found",
		http.StatusNotFound,
	)

	ErrInvalidAssessmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid assessment ID",
		http.StatusBadRequest,
	)

	ErrAssessmentForbidden = apperror.New(
		apperror.CodeForbidden,
		"You cannot access this assessment",
		http.StatusForbidden,
	)

	ErrEvaluatorOnly = apperror.New(
		apperror.CodeForbidden,
		"Only the evaluator or an admin can change this assessment",
		http.StatusForbidden,
	)

	ErrWriteRoleRequired = apperror.New(
		apperror.CodeForbidden,
		"Only formadores and admins can create assessments",
		http.StatusForbidden,
	)

	ErrInvalidScore = apperror.New(
		apperror.CodeInvalidInput,
		"Score must be between zero and the indicator maximum",
		http.StatusBadRequest,
	)

	ErrIndicatorNotFound = apperror.New(
		apperror.CodeNotFound,
		"Stage indicator not found",
		http.StatusNotFound,
	)
)

package videoerrors

import (
	"net/http"

	"go-formacao/internal/shared/apperror"
)

var (
	ErrVideoNotFound = apperror.New(
		apperror.CodeNotFound,
		"Video not found",
		http.StatusNotFound,
	)

	ErrInvalidVideoID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid video ID",
		http.StatusBadRequest,
	)

	ErrContentRestricted = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this content",
		http.StatusForbidden,
	)

	ErrVideoLocked = apperror.New(
		apperror.CodeForbidden,
		"Video is locked until its prerequisite is met",
		http.StatusForbidden,
	)

	ErrNoVideoFile = apperror.New(
		apperror.CodeInvalidInput,
		"Video has no uploaded file",
		http.StatusBadRequest,
	)

	ErrCommentsDisabled = apperror.New(
		apperror.CodeInvalidState,
		"Comments are disabled for this video",
		http.StatusBadRequest,
	)

	ErrCommentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Comment not found",
		http.StatusNotFound,
	)

	ErrNotCommentAuthor = apperror.New(
		apperror.CodeForbidden,
		"Only the author or an admin can remove a comment",
		http.StatusForbidden,
	)

	ErrEvaluationDisabled = apperror.New(
		apperror.CodeInvalidState,
		"Evaluation is disabled for this video",
		http.StatusBadRequest,
	)

	ErrAttachmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attachment not found",
		http.StatusNotFound,
	)
)

package video

import (
	"io"
	"net/http"
	"strconv"

	"go-formacao/internal/middleware"
	"go-formacao/internal/shared/apperror"
	"go-formacao/internal/shared/response"
	"go-formacao/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	store   storage.Storage
	maxSize int64
	logger  *zap.Logger
}

func NewHandler(service Service, store storage.Storage, maxSize int64, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("video.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("video.handler")
	}
	return &Handler{service: service, store: store, maxSize: maxSize, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("video request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	f := ListFilter{
		SubcategoryID: c.Query("subcategory_id"),
		Search:        c.Query("search"),
	}
	videos, err := h.service.GetAll(c.Request.Context(), p, f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}

	total := int64(len(videos))
	start := (page - 1) * pageSize
	if start > len(videos) {
		start = len(videos)
	}
	end := start + pageSize
	if end > len(videos) {
		end = len(videos)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, videos[start:end], &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	resp, err := h.service.GetByID(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), p, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	paths, err := h.service.Delete(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	for _, path := range paths {
		if err := h.store.Remove(c.Request.Context(), path); err != nil {
			h.logger.Warn("video file cleanup failed",
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Upload(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Missing file field", nil)
		return
	}
	defer file.Close()

	if header.Size > h.maxSize {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "File too large", nil)
		return
	}
	if !storage.ExtAllowed(header.Filename, storage.VideoExtensions) {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "File type not allowed", nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	path, err := h.store.Save(c.Request.Context(), storage.FolderVideos, storage.UniqueName(header.Filename), data)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.AttachFile(c.Request.Context(), p, c.Param("id"), FileMeta{
		Path:     path,
		Name:     header.Filename,
		Size:     header.Size,
		MimeType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AccessStatus(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	resp, err := h.service.AccessStatus(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SaveProgress(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.SaveProgress(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetComments(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	resp, err := h.service.GetComments(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AddComment(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.AddComment(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) DeleteComment(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	if err := h.service.DeleteComment(c.Request.Context(), p, c.Param("id"), c.Param("commentId")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Evaluate(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Evaluate(c.Request.Context(), p, c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAttachments(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	resp, err := h.service.GetAttachments(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AddAttachment(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Missing file field", nil)
		return
	}
	defer file.Close()

	if header.Size > h.maxSize {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "File too large", nil)
		return
	}
	if !storage.ExtAllowed(header.Filename, storage.DocumentExtensions) {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "File type not allowed", nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	path, err := h.store.Save(c.Request.Context(), storage.FolderAttachments, storage.UniqueName(header.Filename), data)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.AddAttachment(c.Request.Context(), p, c.Param("id"), c.PostForm("title"), FileMeta{
		Path:     path,
		Name:     header.Filename,
		Size:     header.Size,
		MimeType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) DeleteAttachment(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	path, err := h.service.DeleteAttachment(c.Request.Context(), p, c.Param("id"), c.Param("attachmentId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if path != "" {
		if err := h.store.Remove(c.Request.Context(), path); err != nil {
			h.logger.Warn("attachment file cleanup failed",
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

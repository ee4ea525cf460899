package certificate

import (
	"io"
	"net/http"

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
	l := zap.L().Named("certificate.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("certificate.handler")
	}
	return &Handler{service: service, store: store, maxSize: maxSize, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("certificate request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	resp, err := h.service.GetAll(c.Request.Context(), p, ListFilter{UserID: c.Query("user_id")})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByUser(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	resp, err := h.service.GetByUser(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
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

// Create takes a multipart form: the file plus title, description,
// user_id and issued_at fields.
func (h *Handler) Create(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Missing file field", nil)
		return
	}
	defer file.Close()

	title := c.PostForm("title")
	if title == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Missing title field", nil)
		return
	}
	if header.Size > h.maxSize {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "File too large", nil)
		return
	}
	if !storage.ExtAllowed(header.Filename, storage.CertificateExtensions) {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "File type not allowed", nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	path, err := h.store.Save(c.Request.Context(), storage.FolderCertificates, storage.UniqueName(header.Filename), data)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), p,
		c.PostForm("user_id"), title, c.PostForm("description"), c.PostForm("issued_at"),
		FileMeta{
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

func (h *Handler) Update(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req UpdateCertificateRequest
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

	filePath, err := h.service.Delete(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if filePath != "" {
		if err := h.store.Remove(c.Request.Context(), filePath); err != nil {
			h.logger.Warn("certificate file cleanup failed",
				zap.String("path", filePath),
				zap.Error(err),
			)
		}
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

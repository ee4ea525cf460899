package document

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
	l := zap.L().Named("document.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.handler")
	}
	return &Handler{service: service, store: store, maxSize: maxSize, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("document request failed",
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
	docs, err := h.service.GetAll(c.Request.Context(), p, f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// permission filtering happens in the service, paginate the
	// visible slice here
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}

	total := int64(len(docs))
	start := (page - 1) * pageSize
	if start > len(docs) {
		start = len(docs)
	}
	end := start + pageSize
	if end > len(docs) {
		end = len(docs)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, docs[start:end], &meta)
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

	var req CreateDocumentRequest
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

	var req UpdateDocumentRequest
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
			h.logger.Warn("document file cleanup failed",
				zap.String("path", filePath),
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
	if !storage.ExtAllowed(header.Filename, storage.DocumentExtensions) {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "File type not allowed", nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	path, err := h.store.Save(c.Request.Context(), storage.FolderDocuments, storage.UniqueName(header.Filename), data)
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

func (h *Handler) Download(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	d, err := h.service.Download(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	rc, err := h.store.Open(c.Request.Context(), d.FilePath)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+d.FileName+`"`)
	contentType := d.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, d.FileSize, contentType, rc, nil)
}

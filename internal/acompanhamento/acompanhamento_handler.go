package acompanhamento

import (
	"net/http"

	"go-formacao/internal/middleware"
	"go-formacao/internal/shared/apperror"
	"go-formacao/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("acompanhamento.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("acompanhamento.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("acompanhamento request failed",
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
		UserID:     c.Query("user_id"),
		FormadorID: c.Query("formador_id"),
	}
	resp, err := h.service.GetAll(c.Request.Context(), p, f)
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

func (h *Handler) Create(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req CreateAcompanhamentoRequest
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

	var req UpdateAcompanhamentoRequest
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

	if err := h.service.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) MyFormandos(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	resp, err := h.service.MyFormandos(c.Request.Context(), p)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) StatsByStage(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	resp, err := h.service.StatsByStage(c.Request.Context(), p)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ExportPDF(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	data, err := h.service.ExportPDF(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="acompanhamento.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) ExportListPDF(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	f := ListFilter{
		UserID:     c.Query("user_id"),
		FormadorID: c.Query("formador_id"),
	}
	data, err := h.service.ExportListPDF(c.Request.Context(), p, f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="acompanhamentos.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

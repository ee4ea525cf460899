package assessment

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("assessment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assessment.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("assessment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	year, _ := strconv.Atoi(c.Query("year"))
	f := ListFilter{
		UserID:      c.Query("user_id"),
		EvaluatorID: c.Query("evaluator_id"),
		Type:        c.Query("type"),
		Status:      c.Query("status"),
		Year:        year,
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

	var req CreateAssessmentRequest
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

	var req UpdateAssessmentRequest
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

func (h *Handler) GetIndicators(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	resp, err := h.service.GetIndicators(c.Request.Context(), p, c.Query("stage_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateIndicator(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req CreateIndicatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.CreateIndicator(c.Request.Context(), p, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateIndicator(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req UpdateIndicatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.UpdateIndicator(c.Request.Context(), p, c.Param("indicatorId"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteIndicator(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	if err := h.service.DeleteIndicator(c.Request.Context(), p, c.Param("indicatorId")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) ExportPDF(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	data, err := h.service.ExportPDF(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="avaliacao.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) AnnualReportPDF(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	userID := c.Query("user_id")
	if userID == "" {
		userID = p.ID
	}
	year, _ := strconv.Atoi(c.Query("year"))

	data, err := h.service.AnnualReportPDF(c.Request.Context(), p, userID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="relatorio-anual.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) ReadinessReport(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	resp, err := h.service.ReadinessReport(c.Request.Context(), p, c.Param("stageId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

package audit

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

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
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("audit request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func filterFromQuery(c *gin.Context) (Filter, int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))
	if pageSize < 1 {
		pageSize = 50
	}

	return Filter{
		UserID:       c.Query("user_id"),
		Action:       c.Query("action"),
		ResourceType: c.Query("resource_type"),
		Search:       c.Query("search"),
		DateFrom:     c.Query("date_from"),
		DateTo:       c.Query("date_to"),
		Limit:        pageSize,
		Offset:       (page - 1) * pageSize,
	}, page, pageSize
}

func (h *Handler) GetAll(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	f, page, pageSize := filterFromQuery(c)

	logs, total, err := h.service.GetAll(c.Request.Context(), p, f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, logs, &meta)
}

func (h *Handler) Actions(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	actions, err := h.service.Actions(c.Request.Context(), p)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, actions, nil)
}

func (h *Handler) ResourceTypes(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	types, err := h.service.ResourceTypes(c.Request.Context(), p)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, types, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	summary, err := h.service.Summary(c.Request.Context(), p)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, summary, nil)
}

func (h *Handler) ExportCSV(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	f, _, _ := filterFromQuery(c)

	data, err := h.service.ExportCSV(c.Request.Context(), p, f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("audit_logs_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func (h *Handler) UserActivity(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := h.service.UserActivity(c.Request.Context(), p, c.Param("id"), limit)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, logs, nil)
}

package participation

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
	l := zap.L().Named("participation.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("participation.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("participation request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Enroll(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Enroll(c.Request.Context(), p, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 {
		pageSize = 20
	}

	f := ListFilter{
		CycleID: c.Query("cycle_id"),
		UserID:  c.Query("user_id"),
		Status:  c.Query("status"),
		Limit:   pageSize,
		Offset:  (page - 1) * pageSize,
	}

	participations, total, err := h.service.GetAll(c.Request.Context(), p, f)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, participations, &meta)
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

func (h *Handler) GetByUser(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	participations, err := h.service.GetByUser(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, participations, nil)
}

func (h *Handler) FullJourney(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	resp, err := h.service.FullJourney(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	var req UpdateRequest
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

func (h *Handler) transition(c *gin.Context, fn func(*gin.Context, TransitionRequest)) {
	var req TransitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			return
		}
	}
	fn(c, req)
}

func (h *Handler) Start(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	h.transition(c, func(c *gin.Context, req TransitionRequest) {
		resp, err := h.service.Start(c.Request.Context(), p, c.Param("id"), req)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
	})
}

func (h *Handler) Approve(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	h.transition(c, func(c *gin.Context, req TransitionRequest) {
		resp, err := h.service.Approve(c.Request.Context(), p, c.Param("id"), req)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
	})
}

func (h *Handler) Reprove(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	h.transition(c, func(c *gin.Context, req TransitionRequest) {
		resp, err := h.service.Reprove(c.Request.Context(), p, c.Param("id"), req)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
	})
}

func (h *Handler) Withdraw(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	h.transition(c, func(c *gin.Context, req TransitionRequest) {
		resp, err := h.service.Withdraw(c.Request.Context(), p, c.Param("id"), req)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
	})
}

func (h *Handler) Transfer(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	h.transition(c, func(c *gin.Context, req TransitionRequest) {
		resp, err := h.service.Transfer(c.Request.Context(), p, c.Param("id"), req)
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Success(c, http.StatusOK, resp, nil)
	})
}

func (h *Handler) Delete(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	if err := h.service.Delete(c.Request.Context(), p, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Stats(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)

	resp, err := h.service.Stats(c.Request.Context(), p)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

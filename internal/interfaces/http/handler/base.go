package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bookstore/backend/internal/domain/shared"
	"github.com/bookstore/backend/internal/infrastructure/logger"
	"github.com/bookstore/backend/internal/interfaces/http/dto"
	"github.com/bookstore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the status derived from code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, getRequestID(c)))
}

// NotFound sends the fixed 404 response
func (h *BaseHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewNotFoundResponse())
}

// BindJSON binds the request body and writes a 400 on failure
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// BindQuery binds query parameters and writes a 400 on failure
func (h *BaseHandler) BindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// ParseID reads a numeric path parameter. A value that is not a positive
// integer cannot name a stored row, so it is answered with 404.
func (h *BaseHandler) ParseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		h.NotFound(c)
		return 0, false
	}
	return id, true
}

// HandleError converts service errors to HTTP responses.
// Not-found errors always produce the fixed 404 body; unknown errors are
// logged and reported as internal.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	code := dto.ClassifyError(err)
	switch code {
	case dto.ErrCodeNotFound:
		h.NotFound(c)
		return
	case dto.ErrCodeInternal:
		logger.GetGinLogger(c).Error("request failed", zap.Error(err))
		h.Error(c, code, "An unexpected error occurred")
		return
	}

	resp := dto.NewErrorResponse(code, err.Error(), getRequestID(c))
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		resp.Error = domainErr.Message
		resp.Detail = domainErr.Code
	}
	c.JSON(dto.GetHTTPStatus(code), resp)
}

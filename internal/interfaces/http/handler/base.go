package handler

import (
	"errors"
	"net/http"

	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/flamenca/backend/internal/interfaces/http/dto"
	"github.com/flamenca/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// getUserID extracts the authenticated user ID from JWT claims
func getUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr := middleware.GetJWTUserID(c)
	if userIDStr == "" {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return uuid.Parse(userIDStr)
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

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// BindError sends a 400 response for a failed request bind, with per-field
// details when the failure came from validation tags
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	middleware.HandleBindingError(c, err)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts domain and sentinel errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	requestID := getRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID))
		return
	}

	switch {
	case errors.Is(err, shared.ErrNotFound):
		h.NotFound(c, "Resource not found")
	case errors.Is(err, shared.ErrAlreadyExists):
		h.Error(c, http.StatusConflict, dto.ErrCodeAlreadyExists, "Resource already exists")
	case errors.Is(err, shared.ErrUnauthorized):
		h.Unauthorized(c, "Authentication required")
	case errors.Is(err, shared.ErrForbidden):
		h.Forbidden(c, "Operation not allowed")
	case errors.Is(err, shared.ErrInvalidInput):
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, err.Error())
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInternal,
			"An unexpected error occurred",
			requestID,
		))
	}
}

// parseFilter builds a shared.Filter from common query parameters
func parseFilter(c *gin.Context) shared.Filter {
	var req dto.ListRequest
	_ = c.ShouldBindQuery(&req)

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter
}

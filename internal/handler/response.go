package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
)

// APIResponse is the standard envelope for all API responses:
// { success, data?, message?, counts? }.
type APIResponse struct {
	Success bool           `json:"success"`
	Data    interface{}    `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
	Counts  map[string]int `json:"counts,omitempty"`
	Meta    *PagMeta       `json:"meta,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata
// and per-status counts.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta, counts map[string]int) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta, Counts: counts})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, APIResponse{Success: false, Message: msg})
}

// MapDomainError translates domain errors to HTTP status codes and messages.
func MapDomainError(err error) (status int, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrReviewerInactive):
		return http.StatusForbidden, "reviewer account is inactive"
	case errors.Is(err, domain.ErrUnknownDomain):
		return http.StatusBadRequest, "unknown permit domain"
	case errors.Is(err, domain.ErrUnknownStatus):
		return http.StatusBadRequest, "status is not in the domain's vocabulary"
	case errors.Is(err, domain.ErrTerminalState):
		return http.StatusConflict, "application is already in a terminal state; no further action is possible"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "a rejection requires a reason"
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, "application was modified by another reviewer; reload and retry"
	default:
		return http.StatusInternalServerError, "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, msg)
}

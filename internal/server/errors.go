package server

import (
	"errors"
	"net/http"

	attendancedomain "github.com/clubarqueros/clubops/internal/attendance/domain"
	"github.com/clubarqueros/clubops/internal/billingperiod"
	ledgerdomain "github.com/clubarqueros/clubops/internal/ledger/domain"
	memberdomain "github.com/clubarqueros/clubops/internal/member/domain"
	reconciledomain "github.com/clubarqueros/clubops/internal/reconcile/domain"
	settingdomain "github.com/clubarqueros/clubops/internal/setting/domain"
	tariffdomain "github.com/clubarqueros/clubops/internal/tariff/domain"
	"github.com/gin-gonic/gin"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInternal       = errors.New("internal_error")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   "request",
					Code:    err.Error(),
					Message: err.Error(),
				},
			},
		}
	}

	switch {
	case errors.Is(err, reconciledomain.ErrAlreadySettled):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "already_settled",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return true
	case errors.Is(err, billingperiod.ErrInvalidCutoffDay):
		return true
	case errors.Is(err, settingdomain.ErrInvalidKey):
		return true
	case errors.Is(err, memberdomain.ErrInvalidName),
		errors.Is(err, memberdomain.ErrInvalidSite),
		errors.Is(err, memberdomain.ErrInvalidID):
		return true
	case errors.Is(err, tariffdomain.ErrInvalidConcept),
		errors.Is(err, tariffdomain.ErrInvalidPrice):
		return true
	case errors.Is(err, ledgerdomain.ErrInvalidID),
		errors.Is(err, ledgerdomain.ErrInvalidConcept),
		errors.Is(err, ledgerdomain.ErrInvalidPeriod),
		errors.Is(err, ledgerdomain.ErrInvalidMethod),
		errors.Is(err, ledgerdomain.ErrMemberInactive):
		return true
	case errors.Is(err, reconciledomain.ErrInvalidMethod),
		errors.Is(err, reconciledomain.ErrInvalidAmount):
		return true
	case errors.Is(err, attendancedomain.ErrInvalidID),
		errors.Is(err, attendancedomain.ErrInvalidDate),
		errors.Is(err, attendancedomain.ErrInvalidSite),
		errors.Is(err, attendancedomain.ErrMemberInactive):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, memberdomain.ErrNotFound),
		errors.Is(err, tariffdomain.ErrNotFound),
		errors.Is(err, ledgerdomain.ErrNotFound),
		errors.Is(err, reconciledomain.ErrNotFound):
		return true
	default:
		return false
	}
}

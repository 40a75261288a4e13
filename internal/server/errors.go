package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	assignmentdomain "github.com/mizanapp/mizan/internal/assignment/domain"
	contractordomain "github.com/mizanapp/mizan/internal/contractor/domain"
	extractdomain "github.com/mizanapp/mizan/internal/extract/domain"
	invoicedomain "github.com/mizanapp/mizan/internal/invoice/domain"
	notificationdomain "github.com/mizanapp/mizan/internal/notification/domain"
	profiledomain "github.com/mizanapp/mizan/internal/profile/domain"
	purchasedomain "github.com/mizanapp/mizan/internal/purchase/domain"
	saledomain "github.com/mizanapp/mizan/internal/sale/domain"
	"github.com/mizanapp/mizan/internal/schema"
	taskdomain "github.com/mizanapp/mizan/internal/task/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
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
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
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
	return ErrInvalidRequest
}

func mapError(err error) (int, errorPayload) {
	if fieldErrs := schema.AsErrors(err); fieldErrs != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  toValidationErrors(fieldErrs),
		}
	}

	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "invalid request",
			Errors: []ValidationError{
				{Field: "request", Code: "invalid_request", Message: "invalid request"},
			},
		}
	case errors.Is(err, schema.ErrUnknownKind),
		isInvalidInputError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_request",
			Message: err.Error(),
		}
	case errors.Is(err, notificationdomain.ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
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

func toValidationErrors(errs *schema.Errors) []ValidationError {
	out := make([]ValidationError, 0, len(errs.Fields))
	for _, f := range errs.Fields {
		out = append(out, ValidationError{
			Field:   f.Field,
			Code:    f.Code,
			Message: f.Message,
		})
	}
	return out
}

func isInvalidInputError(err error) bool {
	switch {
	case errors.Is(err, saledomain.ErrInvalidID),
		errors.Is(err, invoicedomain.ErrInvalidID),
		errors.Is(err, purchasedomain.ErrInvalidID),
		errors.Is(err, extractdomain.ErrInvalidID),
		errors.Is(err, assignmentdomain.ErrInvalidID),
		errors.Is(err, contractordomain.ErrInvalidID),
		errors.Is(err, taskdomain.ErrInvalidID),
		errors.Is(err, profiledomain.ErrInvalidID),
		errors.Is(err, notificationdomain.ErrInvalidID),
		errors.Is(err, notificationdomain.ErrNoRecipients),
		errors.Is(err, notificationdomain.ErrTooManyRecipients),
		errors.Is(err, notificationdomain.ErrInvalidRecipient),
		errors.Is(err, notificationdomain.ErrEmptyMessage),
		errors.Is(err, notificationdomain.ErrInvalidPhone),
		errors.Is(err, notificationdomain.ErrSenderNotFound),
		errors.Is(err, taskdomain.ErrTaskNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, invoicedomain.ErrDuplicateNumber),
		errors.Is(err, profiledomain.ErrDuplicateEmail):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, saledomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, purchasedomain.ErrNotFound),
		errors.Is(err, extractdomain.ErrNotFound),
		errors.Is(err, assignmentdomain.ErrNotFound),
		errors.Is(err, contractordomain.ErrNotFound),
		errors.Is(err, taskdomain.ErrNotFound),
		errors.Is(err, profiledomain.ErrNotFound),
		errors.Is(err, notificationdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

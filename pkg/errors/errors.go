package errors

import (
	"fmt"
	"net/http"
	"time"
)

const (
	CodeInvalidRange      = "INVALID_RANGE"
	CodeLeadTime          = "LEAD_TIME"
	CodeConflict          = "CONFLICT"
	CodeIncompleteRequest = "INCOMPLETE_REQUEST"
	CodeNotFound          = "NOT_FOUND"
	CodeForbidden         = "FORBIDDEN"
	CodePolicyViolation   = "POLICY_VIOLATION"

	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
	CodeTimeout      = "TIMEOUT"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
)

// AppError is the one error type that crosses layer boundaries. Every
// failure the reservation engine can produce maps to a code above; the
// HTTP layer translates the code, never the message.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// InvalidRange reports a malformed or too-short stay.
func InvalidRange(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidRange,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// LeadTime reports an entry date that is today or in the past.
func LeadTime(message string) *AppError {
	return &AppError{
		Code:       CodeLeadTime,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// Conflict reports an overlap with an existing reservation. The blocked
// days inside the requested range ride along so the caller can show the
// user which dates to avoid.
func Conflict(message string, conflictingDates []time.Time) *AppError {
	e := &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
	if len(conflictingDates) > 0 {
		dates := make([]string, len(conflictingDates))
		for i, d := range conflictingDates {
			dates[i] = d.Format("2006-01-02")
		}
		e.Details = map[string]any{"conflicting_dates": dates}
	}
	return e
}

// IncompleteRequest reports a booking request missing its suite or
// customer reference.
func IncompleteRequest(message string) *AppError {
	return &AppError{
		Code:       CodeIncompleteRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// PolicyViolation reports a cancellation attempted inside the notice
// window.
func PolicyViolation(message string) *AppError {
	return &AppError{
		Code:       CodePolicyViolation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func Unavailable(service string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

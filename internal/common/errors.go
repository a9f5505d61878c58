package common

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// ApiError is the error taxonomy every handler speaks: a status code plus a
// human readable message. Anything else that escapes a service is wrapped
// into an Internal before it reaches the wire.
type ApiError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
	cause      error
}

func (e *ApiError) Error() string {
	return e.Message
}

func (e *ApiError) Unwrap() error {
	return e.cause
}

func NewApiError(statusCode int, message string) *ApiError {
	return &ApiError{StatusCode: statusCode, Message: message, Errors: []string{}}
}

func BadRequest(message string) *ApiError {
	return NewApiError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *ApiError {
	return NewApiError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *ApiError {
	return NewApiError(http.StatusForbidden, message)
}

func NotFound(message string) *ApiError {
	return NewApiError(http.StatusNotFound, message)
}

func Conflict(message string) *ApiError {
	return NewApiError(http.StatusConflict, message)
}

func Internal(message string, cause error) *ApiError {
	return &ApiError{
		StatusCode: http.StatusInternalServerError,
		Message:    message,
		Errors:     []string{},
		cause:      cause,
	}
}

// AsApiError translates any error into the taxonomy. Store-layer failures
// map to the closest kind: missing rows become NotFound, unique index
// violations become Conflict, everything unknown becomes Internal.
func AsApiError(err error) *ApiError {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("resource not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict("resource already exists")
	}
	return Internal("something went wrong", err)
}

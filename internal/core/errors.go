// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// AppError is an error that maps directly to an HTTP response.
// Details carries the best-effort upstream detail string and is
// omitted from the body when empty.
type AppError struct {
	Status  int
	Message string
	Details string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func BadRequestError(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

func NotFoundError(resource string) *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Message: resource + " not found",
	}
}

func UnauthorizedError(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message}
}

func ForbiddenError(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: message}
}

func UpstreamError(message string, err error) *AppError {
	appErr := &AppError{
		Status:  http.StatusInternalServerError,
		Message: message,
	}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

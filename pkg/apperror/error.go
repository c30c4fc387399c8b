package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error the way the admin UI surfaces it.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNetwork      Kind = "network"
	KindServer       Kind = "server"
	KindNotFound     Kind = "not_found"
	KindAvailability Kind = "availability"
	KindBadRequest   Kind = "bad_request"
	KindInternal     Kind = "internal"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Validation is a local, field-scoped failure that blocks submission.
func Validation(message string) *AppError {
	return New(http.StatusUnprocessableEntity, KindValidation, message, nil)
}

// Network means the remote API could not be reached at all.
func Network(message string, err error) *AppError {
	return New(http.StatusBadGateway, KindNetwork, message, err)
}

// Server means the remote API answered with a non-2xx status.
func Server(status int, message string, err error) *AppError {
	return New(status, KindServer, message, err)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Availability(message string, err error) *AppError {
	return New(http.StatusBadGateway, KindAvailability, message, err)
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindBadRequest, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

// Is reports whether err carries an AppError of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// As extracts the AppError from err, if any.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

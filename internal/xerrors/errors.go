package xerrors

import (
	"errors"
	"net/http"
	"strings"
)

type Error struct {
	StatusCode int
	Message    string
	Cause      error
	Validation *ValidationInfo
}

type ValidationInfo struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func Unauthorized(opts ...Option) *Error { return newErr(http.StatusUnauthorized, opts) }
func BadRequest(opts ...Option) *Error   { return newErr(http.StatusBadRequest, opts) }
func NotFound(opts ...Option) *Error     { return newErr(http.StatusNotFound, opts) }
func Internal(opts ...Option) *Error     { return newErr(http.StatusInternalServerError, opts) }

func Validation(fields map[string]string, opts ...Option) *Error {
	e := newErr(http.StatusUnprocessableEntity, opts)
	e.Validation = &ValidationInfo{Fields: fields}
	return e
}

func newErr(status int, opts []Option) *Error {
	e := &Error{StatusCode: status, Message: strings.ToLower(http.StatusText(status))}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type Option func(*Error)

func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }
func WithCause(err error) Option    { return func(e *Error) { e.Cause = err } }

func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Package errors implements the application error taxonomy: every error
// that can cross a pipeline boundary is classified into a Kind with a
// fixed HTTP status mapping, so handlers never hand-translate errors.
package errors

import (
	"fmt"
	"net/http"
)

// Kind classifies an AppError for HTTP status mapping and propagation
// decisions (see §7 of the system design: retry, swallow, or surface).
type Kind string

const (
	KindBadRequest       Kind = "bad_request"
	KindNotFound         Kind = "not_found"
	KindNotReady         Kind = "not_ready"
	KindUpstream         Kind = "upstream"
	KindRateLimit        Kind = "rate_limit"
	KindMalformedSource  Kind = "malformed_source"
	KindConfiguration    Kind = "configuration"
	KindStoreError       Kind = "store_error"
	KindInternal         Kind = "internal"
)

// AppError is the single error type that crosses pipeline boundaries.
type AppError struct {
	Kind       Kind
	Message    string
	Cause      error
	RetryAfter int // seconds; only meaningful for KindRateLimit
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps a Kind to the status code fixed by the design's error
// table, one status per Kind: Upstream is always 502 and
// MalformedSource is always 422.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound, KindNotReady:
		return http.StatusNotFound
	case KindUpstream:
		return http.StatusBadGateway
	case KindRateLimit:
		return http.StatusTooManyRequests
	case KindMalformedSource:
		return http.StatusUnprocessableEntity
	case KindConfiguration, KindStoreError, KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func NewBadRequestError(message string) *AppError {
	return New(KindBadRequest, message)
}

func NewNotFoundError(message string) *AppError {
	return New(KindNotFound, message)
}

func NewNotReadyError(message string) *AppError {
	return New(KindNotReady, message)
}

func NewUpstreamError(message string, cause error) *AppError {
	return Wrap(KindUpstream, message, cause)
}

func NewRateLimitError(message string, retryAfter int) *AppError {
	return &AppError{Kind: KindRateLimit, Message: message, RetryAfter: retryAfter}
}

func NewMalformedSourceError(message string) *AppError {
	return New(KindMalformedSource, message)
}

func NewConfigurationError(message string) *AppError {
	return New(KindConfiguration, message)
}

func NewStoreError(message string, cause error) *AppError {
	return Wrap(KindStoreError, message, cause)
}

func NewInternalError(message string, cause error) *AppError {
	return Wrap(KindInternal, message, cause)
}

// As extracts an *AppError from err, falling back to an Internal wrapper
// for errors that never went through this package's constructors.
func As(err error) *AppError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*AppError); ok {
		return ae
	}
	return NewInternalError("unclassified error", err)
}

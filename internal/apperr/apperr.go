// Package apperr carries the error taxonomy shared by services and the HTTP
// layer. Services always fail with an *Error so handlers can map the kind to a
// status code without inspecting storage errors.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	ValidationError  Kind = "validation_error"
	StockUnavailable Kind = "stock_unavailable"
	NotFound         Kind = "not_found"
	Unauthorized     Kind = "unauthorized"
	Forbidden        Kind = "forbidden"
	ServerError      Kind = "server_error"
)

// StockIssue describes one cart line that failed reservation. Requested is
// what the cart asked for, Available what the locked product row held.
type StockIssue struct {
	ProductID   uint64 `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Available   int64  `json:"available"`
	Requested   int64  `json:"requested"`
	Missing     bool   `json:"missing,omitempty"`
}

type Error struct {
	Kind    Kind
	Message string
	Issues  []StockIssue
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the storage-level cause for logs while exposing only kind and
// message to callers.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Stock(issues []StockIssue) *Error {
	return &Error{
		Kind:    StockUnavailable,
		Message: "insufficient stock for one or more items",
		Issues:  issues,
	}
}

// KindOf reports the taxonomy kind of err, defaulting to ServerError for
// anything that is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ServerError
}

// IssuesOf returns the per-line stock issues attached to err, if any.
func IssuesOf(err error) []StockIssue {
	var e *Error
	if errors.As(err, &e) {
		return e.Issues
	}
	return nil
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case ValidationError, StockUnavailable:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

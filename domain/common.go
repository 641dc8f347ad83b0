package domain

import (
	"errors"
	"fmt"
)

const (
	MinAmount = 1
	MaxAmount = 32000

	DefaultPageSize = 6
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageSuccessPing          = "pong"
)

// Error kinds. Every concrete error below wraps exactly one of them so the
// transport layer can pick a status code with errors.Is.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// NewValidationError builds an ad-hoc validation error, e.g. from a failed
// field check in a service.
func NewValidationError(format string, args ...any) error {
	return newError(ErrValidation, fmt.Sprintf(format, args...))
}

var (
	ErrParseUUID     = newError(ErrValidation, "failed to parse UUID")
	ErrTokenNotFound = newError(ErrUnauthorized, "failed to token not found")
	ErrTokenExpired  = newError(ErrUnauthorized, "token expired")
	ErrTokenInvalid  = newError(ErrUnauthorized, "token invalid")
	ErrTokenRevoked  = newError(ErrUnauthorized, "token revoked")
)

type (
	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
	}

	PaginatedResponse[T any] struct {
		Results    []T        `json:"results"`
		Pagination Pagination `json:"pagination"`
	}
)

func NewPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
}

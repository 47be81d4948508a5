package errors

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrQuotaExceeded      = errors.New("daily generation limit reached. Upgrade your plan to continue.")
	ErrRateLimited        = errors.New("rate limit exceeded. Please try again later.")
	ErrSuspiciousPrompt   = errors.New("invalid prompt content detected")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrNoBillingCustomer  = errors.New("no billing customer found for this user")
)

type Error struct {
	Err     error
	Message string
	Code    string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Wrap(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
		Code:    "INTERNAL_ERROR",
	}
}

// Sanitize maps err to a message safe to return over HTTP. Errors from
// the client-facing taxonomy pass through verbatim since they carry no
// sensitive detail; everything else - in particular upstream provider
// errors that may embed credentials or provider identifiers - collapses
// to a generic service message. Full detail belongs in operator logs,
// not responses.
func Sanitize(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrSuspiciousPrompt),
		errors.Is(err, ErrQuotaExceeded),
		errors.Is(err, ErrRateLimited),
		errors.Is(err, ErrNotAuthenticated),
		errors.Is(err, ErrNoBillingCustomer):
		return capitalize(err.Error())
	}
	return "Service temporarily unavailable"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

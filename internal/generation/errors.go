package generation

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. The orchestrator records the message
// verbatim on the document; the kind decides nothing beyond logging and tests,
// but every component that can abort a run agrees on this vocabulary.
type Kind string

const (
	KindUnsupportedFormat   Kind = "unsupported_format"
	KindExtractionFailed    Kind = "extraction_failed"
	KindInsufficientContent Kind = "insufficient_content"
	KindServiceUnauthorized Kind = "service_unauthorized"
	KindRateLimited         Kind = "rate_limited"
	KindServiceUnavailable  Kind = "service_unavailable"
	KindNetworkError        Kind = "network_error"
	KindMalformedResponse   Kind = "malformed_response"
	KindEmptyResult         Kind = "empty_result"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Errf builds a pipeline error from a format string.
func Errf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or "" when err carries none.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// IsKind reports whether err is a pipeline error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

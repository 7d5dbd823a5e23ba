package scanerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind tags an error with the pipeline stage that rejected the scan.
// The string value is what callers see as the error category.
type Kind string

const (
	KindValidation    Kind = "validation_error"
	KindSecurity      Kind = "security_error"
	KindScan          Kind = "scan_error"
	KindImageAnalysis Kind = "image_analysis_error"
	KindUnexpected    Kind = "unexpected_error"
)

// Error is the typed error returned by every component of the scan pipeline.
// Message is safe to show to users; Cause is kept for logs only.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Validation reports malformed input the caller can correct.
func Validation(format string, args ...any) *Error {
	return newf(KindValidation, format, args...)
}

// Security reports an SSRF or network policy violation.
func Security(format string, args ...any) *Error {
	return newf(KindSecurity, format, args...)
}

// Scan reports a fetch-time failure.
func Scan(format string, args ...any) *Error {
	return newf(KindScan, format, args...)
}

// ImageAnalysis reports content that could not be analyzed at all.
func ImageAnalysis(format string, args ...any) *Error {
	return newf(KindImageAnalysis, format, args...)
}

// Wrap attaches a cause to a new typed error. If cause already carries a
// typed error, that one is returned so its category is never downgraded.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	var typed *Error
	if errors.As(cause, &typed) {
		return typed
	}

	e := newf(kind, format, args...)
	e.Cause = cause
	return e
}

// KindOf returns the category of err, or KindUnexpected for untyped errors.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return KindUnexpected
}

// IsKind checks whether err carries the given category.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Format renders err as "<category>: <message>". Untyped errors are reduced to
// a generic message so no internal detail leaks to the caller.
func Format(err error) string {
	var typed *Error
	if errors.As(err, &typed) {
		return fmt.Sprintf("%s: %s", typed.Kind, typed.Message)
	}
	return fmt.Sprintf("%s: internal error while scanning", KindUnexpected)
}

// HTTPStatus maps a category to the status code class used at the API boundary.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindSecurity:
		return http.StatusForbidden
	case KindScan:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

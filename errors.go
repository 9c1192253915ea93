package pushover

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

var (
	// ErrValidation marks message or configuration constraint failures.
	// Raised before any network activity.
	ErrValidation = errors.New("validation error")

	// ErrNoRecipients is returned when neither per-call recipients nor a
	// configured default user resolve to at least one target.
	ErrNoRecipients = errors.New("no recipients: provide SendOptions.Recipients or configure Config.DefaultUser")
)

// Violation is a single failed message constraint. Path names the field
// in its wire spelling, e.g. "message" or "emergency.repeat".
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// ValidationError accumulates every violated constraint for one message,
// not just the first.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return ErrValidation.Error()
	}

	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("invalid message: %s", strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// TransportError is a connection or request failure for one recipient's
// delivery. The response never arrived.
type TransportError struct {
	Recipient string
	Cause     error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("transport error: recipient %s: %v", e.Recipient, e.Cause)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// DecodeError is a response body that is not the JSON shape the API
// documents. Body holds a snippet for diagnostics.
type DecodeError struct {
	Recipient  string
	HTTPStatus int
	Body       string
	Cause      error
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("decode error: recipient %s: http status %d: %v", e.Recipient, e.HTTPStatus, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// ServiceError is a well-formed API response whose status field indicates
// rejection (any value other than 1).
type ServiceError struct {
	Recipient  string
	HTTPStatus int
	Status     int
	RequestID  string
	Errors     []string
}

func (e *ServiceError) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 3)
	parts = append(parts, fmt.Sprintf("service error: recipient %s: status=%d", e.Recipient, e.Status))
	if e.RequestID != "" {
		parts = append(parts, fmt.Sprintf("request=%s", e.RequestID))
	}
	if len(e.Errors) > 0 {
		parts = append(parts, strings.Join(e.Errors, "; "))
	}
	return strings.Join(parts, ": ")
}

// IsTransient reports whether a per-recipient delivery error is worth
// retrying by the caller. The library itself never retries.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return isTransientHTTPStatus(serviceErr.HTTPStatus)
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return isTransientHTTPStatus(decodeErr.HTTPStatus)
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		var netErr net.Error
		if errors.As(transportErr.Cause, &netErr) {
			return netErr.Timeout()
		}
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

func isTransientHTTPStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || (statusCode >= http.StatusInternalServerError && statusCode <= 599)
}

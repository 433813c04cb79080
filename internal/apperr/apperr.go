// Package apperr defines the error kinds a biapi command can fail with.
// Every kind reaches the same top-level boundary; the Kind discriminant lets
// callers and tests tell them apart without string matching.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a command failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindAPI
	KindNetwork
	KindInput
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindAPI:
		return "api"
	case KindNetwork:
		return "network"
	case KindInput:
		return "input"
	default:
		return "unknown"
	}
}

// kinded is implemented by every error type in this package.
type kinded interface {
	error
	Kind() Kind
}

// KindOf returns the Kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// ─── Configuration ────────────────────────────────────────────────────────────

// ConfigError reports missing or invalid local settings. It is always
// returned before any network I/O.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }
func (e *ConfigError) Kind() Kind    { return KindConfiguration }

// Configf builds a ConfigError.
func Configf(format string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// ─── API ──────────────────────────────────────────────────────────────────────

// APIError reports a non-2xx response from the remote service.
// Body holds the decoded JSON error payload when the response was valid JSON;
// Raw always holds the response text.
type APIError struct {
	Status int
	Body   any
	Raw    string
}

// detailKeys are the error-body fields checked, in order, for a
// human-readable explanation.
var detailKeys = []string{"description", "message", "error_description", "error", "code"}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("API error (HTTP %d)", e.Status)
	if d := e.Detail(); d != "" {
		msg += ": " + d
	}
	return msg
}

func (e *APIError) Kind() Kind { return KindAPI }

// Detail extracts the most descriptive message from the error body, falling
// back to the raw response text.
func (e *APIError) Detail() string {
	if obj, ok := e.Body.(map[string]any); ok {
		for _, k := range detailKeys {
			if v, ok := obj[k]; ok && v != nil {
				if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
					return s
				}
			}
		}
	}
	return strings.TrimSpace(e.Raw)
}

// ─── Network ──────────────────────────────────────────────────────────────────

// NetworkError reports a transport failure: no response was received.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
func (e *NetworkError) Kind() Kind    { return KindNetwork }

// ─── Input ────────────────────────────────────────────────────────────────────

// InputError reports a malformed user-supplied flag or file.
type InputError struct {
	Msg string
	Err error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *InputError) Unwrap() error { return e.Err }
func (e *InputError) Kind() Kind    { return KindInput }

// Inputf builds an InputError without a cause.
func Inputf(format string, args ...any) error {
	return &InputError{Msg: fmt.Sprintf(format, args...)}
}

// WrapInput builds an InputError around a cause.
func WrapInput(err error, format string, args ...any) error {
	return &InputError{Msg: fmt.Sprintf(format, args...), Err: err}
}

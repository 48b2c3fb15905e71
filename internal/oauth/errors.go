package oauth

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrCallbackTimeout is returned when the user does not complete the browser
	// step before the callback wait bound elapses.
	ErrCallbackTimeout = errors.New("timed out waiting for the OAuth callback")

	// ErrAuthorizationDenied is returned when the redirect carried no usable
	// authorization code, either because the user denied access or because the
	// provider reported an error.
	ErrAuthorizationDenied = errors.New("authorization denied or missing code")

	// ErrTokenFetchFailed is returned when the token endpoint did not yield a
	// usable access token.
	ErrTokenFetchFailed = errors.New("failed to fetch access token")
)

// RedirectURIError reports a redirect URI the callback listener cannot serve.
type RedirectURIError struct {
	URI    string
	Reason string
}

// Error implements the error interface.
func (e *RedirectURIError) Error() string {
	return fmt.Sprintf("invalid redirect URI %q: %s", e.URI, e.Reason)
}

// ListenerBindError is returned when the loopback callback port cannot be bound.
type ListenerBindError struct {
	Addr string
	Err  error
}

// Error implements the error interface.
func (e *ListenerBindError) Error() string {
	return fmt.Sprintf("failed to bind callback listener on %s: %v", e.Addr, e.Err)
}

// Unwrap returns the underlying network error.
func (e *ListenerBindError) Unwrap() error {
	return e.Err
}

// CallbackErrorKind enumerates why a callback did not yield an authorization code.
type CallbackErrorKind int

const (
	// NoCodeInCallback means the redirect had no code parameter, typically
	// because the provider reported an error such as access_denied.
	NoCodeInCallback CallbackErrorKind = iota + 1

	// StateMismatch means the redirect carried a state value other than the
	// one sent with the authorization request.
	StateMismatch
)

// String returns the string representation of the kind.
func (k CallbackErrorKind) String() string {
	switch k {
	case NoCodeInCallback:
		return "no_code_in_callback"
	case StateMismatch:
		return "state_mismatch"
	default:
		return "unknown"
	}
}

// CallbackError describes a redirect that did not carry a usable code.
type CallbackError struct {
	Kind CallbackErrorKind

	// ProviderError is the provider's error parameter, if any.
	ProviderError string

	// Description is the provider's error_description parameter, if any.
	Description string
}

// Error implements the error interface.
func (e *CallbackError) Error() string {
	msg := "callback rejected: " + e.Kind.String()
	if e.ProviderError != "" {
		msg += " (" + e.ProviderError
		if e.Description != "" {
			msg += ": " + e.Description
		}
		msg += ")"
	}
	return msg
}

// timeoutError keeps the configured bound in the message while matching
// ErrCallbackTimeout with errors.Is.
type timeoutError struct {
	after time.Duration
}

func (e *timeoutError) Error() string {
	return fmt.Sprintf("%s after %s", ErrCallbackTimeout.Error(), e.after)
}

func (e *timeoutError) Unwrap() error {
	return ErrCallbackTimeout
}

// IsAuthenticationError reports whether err originated in the authentication
// phase, as opposed to a later API call made with an established session.
func IsAuthenticationError(err error) bool {
	if err == nil {
		return false
	}

	var bindErr *ListenerBindError
	var uriErr *RedirectURIError
	var cbErr *CallbackError

	return errors.As(err, &bindErr) ||
		errors.As(err, &uriErr) ||
		errors.As(err, &cbErr) ||
		errors.Is(err, ErrCallbackTimeout) ||
		errors.Is(err, ErrAuthorizationDenied) ||
		errors.Is(err, ErrTokenFetchFailed)
}

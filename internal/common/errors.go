// Package common defines shared constants and sentinel errors used across
// client and server layers of cartsync. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrAccessDenied means the caller is authenticated but lacks access to
	// the addressed list. Fatal to the request, never retried.
	ErrAccessDenied = errors.New("access denied")

	// ErrUnavailable means the server could not be reached or answered with a
	// transient failure. The pending queue stays intact and the next cycle retries.
	ErrUnavailable = errors.New("server unavailable")

	// ErrMalformedResponse means the server answered with an unexpected shape.
	// Treated identically to ErrUnavailable by the sync client.
	ErrMalformedResponse = errors.New("malformed response")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

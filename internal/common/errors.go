// Package common defines shared constants and sentinel errors used across
// the aipulse client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Auth errors, surfaced on the auth screen.
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session errors.
	ErrNoSession = errors.New("no active session")

	// Persisted JSON that fails to parse. Logged and treated as absent,
	// never shown to the user.
	ErrMalformedState = errors.New("malformed persisted state")

	// Provider errors (generic/internal flow control).
	ErrProviderUnavailable = errors.New("content provider unavailable")
	ErrProviderResponse    = errors.New("unexpected provider response")
)

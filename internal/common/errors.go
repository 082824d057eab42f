// Package common defines shared constants and sentinel errors used across
// client and server layers of SkillGraph. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound = errors.New("not found")

	// ErrStoreFault marks a transient store failure (network error, non-2xx
	// response, timeout). The sync engine recovers it by falling back to the
	// alternate store; it is never surfaced to callers.
	ErrStoreFault = errors.New("store fault")

	// ErrPersistenceUnavailable is surfaced when both the remote and the
	// local store faulted for a single operation.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	// Terminal account errors, surfaced verbatim for user-facing display.
	ErrDuplicateIdentity = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid credentials")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)

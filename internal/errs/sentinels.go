// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across upstream/service/presentation layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication (bad credentials).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates temporary login lock due to repeated failures.
	ErrRateLimited = errors.New("rate limited")

	// ErrValidation indicates a blank or malformed form field; nothing was sent.
	ErrValidation = errors.New("validation")

	// ErrUpstream indicates the demo catalog API failed or returned garbage.
	ErrUpstream = errors.New("upstream")

	// ErrSealed indicates persisted values cannot be opened with the configured passphrase.
	ErrSealed = errors.New("sealed")
)

package weather

import "errors"

// The gateway translates every provider failure into this taxonomy; callers
// never see provider-specific error shapes.
var (
	// ErrNotConfigured means no upstream credential is available.
	ErrNotConfigured = errors.New("weather service not configured")

	// ErrUnauthorized means the upstream rejected our credential.
	ErrUnauthorized = errors.New("invalid API key")

	// ErrNotFound means the requested location could not be resolved.
	ErrNotFound = errors.New("location not found")

	// ErrUnavailable covers every other upstream failure: non-success
	// responses, transport errors, timeouts, and an open circuit breaker.
	ErrUnavailable = errors.New("weather service unavailable")
)

package config

import "errors"

// Configuration validation errors.
//
// Design decision: Package-level sentinel errors rather than fmt.Errorf in
// Validate(), so callers can branch with errors.Is() while the messages
// stay human-readable. None of these need dynamic values.
var (
	// ErrNoTarget is returned when neither a URL argument nor a target
	// list file provides something to validate.
	ErrNoTarget = errors.New("no target specified: provide a URL or a target list file")

	// ErrInvalidTimeout is returned when any timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the link-check concurrency
	// is not positive. Zero would stall every link probe.
	ErrInvalidConcurrency = errors.New("invalid link concurrency: must be positive")

	// ErrInvalidPoll is returned when the poll interval/timeout pair is
	// inconsistent: both must be positive and the interval must not
	// exceed the timeout.
	ErrInvalidPoll = errors.New("invalid poll settings: interval and timeout must be positive, interval <= timeout")

	// ErrInvalidViewport is returned when viewport dimensions are not
	// positive.
	ErrInvalidViewport = errors.New("invalid viewport: dimensions must be positive")

	// ErrConfigNotFound is returned when the site configuration file
	// does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)

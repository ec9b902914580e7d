package llm

import "errors"

// Sentinel errors for the failure modes callers branch on. Anything else
// from Generate is wrapped detail.
var (
	// ErrUnavailable: the completion endpoint could not be reached.
	ErrUnavailable = errors.New("llm endpoint unavailable")

	// ErrTimeout: the call exceeded the configured deadline.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput: the assistant text held no usable JSON.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted: every attempt failed; wraps the last cause.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)

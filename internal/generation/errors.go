package generation

import "errors"

// Common errors returned by the generation package.
//
// Only ErrInvalidInput, ErrServiceBusy, and ErrRequestTimeout are ever
// surfaced to callers as failures; every other provider failure mode is
// absorbed into a substitute fallback response so that the end user always
// receives something useful.
var (
	// ErrInvalidInput is returned when the submitted text is empty or
	// whitespace-only. It is rejected before any remote call is attempted
	// and is never retried.
	ErrInvalidInput = errors.New("input text cannot be empty")

	// ErrServiceBusy is returned when every attempt exhausted its hard
	// timeout. The caller may retry later, preferably with shorter content.
	ErrServiceBusy = errors.New("the AI service is currently busy, please try again with shorter content")

	// ErrRequestTimeout is returned when the provider itself reported a
	// timeout on the final attempt.
	ErrRequestTimeout = errors.New("request timed out, please try again with shorter content")

	// ErrProviderError is returned for unclassified provider failures.
	// In practice these are converted to fallback responses rather than
	// surfaced; the sentinel exists for wrapping and classification.
	ErrProviderError = errors.New("AI provider error")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

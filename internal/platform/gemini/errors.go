package gemini

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// errAttemptTimeout marks an attempt that exhausted its hard per-attempt
// timeout, as opposed to a timeout reported by the provider itself.
var errAttemptTimeout = errors.New("provider call exceeded attempt timeout")

// failureKind classifies a failed provider attempt. Each kind gets its own
// retry delay and final-attempt outcome.
type failureKind int

const (
	// failureHardTimeout: the attempt's own timeout fired before the
	// provider responded. Final attempt surfaces ErrServiceBusy.
	failureHardTimeout failureKind = iota

	// failureOverloaded: the provider reported overload or rate limiting.
	// Retries carry an extra penalty delay; the final attempt returns
	// fallback guidance instead of an error.
	failureOverloaded

	// failureMessageTimeout: the provider itself reported a timeout.
	// Final attempt surfaces ErrRequestTimeout.
	failureMessageTimeout

	// failureOther: anything else, including empty responses. The final
	// attempt returns fallback guidance.
	failureOther
)

// classifyFailure maps a failed attempt's error to its failureKind.
// Structured API errors are consulted first; the message-substring checks
// remain as a compatibility shim for transport errors and SDK versions that
// surface plain strings.
func classifyFailure(err error) failureKind {
	if errors.Is(err, errAttemptTimeout) {
		return failureHardTimeout
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusServiceUnavailable, http.StatusTooManyRequests:
			return failureOverloaded
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return failureMessageTimeout
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "503"),
		strings.Contains(msg, "overloaded"),
		strings.Contains(msg, "rate limit"):
		return failureOverloaded
	case strings.Contains(msg, "timeout"),
		strings.Contains(msg, "deadline exceeded"):
		return failureMessageTimeout
	default:
		return failureOther
	}
}

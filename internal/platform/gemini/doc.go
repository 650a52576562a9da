// Package gemini provides an implementation of the generation.Generator
// interface using Google's Gemini API.
//
// The provider is treated as a best-effort remote dependency: every call runs
// under a retry loop with exponential backoff, a hard per-attempt timeout,
// and an extra penalty delay when the provider reports overload. On final
// failure the package substitutes pre-authored study guidance instead of
// surfacing raw provider errors, except for the two exhausted-timeout cases
// that return generation.ErrServiceBusy and generation.ErrRequestTimeout.
package gemini

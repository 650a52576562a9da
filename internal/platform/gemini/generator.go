package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/AymanChabbaki/tutor-MVP/internal/config"
	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/AymanChabbaki/tutor-MVP/internal/generation"
)

// Fallback retry settings used when the configuration carries nonsense
// values, mirroring the historical defaults.
const (
	defaultMaxRetries        = 3
	defaultRetryDelaySeconds = 3
	defaultTimeoutSeconds    = 90
)

// GeminiGenerator implements the generation.Generator interface using
// Google's Gemini API to produce summaries, explanations, and exercises
// from course text.
type GeminiGenerator struct {
	logger    *slog.Logger
	config    config.LLMConfig
	caller    contentCaller
	fallbacks *generation.FallbackCatalog

	// sleep is replaceable so tests can observe backoff delays without
	// waiting them out.
	sleep func(time.Duration)
}

// Ensure GeminiGenerator implements generation.Generator interface
var _ generation.Generator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a new instance of GeminiGenerator with the
// provided dependencies. The context is used for client initialization only;
// individual calls carry their own contexts.
func NewGeminiGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	caller, err := newGenaiCaller(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
	}

	return newGeneratorWithCaller(logger, cfg, caller), nil
}

// newGeneratorWithCaller wires a generator around an arbitrary caller.
// Production code goes through NewGeminiGenerator; tests inject fakes here.
func newGeneratorWithCaller(logger *slog.Logger, cfg config.LLMConfig, caller contentCaller) *GeminiGenerator {
	return &GeminiGenerator{
		logger:    logger,
		config:    cfg,
		caller:    caller,
		fallbacks: generation.NewFallbackCatalog(),
		sleep:     time.Sleep,
	}
}

// Summarize implements generation.Generator.Summarize
func (g *GeminiGenerator) Summarize(ctx context.Context, text string, lang domain.Language) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", generation.ErrInvalidInput
	}

	return g.generate(ctx, buildSummaryPrompt(text, lang))
}

// Explain implements generation.Generator.Explain
// For domain.LanguageBoth the English and Arabic explanations are requested
// as two concurrent calls, each under the full retry and fallback
// discipline, and joined. A hard failure in either sub-call fails the whole
// operation without aborting the other.
func (g *GeminiGenerator) Explain(ctx context.Context, text string, lang domain.Language) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", generation.ErrInvalidInput
	}

	if lang != domain.LanguageBoth {
		return g.generate(ctx, buildExplainPrompt(text, lang))
	}

	type explainResult struct {
		text string
		err  error
	}

	englishCh := make(chan explainResult, 1)
	arabicCh := make(chan explainResult, 1)

	go func() {
		out, err := g.generate(ctx, buildExplainPrompt(text, domain.LanguageEnglish))
		englishCh <- explainResult{text: out, err: err}
	}()
	go func() {
		out, err := g.generate(ctx, buildExplainPrompt(text, domain.LanguageArabic))
		arabicCh <- explainResult{text: out, err: err}
	}()

	english := <-englishCh
	arabic := <-arabicCh

	if english.err != nil {
		return "", english.err
	}
	if arabic.err != nil {
		return "", arabic.err
	}

	return english.text + "\n\n---\n\n" + arabic.text, nil
}

// GenerateExercises implements generation.Generator.GenerateExercises
// The model's free-text output runs through the extractor, which guarantees
// a non-empty structured result for any non-empty text.
func (g *GeminiGenerator) GenerateExercises(
	ctx context.Context,
	text string,
	lang domain.Language,
) ([]generation.Exercise, error) {
	if strings.TrimSpace(text) == "" {
		return nil, generation.ErrInvalidInput
	}

	raw, err := g.generate(ctx, buildExercisesPrompt(text, lang))
	if err != nil {
		return nil, err
	}

	return generation.ParseExercises(raw), nil
}

// generate runs one prompt through the retry loop.
//
// Per attempt i in 0..maxRetries-1: a success with non-empty text returns
// immediately. A hard attempt timeout sleeps base*2^i, or surfaces
// ErrServiceBusy on the final attempt. A provider overload sleeps
// base*2^i plus the overload penalty, or returns fallback guidance on the
// final attempt. A provider-reported timeout sleeps base*2^i, or surfaces
// ErrRequestTimeout on the final attempt. Anything else sleeps base*2^i, or
// returns fallback guidance on the final attempt.
func (g *GeminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	maxRetries := g.config.MaxRetries
	if maxRetries <= 0 {
		g.logger.WarnContext(ctx, "invalid max retries, using default",
			"configured", maxRetries, "default", defaultMaxRetries)
		maxRetries = defaultMaxRetries
	}

	baseDelaySeconds := g.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "invalid retry delay, using default",
			"configured", baseDelaySeconds, "default", defaultRetryDelaySeconds)
		baseDelaySeconds = defaultRetryDelaySeconds
	}
	baseDelay := time.Duration(baseDelaySeconds) * time.Second

	timeoutSeconds := g.config.RequestTimeoutSeconds
	if timeoutSeconds < 1 {
		timeoutSeconds = defaultTimeoutSeconds
	}
	attemptTimeout := time.Duration(timeoutSeconds) * time.Second

	overloadPenalty := time.Duration(g.config.OverloadPenaltySeconds) * time.Second

	for attempt := 0; attempt < maxRetries; attempt++ {
		g.logger.InfoContext(ctx, "calling generative model",
			"attempt", attempt+1,
			"max_attempts", maxRetries,
			"prompt_length", len(prompt))

		text, err := g.callWithTimeout(ctx, prompt, attemptTimeout)
		if err == nil {
			g.logger.InfoContext(ctx, "model call succeeded",
				"attempt", attempt+1,
				"response_length", len(text))
			return text, nil
		}

		lastAttempt := attempt == maxRetries-1
		backoff := baseDelay * time.Duration(1<<attempt)
		kind := classifyFailure(err)

		g.logger.ErrorContext(ctx, "model call failed",
			"attempt", attempt+1,
			"last_attempt", lastAttempt,
			"error", err)

		switch kind {
		case failureHardTimeout:
			if lastAttempt {
				return "", fmt.Errorf("%w: %v", generation.ErrServiceBusy, err)
			}
			g.sleep(backoff)

		case failureOverloaded:
			if lastAttempt {
				g.logger.WarnContext(ctx, "provider overloaded on final attempt, using fallback response")
				return g.fallbacks.Lookup(prompt), nil
			}
			g.sleep(backoff + overloadPenalty)

		case failureMessageTimeout:
			if lastAttempt {
				return "", fmt.Errorf("%w: %v", generation.ErrRequestTimeout, err)
			}
			g.sleep(backoff)

		default:
			if lastAttempt {
				g.logger.WarnContext(ctx, "provider failed on final attempt, using fallback response")
				return g.fallbacks.Lookup(prompt), nil
			}
			g.sleep(backoff)
		}
	}

	// Unreachable: every final attempt returns above.
	return g.fallbacks.Lookup(prompt), nil
}

// callWithTimeout runs one provider call off the caller's synchronous path,
// bounded by the hard per-attempt timeout. If the timeout fires, the local
// wait is abandoned; the call's own context is cancelled so the provider
// request can unwind on its own.
func (g *GeminiGenerator) callWithTimeout(
	ctx context.Context,
	prompt string,
	timeout time.Duration,
) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type callResult struct {
		text string
		err  error
	}
	resultCh := make(chan callResult, 1)

	go func() {
		text, err := g.caller.generateText(callCtx, prompt)
		resultCh <- callResult{text: text, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			return "", res.err
		}
		if strings.TrimSpace(res.text) == "" {
			return "", errEmptyResponse
		}
		return strings.TrimSpace(res.text), nil
	case <-callCtx.Done():
		return "", fmt.Errorf("%w: %v", errAttemptTimeout, callCtx.Err())
	}
}

package generation

import (
	"context"

	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
)

// Difficulty describes the challenge tier of a practice exercise.
type Difficulty string

// Difficulty tiers, derived solely from an exercise's position in the
// generated set: the first two are Basic, the third Medium, and the rest
// Advanced.
const (
	DifficultyBasic    Difficulty = "Basic"
	DifficultyMedium   Difficulty = "Medium"
	DifficultyAdvanced Difficulty = "Advanced"
)

// DifficultyForPosition returns the difficulty tier for a 1-based exercise
// position.
func DifficultyForPosition(position int) Difficulty {
	switch {
	case position <= 2:
		return DifficultyBasic
	case position == 3:
		return DifficultyMedium
	default:
		return DifficultyAdvanced
	}
}

// Exercise is one structured question/answer unit extracted from free-text
// model output.
type Exercise struct {
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Type       string     `json:"type"`
	Difficulty Difficulty `json:"difficulty"`
}

// Generator defines the interface for producing study aids from course text.
// This interface serves as a boundary between the application core and the
// external AI service, following the hexagonal architecture pattern.
//
// All three operations reject empty or whitespace-only input with
// ErrInvalidInput before making any remote call. Provider outages are
// absorbed into pre-authored fallback guidance wherever possible; only
// ErrServiceBusy and ErrRequestTimeout escape as hard failures.
type Generator interface {
	// Summarize produces a structured summary of the given course text in
	// the requested language.
	Summarize(ctx context.Context, text string, lang domain.Language) (string, error)

	// Explain produces a detailed explanation of the given course text.
	// For domain.LanguageBoth the English and Arabic explanations are
	// requested independently and joined.
	Explain(ctx context.Context, text string, lang domain.Language) (string, error)

	// GenerateExercises produces 1 to 5 practice exercises from the given
	// course text. The returned slice is never empty on success.
	GenerateExercises(ctx context.Context, text string, lang domain.Language) ([]Exercise, error)
}

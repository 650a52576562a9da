package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/AymanChabbaki/tutor-MVP/internal/generation"
	"github.com/AymanChabbaki/tutor-MVP/internal/platform/logger"
	"github.com/AymanChabbaki/tutor-MVP/internal/store"
)

// SummaryOutput is the persisted payload of a summary session.
type SummaryOutput struct {
	Summary  string          `json:"summary"`
	Language domain.Language `json:"language"`
}

// ExplanationOutput is the persisted payload of an explanation session.
type ExplanationOutput struct {
	Explanation string          `json:"explanation"`
	Language    domain.Language `json:"language"`
}

// ExercisesOutput is the persisted payload of an exercises session.
type ExercisesOutput struct {
	Exercises []generation.Exercise `json:"exercises"`
	Language  domain.Language       `json:"language"`
}

// StudyService turns submitted course text into study aids and records each
// interaction as a session. Generation failures that the generator absorbs
// into fallback guidance still produce a session; only the generator's hard
// errors (invalid input, exhausted timeouts) propagate without persisting.
type StudyService interface {
	// CreateSummarySession generates a summary and records the session.
	CreateSummarySession(ctx context.Context, userID uuid.UUID, text string, lang domain.Language) (*domain.Session, error)

	// CreateExplanationSession generates an explanation and records the session.
	CreateExplanationSession(ctx context.Context, userID uuid.UUID, text string, lang domain.Language) (*domain.Session, error)

	// CreateExercisesSession generates practice exercises and records the session.
	CreateExercisesSession(ctx context.Context, userID uuid.UUID, text string, lang domain.Language) (*domain.Session, error)
}

// StudyServiceImpl implements the StudyService interface.
type StudyServiceImpl struct {
	generator    generation.Generator
	sessionStore store.SessionStore
	logger       *slog.Logger
}

// Ensure StudyServiceImpl implements StudyService interface
var _ StudyService = (*StudyServiceImpl)(nil)

// NewStudyService creates a new StudyService.
func NewStudyService(
	generator generation.Generator,
	sessionStore store.SessionStore,
	logger *slog.Logger,
) (*StudyServiceImpl, error) {
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if sessionStore == nil {
		return nil, errors.New("session store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StudyServiceImpl{
		generator:    generator,
		sessionStore: sessionStore,
		logger:       logger.With("component", "study_service"),
	}, nil
}

// CreateSummarySession implements StudyService.CreateSummarySession
func (s *StudyServiceImpl) CreateSummarySession(
	ctx context.Context,
	userID uuid.UUID,
	text string,
	lang domain.Language,
) (*domain.Session, error) {
	summary, err := s.generator.Summarize(ctx, text, lang)
	if err != nil {
		return nil, err
	}

	return s.persistSession(ctx, userID, domain.SessionTypeSummary, text, SummaryOutput{
		Summary:  summary,
		Language: lang,
	})
}

// CreateExplanationSession implements StudyService.CreateExplanationSession
func (s *StudyServiceImpl) CreateExplanationSession(
	ctx context.Context,
	userID uuid.UUID,
	text string,
	lang domain.Language,
) (*domain.Session, error) {
	explanation, err := s.generator.Explain(ctx, text, lang)
	if err != nil {
		return nil, err
	}

	return s.persistSession(ctx, userID, domain.SessionTypeExplanation, text, ExplanationOutput{
		Explanation: explanation,
		Language:    lang,
	})
}

// CreateExercisesSession implements StudyService.CreateExercisesSession
func (s *StudyServiceImpl) CreateExercisesSession(
	ctx context.Context,
	userID uuid.UUID,
	text string,
	lang domain.Language,
) (*domain.Session, error) {
	exercises, err := s.generator.GenerateExercises(ctx, text, lang)
	if err != nil {
		return nil, err
	}

	return s.persistSession(ctx, userID, domain.SessionTypeExercises, text, ExercisesOutput{
		Exercises: exercises,
		Language:  lang,
	})
}

func (s *StudyServiceImpl) persistSession(
	ctx context.Context,
	userID uuid.UUID,
	sessionType domain.SessionType,
	text string,
	output any,
) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	payload, err := json.Marshal(output)
	if err != nil {
		return nil, NewServiceError("create_session", "failed to encode output", err)
	}

	session, err := domain.NewSession(userID, sessionType, text, payload)
	if err != nil {
		return nil, NewServiceError("create_session", "invalid session data", err)
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		log.Error("failed to persist session",
			"session_type", sessionType,
			"user_id", userID,
			"error", err)
		return nil, NewServiceError("create_session", fmt.Sprintf("failed to save %s session", sessionType), err)
	}

	log.Info("study session recorded",
		"session_id", session.ID,
		"session_type", sessionType,
		"user_id", userID,
		"input_length", len(text))

	return session, nil
}

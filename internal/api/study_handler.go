// Package api provides HTTP handlers for the API.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/AymanChabbaki/tutor-MVP/internal/api/shared"
	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/AymanChabbaki/tutor-MVP/internal/platform/logger"
	"github.com/AymanChabbaki/tutor-MVP/internal/service"
)

// StudyHandler handles content generation HTTP requests: summaries,
// explanations, and practice exercises.
type StudyHandler struct {
	studyService service.StudyService
	userService  service.UserService
	logger       *slog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(
	studyService service.StudyService,
	userService service.UserService,
	logger *slog.Logger,
) *StudyHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}

	return &StudyHandler{
		studyService: studyService,
		userService:  userService,
		logger:       logger.With(slog.String("component", "study_handler")),
	}
}

// Summarize handles POST /summarize requests.
func (h *StudyHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "summarize", h.studyService.CreateSummarySession)
}

// Explain handles POST /explain requests.
func (h *StudyHandler) Explain(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "explain", h.studyService.CreateExplanationSession)
}

// GenerateExercises handles POST /generate-exercises requests.
func (h *StudyHandler) GenerateExercises(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "generate_exercises", h.studyService.CreateExercisesSession)
}

// generate is the shared body of the three generation endpoints. It decodes
// the request, resolves the output language, invokes the given session
// creator, and writes the recorded session.
func (h *StudyHandler) generate(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	create func(ctx context.Context, userID uuid.UUID, text string, lang domain.Language) (*domain.Session, error),
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	lang, ok := h.resolveLanguage(w, r, userID, req.Language)
	if !ok {
		return
	}

	log.Debug("generation request",
		slog.String("operation", operation),
		slog.String("user_id", userID.String()),
		slog.String("language", string(lang)),
		slog.Int("text_length", len(req.Text)))

	session, err := create(r.Context(), userID, req.Text, lang)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to generate content"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("generation completed",
		slog.String("operation", operation),
		slog.String("user_id", userID.String()),
		slog.String("session_id", session.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(session))
}

// resolveLanguage turns the optional request language into a concrete one,
// falling back to the user's stored preference when the request omits it.
// Returns false when an error response was written.
func (h *StudyHandler) resolveLanguage(
	w http.ResponseWriter,
	r *http.Request,
	userID uuid.UUID,
	requested string,
) (domain.Language, bool) {
	if requested != "" {
		lang, err := domain.ParseLanguage(requested)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid language")
			return "", false
		}
		return lang, true
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return "", false
	}

	return user.LanguagePref, true
}

package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/AymanChabbaki/tutor-MVP/internal/api/shared"
	"github.com/AymanChabbaki/tutor-MVP/internal/platform/logger"
	"github.com/AymanChabbaki/tutor-MVP/internal/service"
)

// SessionHandler handles study-session history HTTP requests.
type SessionHandler struct {
	sessionService service.SessionService
	logger         *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger.With(slog.String("component", "session_handler")),
	}
}

// List handles GET /sessions requests. Supports limit, offset, and
// collection_id query parameters.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	limit, ok := parseOptionalInt(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := parseOptionalInt(w, r, "offset")
	if !ok {
		return
	}

	var collectionID *uuid.UUID
	if raw := r.URL.Query().Get("collection_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid collection_id format")
			return
		}
		collectionID = &id
	}

	page, err := h.sessionService.ListSessions(r.Context(), userID, collectionID, limit, offset)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), "Failed to list sessions", err,
		)
		return
	}

	sessions := make([]SessionResponse, 0, len(page.Sessions))
	for _, s := range page.Sessions {
		sessions = append(sessions, sessionToResponse(s))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionListResponse{
		Sessions: sessions,
		Total:    page.Total,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
}

// Get handles GET /sessions/{id} requests.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sessionID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	session, err := h.sessionService.GetSession(r.Context(), sessionID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// Delete handles DELETE /sessions/{id} requests.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sessionID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sessionService.DeleteSession(r.Context(), sessionID, userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("session deleted",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sessionID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// AssignCollection handles PUT /sessions/{id}/collection requests. A null
// collection_id in the body detaches the session from its collection.
func (h *SessionHandler) AssignCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	sessionID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req AssignCollectionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.sessionService.AssignCollection(r.Context(), sessionID, userID, req.CollectionID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	session, err := h.sessionService.GetSession(r.Context(), sessionID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// parseOptionalInt reads a non-negative integer query parameter, writing a
// 400 response when the value is malformed. A missing parameter yields zero.
func parseOptionalInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+name+" parameter")
		return 0, false
	}

	return value, true
}

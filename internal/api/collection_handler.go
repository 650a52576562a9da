package api

import (
	"log/slog"
	"net/http"

	"github.com/AymanChabbaki/tutor-MVP/internal/api/shared"
	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/AymanChabbaki/tutor-MVP/internal/platform/logger"
	"github.com/AymanChabbaki/tutor-MVP/internal/service"
)

// CollectionHandler handles collection HTTP requests.
type CollectionHandler struct {
	collectionService service.CollectionService
	logger            *slog.Logger
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(
	collectionService service.CollectionService,
	logger *slog.Logger,
) *CollectionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CollectionHandler")
	}

	return &CollectionHandler{
		collectionService: collectionService,
		logger:            logger.With(slog.String("component", "collection_handler")),
	}
}

// Create handles POST /collections requests.
func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CollectionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	collection, err := h.collectionService.CreateCollection(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create collection"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("collection created",
		slog.String("user_id", userID.String()),
		slog.String("collection_id", collection.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, collectionToResponse(collection, 0, nil))
}

// List handles GET /collections requests.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	overviews, err := h.collectionService.ListCollections(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r, MapErrorToStatusCode(err), "Failed to list collections", err,
		)
		return
	}

	collections := make([]CollectionResponse, 0, len(overviews))
	for _, o := range overviews {
		collections = append(collections, collectionToResponse(o.Collection, o.SessionCount, o.RecentSessions))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, collections)
}

// Get handles GET /collections/{id} requests.
func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	collectionID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.collectionService.GetCollection(r.Context(), collectionID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, collectionDetailToResponse(detail))
}

// Update handles PUT /collections/{id} requests.
func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	collectionID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req CollectionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if _, err := h.collectionService.UpdateCollection(
		r.Context(), collectionID, userID, req.Title, req.Description,
	); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	detail, err := h.collectionService.GetCollection(r.Context(), collectionID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, collectionDetailToResponse(detail))
}

// Delete handles DELETE /collections/{id} requests. Sessions in the
// collection are detached, not deleted.
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	collectionID, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.collectionService.DeleteCollection(r.Context(), collectionID, userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("collection deleted",
		slog.String("user_id", userID.String()),
		slog.String("collection_id", collectionID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// collectionToResponse converts a domain.Collection to a CollectionResponse.
func collectionToResponse(
	collection *domain.Collection,
	sessionCount int,
	recent []*domain.Session,
) CollectionResponse {
	previews := make([]SessionPreview, 0, len(recent))
	for _, session := range recent {
		previews = append(previews, SessionPreview{
			ID:          session.ID,
			SessionType: string(session.Type),
			CreatedAt:   session.CreatedAt,
		})
	}

	return CollectionResponse{
		ID:             collection.ID,
		Title:          collection.Title,
		Description:    collection.Description,
		SessionCount:   sessionCount,
		RecentSessions: previews,
		CreatedAt:      collection.CreatedAt,
		UpdatedAt:      collection.UpdatedAt,
	}
}

// collectionDetailToResponse converts a service.CollectionDetail to a
// CollectionDetailResponse with fully expanded sessions.
func collectionDetailToResponse(detail *service.CollectionDetail) CollectionDetailResponse {
	sessions := make([]SessionResponse, 0, len(detail.Sessions))
	for _, session := range detail.Sessions {
		sessions = append(sessions, sessionToResponse(session))
	}

	return CollectionDetailResponse{
		ID:           detail.Collection.ID,
		Title:        detail.Collection.Title,
		Description:  detail.Collection.Description,
		SessionCount: detail.SessionCount,
		Sessions:     sessions,
		CreatedAt:    detail.Collection.CreatedAt,
		UpdatedAt:    detail.Collection.UpdatedAt,
	}
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AymanChabbaki/tutor-MVP/internal/api/shared"
)

// getUserIDFromContext extracts the authenticated user's UUID from the
// request context. The value is placed there by the auth middleware.
func getUserIDFromContext(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// requireUserID extracts the authenticated user's UUID, writing a 401
// response when it is missing. Returns false when a response was written.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// getPathUUID extracts and parses a UUID path parameter, writing a 400
// response on failure. Returns false when a response was written.
func getPathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing "+paramName+" path parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+paramName+" format")
		return uuid.Nil, false
	}

	return id, true
}

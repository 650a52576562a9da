package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AymanChabbaki/tutor-MVP/internal/api/shared"
	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/AymanChabbaki/tutor-MVP/internal/platform/logger"
	"github.com/AymanChabbaki/tutor-MVP/internal/redact"
	"github.com/AymanChabbaki/tutor-MVP/internal/service"
	"github.com/AymanChabbaki/tutor-MVP/internal/service/auth"
	"github.com/AymanChabbaki/tutor-MVP/internal/store"
)

// AuthHandler handles authentication and account-related API requests.
type AuthHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService service.UserService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /auth/register requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	lang, err := domain.ParseLanguage(req.Language)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid language")
		return
	}

	user, tokens, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password, lang)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create user"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("user registered", slog.String("user_id", user.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		User:         userToResponse(user),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	user, tokens, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error("failed to authenticate user", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to authenticate user", err,
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:         userToResponse(user),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// RefreshToken handles POST /auth/refresh requests. It validates the
// presented refresh token and issues a new token pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	tokens, err := h.userService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to refresh token"
		} else if statusCode == http.StatusNotFound {
			// A refresh token for a deleted account reads as invalid, not missing.
			statusCode = http.StatusUnauthorized
			safeMessage = "Invalid token"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Me handles GET /auth/me requests for the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// ValidateToken handles GET /auth/validate requests. Reaching this handler
// means the access token passed the auth middleware; the account lookup
// additionally confirms it still exists.
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenValidationResponse{
		Valid:  true,
		UserID: user.ID,
		Email:  user.Email,
	})
}

// UpdateLanguage handles PUT /auth/language requests.
func (h *AuthHandler) UpdateLanguage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateLanguageRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	lang, err := domain.ParseLanguage(req.Language)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid language")
		return
	}

	if err := h.userService.UpdateLanguage(r.Context(), userID, lang); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("language preference updated",
		slog.String("user_id", userID.String()),
		slog.String("language", string(lang)))

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

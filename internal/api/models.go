package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Language string `json:"language" validate:"omitempty,oneof=english arabic both"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the public representation of a user account.
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	LanguagePref string    `json:"language_pref"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	User UserResponse `json:"user"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"access_token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UpdateLanguageRequest defines the payload for the language preference endpoint.
type UpdateLanguageRequest struct {
	Language string `json:"language" validate:"required,oneof=english arabic both"`
}

// GenerateRequest defines the payload for the summarize, explain, and
// generate-exercises endpoints. Language is optional; when omitted, the
// user's stored preference applies.
type GenerateRequest struct {
	Text     string `json:"text"     validate:"required"`
	Language string `json:"language" validate:"omitempty,oneof=english arabic both"`
}

// SessionResponse is the public representation of a study session.
type SessionResponse struct {
	ID           uuid.UUID   `json:"id"`
	CollectionID *uuid.UUID  `json:"collection_id,omitempty"`
	SessionType  string      `json:"session_type"`
	InputText    string      `json:"input_text"`
	Output       interface{} `json:"output"`
	CreatedAt    time.Time   `json:"created_at"`
}

// SessionListResponse is a page of the user's session history.
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// AssignCollectionRequest defines the payload for moving a session into a
// collection. A null collection_id detaches the session.
type AssignCollectionRequest struct {
	CollectionID *uuid.UUID `json:"collection_id"`
}

// CollectionRequest defines the payload for creating or updating a collection.
type CollectionRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// SessionPreview is the abbreviated session representation carried by the
// collection list endpoint.
type SessionPreview struct {
	ID          uuid.UUID `json:"id"`
	SessionType string    `json:"session_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// CollectionResponse is the public representation of a collection, with a
// preview of its most recent sessions.
type CollectionResponse struct {
	ID             uuid.UUID        `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description,omitempty"`
	SessionCount   int              `json:"session_count"`
	RecentSessions []SessionPreview `json:"recent_sessions"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// CollectionDetailResponse is a collection together with its sessions,
// newest first.
type CollectionDetailResponse struct {
	ID           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	SessionCount int               `json:"session_count"`
	Sessions     []SessionResponse `json:"sessions"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// TokenValidationResponse confirms an access token maps to a live account.
type TokenValidationResponse struct {
	Valid  bool      `json:"valid"`
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// userToResponse converts a domain.User to a UserResponse.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		LanguagePref: string(user.LanguagePref),
		CreatedAt:    user.CreatedAt,
	}
}

// sessionToResponse converts a domain.Session to a SessionResponse,
// expanding the stored output payload into a JSON object.
func sessionToResponse(session *domain.Session) SessionResponse {
	var output interface{}
	if err := json.Unmarshal(session.Output, &output); err != nil {
		output = string(session.Output)
	}

	return SessionResponse{
		ID:           session.ID,
		CollectionID: session.CollectionID,
		SessionType:  string(session.Type),
		InputText:    session.InputText,
		Output:       output,
		CreatedAt:    session.CreatedAt,
	}
}

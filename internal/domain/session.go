package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SessionType identifies which study aid a session produced.
type SessionType string

// Possible session type values.
const (
	SessionTypeSummary     SessionType = "summary"
	SessionTypeExplanation SessionType = "explanation"
	SessionTypeExercises   SessionType = "exercises"
)

// Common validation errors for Session.
var (
	ErrEmptySessionID     = errors.New("session ID cannot be empty")
	ErrEmptySessionUserID = errors.New("session user ID cannot be empty")
	ErrEmptySessionInput  = errors.New("session input text cannot be empty")
	ErrEmptySessionOutput = errors.New("session output cannot be empty")
	ErrInvalidSessionType = errors.New("invalid session type")
)

// Session records one generation interaction: the text a student submitted,
// which operation was requested, and the generated output. A session may
// optionally belong to a collection.
type Session struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	CollectionID *uuid.UUID      `json:"collection_id,omitempty"`
	Type         SessionType     `json:"session_type"`
	InputText    string          `json:"input_text"`
	Output       json.RawMessage `json:"output"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewSession creates a new Session for the given user with the given type,
// input text, and serialized output payload. It generates a new UUID for the
// session ID and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewSession(
	userID uuid.UUID,
	sessionType SessionType,
	inputText string,
	output json.RawMessage,
) (*Session, error) {
	session := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      sessionType,
		InputText: inputText,
		Output:    output,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the Session has valid data.
// Returns an error if any field fails validation.
func (s *Session) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySessionID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptySessionUserID
	}

	if s.InputText == "" {
		return ErrEmptySessionInput
	}

	if len(s.Output) == 0 {
		return ErrEmptySessionOutput
	}

	if !isValidSessionType(s.Type) {
		return ErrInvalidSessionType
	}

	return nil
}

// isValidSessionType checks if the given type is a valid SessionType.
func isValidSessionType(t SessionType) bool {
	switch t {
	case SessionTypeSummary, SessionTypeExplanation, SessionTypeExercises:
		return true
	default:
		return false
	}
}

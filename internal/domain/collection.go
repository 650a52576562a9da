package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Collection.
var (
	ErrEmptyCollectionID     = errors.New("collection ID cannot be empty")
	ErrEmptyCollectionUserID = errors.New("collection user ID cannot be empty")
	ErrEmptyCollectionTitle  = errors.New("collection title cannot be empty")
)

// Collection groups related study sessions under a user-chosen title,
// for example all sessions belonging to one course.
type Collection struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCollection creates a new Collection for the given user.
// Title and description are trimmed; the title must be non-empty after
// trimming. Returns an error if validation fails.
func NewCollection(userID uuid.UUID, title, description string) (*Collection, error) {
	collection := &Collection{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := collection.Validate(); err != nil {
		return nil, err
	}

	return collection, nil
}

// Validate checks if the Collection has valid data.
// Returns an error if any field fails validation.
func (c *Collection) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCollectionID
	}

	if c.UserID == uuid.Nil {
		return ErrEmptyCollectionUserID
	}

	if strings.TrimSpace(c.Title) == "" {
		return ErrEmptyCollectionTitle
	}

	return nil
}

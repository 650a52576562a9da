package store

import (
	"context"
	"database/sql"

	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/google/uuid"
)

// SessionStore defines the interface for study-session persistence.
// All read and mutation operations are scoped to the owning user, so a
// session belonging to another user behaves exactly like a missing one.
type SessionStore interface {
	// Create saves a new session to the store.
	// It handles domain validation internally.
	// Returns ErrInvalidEntity if the user or collection does not exist.
	Create(ctx context.Context, session *domain.Session) error

	// GetByID retrieves a session by its unique ID, scoped to the owner.
	// Returns ErrSessionNotFound if the session does not exist or belongs
	// to a different user.
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Session, error)

	// ListByUser retrieves a page of the user's sessions ordered by
	// creation time descending, optionally filtered by collection.
	// It returns the page plus the total count matching the filter.
	ListByUser(
		ctx context.Context,
		userID uuid.UUID,
		collectionID *uuid.UUID,
		limit, offset int,
	) ([]*domain.Session, int, error)

	// SetCollection assigns the session to a collection, or detaches it
	// when collectionID is nil.
	// Returns ErrSessionNotFound if the session does not exist or belongs
	// to a different user.
	SetCollection(ctx context.Context, id, userID uuid.UUID, collectionID *uuid.UUID) error

	// Delete removes a session, scoped to the owner.
	// Returns ErrSessionNotFound if the session does not exist or belongs
	// to a different user.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// WithTx returns a new SessionStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) SessionStore
}

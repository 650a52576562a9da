package store

import (
	"context"
	"database/sql"

	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/google/uuid"
)

// CollectionSummary pairs a collection with the number of sessions it holds.
// Produced by list queries so the API can render counts without a second
// round trip.
type CollectionSummary struct {
	Collection   *domain.Collection
	SessionCount int
}

// CollectionStore defines the interface for collection persistence.
// All read and mutation operations are scoped to the owning user.
type CollectionStore interface {
	// Create saves a new collection to the store.
	// It handles domain validation internally.
	Create(ctx context.Context, collection *domain.Collection) error

	// GetByID retrieves a collection by its unique ID, scoped to the owner.
	// Returns ErrCollectionNotFound if the collection does not exist or
	// belongs to a different user.
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Collection, error)

	// ListByUser retrieves all of the user's collections with their session
	// counts, ordered by most recently updated.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*CollectionSummary, error)

	// Update modifies a collection's title and/or description.
	// Returns ErrCollectionNotFound if the collection does not exist or
	// belongs to a different user.
	Update(ctx context.Context, collection *domain.Collection) error

	// Delete removes a collection, scoped to the owner. Sessions belonging
	// to the collection are detached, not deleted.
	// Returns ErrCollectionNotFound if the collection does not exist or
	// belongs to a different user.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// WithTx returns a new CollectionStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) CollectionStore
}

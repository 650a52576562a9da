package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/AymanChabbaki/tutor-MVP/internal/platform/logger"
	"github.com/AymanChabbaki/tutor-MVP/internal/store"
)

// PostgresCollectionStore implements the store.CollectionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCollectionStore struct {
	db store.DBTX
}

// NewPostgresCollectionStore creates a new PostgreSQL implementation of the
// CollectionStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresCollectionStore(db store.DBTX) *PostgresCollectionStore {
	return &PostgresCollectionStore{
		db: db,
	}
}

// Ensure PostgresCollectionStore implements store.CollectionStore interface
var _ store.CollectionStore = (*PostgresCollectionStore)(nil)

// Create implements store.CollectionStore.Create
func (s *PostgresCollectionStore) Create(ctx context.Context, collection *domain.Collection) error {
	log := logger.FromContext(ctx)

	if err := collection.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO collections (id, user_id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		collection.ID,
		collection.UserID,
		collection.Title,
		collection.Description,
		collection.CreatedAt,
		collection.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert collection",
			"collection_id", collection.ID,
			"user_id", collection.UserID,
			"error", err)
		return MapError(fmt.Errorf("failed to insert collection: %w", err))
	}

	return nil
}

// GetByID implements store.CollectionStore.GetByID
// The lookup is scoped to the owning user.
func (s *PostgresCollectionStore) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Collection, error) {
	query := `
		SELECT id, user_id, title, description, created_at, updated_at
		FROM collections
		WHERE id = $1 AND user_id = $2
	`

	var collection domain.Collection
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&collection.ID,
		&collection.UserID,
		&collection.Title,
		&collection.Description,
		&collection.CreatedAt,
		&collection.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrCollectionNotFound
		}
		return nil, MapError(fmt.Errorf("failed to scan collection row: %w", err))
	}

	return &collection, nil
}

// ListByUser implements store.CollectionStore.ListByUser
// Session counts come from a LEFT JOIN so empty collections still appear.
func (s *PostgresCollectionStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*store.CollectionSummary, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT c.id, c.user_id, c.title, c.description, c.created_at, c.updated_at,
		       COUNT(s.id) AS session_count
		FROM collections c
		LEFT JOIN sessions s ON s.collection_id = c.id
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query collections",
			"user_id", userID,
			"error", err)
		return nil, MapError(fmt.Errorf("failed to query collections: %w", err))
	}
	defer func() { _ = rows.Close() }()

	var summaries []*store.CollectionSummary
	for rows.Next() {
		var (
			collection domain.Collection
			count      int
		)
		err := rows.Scan(
			&collection.ID,
			&collection.UserID,
			&collection.Title,
			&collection.Description,
			&collection.CreatedAt,
			&collection.UpdatedAt,
			&count,
		)
		if err != nil {
			return nil, MapError(fmt.Errorf("failed to scan collection row: %w", err))
		}
		summaries = append(summaries, &store.CollectionSummary{
			Collection:   &collection,
			SessionCount: count,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(fmt.Errorf("error iterating collection rows: %w", err))
	}

	return summaries, nil
}

// Update implements store.CollectionStore.Update
func (s *PostgresCollectionStore) Update(ctx context.Context, collection *domain.Collection) error {
	if err := collection.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE collections
		SET title = $1, description = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`

	result, err := s.db.ExecContext(ctx, query,
		collection.Title,
		collection.Description,
		time.Now().UTC(),
		collection.ID,
		collection.UserID,
	)
	if err != nil {
		return MapError(fmt.Errorf("failed to update collection: %w", err))
	}

	return CheckRowsAffected(result, store.ErrCollectionNotFound)
}

// Delete implements store.CollectionStore.Delete
// Sessions in the collection are detached rather than deleted; the schema's
// ON DELETE SET NULL on sessions.collection_id handles the detachment.
func (s *PostgresCollectionStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM collections WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return MapError(fmt.Errorf("failed to delete collection: %w", err))
	}

	return CheckRowsAffected(result, store.ErrCollectionNotFound)
}

// WithTx implements store.CollectionStore.WithTx
func (s *PostgresCollectionStore) WithTx(tx *sql.Tx) store.CollectionStore {
	return &PostgresCollectionStore{
		db: tx,
	}
}

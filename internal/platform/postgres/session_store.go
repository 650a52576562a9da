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

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db store.DBTX
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the
// SessionStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewPostgresSessionStore(db store.DBTX) *PostgresSessionStore {
	return &PostgresSessionStore{
		db: db,
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// Create implements store.SessionStore.Create
// The output payload is stored as JSONB.
func (s *PostgresSessionStore) Create(ctx context.Context, session *domain.Session) error {
	log := logger.FromContext(ctx)

	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO sessions (id, user_id, collection_id, session_type, input_text, output, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.CollectionID,
		session.Type,
		session.InputText,
		[]byte(session.Output),
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert session",
			"session_id", session.ID,
			"user_id", session.UserID,
			"error", err)
		return MapError(fmt.Errorf("failed to insert session: %w", err))
	}

	return nil
}

// GetByID implements store.SessionStore.GetByID
// The lookup is scoped to the owning user, so a session belonging to a
// different user is reported as missing.
func (s *PostgresSessionStore) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Session, error) {
	query := `
		SELECT id, user_id, collection_id, session_type, input_text, output, created_at, updated_at
		FROM sessions
		WHERE id = $1 AND user_id = $2
	`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, err
	}

	return session, nil
}

// ListByUser implements store.SessionStore.ListByUser
// Results are ordered newest first. The total count reflects the filter,
// not the page, so callers can paginate.
func (s *PostgresSessionStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	collectionID *uuid.UUID,
	limit, offset int,
) ([]*domain.Session, int, error) {
	log := logger.FromContext(ctx)

	var (
		countQuery string
		listQuery  string
		countArgs  []any
		listArgs   []any
	)

	if collectionID != nil {
		countQuery = `SELECT COUNT(*) FROM sessions WHERE user_id = $1 AND collection_id = $2`
		countArgs = []any{userID, *collectionID}
		listQuery = `
			SELECT id, user_id, collection_id, session_type, input_text, output, created_at, updated_at
			FROM sessions
			WHERE user_id = $1 AND collection_id = $2
			ORDER BY created_at DESC
			LIMIT $3 OFFSET $4
		`
		listArgs = []any{userID, *collectionID, limit, offset}
	} else {
		countQuery = `SELECT COUNT(*) FROM sessions WHERE user_id = $1`
		countArgs = []any{userID}
		listQuery = `
			SELECT id, user_id, collection_id, session_type, input_text, output, created_at, updated_at
			FROM sessions
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`
		listArgs = []any{userID, limit, offset}
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, MapError(fmt.Errorf("failed to count sessions: %w", err))
	}

	rows, err := s.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		log.Error("failed to query sessions",
			"user_id", userID,
			"error", err)
		return nil, 0, MapError(fmt.Errorf("failed to query sessions: %w", err))
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.Session
	for rows.Next() {
		session, err := scanSessionRows(rows)
		if err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, MapError(fmt.Errorf("error iterating session rows: %w", err))
	}

	return sessions, total, nil
}

// SetCollection implements store.SessionStore.SetCollection
// A nil collectionID detaches the session from its collection.
func (s *PostgresSessionStore) SetCollection(
	ctx context.Context,
	id, userID uuid.UUID,
	collectionID *uuid.UUID,
) error {
	query := `
		UPDATE sessions
		SET collection_id = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`

	result, err := s.db.ExecContext(ctx, query, collectionID, time.Now().UTC(), id, userID)
	if err != nil {
		return MapError(fmt.Errorf("failed to assign session to collection: %w", err))
	}

	return CheckRowsAffected(result, store.ErrSessionNotFound)
}

// Delete implements store.SessionStore.Delete
func (s *PostgresSessionStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM sessions WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return MapError(fmt.Errorf("failed to delete session: %w", err))
	}

	return CheckRowsAffected(result, store.ErrSessionNotFound)
}

// WithTx implements store.SessionStore.WithTx
func (s *PostgresSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &PostgresSessionStore{
		db: tx,
	}
}

func scanSession(row *sql.Row) (*domain.Session, error) {
	var (
		session      domain.Session
		collectionID uuid.NullUUID
		output       []byte
	)

	err := row.Scan(
		&session.ID,
		&session.UserID,
		&collectionID,
		&session.Type,
		&session.InputText,
		&output,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrSessionNotFound
		}
		return nil, MapError(fmt.Errorf("failed to scan session row: %w", err))
	}

	if collectionID.Valid {
		session.CollectionID = &collectionID.UUID
	}
	session.Output = output

	return &session, nil
}

func scanSessionRows(rows *sql.Rows) (*domain.Session, error) {
	var (
		session      domain.Session
		collectionID uuid.NullUUID
		output       []byte
	)

	err := rows.Scan(
		&session.ID,
		&session.UserID,
		&collectionID,
		&session.Type,
		&session.InputText,
		&output,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, MapError(fmt.Errorf("failed to scan session row: %w", err))
	}

	if collectionID.Valid {
		session.CollectionID = &collectionID.UUID
	}
	session.Output = output

	return &session, nil
}

package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/AymanChabbaki/tutor-MVP/internal/store"
)

// Pagination bounds for session listing.
const (
	defaultSessionPageSize = 20
	maxSessionPageSize     = 100
)

// SessionPage is one page of a user's session history.
type SessionPage struct {
	Sessions []*domain.Session
	Total    int
	Limit    int
	Offset   int
}

// SessionService provides access to a user's study-session history.
// Every operation is scoped to the requesting user; sessions owned by other
// users are reported as missing.
type SessionService interface {
	// ListSessions returns a page of the user's sessions, newest first,
	// optionally filtered by collection.
	ListSessions(ctx context.Context, userID uuid.UUID, collectionID *uuid.UUID, limit, offset int) (*SessionPage, error)

	// GetSession retrieves one of the user's sessions by ID.
	GetSession(ctx context.Context, id, userID uuid.UUID) (*domain.Session, error)

	// DeleteSession removes one of the user's sessions.
	DeleteSession(ctx context.Context, id, userID uuid.UUID) error

	// AssignCollection moves a session into a collection, or detaches it
	// when collectionID is nil. The collection must belong to the same user.
	AssignCollection(ctx context.Context, id, userID uuid.UUID, collectionID *uuid.UUID) error
}

// SessionServiceImpl implements the SessionService interface.
type SessionServiceImpl struct {
	sessionStore    store.SessionStore
	collectionStore store.CollectionStore
	logger          *slog.Logger
}

// Ensure SessionServiceImpl implements SessionService interface
var _ SessionService = (*SessionServiceImpl)(nil)

// NewSessionService creates a new SessionService.
func NewSessionService(
	sessionStore store.SessionStore,
	collectionStore store.CollectionStore,
	logger *slog.Logger,
) *SessionServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionServiceImpl{
		sessionStore:    sessionStore,
		collectionStore: collectionStore,
		logger:          logger.With("component", "session_service"),
	}
}

// ListSessions implements SessionService.ListSessions
// Out-of-range paging values are clamped rather than rejected.
func (s *SessionServiceImpl) ListSessions(
	ctx context.Context,
	userID uuid.UUID,
	collectionID *uuid.UUID,
	limit, offset int,
) (*SessionPage, error) {
	if limit <= 0 {
		limit = defaultSessionPageSize
	}
	if limit > maxSessionPageSize {
		limit = maxSessionPageSize
	}
	if offset < 0 {
		offset = 0
	}

	sessions, total, err := s.sessionStore.ListByUser(ctx, userID, collectionID, limit, offset)
	if err != nil {
		return nil, NewServiceError("list_sessions", "failed to list sessions", err)
	}

	return &SessionPage{
		Sessions: sessions,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// GetSession implements SessionService.GetSession
func (s *SessionServiceImpl) GetSession(ctx context.Context, id, userID uuid.UUID) (*domain.Session, error) {
	session, err := s.sessionStore.GetByID(ctx, id, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewServiceError("get_session", "failed to retrieve session", err)
	}
	return session, nil
}

// DeleteSession implements SessionService.DeleteSession
func (s *SessionServiceImpl) DeleteSession(ctx context.Context, id, userID uuid.UUID) error {
	err := s.sessionStore.Delete(ctx, id, userID)
	if err != nil && !store.IsNotFoundError(err) {
		return NewServiceError("delete_session", "failed to delete session", err)
	}
	return err
}

// AssignCollection implements SessionService.AssignCollection
// The target collection's ownership is checked first so assigning to a
// foreign collection reads as "collection not found".
func (s *SessionServiceImpl) AssignCollection(
	ctx context.Context,
	id, userID uuid.UUID,
	collectionID *uuid.UUID,
) error {
	if collectionID != nil {
		if _, err := s.collectionStore.GetByID(ctx, *collectionID, userID); err != nil {
			if store.IsNotFoundError(err) {
				return err
			}
			return NewServiceError("assign_collection", "failed to verify collection", err)
		}
	}

	err := s.sessionStore.SetCollection(ctx, id, userID, collectionID)
	if err != nil && !store.IsNotFoundError(err) {
		return NewServiceError("assign_collection", "failed to assign session", err)
	}
	return err
}

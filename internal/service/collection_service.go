package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/AymanChabbaki/tutor-MVP/internal/store"
)

// recentSessionPreviewSize is how many of a collection's newest sessions the
// list endpoint carries as a preview.
const recentSessionPreviewSize = 3

// CollectionDetail is a collection together with its sessions, newest first.
type CollectionDetail struct {
	Collection   *domain.Collection
	Sessions     []*domain.Session
	SessionCount int
}

// CollectionOverview is a collection with its session count and a preview of
// its most recent sessions.
type CollectionOverview struct {
	Collection     *domain.Collection
	SessionCount   int
	RecentSessions []*domain.Session
}

// CollectionService manages a user's collections of study sessions.
type CollectionService interface {
	// CreateCollection creates a new collection for the user.
	CreateCollection(ctx context.Context, userID uuid.UUID, title, description string) (*domain.Collection, error)

	// GetCollection retrieves one of the user's collections together with
	// its sessions, newest first.
	GetCollection(ctx context.Context, id, userID uuid.UUID) (*CollectionDetail, error)

	// ListCollections returns all of the user's collections with session
	// counts and a recent-sessions preview.
	ListCollections(ctx context.Context, userID uuid.UUID) ([]*CollectionOverview, error)

	// UpdateCollection changes a collection's title and/or description.
	UpdateCollection(ctx context.Context, id, userID uuid.UUID, title, description string) (*domain.Collection, error)

	// DeleteCollection removes a collection; its sessions are detached.
	DeleteCollection(ctx context.Context, id, userID uuid.UUID) error
}

// CollectionServiceImpl implements the CollectionService interface.
type CollectionServiceImpl struct {
	collectionStore store.CollectionStore
	sessionStore    store.SessionStore
	logger          *slog.Logger
}

// Ensure CollectionServiceImpl implements CollectionService interface
var _ CollectionService = (*CollectionServiceImpl)(nil)

// NewCollectionService creates a new CollectionService.
func NewCollectionService(
	collectionStore store.CollectionStore,
	sessionStore store.SessionStore,
	logger *slog.Logger,
) *CollectionServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &CollectionServiceImpl{
		collectionStore: collectionStore,
		sessionStore:    sessionStore,
		logger:          logger.With("component", "collection_service"),
	}
}

// CreateCollection implements CollectionService.CreateCollection
func (s *CollectionServiceImpl) CreateCollection(
	ctx context.Context,
	userID uuid.UUID,
	title, description string,
) (*domain.Collection, error) {
	collection, err := domain.NewCollection(userID, title, description)
	if err != nil {
		return nil, NewServiceError("create_collection", "invalid collection data", err)
	}

	if err := s.collectionStore.Create(ctx, collection); err != nil {
		return nil, NewServiceError("create_collection", "failed to save collection", err)
	}

	return collection, nil
}

// GetCollection implements CollectionService.GetCollection
// The returned detail carries up to one page of the collection's sessions,
// newest first, plus the full count.
func (s *CollectionServiceImpl) GetCollection(ctx context.Context, id, userID uuid.UUID) (*CollectionDetail, error) {
	collection, err := s.collectionStore.GetByID(ctx, id, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewServiceError("get_collection", "failed to retrieve collection", err)
	}

	sessions, total, err := s.sessionStore.ListByUser(ctx, userID, &id, maxSessionPageSize, 0)
	if err != nil {
		return nil, NewServiceError("get_collection", "failed to load collection sessions", err)
	}

	return &CollectionDetail{
		Collection:   collection,
		Sessions:     sessions,
		SessionCount: total,
	}, nil
}

// ListCollections implements CollectionService.ListCollections
func (s *CollectionServiceImpl) ListCollections(
	ctx context.Context,
	userID uuid.UUID,
) ([]*CollectionOverview, error) {
	summaries, err := s.collectionStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list_collections", "failed to list collections", err)
	}

	overviews := make([]*CollectionOverview, 0, len(summaries))
	for _, summary := range summaries {
		recent, _, err := s.sessionStore.ListByUser(
			ctx, userID, &summary.Collection.ID, recentSessionPreviewSize, 0,
		)
		if err != nil {
			return nil, NewServiceError("list_collections", "failed to load recent sessions", err)
		}

		overviews = append(overviews, &CollectionOverview{
			Collection:     summary.Collection,
			SessionCount:   summary.SessionCount,
			RecentSessions: recent,
		})
	}

	return overviews, nil
}

// UpdateCollection implements CollectionService.UpdateCollection
// Full replacement semantics: the given title and description become the
// collection's new representation, and an empty title is rejected.
func (s *CollectionServiceImpl) UpdateCollection(
	ctx context.Context,
	id, userID uuid.UUID,
	title, description string,
) (*domain.Collection, error) {
	collection, err := s.collectionStore.GetByID(ctx, id, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewServiceError("update_collection", "failed to retrieve collection", err)
	}

	collection.Title = title
	collection.Description = description
	if err := collection.Validate(); err != nil {
		return nil, NewServiceError("update_collection", "invalid collection data", err)
	}

	if err := s.collectionStore.Update(ctx, collection); err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		return nil, NewServiceError("update_collection", "failed to update collection", err)
	}

	return collection, nil
}

// DeleteCollection implements CollectionService.DeleteCollection
func (s *CollectionServiceImpl) DeleteCollection(ctx context.Context, id, userID uuid.UUID) error {
	err := s.collectionStore.Delete(ctx, id, userID)
	if err != nil && !store.IsNotFoundError(err) {
		return NewServiceError("delete_collection", "failed to delete collection", err)
	}
	return err
}

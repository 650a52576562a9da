package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/AymanChabbaki/tutor-MVP/internal/generation"
	"github.com/AymanChabbaki/tutor-MVP/internal/service/auth"
	"github.com/AymanChabbaki/tutor-MVP/internal/store"
)

// mockGenerator implements generation.Generator with scripted outputs.
type mockGenerator struct {
	summary      string
	explanation  string
	exercises    []generation.Exercise
	err          error
	summarizeN   int
	explainN     int
	exercisesN   int
	lastText     string
	lastLanguage domain.Language
}

func (m *mockGenerator) Summarize(ctx context.Context, text string, lang domain.Language) (string, error) {
	m.summarizeN++
	m.lastText, m.lastLanguage = text, lang
	return m.summary, m.err
}

func (m *mockGenerator) Explain(ctx context.Context, text string, lang domain.Language) (string, error) {
	m.explainN++
	m.lastText, m.lastLanguage = text, lang
	return m.explanation, m.err
}

func (m *mockGenerator) GenerateExercises(ctx context.Context, text string, lang domain.Language) ([]generation.Exercise, error) {
	m.exercisesN++
	m.lastText, m.lastLanguage = text, lang
	return m.exercises, m.err
}

// mockSessionStore implements store.SessionStore in memory.
type mockSessionStore struct {
	sessions  map[uuid.UUID]*domain.Session
	createErr error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[uuid.UUID]*domain.Session)}
}

func (m *mockSessionStore) Create(ctx context.Context, session *domain.Session) error {
	if m.createErr != nil {
		return m.createErr
	}
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionStore) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Session, error) {
	session, ok := m.sessions[id]
	if !ok || session.UserID != userID {
		return nil, store.ErrSessionNotFound
	}
	return session, nil
}

func (m *mockSessionStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	collectionID *uuid.UUID,
	limit, offset int,
) ([]*domain.Session, int, error) {
	var matched []*domain.Session
	for _, session := range m.sessions {
		if session.UserID != userID {
			continue
		}
		if collectionID != nil && (session.CollectionID == nil || *session.CollectionID != *collectionID) {
			continue
		}
		matched = append(matched, session)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (m *mockSessionStore) SetCollection(ctx context.Context, id, userID uuid.UUID, collectionID *uuid.UUID) error {
	session, ok := m.sessions[id]
	if !ok || session.UserID != userID {
		return store.ErrSessionNotFound
	}
	session.CollectionID = collectionID
	return nil
}

func (m *mockSessionStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	session, ok := m.sessions[id]
	if !ok || session.UserID != userID {
		return store.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionStore) WithTx(tx *sql.Tx) store.SessionStore { return m }

// mockCollectionStore implements store.CollectionStore in memory. When
// sessions is set, ListByUser counts each collection's sessions the way the
// SQL join does.
type mockCollectionStore struct {
	collections map[uuid.UUID]*domain.Collection
	sessions    *mockSessionStore
}

func newMockCollectionStore() *mockCollectionStore {
	return &mockCollectionStore{collections: make(map[uuid.UUID]*domain.Collection)}
}

func (m *mockCollectionStore) Create(ctx context.Context, collection *domain.Collection) error {
	if err := collection.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	m.collections[collection.ID] = collection
	return nil
}

func (m *mockCollectionStore) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Collection, error) {
	collection, ok := m.collections[id]
	if !ok || collection.UserID != userID {
		return nil, store.ErrCollectionNotFound
	}
	return collection, nil
}

func (m *mockCollectionStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*store.CollectionSummary, error) {
	var summaries []*store.CollectionSummary
	for _, collection := range m.collections {
		if collection.UserID != userID {
			continue
		}
		count := 0
		if m.sessions != nil {
			for _, session := range m.sessions.sessions {
				if session.UserID == userID && session.CollectionID != nil && *session.CollectionID == collection.ID {
					count++
				}
			}
		}
		summaries = append(summaries, &store.CollectionSummary{Collection: collection, SessionCount: count})
	}
	return summaries, nil
}

func (m *mockCollectionStore) Update(ctx context.Context, collection *domain.Collection) error {
	existing, ok := m.collections[collection.ID]
	if !ok || existing.UserID != collection.UserID {
		return store.ErrCollectionNotFound
	}
	m.collections[collection.ID] = collection
	return nil
}

func (m *mockCollectionStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	collection, ok := m.collections[id]
	if !ok || collection.UserID != userID {
		return store.ErrCollectionNotFound
	}
	delete(m.collections, id)
	return nil
}

func (m *mockCollectionStore) WithTx(tx *sql.Tx) store.CollectionStore { return m }

// mockUserStore implements store.UserStore in memory, keyed by ID and email.
type mockUserStore struct {
	users map[uuid.UUID]*domain.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) UpdateLanguage(ctx context.Context, id uuid.UUID, lang domain.Language) error {
	user, ok := m.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	user.LanguagePref = lang
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }

// mockJWTService implements auth.JWTService with deterministic tokens.
type mockJWTService struct {
	validUserID uuid.UUID
	validateErr error
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "access-" + userID.String(), nil
}

func (m *mockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return "refresh-" + userID.String(), nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return &auth.Claims{UserID: m.validUserID, TokenType: "access"}, nil
}

func (m *mockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return &auth.Claims{UserID: m.validUserID, TokenType: "refresh"}, nil
}

// stubVerifier accepts one password and rejects everything else.
type stubVerifier struct {
	accept string
}

func (v *stubVerifier) Compare(hashedPassword, password string) error {
	if password == v.accept {
		return nil
	}
	return errors.New("hashedPassword is not the hash of the given password")
}

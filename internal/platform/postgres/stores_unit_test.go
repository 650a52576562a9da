package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/AymanChabbaki/tutor-MVP/internal/store"
)

// mockDBTX implements store.DBTX for testing. Every call records the query;
// Exec results come from execResult/execErr.
type mockDBTX struct {
	queries    []string
	execResult sql.Result
	execErr    error
}

func (m *mockDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	m.queries = append(m.queries, query)
	return m.execResult, m.execErr
}

func (m *mockDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	m.queries = append(m.queries, query)
	return nil, nil
}

func (m *mockDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	m.queries = append(m.queries, query)
	return nil, sql.ErrConnDone
}

func (m *mockDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	m.queries = append(m.queries, query)
	return nil
}

func TestNewPostgresUserStore(t *testing.T) {
	tests := []struct {
		name       string
		bcryptCost int
		wantCost   int
	}{
		{name: "valid_cost_kept", bcryptCost: 12, wantCost: 12},
		{name: "zero_cost_uses_default", bcryptCost: 0, wantCost: bcrypt.DefaultCost},
		{name: "cost_below_min_uses_default", bcryptCost: 2, wantCost: bcrypt.DefaultCost},
		{name: "cost_above_max_uses_default", bcryptCost: 32, wantCost: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPostgresUserStore(&mockDBTX{}, tt.bcryptCost)
			assert.NotNil(t, s)
			assert.Equal(t, tt.wantCost, s.bcryptCost)
		})
	}
}

func TestUserStoreCreateValidation(t *testing.T) {
	mockDB := &mockDBTX{}
	s := NewPostgresUserStore(mockDB, bcrypt.MinCost)

	t.Run("invalid_user_rejected_before_db", func(t *testing.T) {
		user := &domain.User{
			ID:           uuid.New(),
			Name:         "",
			Email:        "student@example.com",
			Password:     "password123",
			LanguagePref: domain.LanguageEnglish,
		}

		err := s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.Empty(t, mockDB.queries, "no query should be issued for invalid users")
	})

	t.Run("loaded_user_without_password_rejected", func(t *testing.T) {
		user := &domain.User{
			ID:             uuid.New(),
			Name:           "Student",
			Email:          "student@example.com",
			HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
			LanguagePref:   domain.LanguageEnglish,
		}

		err := s.Create(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.Contains(t, err.Error(), "password is required")
	})
}

func TestUserStoreCreateHashesPassword(t *testing.T) {
	mockDB := &mockDBTX{execResult: fakeResult{rows: 1}}
	s := NewPostgresUserStore(mockDB, bcrypt.MinCost)

	user, err := domain.NewUser("Student", "student@example.com", "password123", domain.LanguageEnglish)
	require.NoError(t, err)

	require.NoError(t, s.Create(context.Background(), user))

	assert.Empty(t, user.Password, "plaintext password must be cleared after hashing")
	require.NotEmpty(t, user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("password123")))
	require.Len(t, mockDB.queries, 1)
	assert.Contains(t, mockDB.queries[0], "INSERT INTO users")
}

func TestUserStoreUpdateLanguageRejectsInvalid(t *testing.T) {
	mockDB := &mockDBTX{}
	s := NewPostgresUserStore(mockDB, bcrypt.MinCost)

	err := s.UpdateLanguage(context.Background(), uuid.New(), domain.Language("klingon"))
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.Empty(t, mockDB.queries)
}

func TestSessionStoreCreateValidation(t *testing.T) {
	mockDB := &mockDBTX{}
	s := NewPostgresSessionStore(mockDB)

	session := &domain.Session{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Type:      domain.SessionType("quiz"),
		InputText: "some course text",
		Output:    json.RawMessage(`{"summary":"..."}`),
	}

	err := s.Create(context.Background(), session)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.Empty(t, mockDB.queries, "no query should be issued for invalid sessions")
}

func TestSessionStoreOwnershipScopedQueries(t *testing.T) {
	mockDB := &mockDBTX{execResult: fakeResult{rows: 1}}
	s := NewPostgresSessionStore(mockDB)

	require.NoError(t, s.Delete(context.Background(), uuid.New(), uuid.New()))
	require.NoError(t, s.SetCollection(context.Background(), uuid.New(), uuid.New(), nil))

	for _, q := range mockDB.queries {
		assert.Contains(t, q, "user_id", "mutations must be scoped to the owner")
	}
}

func TestSessionStoreMissingRowsSurfaceAsNotFound(t *testing.T) {
	mockDB := &mockDBTX{execResult: fakeResult{rows: 0}}
	s := NewPostgresSessionStore(mockDB)

	err := s.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, store.ErrSessionNotFound)

	err = s.SetCollection(context.Background(), uuid.New(), uuid.New(), nil)
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestCollectionStoreCreateValidation(t *testing.T) {
	mockDB := &mockDBTX{}
	s := NewPostgresCollectionStore(mockDB)

	collection := &domain.Collection{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Title:  "   ",
	}

	err := s.Create(context.Background(), collection)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.Empty(t, mockDB.queries)
}

func TestCollectionStoreMissingRowsSurfaceAsNotFound(t *testing.T) {
	mockDB := &mockDBTX{execResult: fakeResult{rows: 0}}
	s := NewPostgresCollectionStore(mockDB)

	err := s.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, store.ErrCollectionNotFound)

	collection, err := domain.NewCollection(uuid.New(), "Physics", "")
	require.NoError(t, err)
	err = s.Update(context.Background(), collection)
	assert.ErrorIs(t, err, store.ErrCollectionNotFound)
}

func TestWithTxReturnsBoundStores(t *testing.T) {
	tx := &sql.Tx{}

	userStore := NewPostgresUserStore(&mockDBTX{}, 10)
	boundUsers := userStore.WithTx(tx).(*PostgresUserStore)
	assert.Equal(t, 10, boundUsers.bcryptCost)
	assert.Equal(t, store.DBTX(tx), boundUsers.db)

	sessionStore := NewPostgresSessionStore(&mockDBTX{})
	boundSessions := sessionStore.WithTx(tx).(*PostgresSessionStore)
	assert.Equal(t, store.DBTX(tx), boundSessions.db)

	collectionStore := NewPostgresCollectionStore(&mockDBTX{})
	boundCollections := collectionStore.WithTx(tx).(*PostgresCollectionStore)
	assert.Equal(t, store.DBTX(tx), boundCollections.db)
}

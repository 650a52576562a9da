package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/AymanChabbaki/tutor-MVP/internal/service"
)

// mockUserService implements service.UserService with scripted results.
type mockUserService struct {
	user        *domain.User
	tokens      *service.TokenPair
	registerErr error
	loginErr    error
	refreshErr  error
	getErr      error
	languageErr error

	lastLanguage domain.Language
}

var _ service.UserService = (*mockUserService)(nil)

func (m *mockUserService) Register(
	ctx context.Context,
	name, email, password string,
	lang domain.Language,
) (*domain.User, *service.TokenPair, error) {
	if m.registerErr != nil {
		return nil, nil, m.registerErr
	}
	return m.user, m.tokens, nil
}

func (m *mockUserService) Login(
	ctx context.Context,
	email, password string,
) (*domain.User, *service.TokenPair, error) {
	if m.loginErr != nil {
		return nil, nil, m.loginErr
	}
	return m.user, m.tokens, nil
}

func (m *mockUserService) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	return m.tokens, nil
}

func (m *mockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *mockUserService) UpdateLanguage(ctx context.Context, userID uuid.UUID, lang domain.Language) error {
	if m.languageErr != nil {
		return m.languageErr
	}
	m.lastLanguage = lang
	if m.user != nil {
		m.user.LanguagePref = lang
	}
	return nil
}

// mockStudyService implements service.StudyService with scripted results.
type mockStudyService struct {
	session *domain.Session
	err     error

	lastText string
	lastLang domain.Language
	calls    int
}

var _ service.StudyService = (*mockStudyService)(nil)

func (m *mockStudyService) create(text string, lang domain.Language) (*domain.Session, error) {
	m.calls++
	m.lastText = text
	m.lastLang = lang
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

func (m *mockStudyService) CreateSummarySession(
	ctx context.Context,
	userID uuid.UUID,
	text string,
	lang domain.Language,
) (*domain.Session, error) {
	return m.create(text, lang)
}

func (m *mockStudyService) CreateExplanationSession(
	ctx context.Context,
	userID uuid.UUID,
	text string,
	lang domain.Language,
) (*domain.Session, error) {
	return m.create(text, lang)
}

func (m *mockStudyService) CreateExercisesSession(
	ctx context.Context,
	userID uuid.UUID,
	text string,
	lang domain.Language,
) (*domain.Session, error) {
	return m.create(text, lang)
}

// mockSessionService implements service.SessionService with scripted results.
type mockSessionService struct {
	page      *service.SessionPage
	session   *domain.Session
	listErr   error
	getErr    error
	deleteErr error
	assignErr error

	lastCollectionID *uuid.UUID
	assignCalls      int
}

var _ service.SessionService = (*mockSessionService)(nil)

func (m *mockSessionService) ListSessions(
	ctx context.Context,
	userID uuid.UUID,
	collectionID *uuid.UUID,
	limit, offset int,
) (*service.SessionPage, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.page, nil
}

func (m *mockSessionService) GetSession(ctx context.Context, id, userID uuid.UUID) (*domain.Session, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.session, nil
}

func (m *mockSessionService) DeleteSession(ctx context.Context, id, userID uuid.UUID) error {
	return m.deleteErr
}

func (m *mockSessionService) AssignCollection(
	ctx context.Context,
	id, userID uuid.UUID,
	collectionID *uuid.UUID,
) error {
	m.assignCalls++
	m.lastCollectionID = collectionID
	return m.assignErr
}

// mockCollectionService implements service.CollectionService with scripted results.
type mockCollectionService struct {
	collection *domain.Collection
	detail     *service.CollectionDetail
	overviews  []*service.CollectionOverview
	createErr  error
	getErr     error
	listErr    error
	updateErr  error
	deleteErr  error
}

var _ service.CollectionService = (*mockCollectionService)(nil)

func (m *mockCollectionService) CreateCollection(
	ctx context.Context,
	userID uuid.UUID,
	title, description string,
) (*domain.Collection, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.collection, nil
}

func (m *mockCollectionService) GetCollection(
	ctx context.Context,
	id, userID uuid.UUID,
) (*service.CollectionDetail, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.detail != nil {
		return m.detail, nil
	}
	return &service.CollectionDetail{Collection: m.collection, Sessions: nil, SessionCount: 0}, nil
}

func (m *mockCollectionService) ListCollections(
	ctx context.Context,
	userID uuid.UUID,
) ([]*service.CollectionOverview, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.overviews, nil
}

func (m *mockCollectionService) UpdateCollection(
	ctx context.Context,
	id, userID uuid.UUID,
	title, description string,
) (*domain.Collection, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.collection, nil
}

func (m *mockCollectionService) DeleteCollection(ctx context.Context, id, userID uuid.UUID) error {
	return m.deleteErr
}

// Test fixtures

func testUser(id uuid.UUID) *domain.User {
	return &domain.User{
		ID:             id,
		Name:           "Test Student",
		Email:          "student@example.com",
		HashedPassword: "hashed",
		LanguagePref:   domain.LanguageEnglish,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
}

func testSession(userID uuid.UUID, sessionType domain.SessionType) *domain.Session {
	output, _ := json.Marshal(map[string]string{
		"summary":  "# Summary\n\nKey points.",
		"language": "english",
	})
	return &domain.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      sessionType,
		InputText: "Photosynthesis converts light energy into chemical energy.",
		Output:    output,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

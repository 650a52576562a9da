package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AymanChabbaki/tutor-MVP/internal/api/shared"
	"github.com/AymanChabbaki/tutor-MVP/internal/service"
	"github.com/AymanChabbaki/tutor-MVP/internal/service/auth"
	"github.com/AymanChabbaki/tutor-MVP/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newJSONRequest builds a request with a JSON body.
func newJSONRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withUserID places an authenticated user ID in the request context the way
// the auth middleware would.
func withUserID(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

func testTokens() *service.TokenPair {
	return &service.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}
}

func TestAuthHandlerRegister(t *testing.T) {
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := &mockUserService{user: testUser(userID), tokens: testTokens()}
		handler := NewAuthHandler(svc, testLogger())

		req := newJSONRequest(t, http.MethodPost, "/api/auth/register", RegisterRequest{
			Name:     "Test Student",
			Email:    "student@example.com",
			Password: "password123",
		})
		w := httptest.NewRecorder()
		handler.Register(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, userID, resp.User.ID)
		assert.Equal(t, "student@example.com", resp.User.Email)
		assert.Equal(t, "access-token", resp.AccessToken)
		assert.Equal(t, "refresh-token", resp.RefreshToken)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc := &mockUserService{user: testUser(userID), tokens: testTokens()}
		handler := NewAuthHandler(svc, testLogger())

		req := newJSONRequest(t, http.MethodPost, "/api/auth/register", RegisterRequest{
			Name:     "Test Student",
			Email:    "not-an-email",
			Password: "password123",
		})
		w := httptest.NewRecorder()
		handler.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("short password", func(t *testing.T) {
		svc := &mockUserService{user: testUser(userID), tokens: testTokens()}
		handler := NewAuthHandler(svc, testLogger())

		req := newJSONRequest(t, http.MethodPost, "/api/auth/register", RegisterRequest{
			Name:     "Test Student",
			Email:    "student@example.com",
			Password: "short",
		})
		w := httptest.NewRecorder()
		handler.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := &mockUserService{registerErr: store.ErrEmailExists}
		handler := NewAuthHandler(svc, testLogger())

		req := newJSONRequest(t, http.MethodPost, "/api/auth/register", RegisterRequest{
			Name:     "Test Student",
			Email:    "student@example.com",
			Password: "password123",
		})
		w := httptest.NewRecorder()
		handler.Register(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &mockUserService{}
		handler := NewAuthHandler(svc, testLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		handler.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid language rejected", func(t *testing.T) {
		svc := &mockUserService{user: testUser(userID), tokens: testTokens()}
		handler := NewAuthHandler(svc, testLogger())

		req := newJSONRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
			"name":     "Test Student",
			"email":    "student@example.com",
			"password": "password123",
			"language": "french",
		})
		w := httptest.NewRecorder()
		handler.Register(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := &mockUserService{user: testUser(userID), tokens: testTokens()}
		handler := NewAuthHandler(svc, testLogger())

		req := newJSONRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
			Email:    "student@example.com",
			Password: "password123",
		})
		w := httptest.NewRecorder()
		handler.Login(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, userID, resp.User.ID)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc := &mockUserService{loginErr: auth.ErrInvalidCredentials}
		handler := NewAuthHandler(svc, testLogger())

		req := newJSONRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
			Email:    "student@example.com",
			Password: "wrong-password",
		})
		w := httptest.NewRecorder()
		handler.Login(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid credentials", resp.Error)
	})

	t.Run("missing email", func(t *testing.T) {
		svc := &mockUserService{}
		handler := NewAuthHandler(svc, testLogger())

		req := newJSONRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
			Password: "password123",
		})
		w := httptest.NewRecorder()
		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandlerRefreshToken(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockUserService{tokens: testTokens()}
		handler := NewAuthHandler(svc, testLogger())

		req := newJSONRequest(t, http.MethodPost, "/api/auth/refresh", RefreshTokenRequest{
			RefreshToken: "valid-refresh-token",
		})
		w := httptest.NewRecorder()
		handler.RefreshToken(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp RefreshTokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "access-token", resp.AccessToken)
		assert.Equal(t, "refresh-token", resp.RefreshToken)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		svc := &mockUserService{refreshErr: auth.ErrExpiredToken}
		handler := NewAuthHandler(svc, testLogger())

		req := newJSONRequest(t, http.MethodPost, "/api/auth/refresh", RefreshTokenRequest{
			RefreshToken: "expired-token",
		})
		w := httptest.NewRecorder()
		handler.RefreshToken(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deleted account reads as invalid token", func(t *testing.T) {
		svc := &mockUserService{refreshErr: store.ErrUserNotFound}
		handler := NewAuthHandler(svc, testLogger())

		req := newJSONRequest(t, http.MethodPost, "/api/auth/refresh", RefreshTokenRequest{
			RefreshToken: "orphaned-token",
		})
		w := httptest.NewRecorder()
		handler.RefreshToken(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid token", resp.Error)
	})

	t.Run("missing token", func(t *testing.T) {
		svc := &mockUserService{}
		handler := NewAuthHandler(svc, testLogger())

		req := newJSONRequest(t, http.MethodPost, "/api/auth/refresh", RefreshTokenRequest{})
		w := httptest.NewRecorder()
		handler.RefreshToken(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandlerMe(t *testing.T) {
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := &mockUserService{user: testUser(userID)}
		handler := NewAuthHandler(svc, testLogger())

		req := withUserID(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), userID)
		w := httptest.NewRecorder()
		handler.Me(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, userID, resp.ID)
		assert.Equal(t, "english", resp.LanguagePref)
	})

	t.Run("no user in context", func(t *testing.T) {
		svc := &mockUserService{user: testUser(userID)}
		handler := NewAuthHandler(svc, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		w := httptest.NewRecorder()
		handler.Me(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthHandlerValidateToken(t *testing.T) {
	userID := uuid.New()

	t.Run("live account", func(t *testing.T) {
		svc := &mockUserService{user: testUser(userID)}
		handler := NewAuthHandler(svc, testLogger())

		req := withUserID(httptest.NewRequest(http.MethodGet, "/api/auth/validate", nil), userID)
		w := httptest.NewRecorder()
		handler.ValidateToken(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp TokenValidationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Valid)
		assert.Equal(t, userID, resp.UserID)
		assert.Equal(t, "student@example.com", resp.Email)
	})

	t.Run("deleted account", func(t *testing.T) {
		svc := &mockUserService{getErr: store.ErrUserNotFound}
		handler := NewAuthHandler(svc, testLogger())

		req := withUserID(httptest.NewRequest(http.MethodGet, "/api/auth/validate", nil), userID)
		w := httptest.NewRecorder()
		handler.ValidateToken(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthHandlerUpdateLanguage(t *testing.T) {
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		svc := &mockUserService{user: testUser(userID)}
		handler := NewAuthHandler(svc, testLogger())

		req := withUserID(
			newJSONRequest(t, http.MethodPut, "/api/auth/language", UpdateLanguageRequest{Language: "arabic"}),
			userID,
		)
		w := httptest.NewRecorder()
		handler.UpdateLanguage(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "arabic", resp.LanguagePref)
	})

	t.Run("unsupported language", func(t *testing.T) {
		svc := &mockUserService{user: testUser(userID)}
		handler := NewAuthHandler(svc, testLogger())

		req := withUserID(
			newJSONRequest(t, http.MethodPut, "/api/auth/language", UpdateLanguageRequest{Language: "german"}),
			userID,
		)
		w := httptest.NewRecorder()
		handler.UpdateLanguage(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

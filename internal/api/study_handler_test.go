package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AymanChabbaki/tutor-MVP/internal/domain"
	"github.com/AymanChabbaki/tutor-MVP/internal/generation"
)

func TestStudyHandlerSummarize(t *testing.T) {
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		study := &mockStudyService{session: testSession(userID, domain.SessionTypeSummary)}
		users := &mockUserService{user: testUser(userID)}
		handler := NewStudyHandler(study, users, testLogger())

		req := withUserID(
			newJSONRequest(t, http.MethodPost, "/api/summarize", GenerateRequest{
				Text:     "Photosynthesis converts light energy into chemical energy.",
				Language: "english",
			}),
			userID,
		)
		w := httptest.NewRecorder()
		handler.Summarize(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp SessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "summary", resp.SessionType)
		assert.NotNil(t, resp.Output)
		assert.Equal(t, 1, study.calls)
		assert.Equal(t, domain.LanguageEnglish, study.lastLang)
	})

	t.Run("language defaults to user preference", func(t *testing.T) {
		study := &mockStudyService{session: testSession(userID, domain.SessionTypeSummary)}
		user := testUser(userID)
		user.LanguagePref = domain.LanguageArabic
		users := &mockUserService{user: user}
		handler := NewStudyHandler(study, users, testLogger())

		req := withUserID(
			newJSONRequest(t, http.MethodPost, "/api/summarize", GenerateRequest{
				Text: "Photosynthesis converts light energy into chemical energy.",
			}),
			userID,
		)
		w := httptest.NewRecorder()
		handler.Summarize(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, domain.LanguageArabic, study.lastLang)
	})

	t.Run("missing text", func(t *testing.T) {
		study := &mockStudyService{}
		users := &mockUserService{user: testUser(userID)}
		handler := NewStudyHandler(study, users, testLogger())

		req := withUserID(
			newJSONRequest(t, http.MethodPost, "/api/summarize", GenerateRequest{Language: "english"}),
			userID,
		)
		w := httptest.NewRecorder()
		handler.Summarize(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, study.calls)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		study := &mockStudyService{}
		users := &mockUserService{user: testUser(userID)}
		handler := NewStudyHandler(study, users, testLogger())

		req := newJSONRequest(t, http.MethodPost, "/api/summarize", GenerateRequest{
			Text: "some text", Language: "english",
		})
		w := httptest.NewRecorder()
		handler.Summarize(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		study := &mockStudyService{}
		users := &mockUserService{user: testUser(userID)}
		handler := NewStudyHandler(study, users, testLogger())

		req := withUserID(
			httptest.NewRequest(http.MethodPost, "/api/summarize", bytes.NewReader([]byte("not json"))),
			userID,
		)
		w := httptest.NewRecorder()
		handler.Summarize(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStudyHandlerGenerationErrors(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "whitespace-only input",
			err:        generation.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "service busy",
			err:        generation.ErrServiceBusy,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "request timeout",
			err:        generation.ErrRequestTimeout,
			wantStatus: http.StatusGatewayTimeout,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			study := &mockStudyService{err: tc.err}
			users := &mockUserService{user: testUser(userID)}
			handler := NewStudyHandler(study, users, testLogger())

			req := withUserID(
				newJSONRequest(t, http.MethodPost, "/api/explain", GenerateRequest{
					Text: "   ", Language: "english",
				}),
				userID,
			)
			w := httptest.NewRecorder()
			handler.Explain(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestStudyHandlerExercises(t *testing.T) {
	userID := uuid.New()

	study := &mockStudyService{session: testSession(userID, domain.SessionTypeExercises)}
	users := &mockUserService{user: testUser(userID)}
	handler := NewStudyHandler(study, users, testLogger())

	req := withUserID(
		newJSONRequest(t, http.MethodPost, "/api/generate-exercises", GenerateRequest{
			Text:     "The water cycle describes how water moves through the environment.",
			Language: "both",
		}),
		userID,
	)
	w := httptest.NewRecorder()
	handler.GenerateExercises(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, domain.LanguageBoth, study.lastLang)
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DAILYDIET_BACK-END/internal/config"
	"DAILYDIET_BACK-END/internal/models"
	"DAILYDIET_BACK-END/internal/store"
	"DAILYDIET_BACK-END/internal/utils"
)

type memSessionStore struct {
	sessions map[uuid.UUID]*models.Session
}

func (m *memSessionStore) Create(ctx context.Context, s *models.Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *memSessionStore) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	s, ok := m.sessions[id]
	if !ok || s.ExpiresAt.Before(time.Now()) {
		return nil, store.ErrNotFound
	}
	return s, nil
}

func (m *memSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.sessions[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func testConfig() *config.SessionConfig {
	return &config.SessionConfig{
		Secret:     "test-secret",
		CookieName: "session",
		TTL:        time.Hour,
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	sessionID := uuid.New()

	token, err := GenerateSessionToken(sessionID, 42, cfg)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, sessionID, claims.SessionID)
	assert.EqualValues(t, 42, claims.UserID)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateSessionToken(uuid.New(), 42, cfg)
	require.NoError(t, err)

	other := testConfig()
	other.Secret = "other-secret"
	_, err = ValidateSessionToken(token, other)
	assert.Error(t, err)
}

func TestSessionMiddleware(t *testing.T) {
	cfg := testConfig()
	sessions := &memSessionStore{sessions: make(map[uuid.UUID]*models.Session)}

	session := &models.Session{
		ID:        uuid.New(),
		UserID:    7,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, sessions.Create(context.Background(), session))

	token, err := GenerateSessionToken(session.ID, session.UserID, cfg)
	require.NoError(t, err)

	var gotUserID int64
	handler := SessionMiddleware(func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.GetUserIDFromContext(r.Context())
		require.True(t, ok)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	}, sessions, cfg)

	t.Run("no cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/meals", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/meals", nil)
		req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: "not-a-token"})
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/meals", nil)
		req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: token})
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 7, gotUserID)
	})

	t.Run("revoked session", func(t *testing.T) {
		// Token still signed and unexpired, but the row is gone
		require.NoError(t, sessions.Delete(context.Background(), session.ID))

		req := httptest.NewRequest(http.MethodGet, "/meals", nil)
		req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: token})
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

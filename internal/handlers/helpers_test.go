package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"DAILYDIET_BACK-END/internal/config"
	"DAILYDIET_BACK-END/internal/handlers"
	"DAILYDIET_BACK-END/internal/models"
	"DAILYDIET_BACK-END/internal/routes"
	"DAILYDIET_BACK-END/internal/store"
)

// --- in-memory fakes ---

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, username, passwordHash string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[username]; ok {
		return nil, store.ErrDuplicate
	}
	f.nextID++
	u := &models.User{ID: f.nextID, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f.users[username] = u
	return u, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeMealStore struct {
	mu     sync.Mutex
	nextID int64
	meals  map[int64]*models.Meal
}

func newFakeMealStore() *fakeMealStore {
	return &fakeMealStore{meals: make(map[int64]*models.Meal)}
}

func (f *fakeMealStore) Create(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	meal.ID = f.nextID
	cp := *meal
	f.meals[meal.ID] = &cp
	return meal, nil
}

func (f *fakeMealStore) GetByID(ctx context.Context, id int64) (*models.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := f.meals[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeMealStore) ListByUser(ctx context.Context, userID int64) ([]models.Meal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Meal, 0)
	for id := int64(1); id <= f.nextID; id++ {
		if m, ok := f.meals[id]; ok && m.UserID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMealStore) Update(ctx context.Context, meal *models.Meal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.meals[meal.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *meal
	f.meals[meal.ID] = &cp
	return nil
}

func (f *fakeMealStore) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.meals[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.meals, id)
	return nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*models.Session)}
}

func (f *fakeSessionStore) Create(ctx context.Context, session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *session
	f.sessions[session.ID] = &cp
	return nil
}

func (f *fakeSessionStore) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok || s.ExpiresAt.Before(time.Now()) {
		return nil, store.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.sessions, id)
	return nil
}

// --- test server plumbing ---

type testEnv struct {
	server   *httptest.Server
	client   *http.Client
	users    *fakeUserStore
	meals    *fakeMealStore
	sessions *fakeSessionStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newFakeUserStore()
	meals := newFakeMealStore()
	sessions := newFakeSessionStore()

	cfg := &config.SessionConfig{
		Secret:     "test-secret",
		CookieName: "session",
		TTL:        time.Hour,
	}

	authHandler := handlers.NewAuthHandler(users, sessions, cfg)
	mealsHandler := handlers.NewMealsHandler(meals)
	healthHandler := handlers.NewHealthHandler(nil)

	mux := routes.SetupRoutes(authHandler, mealsHandler, healthHandler, sessions, cfg)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		server:   srv,
		client:   &http.Client{Jar: jar},
		users:    users,
		meals:    meals,
		sessions: sessions,
	}
}

// do sends a request with an optional JSON body and decodes the JSON reply
func (e *testEnv) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

// doList is like do but for endpoints returning a JSON array
func (e *testEnv) doList(t *testing.T, method, path string) (int, []map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, e.server.URL+path, nil)
	require.NoError(t, err)

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded []map[string]any
	if len(raw) > 0 && raw[0] == '[' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func (e *testEnv) register(t *testing.T, username, password string) {
	t.Helper()
	status, _ := e.do(t, http.MethodPost, "/users", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusCreated, status)
}

func (e *testEnv) login(t *testing.T, username, password string) {
	t.Helper()
	status, _ := e.do(t, http.MethodPost, "/login", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, status)
}

func (e *testEnv) logout(t *testing.T) {
	t.Helper()
	status, _ := e.do(t, http.MethodGet, "/logout", nil)
	require.Equal(t, http.StatusOK, status)
}

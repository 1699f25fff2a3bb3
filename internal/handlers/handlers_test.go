package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/anonto42/curious/backend/internal/apperrors"
	"github.com/anonto42/curious/backend/internal/middleware"
	"github.com/anonto42/curious/backend/internal/models"
	"github.com/anonto42/curious/backend/internal/repositories"
	"github.com/anonto42/curious/backend/internal/services"
	"github.com/anonto42/curious/backend/internal/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// serve registers routes on a fresh echo instance and runs one request as
// userID. A zero userID sends the request unauthenticated.
func serve(t *testing.T, register func(g *echo.Group), userID uint, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = validators.NewValidator()
	g := e.Group("/api/v1", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID != 0 {
				middleware.SetCurrentUser(c, &models.JwtCustomClaims{UserID: userID})
			}
			return next(c)
		}
	})
	register(g)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, into))
}

// stubResources overrides the ResourceService methods a test needs. Calling
// any other method panics on the nil embedded interface.
type stubResources struct {
	services.ResourceService

	processPrompt func(ctx context.Context, text string, isPrivate bool, ownerID uint) ([]models.SubjectResourceGroup, error)
	resolve       func(ctx context.Context, text string) (*models.Resolution, error)
	getPrompt     func(ctx context.Context, promptID, requesterID uint) (*models.Prompt, error)
	latest        func(ctx context.Context, promptID uint) (*models.UserSubjectResourceGroup, error)
	history       func(ctx context.Context, promptID, userID uint) ([]models.SubjectResourceGroup, error)
	feed          func(ctx context.Context, userID uint) ([]models.UserSubjectResourceGroup, error)
	setVisibility func(ctx context.Context, promptID, userID uint, isPrivate bool) (*models.Prompt, error)
}

func (s *stubResources) ProcessPrompt(ctx context.Context, text string, isPrivate bool, ownerID uint) ([]models.SubjectResourceGroup, error) {
	return s.processPrompt(ctx, text, isPrivate, ownerID)
}

func (s *stubResources) ResolveSubjects(ctx context.Context, text string) (*models.Resolution, error) {
	return s.resolve(ctx, text)
}

func (s *stubResources) GetPrompt(ctx context.Context, promptID, requesterID uint) (*models.Prompt, error) {
	return s.getPrompt(ctx, promptID, requesterID)
}

func (s *stubResources) GetPromptContentsLatest(ctx context.Context, promptID uint) (*models.UserSubjectResourceGroup, error) {
	return s.latest(ctx, promptID)
}

func (s *stubResources) HistoryForUser(ctx context.Context, promptID, userID uint) ([]models.SubjectResourceGroup, error) {
	return s.history(ctx, promptID, userID)
}

func (s *stubResources) GetFeed(ctx context.Context, userID uint) ([]models.UserSubjectResourceGroup, error) {
	return s.feed(ctx, userID)
}

func (s *stubResources) SetPromptVisibility(ctx context.Context, promptID, userID uint, isPrivate bool) (*models.Prompt, error) {
	return s.setVisibility(ctx, promptID, userID, isPrivate)
}

// memUsers is an in-memory UserRepository keyed by username
type memUsers struct {
	repositories.UserRepository

	mu     sync.Mutex
	nextID uint
	byName map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byName: map[string]*models.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[user.Username]; ok {
		return apperrors.ErrConflict
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.byName[user.Username] = &stored
	return nil
}

func (m *memUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byName[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byName {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

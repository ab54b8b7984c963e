package middlewares

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/utils"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const jwtSecret = "test-secret"

type mockRedisRepository struct {
	mock.Mock
}

func (m *mockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *mockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockRedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *mockRedisRepository) CreateSession(ctx context.Context, session *models.Session, exp time.Duration) error {
	return m.Called(ctx, session, exp).Error(0)
}

func (m *mockRedisRepository) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *mockRedisRepository) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func newMiddlewares(redis *mockRedisRepository) *Middlewares {
	return NewMiddlewares(zap.NewNop(), redis, &config.InternalConfig{
		JWT: config.JWT{Secret: jwtSecret, ExpTimeInHour: 1},
	})
}

func signedToken(t *testing.T, sessionID string) string {
	t.Helper()
	token, err := utils.GenerateJWT(sessionID, jwtSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func sessionEcho() (http.Handler, *string) {
	var captured string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string)
		w.WriteHeader(http.StatusOK)
	})
	return handler, &captured
}

func TestAuthenticate(t *testing.T) {
	t.Run("valid token attaches session data", func(t *testing.T) {
		redis := new(mockRedisRepository)
		redis.On("GetSession", mock.Anything, "session-1").Return(&models.Session{
			SessionID: "session-1",
			UserID:    "user-1",
			Role:      constvars.RoleTypePatient,
		}, nil)

		handler, captured := sessionEcho()
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constvars.HeaderAuthorization, "Bearer "+signedToken(t, "session-1"))

		newMiddlewares(redis).Authenticate(handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, *captured, `"user_id":"user-1"`)
	})

	t.Run("missing header yields 401", func(t *testing.T) {
		handler, _ := sessionEcho()
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)

		newMiddlewares(new(mockRedisRepository)).Authenticate(handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("garbage token yields 401", func(t *testing.T) {
		handler, _ := sessionEcho()
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constvars.HeaderAuthorization, "Bearer nope")

		newMiddlewares(new(mockRedisRepository)).Authenticate(handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("expired session yields 401", func(t *testing.T) {
		redis := new(mockRedisRepository)
		redis.On("GetSession", mock.Anything, "session-1").Return(nil, nil)

		handler, _ := sessionEcho()
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constvars.HeaderAuthorization, "Bearer "+signedToken(t, "session-1"))

		newMiddlewares(redis).Authenticate(handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestOptionalAuthenticate(t *testing.T) {
	t.Run("no header passes through without session", func(t *testing.T) {
		handler, captured := sessionEcho()
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)

		newMiddlewares(new(mockRedisRepository)).OptionalAuthenticate(handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, *captured)
	})

	t.Run("bad token passes through without session", func(t *testing.T) {
		handler, captured := sessionEcho()
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constvars.HeaderAuthorization, "Bearer nope")

		newMiddlewares(new(mockRedisRepository)).OptionalAuthenticate(handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, *captured)
	})

	t.Run("valid token attaches session", func(t *testing.T) {
		redis := new(mockRedisRepository)
		redis.On("GetSession", mock.Anything, "session-1").Return(&models.Session{
			SessionID: "session-1",
			UserID:    "user-1",
			Role:      constvars.RoleTypePatient,
		}, nil)

		handler, captured := sessionEcho()
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constvars.HeaderAuthorization, "Bearer "+signedToken(t, "session-1"))

		newMiddlewares(redis).OptionalAuthenticate(handler).ServeHTTP(recorder, request)

		assert.NotEmpty(t, *captured)
	})
}

func TestRequireRole(t *testing.T) {
	withSession := func(role string) *http.Request {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		sessionJSON := `{"session_id":"s1","user_id":"u1","role":"` + role + `"}`
		ctx := context.WithValue(request.Context(), constvars.CONTEXT_SESSION_DATA_KEY, sessionJSON)
		return request.WithContext(ctx)
	}

	t.Run("matching role passes", func(t *testing.T) {
		handler, _ := sessionEcho()
		recorder := httptest.NewRecorder()

		newMiddlewares(new(mockRedisRepository)).RequireRole(constvars.RoleTypeDoctor)(handler).ServeHTTP(recorder, withSession(constvars.RoleTypeDoctor))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("mismatched role yields 403", func(t *testing.T) {
		handler, _ := sessionEcho()
		recorder := httptest.NewRecorder()

		newMiddlewares(new(mockRedisRepository)).RequireRole(constvars.RoleTypeDoctor)(handler).ServeHTTP(recorder, withSession(constvars.RoleTypePatient))

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("missing session yields 401", func(t *testing.T) {
		handler, _ := sessionEcho()
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)

		newMiddlewares(new(mockRedisRepository)).RequireRole(constvars.RoleTypeDoctor)(handler).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

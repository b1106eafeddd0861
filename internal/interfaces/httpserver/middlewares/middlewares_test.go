package middlewares

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/auth"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/utils/platformerrors"
)

type MockResolver struct {
	ResolveFunc func(ctx context.Context, username string) (uint, error)
}

func (m *MockResolver) Resolve(ctx context.Context, username string) (uint, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, username)
	}
	return 0, nil
}

func TestRequestIDGeneratesAndEchoes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, platformerrors.RequestIDFromContext(c.Request.Context()))
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(requestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get(requestIDHeader))
	assert.Equal(t, "req-123", rec.Body.String())
}

func TestIdentityPrefersAuthSubject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var seen []string
	resolver := &MockResolver{ResolveFunc: func(_ context.Context, username string) (uint, error) {
		seen = append(seen, username)
		if username == "alice" {
			return 7, nil
		}
		return 1, nil
	}}

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if c.GetHeader("X-Test-Subject") != "" {
			c.Set(auth.SubjectKey, c.GetHeader("X-Test-Subject"))
		}
		c.Next()
	})
	engine.Use(Identity(resolver, "default"))
	engine.GET("/", func(c *gin.Context) {
		id, ok := UserID(c)
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.JSONEq(t, `{"user_id":1}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Test-Subject", "alice")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.JSONEq(t, `{"user_id":7}`, rec.Body.String())

	assert.Equal(t, []string{"default", "alice"}, seen)
}

func TestIdentityFailureAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := &MockResolver{ResolveFunc: func(context.Context, string) (uint, error) {
		return 0, errors.New("db down")
	}}

	engine := gin.New()
	engine.Use(Identity(resolver, "default"))
	called := false
	engine.GET("/", func(c *gin.Context) { called = true })

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, called)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	engine := gin.New()
	engine.Use(RequestID(), LoggingMiddleware(zerolog.New(&buf)))
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/api/v1/conversations/:id", func(c *gin.Context) {
		_ = c.Error(errors.New("conversation not found"))
		c.Status(http.StatusNotFound)
	})

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, buf.String())

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/conversations/42", nil))
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "/api/v1/conversations/:id", line["route"])
	assert.Equal(t, "42", line["resource_id"])
	assert.EqualValues(t, 404, line["status"])
	assert.NotEmpty(t, line["request_id"])
	assert.Equal(t, []any{"conversation not found"}, line["errors"])

	buf.Reset()
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "unmatched", line["route"])
	assert.Equal(t, "/nope", line["path"])
}

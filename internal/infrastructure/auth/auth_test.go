package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/config"
)

func newTestEngine(t *testing.T, v *Validator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(v.Middleware())
	engine.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(SubjectKey))
	})
	return engine
}

func TestMiddlewareDisabledPassesThrough(t *testing.T) {
	v, err := NewValidator(context.Background(), &config.Config{AuthEnabled: false}, zerolog.Nop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	newTestEngine(t, v).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestMiddlewareExtractsSubject(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	cfg := &config.Config{AuthEnabled: true, AuthIssuer: "https://issuer.test", AuthAudience: "bot-gpt"}
	v := NewValidatorWithKeyfunc(cfg, func(*jwt.Token) (interface{}, error) { return &key.PublicKey, nil }, zerolog.Nop())
	engine := newTestEngine(t, v)

	sign := func(claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	valid := sign(jwt.MapClaims{
		"sub": "alice",
		"iss": "https://issuer.test",
		"aud": "bot-gpt",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	wrongIssuer := sign(jwt.MapClaims{
		"sub": "alice",
		"iss": "https://evil.test",
		"aud": "bot-gpt",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "valid token", header: "Bearer " + valid, status: http.StatusOK, body: "alice"},
		{name: "missing token", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "wrong issuer", header: "Bearer " + wrongIssuer, status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "BOT GPT API", cfg.ServiceName)
	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLMDefaultModel)
	assert.Equal(t, 2048, cfg.LLMMaxTokens)
	assert.Equal(t, 32768, cfg.LLMMaxContextTokens)
	assert.InDelta(t, 0.7, cfg.LLMTemperature, 0.0001)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 3, cfg.RAGTopK)
	assert.Equal(t, 500, cfg.ChunkSize)
	assert.Equal(t, "default", cfg.DefaultUsername)
	assert.Equal(t, "none", cfg.LogContent)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.NoError(t, cfg.Validate())
}

func TestLoadRequiresAuthSettings(t *testing.T) {
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("AUTH_ISSUER", "")
	t.Setenv("AUTH_JWKS_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_ISSUER")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "missing api key", mutate: func(c *Config) { c.LLMAPIKey = " " }, wantErr: "LLM_API_KEY"},
		{name: "budget not positive", mutate: func(c *Config) { c.LLMMaxContextTokens = c.LLMMaxTokens }, wantErr: "LLM_MAX_CONTEXT_TOKENS"},
		{name: "zero top k", mutate: func(c *Config) { c.RAGTopK = 0 }, wantErr: "RAG_TOP_K"},
		{name: "empty default user", mutate: func(c *Config) { c.DefaultUsername = "" }, wantErr: "DEFAULT_USERNAME"},
		{name: "lock shorter than model call", mutate: func(c *Config) { c.RedisURL = "redis://cache:6379"; c.LockTTL = 30 * time.Second }, wantErr: "LOCK_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				LLMAPIKey:           "key",
				LLMMaxTokens:        2048,
				LLMMaxContextTokens: 32768,
				RAGTopK:             3,
				ChunkSize:           500,
				DefaultUsername:     "default",
				LLMTimeout:          60 * time.Second,
				LockTTL:             2 * time.Minute,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("QUANTSLEARN_LLM_PROVIDER", "mock")
	t.Setenv("QUANTSLEARN_DB", "/tmp/quantslearn-test.db")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8090", cfg.Addr)
	assert.Equal(t, "http://localhost:8080", cfg.WeaviateURL)
	assert.Equal(t, "notes", cfg.NotesDir)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "/tmp/quantslearn-test.db", cfg.DBPath)
	assert.Equal(t, "mock", cfg.LLM.Provider)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("QUANTSLEARN_LLM_PROVIDER", "mock")
	t.Setenv("QUANTSLEARN_DB", "/tmp/quantslearn-test.db")
	t.Setenv("QUANTSLEARN_ADDR", ":9000")
	t.Setenv("QUANTSLEARN_WEAVIATE_URL", "http://weaviate:8080")
	t.Setenv("QUANTSLEARN_NOTES_DIR", "/srv/notes")
	t.Setenv("QUANTSLEARN_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "http://weaviate:8080", cfg.WeaviateURL)
	assert.Equal(t, "/srv/notes", cfg.NotesDir)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.AllowedOrigins)
}

func TestFromEnv_ExplicitProvider(t *testing.T) {
	t.Setenv("QUANTSLEARN_DB", "/tmp/quantslearn-test.db")
	for _, key := range []string{
		"QUANTSLEARN_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY",
		"QUANTSLEARN_OPENAI_API_KEY", "OPENAI_API_KEY",
		"QUANTSLEARN_GEMINI_API_KEY", "GEMINI_API_KEY",
	} {
		t.Setenv(key, "")
	}

	// An explicit provider is flagged even when it cannot validate,
	// so callers can fail loudly instead of silently degrading.
	t.Setenv("QUANTSLEARN_LLM_PROVIDER", "anthropic")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.LLMExplicit)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Error(t, cfg.LLM.Validate())

	t.Setenv("QUANTSLEARN_LLM_PROVIDER", "")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.LLMExplicit)
}

func TestSplitOrigins_DropsEmptyEntries(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitOrigins("a,, b ,"))
}

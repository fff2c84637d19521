package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-relay/pkg/models"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "LLM_API_KEY", "LLM_PROVIDER", "LLM_MODEL", "LLM_BASE_URL", "PORT", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearLLMEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORS.AllowedOrigins)

	assert.Equal(t, models.GenerationParams{Temperature: 1.0, MaxOutputTokens: 4096, SearchAugmented: true}, cfg.Generation.Recommendation)
	assert.Equal(t, models.GenerationParams{Temperature: 1.0, MaxOutputTokens: 4096, SearchAugmented: true}, cfg.Generation.MarketTrends)
	assert.Equal(t, models.GenerationParams{Temperature: 0.7, MaxOutputTokens: 512}, cfg.Generation.Chat)
}

func TestLoadConfig_MissingFileIsNotAnError(t *testing.T) {
	clearLLMEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
}

func TestLoadConfig_YAMLWithEnvExpansion(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("RELAY_TEST_KEY", "from-env")

	path := writeConfigFile(t, `
server:
  port: 9100
llm:
  provider: claude
  api_key: ${RELAY_TEST_KEY}
  model: claude-3-7-sonnet-latest
generation:
  chat:
    temperature: 0.2
    max_output_tokens: 128
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "from-env", cfg.LLM.APIKey)
	assert.Equal(t, float32(0.2), cfg.Generation.Chat.Temperature)
	assert.Equal(t, int32(128), cfg.Generation.Chat.MaxOutputTokens)
	// untouched sections keep defaults
	assert.Equal(t, int32(4096), cfg.Generation.Recommendation.MaxOutputTokens)
}

func TestLoadConfig_UnresolvedKeyReferenceIsCleared(t *testing.T) {
	clearLLMEnv(t)

	path := writeConfigFile(t, "llm:\n  api_key: ${RELAY_TEST_UNSET_KEY}\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	clearLLMEnv(t)

	path := writeConfigFile(t, "server: [unterminated")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("LLM_API_KEY", "generic")
	t.Setenv("GEMINI_API_KEY", "gemini-specific")
	t.Setenv("PORT", "8123")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "gemini-specific", cfg.LLM.APIKey)
	assert.Equal(t, 8123, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)

	cfg.LLM.APIKey = "key"
	assert.NoError(t, cfg.Validate())

	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestGenerationFor(t *testing.T) {
	cfg := Default()

	for _, mode := range models.AllModes() {
		_, err := cfg.GenerationFor(mode)
		assert.NoError(t, err, mode.String())
	}

	_, err := cfg.GenerationFor(models.Mode(42))
	assert.ErrorIs(t, err, models.ErrUnknownMode)
}

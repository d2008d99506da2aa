package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(DefaultAPIKeyEnv, "gsk_from_env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.Equal(t, "gsk_from_env", cfg.LLM.APIKey)
	assert.Equal(t, DefaultServerAddr, cfg.ServerAddr)
	assert.Equal(t, 30, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, []string{"en"}, cfg.YouTube.Languages)
	assert.False(t, cfg.StrictErrors)
}

func TestLoadFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MY_KEY", "sk_custom")
	path := writeConfig(t, `{
		"llm": {"provider": "OpenAI", "model": "gpt-4o-mini", "api_key_env": "MY_KEY"},
		"server_addr": "127.0.0.1:9000",
		"fetch": {"timeout_seconds": 5, "user_agent": "test-agent"},
		"youtube": {"languages": ["de", "en"]},
		"strict_errors": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "sk_custom", cfg.LLM.APIKey)
	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddr)
	assert.Equal(t, 5, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, "test-agent", cfg.Fetch.UserAgent)
	assert.Equal(t, []string{"de", "en"}, cfg.YouTube.Languages)
	assert.True(t, cfg.StrictErrors)
}

func TestLoadFileKeyWinsOverEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(DefaultAPIKeyEnv, "from_env")
	cfg, err := Load(writeConfig(t, `{"llm": {"api_key": "from_file"}}`))
	require.NoError(t, err)
	assert.Equal(t, "from_file", cfg.LLM.APIKey)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(DefaultAPIKeyEnv, "")
	os.Unsetenv(DefaultAPIKeyEnv)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GROQ_API_KEY=gsk_dotenv\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "gsk_dotenv", cfg.LLM.APIKey)
}

func TestLoadMissingKeyIsNotAnError(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(DefaultAPIKeyEnv, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.LLM.APIKey)
}

func TestLoadInvalid(t *testing.T) {
	chdir(t, t.TempDir())
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed json", raw: `{this is not json}`},
		{name: "unknown provider", raw: `{"llm": {"provider": "llamafile"}}`},
		{name: "deepseek without base url", raw: `{"llm": {"provider": "deepseek"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.raw))
			assert.Error(t, err)
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

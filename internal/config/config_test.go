package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv registers the restore; the vars must be absent, not blank.
	for _, v := range []string{"GOALQUEST_DB", "GOALQUEST_LOG_LEVEL", "OPENAI_API_KEY", "GOALQUEST_AI_MODEL", "GOALQUEST_AI_TIMEOUT"} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, cfg.DBPath)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Empty(t, cfg.OpenAIKey)
	require.Equal(t, "gpt-4o-mini", cfg.AIModel)
	require.Equal(t, 20*time.Second, cfg.AITimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GOALQUEST_DB", "/tmp/custom.db")
	t.Setenv("GOALQUEST_LOG_LEVEL", "debug")
	t.Setenv("GOALQUEST_AI_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom.db", cfg.DBPath)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 5*time.Second, cfg.AITimeout)
}

package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"goalquest/internal/storage"
)

// Config is read from the environment (a .env file is honored when present).
type Config struct {
	DBPath   string `env:"GOALQUEST_DB" env-default:""`
	LogLevel string `env:"GOALQUEST_LOG_LEVEL" env-default:"warn"`

	// Advisory AI settings. An empty key disables the API client; every
	// advisor call then uses its deterministic fallback.
	OpenAIKey     string        `env:"OPENAI_API_KEY" env-default:""`
	OpenAIBaseURL string        `env:"OPENAI_BASE_URL" env-default:""`
	AIModel       string        `env:"GOALQUEST_AI_MODEL" env-default:"gpt-4o-mini"`
	AITimeout     time.Duration `env:"GOALQUEST_AI_TIMEOUT" env-default:"20s"`
}

func Load() (*Config, error) {
	// Missing .env is fine; the environment alone is enough.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if cfg.DBPath == "" {
		path, err := storage.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}
	return &cfg, nil
}

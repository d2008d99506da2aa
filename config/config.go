// Package config loads the service configuration from an optional JSON file,
// an optional .env file and the process environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIKeyEnv  = "GROQ_API_KEY"
	DefaultServerAddr = ":8000"
	DefaultProvider   = "groq"
	defaultTimeout    = 30
)

// Config holds everything read once at process start.
type Config struct {
	LLM          *LLMConfig    `json:"llm,omitempty"`
	ServerAddr   string        `json:"server_addr,omitempty"`
	Fetch        FetchConfig   `json:"fetch"`
	YouTube      YouTubeConfig `json:"youtube"`
	StrictErrors bool          `json:"strict_errors,omitempty"`
}

// LLMConfig selects the completion provider. APIKey normally stays empty in
// the file and is read from the variable named by APIKeyEnv.
type LLMConfig struct {
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	APIKey    string `json:"api_key,omitempty"`
	APIKeyEnv string `json:"api_key_env,omitempty"`
	BaseURL   string `json:"base_url,omitempty"`
}

type FetchConfig struct {
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
	UserAgent      string `json:"user_agent,omitempty"`
}

type YouTubeConfig struct {
	Languages []string `json:"languages,omitempty"`
}

// Load reads path if it exists, then .env, then the environment. A missing
// config file is not an error; every field has a default.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("invalid config format: %w", err)
			}
		}
	}

	_ = godotenv.Load()

	cfg.applyDefaults()
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv(cfg.LLM.APIKeyEnv)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LLM == nil {
		c.LLM = &LLMConfig{}
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = DefaultProvider
	}
	c.LLM.Provider = strings.ToLower(c.LLM.Provider)
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = DefaultAPIKeyEnv
	}
	if c.ServerAddr == "" {
		c.ServerAddr = DefaultServerAddr
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = defaultTimeout
	}
	if len(c.YouTube.Languages) == 0 {
		c.YouTube.Languages = []string{"en"}
	}
}

// Validate rejects provider settings that can never work. A missing API key
// passes; it only fails once the first completion is attempted.
func (c Config) Validate() error {
	switch c.LLM.Provider {
	case "groq", "openai", "mock":
	case "deepseek":
		if c.LLM.BaseURL == "" {
			return errors.New("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
	default:
		return fmt.Errorf("llm provider %s not supported", c.LLM.Provider)
	}
	return nil
}

package publisher

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Config holds the blog endpoint and credentials, plus the optional model
// configuration used for excerpt generation.
type Config struct {
	Endpoint string     `json:"endpoint"`
	Username string     `json:"username"`
	Password string     `json:"password"`
	BlogID   int        `json:"blog_id,omitempty"`
	LLM      *LLMConfig `json:"llm,omitempty"`
}

// LLMConfig is reserved for the excerpt generator (optional, does not
// affect the synchronization flow).
type LLMConfig struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// passwordEnv lets the password stay out of the config file.
const passwordEnv = "HTML2WP_PASSWORD"

// LoadConfig reads JSON config from disk.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Password == "" {
		cfg.Password = os.Getenv(passwordEnv)
	}
	if cfg.Endpoint == "" || cfg.Username == "" || cfg.Password == "" {
		return Config{}, errors.New("config must include endpoint, username, and password")
	}
	return cfg, nil
}

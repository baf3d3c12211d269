package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Settings is the process configuration read from the environment, optionally
// seeded from a .env file. It is read once at startup; the server must be
// restarted for .env changes to take effect.
// See .env.example for documentation of each key.
type Settings struct {
	Addr string `env:"AGENTD_ADDR" envDefault:":8443"`

	// Upstream model endpoint credentials. api_key is the documented
	// lower-case key in .env.
	APIKey          string `env:"api_key" envDefault:""`
	UpstreamBaseURL string `env:"OPENAI_API_BASE_URL" envDefault:""`
	Model           string `env:"MODEL_NAME" envDefault:"deepseek-v3-250324"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// MCP server definitions (yaml/json file). Empty means built-in defaults.
	MCPConfigPath string `env:"MCP_CONFIG" envDefault:""`

	// Background task retry policy.
	TaskMaxRetries    int `env:"TASK_MAX_RETRIES" envDefault:"3"`
	TaskRetryDelaySec int `env:"TASK_RETRY_DELAY" envDefault:"15"`
}

// LoadSettings reads the .env file at path (if it exists) and then the
// process environment. A missing .env file is not an error: everything can be
// provided through the environment directly.
func LoadSettings(path string) (Settings, error) {
	if path != "" {
		// Load does not override variables already present in the
		// environment, which keeps shell exports authoritative.
		_ = godotenv.Load(path)
	}
	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse environment: %w", err)
	}
	return s, nil
}

// Validate reports configuration problems that would make the server
// unusable. It is deliberately minimal: only the documented hard requirement
// is enforced.
func (s Settings) Validate() error {
	if s.APIKey == "" {
		return fmt.Errorf("api_key is not set; copy .env.example to .env and fill it in")
	}
	return nil
}

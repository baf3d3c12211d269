package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig holds runtime parameters loadable from a config file.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type FileConfig struct {
	Addr            string `json:"addr" yaml:"addr" toml:"addr"`
	UpstreamBaseURL string `json:"upstream_base_url" yaml:"upstream_base_url" toml:"upstream_base_url"`
	Model           string `json:"model" yaml:"model" toml:"model"`
	LogLevel        string `json:"log_level" yaml:"log_level" toml:"log_level"`
	MCPConfigPath   string `json:"mcp_config" yaml:"mcp_config" toml:"mcp_config"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (FileConfig, error) {
	var cfg FileConfig
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

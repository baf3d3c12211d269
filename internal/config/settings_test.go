package config

import (
	"os"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("")
	if err != nil { t.Fatalf("load: %v", err) }
	if s.Addr != ":8443" { t.Fatalf("addr=%q", s.Addr) }
	if s.TaskMaxRetries != 3 { t.Fatalf("retries=%d", s.TaskMaxRetries) }
	if s.TaskRetryDelaySec != 15 { t.Fatalf("delay=%d", s.TaskRetryDelaySec) }
}

func TestLoadSettingsFromDotEnv(t *testing.T) {
	// godotenv mutates the process environment; undo it for later tests.
	defer os.Unsetenv("api_key")
	defer os.Unsetenv("MODEL_NAME")
	d := t.TempDir()
	p := writeTempFile(t, d, ".env", "api_key=secret-123\nMODEL_NAME=test-model\n")
	s, err := LoadSettings(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if s.APIKey != "secret-123" { t.Fatalf("api key=%q", s.APIKey) }
	if s.Model != "test-model" { t.Fatalf("model=%q", s.Model) }
}

func TestLoadSettingsEnvWinsOverFile(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, ".env", "MODEL_NAME=from-file\n")
	t.Setenv("MODEL_NAME", "from-env")
	s, err := LoadSettings(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if s.Model != "from-env" { t.Fatalf("model=%q", s.Model) }
}

func TestValidateRequiresAPIKey(t *testing.T) {
	var s Settings
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for missing api_key")
	}
	s.APIKey = "k"
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}

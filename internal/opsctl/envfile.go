package opsctl

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	envFileName     = ".env"
	envExampleName  = ".env.example"
	envAPIKeyName   = "api_key"
	envBaseURLName  = "OPENAI_API_BASE_URL"
	envModelVarName = "MODEL_NAME"
)

// envInit seeds a working .env from the checked-in example. Refuses to
// clobber an existing file unless force is set.
func envInit(force bool) error {
	if _, err := os.Stat(envFileName); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", envFileName)
	}
	data, err := os.ReadFile(envExampleName)
	if err != nil {
		return fmt.Errorf("read %s: %w", envExampleName, err)
	}
	if err := os.WriteFile(envFileName, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", envFileName, err)
	}
	info("[env] wrote %s from %s; fill in %s before starting the server", envFileName, envExampleName, envAPIKeyName)
	return nil
}

// envCheck parses .env without mutating the process environment and verifies
// the keys the server refuses to start without.
func envCheck(path string) error {
	if path == "" {
		path = envFileName
	}
	vals, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if vals[envAPIKeyName] == "" {
		return fmt.Errorf("%s: %s is empty", path, envAPIKeyName)
	}
	if vals[envBaseURLName] == "" {
		warn("[env] %s not set; synchronous execute will fail until it is", envBaseURLName)
	}
	if vals[envModelVarName] == "" {
		info("[env] %s not set; the server default applies", envModelVarName)
	}
	info("[env] %s looks usable", path)
	return nil
}

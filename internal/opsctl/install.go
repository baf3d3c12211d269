package opsctl

import (
	"context"
	"fmt"
	"os/exec"
)

// installUv ensures the uv package manager is present. Prefers the official
// installer script; falls back to snap when curl is unavailable.
func installUv() error {
	if _, err := exec.LookPath("uv"); err == nil {
		info("[install] uv already installed")
		return runCmdVerbose(context.Background(), "uv", "--version")
	}
	info("[install] Installing uv...")
	if _, err := exec.LookPath("curl"); err == nil {
		if err := runCmdVerbose(context.Background(), "sh", "-c", "curl -LsSf https://astral.sh/uv/install.sh | sh"); err != nil {
			return fmt.Errorf("uv installer script failed: %w", err)
		}
	} else if _, err := exec.LookPath("snap"); err == nil {
		if err := runCmdVerbose(context.Background(), "snap", "install", "astral-uv", "--classic"); err != nil {
			return fmt.Errorf("snap install astral-uv failed: %w", err)
		}
	} else {
		return fmt.Errorf("neither curl nor snap available; install uv manually")
	}
	if _, err := exec.LookPath("uv"); err != nil {
		return fmt.Errorf("uv still not in PATH after install; open a new shell or adjust PATH")
	}
	info("[install] uv installed")
	return nil
}

// installNode ensures node/npm are present (the MCP servers launched via npx
// need them). Uses snap on hosts that have it.
func installNode() error {
	if _, err := exec.LookPath("npm"); err == nil {
		info("[install] npm already installed")
		return runCmdVerbose(context.Background(), "npm", "--version")
	}
	info("[install] Installing Node.js...")
	if _, err := exec.LookPath("snap"); err != nil {
		return fmt.Errorf("npm not found and snap unavailable; install Node.js manually")
	}
	if err := runCmdVerbose(context.Background(), "snap", "install", "node", "--classic"); err != nil {
		return fmt.Errorf("snap install node failed: %w", err)
	}
	if _, err := exec.LookPath("npm"); err != nil {
		return fmt.Errorf("npm still not in PATH after install")
	}
	info("[install] Node.js installed")
	return nil
}

// installGo downloads the Go module dependencies of this repo.
func installGo() error {
	info("[install] Downloading Go modules...")
	return runCmdVerbose(context.Background(), "go", "mod", "download")
}

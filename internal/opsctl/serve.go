package opsctl

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"
)

const defaultServeWait = 90 * time.Second

// serveStart spawns the agentd server on the given port and blocks until its
// health endpoint answers. The child keeps running after opsctl exits; stop
// frees the port with serveStop.
func serveStart(port int, force bool, envFile string) error {
	if err := ensurePort(port, force); err != nil {
		return err
	}
	shellCmd := fmt.Sprintf("go run ./cmd/agentd --addr :%d", port)
	if envFile != "" {
		shellCmd += fmt.Sprintf(" --env-file '%s'", envFile)
	}
	info("[serve] starting: %s", shellCmd)
	cmd := exec.Command("bash", "-lc", shellCmd)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start agentd: %w", err)
	}
	TrackProcess(cmd)

	url := fmt.Sprintf("http://127.0.0.1:%d/healthz", port)
	if err := waitHTTP(url, 200, defaultServeWait); err != nil {
		_ = killProcesses()
		return fmt.Errorf("agentd did not become healthy: %w", err)
	}
	info("[serve] agentd healthy on :%d (pid %d)", port, cmd.Process.Pid)
	return nil
}

// serveStop kills whatever listens on the port. It works across opsctl
// invocations, unlike the in-process tracker.
func serveStop(port int) error {
	busy, _ := isPortBusy(port)
	if !busy {
		info("[serve] nothing listening on :%d", port)
		return nil
	}
	if err := runCmdVerbose(context.Background(), "fuser", "-k", fmt.Sprintf("%d/tcp", port)); err != nil {
		return fmt.Errorf("kill listeners on :%d: %w", port, err)
	}
	time.Sleep(300 * time.Millisecond)
	if busy2, _ := isPortBusy(port); busy2 {
		return fmt.Errorf("port %d still in use after kill", port)
	}
	info("[serve] stopped agentd on :%d", port)
	return nil
}

// serveWait blocks until the server reports ready, meaning the MCP backend
// finished initializing, not merely that the process is up.
func serveWait(port int, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultServeWait
	}
	url := fmt.Sprintf("http://127.0.0.1:%d/readyz", port)
	if err := waitHTTP(url, 200, timeout); err != nil {
		return err
	}
	info("[serve] agentd ready on :%d", port)
	return nil
}

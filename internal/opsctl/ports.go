package opsctl

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

func isPortBusy(port int) (bool, string) {
	// Try connecting; if succeeds, someone is listening.
	conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", port), 200*time.Millisecond)
	if err == nil {
		_ = conn.Close()
		return true, "tcp listener detected"
	}
	return false, ""
}

func waitHTTP(url string, want int, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	client := &http.Client{Timeout: 2 * time.Second}
	for {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == want {
				return nil
			}
		}
		select {
		case <-time.After(1 * time.Second):
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for %s to return %d", url, want)
		}
	}
}

func ensurePort(port int, force bool) error {
	busy, desc := isPortBusy(port)
	if !busy {
		info("[ports] Port %d is free", port)
		return nil
	}
	warn("[ports] Port %d is busy: %s", port, desc)
	if !force {
		return fmt.Errorf("port %d is in use; re-run with --force or free it", port)
	}
	info("[ports] --force set; attempting to kill listeners on :%d", port)
	_ = runCmdVerbose(context.Background(), "fuser", "-k", fmt.Sprintf("%d/tcp", port))
	time.Sleep(300 * time.Millisecond)
	if busy2, _ := isPortBusy(port); busy2 {
		return fmt.Errorf("could not free port %d; still in use", port)
	}
	info("[ports] Freed port %d", port)
	return nil
}

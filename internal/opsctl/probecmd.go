package opsctl

import (
	"context"
	"fmt"
	"os"
	"time"

	"agentd/internal/probe"
)

const defaultProbeInput = "Hello!"

// runProbe exercises the deployed server end to end and prints the report.
// Exit status is the contract here: callers grep the banner, scripts check
// the code.
func runProbe(baseURL string, timeout time.Duration, input string) error {
	if input == "" {
		input = defaultProbeInput
	}
	p := probe.New(baseURL, timeout)
	results := p.Run(context.Background(), input)
	if !probe.Report(os.Stdout, results) {
		return fmt.Errorf("health check failed against %s", baseURL)
	}
	return nil
}

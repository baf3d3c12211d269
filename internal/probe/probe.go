// Package probe implements the black-box health check for a running agentd
// endpoint: one GET against the server root and one POST against the execute
// endpoint. Probes never retry; a failure is terminal and reported as-is.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"agentd/pkg/types"
)

// DefaultTimeout bounds each probe, including connection establishment.
const DefaultTimeout = 60 * time.Second

// Result is the outcome of a single probe.
type Result struct {
	Name   string
	Passed bool
	Status int
	Err    error
}

// Prober issues liveness probes against a base URL.
type Prober struct {
	baseURL string
	hc      *http.Client
}

// New builds a Prober. timeout <= 0 falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Prober{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}
}

// ok reports whether an HTTP status counts as success.
func ok(status int) bool { return status >= 200 && status < 300 }

// Root probes GET <base>/.
func (p *Prober) Root(ctx context.Context) Result {
	res := Result{Name: "GET /"}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/", nil)
	if err != nil {
		res.Err = err
		return res
	}
	resp, err := p.hc.Do(req)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	res.Status = resp.StatusCode
	res.Passed = ok(resp.StatusCode)
	if !res.Passed {
		res.Err = fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return res
}

// Execute probes POST <base>/api/v1/mcp/execute with a minimal non-polling
// payload.
func (p *Prober) Execute(ctx context.Context, input string) Result {
	res := Result{Name: "POST /api/v1/mcp/execute"}
	body, err := json.Marshal(types.ExecuteRequest{Input: input, Polling: false})
	if err != nil {
		res.Err = err
		return res
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/v1/mcp/execute", bytes.NewReader(body))
	if err != nil {
		res.Err = err
		return res
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := p.hc.Do(req)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	res.Status = resp.StatusCode
	res.Passed = ok(resp.StatusCode)
	if !res.Passed {
		res.Err = fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return res
}

// Run performs both probes in order and returns their results.
func (p *Prober) Run(ctx context.Context, input string) []Result {
	return []Result{
		p.Root(ctx),
		p.Execute(ctx, input),
	}
}

// Report writes a labeled pass/fail line per result plus the summary banner
// the ops scripts grep for, and reports whether everything passed.
func Report(w io.Writer, results []Result) bool {
	all := true
	for i, r := range results {
		if r.Passed {
			fmt.Fprintf(w, "[%d/%d] %-28s PASS (status %d)\n", i+1, len(results), r.Name, r.Status)
			continue
		}
		all = false
		if r.Status != 0 {
			fmt.Fprintf(w, "[%d/%d] %-28s FAIL (status %d)\n", i+1, len(results), r.Name, r.Status)
		} else {
			fmt.Fprintf(w, "[%d/%d] %-28s FAIL (%v)\n", i+1, len(results), r.Name, r.Err)
		}
	}
	if all {
		fmt.Fprintln(w, "所有测试通过")
	} else {
		fmt.Fprintln(w, "存在失败的测试")
	}
	return all
}

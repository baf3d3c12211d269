package opsctl

import (
	"errors"
	"sync"
	"testing"
	"time"

	"agentd/internal/agent"
)

func stubPrefetch(t *testing.T, fn func(agent.ServerSpec, map[string]string, time.Duration) prefetchResult) {
	t.Helper()
	old := fnPrefetchOne
	fnPrefetchOne = fn
	t.Cleanup(func() { fnPrefetchOne = old })
}

func TestPreloadServers_AllSucceed(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}
	stubPrefetch(t, func(spec agent.ServerSpec, env map[string]string, timeout time.Duration) prefetchResult {
		mu.Lock()
		seen[spec.Name] = true
		mu.Unlock()
		return prefetchResult{name: spec.Name}
	})
	specs := []agent.ServerSpec{
		{Name: "fetch", Command: "uvx", Args: []string{"mcp-server-fetch"}},
		{Name: "memory", Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-memory"}},
	}
	if err := preloadServers(specs, false, time.Second); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected 2 prefetches, saw %d", len(seen))
	}
}

func TestPreloadServers_TimeoutIsNotFailure(t *testing.T) {
	stubPrefetch(t, func(spec agent.ServerSpec, env map[string]string, timeout time.Duration) prefetchResult {
		return prefetchResult{name: spec.Name, timedOut: true}
	})
	specs := []agent.ServerSpec{{Name: "time", Command: "uvx", Args: []string{"mcp-server-time"}}}
	if err := preloadServers(specs, false, time.Second); err != nil {
		t.Fatalf("timeout treated as failure: %v", err)
	}
}

func TestPreloadServers_RealFailureReported(t *testing.T) {
	stubPrefetch(t, func(spec agent.ServerSpec, env map[string]string, timeout time.Duration) prefetchResult {
		if spec.Name == "git" {
			return prefetchResult{name: spec.Name, err: errors.New("exit status 1")}
		}
		return prefetchResult{name: spec.Name}
	})
	specs := []agent.ServerSpec{
		{Name: "git", Command: "uvx", Args: []string{"mcp-server-git"}},
		{Name: "fetch", Command: "uvx", Args: []string{"mcp-server-fetch"}},
	}
	err := preloadServers(specs, false, time.Second)
	if err == nil {
		t.Fatalf("expected aggregate error")
	}
}

func TestPrefetchOne_AppendsHelpAndMergesEnv(t *testing.T) {
	// "env" exits 0 and ignores --help; also proves the merged vars reach
	// the child without mutating our own environment.
	spec := agent.ServerSpec{Name: "noop", Command: "env", Env: map[string]string{"PREFETCH_PROBE": "1"}}
	res := prefetchOne(spec, map[string]string{"UV_INDEX_URL": "https://mirror.invalid/simple"}, 5*time.Second)
	if res.err != nil || res.timedOut {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestPrefetchOne_TimesOut(t *testing.T) {
	spec := agent.ServerSpec{Name: "sleepy", Command: "bash", Args: []string{"-c", "sleep 5"}}
	res := prefetchOne(spec, nil, 150*time.Millisecond)
	if !res.timedOut {
		t.Fatalf("expected timeout, got %+v", res)
	}
	if res.err != nil {
		t.Fatalf("timeout should not carry an error: %v", res.err)
	}
}

package opsctl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"agentd/internal/agent"
)

// Mirror endpoints used when --mirror is set. UV_INDEX_URL only affects the
// spawned process tree; the npm registry is persisted to the user's npm
// config because npx does not read it from the environment.
const (
	defaultUvMirror  = "https://pypi.tuna.tsinghua.edu.cn/simple"
	defaultNpmMirror = "https://registry.npmmirror.com"
)

// defaultPrefetchTimeout bounds each prefetch command. Some MCP servers never
// exit on --help once cached, so a timeout is treated as "likely cached"
// rather than a failure.
const defaultPrefetchTimeout = 30 * time.Second

type prefetchResult struct {
	name     string
	timedOut bool
	err      error
}

// indirection for stubbing in tests
var fnPrefetchOne = prefetchOne

// preloadServers warms the caches of every configured MCP server command so
// the first real launch does not pay the download cost. All commands run
// concurrently. The aggregate error reflects genuine failures only.
func preloadServers(specs []agent.ServerSpec, mirror bool, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultPrefetchTimeout
	}
	env := map[string]string{}
	if mirror {
		uvMirror := envStr("UV_INDEX_URL", defaultUvMirror)
		env["UV_INDEX_URL"] = uvMirror
		info("[preload] UV_INDEX_URL=%s (child processes only)", uvMirror)
		if err := runCmdVerbose(context.Background(), "npm", "config", "set", "registry", defaultNpmMirror); err != nil {
			warn("[preload] could not persist npm registry mirror: %v", err)
		} else {
			info("[preload] npm registry set to %s (persisted in user npm config)", defaultNpmMirror)
		}
	}

	results := make([]prefetchResult, len(specs))
	var g errgroup.Group
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			info("[preload] prefetching %s: %s %s", spec.Name, spec.Command, strings.Join(spec.Args, " "))
			results[i] = fnPrefetchOne(spec, env, timeout)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		switch {
		case r.timedOut:
			warn("[preload] %s timed out after %s - likely already cached", r.name, timeout)
		case r.err != nil:
			errl("[preload] %s failed: %v", r.name, r.err)
			failed++
		default:
			info("[preload] %s prefetched", r.name)
		}
	}
	if failed > 0 {
		return fmt.Errorf("preload finished with %d of %d prefetches failed", failed, len(results))
	}
	info("[preload] MCP dependency preload complete (%d commands)", len(results))
	return nil
}

// prefetchOne runs one server command with --help appended, discarding its
// output. The command only matters for its side effect of populating the
// package cache.
func prefetchOne(spec agent.ServerSpec, env map[string]string, timeout time.Duration) prefetchResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	merged := make(map[string]string, len(env)+len(spec.Env))
	for k, v := range env {
		merged[k] = v
	}
	for k, v := range spec.Env {
		merged[k] = v
	}
	args := append(append([]string(nil), spec.Args...), "--help")
	err := runEnvCmdQuiet(ctx, merged, spec.Command, args...)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return prefetchResult{name: spec.Name, timedOut: true}
	}
	if err != nil {
		return prefetchResult{name: spec.Name, err: err}
	}
	return prefetchResult{name: spec.Name}
}

// Package agent owns the MCP server processes and the execute path behind
// POST /api/v1/mcp/execute. Servers are launched as stdio subprocesses and
// initialized concurrently at startup; the backend reports ready only once
// every configured server completed its handshake.
package agent

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Completer produces a model reply for a prompt. *llm.Client satisfies this.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Backend is the surface the HTTP layer depends on.
type Backend interface {
	Ready() bool
	Execute(ctx context.Context, input string) (string, error)
}

const initTimeoutPerServer = 60 * time.Second

// Manager starts and supervises the MCP servers and forwards execute
// requests to the upstream model.
type Manager struct {
	mu      sync.RWMutex
	ready   bool
	clients map[string]*mcpclient.Client
	tools   []string

	specs     []ServerSpec
	completer Completer
	log       zerolog.Logger
}

// NewManager builds a Manager; call Initialize before serving traffic.
func NewManager(specs []ServerSpec, completer Completer, log zerolog.Logger) *Manager {
	return &Manager{
		clients:   make(map[string]*mcpclient.Client),
		specs:     specs,
		completer: completer,
		log:       log,
	}
}

// Initialize launches every configured MCP server, performs the MCP
// handshake, and records the combined tool inventory. Any failure leaves the
// backend not ready and tears down the clients that did start.
func (m *Manager) Initialize(ctx context.Context) error {
	m.log.Info().Int("servers", len(m.specs)).Msg("initializing MCP servers")

	var mu sync.Mutex
	clients := make(map[string]*mcpclient.Client, len(m.specs))
	var tools []string

	g, gctx := errgroup.WithContext(ctx)
	for _, spec := range m.specs {
		spec := spec
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, initTimeoutPerServer)
			defer cancel()

			env := make([]string, 0, len(spec.Env))
			for k, v := range spec.Env {
				env = append(env, k+"="+v)
			}
			c, err := mcpclient.NewStdioMCPClient(spec.Command, env, spec.Args...)
			if err != nil {
				return fmt.Errorf("start %s: %w", spec.Name, err)
			}

			initReq := mcp.InitializeRequest{}
			initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
			initReq.Params.ClientInfo = mcp.Implementation{Name: "agentd", Version: "1.0.0"}
			if _, err := c.Initialize(cctx, initReq); err != nil {
				_ = c.Close()
				return fmt.Errorf("initialize %s: %w", spec.Name, err)
			}

			lt, err := c.ListTools(cctx, mcp.ListToolsRequest{})
			if err != nil {
				_ = c.Close()
				return fmt.Errorf("list tools %s: %w", spec.Name, err)
			}

			mu.Lock()
			clients[spec.Name] = c
			for _, tool := range lt.Tools {
				tools = append(tools, tool.Name)
			}
			mu.Unlock()
			m.log.Info().Str("server", spec.Name).Int("tools", len(lt.Tools)).Msg("MCP server ready")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for name, c := range clients {
			m.log.Warn().Str("server", name).Msg("closing MCP client after failed init")
			_ = c.Close()
		}
		m.log.Error().Err(err).Msg("MCP initialization failed")
		return err
	}

	sort.Strings(tools)
	m.mu.Lock()
	m.clients = clients
	m.tools = tools
	m.ready = true
	m.mu.Unlock()
	m.log.Info().Int("tools", len(tools)).Msg("agent backend ready")
	return nil
}

// Ready reports whether initialization completed.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// Tools returns the sorted tool names collected during initialization.
func (m *Manager) Tools() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.tools...)
}

// Execute forwards input to the upstream model. Returns ErrNotReady until
// Initialize has completed.
func (m *Manager) Execute(ctx context.Context, input string) (string, error) {
	if !m.Ready() {
		return "", ErrNotReady()
	}
	return m.completer.Complete(ctx, input)
}

// Shutdown closes all MCP clients, terminating their subprocesses.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	clients := m.clients
	m.clients = make(map[string]*mcpclient.Client)
	m.ready = false
	m.mu.Unlock()
	for name, c := range clients {
		if err := c.Close(); err != nil {
			m.log.Warn().Str("server", name).Err(err).Msg("error closing MCP client")
			continue
		}
		m.log.Info().Str("server", name).Msg("MCP client closed")
	}
}

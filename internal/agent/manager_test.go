package agent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	reply string
	err   error
	last  string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.last = prompt
	return f.reply, f.err
}

func TestExecuteBeforeInitialize(t *testing.T) {
	m := NewManager(nil, &fakeCompleter{}, zerolog.Nop())
	_, err := m.Execute(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, IsNotReady(err))
	assert.False(t, m.Ready())
}

func TestInitializeWithNoServers(t *testing.T) {
	fc := &fakeCompleter{reply: "ok"}
	m := NewManager(nil, fc, zerolog.Nop())
	require.NoError(t, m.Initialize(context.Background()))
	assert.True(t, m.Ready())
	assert.Empty(t, m.Tools())

	out, err := m.Execute(context.Background(), "Hello!")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "Hello!", fc.last)
}

func TestExecutePropagatesCompleterError(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("upstream down")}
	m := NewManager(nil, fc, zerolog.Nop())
	require.NoError(t, m.Initialize(context.Background()))
	_, err := m.Execute(context.Background(), "hi")
	require.Error(t, err)
	assert.False(t, IsNotReady(err))
}

func TestShutdownResetsReadiness(t *testing.T) {
	m := NewManager(nil, &fakeCompleter{}, zerolog.Nop())
	require.NoError(t, m.Initialize(context.Background()))
	m.Shutdown()
	assert.False(t, m.Ready())
}

func TestDefaultServers(t *testing.T) {
	specs := DefaultServers()
	require.NotEmpty(t, specs)
	for _, s := range specs {
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Command)
	}
}

func TestLoadServersYAML(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "mcp.yaml")
	content := "servers:\n  - name: fetch\n    command: uvx\n    args: [mcp-server-fetch]\n  - name: memory\n    command: npx\n    args: [\"-y\", \"@modelcontextprotocol/server-memory\"]\n"
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	specs, err := LoadServers(p)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "fetch", specs[0].Name)
	assert.Equal(t, []string{"mcp-server-fetch"}, specs[0].Args)
}

func TestLoadServersRejectsMissingCommand(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "mcp.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"servers":[{"name":"x"}]}`), 0o644))
	_, err := LoadServers(p)
	require.Error(t, err)
}

func TestLoadServersUnsupportedExtension(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "mcp.toml")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	_, err := LoadServers(p)
	require.Error(t, err)
}

package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerSpec describes one MCP server launched over stdio.
type ServerSpec struct {
	Name    string            `json:"name" yaml:"name"`
	Command string            `json:"command" yaml:"command"`
	Args    []string          `json:"args" yaml:"args"`
	Env     map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// DefaultServers is the built-in MCP server set used when no config file is
// given. Commands resolve through npx/uvx, so first launch downloads the
// packages unless they were preloaded.
func DefaultServers() []ServerSpec {
	return []ServerSpec{
		{Name: "filesystem", Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-filesystem", "./files"}},
		{Name: "excel", Command: "uvx", Args: []string{"excel-mcp-server", "stdio"}},
		{Name: "word-document-server", Command: "uvx", Args: []string{"--from", "office-word-mcp-server", "word_mcp_server"}},
		{Name: "fetch", Command: "uvx", Args: []string{"mcp-server-fetch"}},
		{Name: "git", Command: "uvx", Args: []string{"mcp-server-git"}},
		{Name: "time", Command: "uvx", Args: []string{"mcp-server-time"}},
		{Name: "sequential-thinking", Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-sequential-thinking"}},
		{Name: "memory", Command: "npx", Args: []string{"-y", "@modelcontextprotocol/server-memory"}},
		{Name: "context7", Command: "npx", Args: []string{"-y", "@upstash/context7-mcp@latest"}},
	}
}

// LoadServers reads server specs from a yaml or json file:
//
//	servers:
//	  - name: fetch
//	    command: uvx
//	    args: [mcp-server-fetch]
func LoadServers(path string) ([]ServerSpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Servers []ServerSpec `json:"servers" yaml:"servers"`
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported mcp config extension: %s", ext)
	}
	for i, s := range doc.Servers {
		if s.Name == "" || s.Command == "" {
			return nil, fmt.Errorf("server %d: name and command are required", i)
		}
	}
	return doc.Servers, nil
}

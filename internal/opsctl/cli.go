package opsctl

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"agentd/internal/agent"
)

type Config struct {
	Port    int
	BaseURL string
	LogLvl  string
}

func defaultConfig() *Config {
	return &Config{
		Port:    envInt("AGENTD_PORT", 8443),
		BaseURL: envStr("AGENTD_BASE_URL", ""),
		LogLvl:  envStr("OPSCTL_LOG_LEVEL", "info"),
	}
}

// baseURL resolves the probe target: explicit flag wins, otherwise the local
// server on the configured port.
func (c *Config) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("http://127.0.0.1:%d", c.Port)
}

// buildRootCmd constructs the Cobra command tree wired to the fn* actions.
func buildRootCmd(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "opsctl",
		Short:         "Deployment and health-check utilities for agentd",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().IntVar(&cfg.Port, "port", cfg.Port, "agentd port (defaults AGENTD_PORT or 8443)")
	root.PersistentFlags().StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "server base URL; overrides --port for probes")
	root.PersistentFlags().StringVar(&cfg.LogLvl, "log-level", cfg.LogLvl, "Log level: debug|info|warn|error")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		SetLogLevel(cfg.LogLvl)
	}

	// install group
	installCmd := &cobra.Command{Use: "install", Short: "Install runtime prerequisites", RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("install requires a subcommand: all|uv|node|go")
	}}
	installAll := &cobra.Command{Use: "all", Short: "Install uv, node, go deps", Example: "  opsctl install all", RunE: func(cmd *cobra.Command, args []string) error {
		if err := fnInstallUv(); err != nil {
			return err
		}
		if err := fnInstallNode(); err != nil {
			return err
		}
		return fnInstallGo()
	}}
	installUvCmd := &cobra.Command{Use: "uv", Short: "Ensure uv/uvx is on PATH", Example: "  opsctl install uv", RunE: func(cmd *cobra.Command, args []string) error { return fnInstallUv() }}
	installNodeCmd := &cobra.Command{Use: "node", Aliases: []string{"nodejs", "js"}, Short: "Ensure node/npm/npx are on PATH", RunE: func(cmd *cobra.Command, args []string) error { return fnInstallNode() }}
	installGoCmd := &cobra.Command{Use: "go", Short: "Download Go modules", RunE: func(cmd *cobra.Command, args []string) error { return fnInstallGo() }}
	installCmd.AddCommand(installAll, installUvCmd, installNodeCmd, installGoCmd)
	root.AddCommand(installCmd)

	// env group
	envCmd := &cobra.Command{Use: "env", Short: "Manage the .env file", RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("env requires a subcommand: init|check")
	}}
	var envForce bool
	envInitCmd := &cobra.Command{Use: "init", Short: "Seed .env from .env.example", Example: "  opsctl env init\n  opsctl env init --force", RunE: func(cmd *cobra.Command, args []string) error {
		return fnEnvInit(envForce)
	}}
	envInitCmd.Flags().BoolVar(&envForce, "force", false, "overwrite an existing .env")
	var envPath string
	envCheckCmd := &cobra.Command{Use: "check", Short: "Verify .env has the required keys", RunE: func(cmd *cobra.Command, args []string) error {
		return fnEnvCheck(envPath)
	}}
	envCheckCmd.Flags().StringVar(&envPath, "file", "", "path to the env file (default .env)")
	envCmd.AddCommand(envInitCmd, envCheckCmd)
	root.AddCommand(envCmd)

	// preload
	var preloadMirror bool
	var preloadTimeout time.Duration
	var preloadConfig string
	preloadCmd := &cobra.Command{Use: "preload", Short: "Prefetch MCP server packages into local caches", Example: "  opsctl preload\n  opsctl preload --mirror --timeout 45s", RunE: func(cmd *cobra.Command, args []string) error {
		specs := agent.DefaultServers()
		if preloadConfig != "" {
			loaded, err := agent.LoadServers(preloadConfig)
			if err != nil {
				return err
			}
			specs = loaded
		}
		return fnPreload(specs, preloadMirror, preloadTimeout)
	}}
	preloadCmd.Flags().BoolVar(&preloadMirror, "mirror", false, "use CN package mirrors for uv and npm")
	preloadCmd.Flags().DurationVar(&preloadTimeout, "timeout", time.Duration(envInt("PRELOAD_TIMEOUT", 30))*time.Second, "per-command prefetch timeout (defaults PRELOAD_TIMEOUT seconds or 30s)")
	preloadCmd.Flags().StringVar(&preloadConfig, "config", "", "MCP server config file (default built-in list)")
	root.AddCommand(preloadCmd)

	// serve group
	serveCmd := &cobra.Command{Use: "serve", Short: "Manage the agentd process", RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("serve requires a subcommand: start|stop|wait")
	}}
	var serveForce bool
	var serveEnvFile string
	serveStartCmd := &cobra.Command{Use: "start", Short: "Start agentd and wait for /healthz", RunE: func(cmd *cobra.Command, args []string) error {
		return fnServeStart(cfg.Port, serveForce, serveEnvFile)
	}}
	serveStartCmd.Flags().BoolVar(&serveForce, "force", false, "kill whatever holds the port first")
	serveStartCmd.Flags().StringVar(&serveEnvFile, "env-file", "", "env file passed through to agentd")
	serveStopCmd := &cobra.Command{Use: "stop", Short: "Stop agentd by freeing its port", RunE: func(cmd *cobra.Command, args []string) error {
		return fnServeStop(cfg.Port)
	}}
	var serveWaitTimeout time.Duration
	serveWaitCmd := &cobra.Command{Use: "wait", Short: "Block until /readyz reports ready", RunE: func(cmd *cobra.Command, args []string) error {
		return fnServeWait(cfg.Port, serveWaitTimeout)
	}}
	serveWaitCmd.Flags().DurationVar(&serveWaitTimeout, "timeout", defaultServeWait, "how long to wait for readiness")
	serveCmd.AddCommand(serveStartCmd, serveStopCmd, serveWaitCmd)
	root.AddCommand(serveCmd)

	// probe
	var probeTimeout time.Duration
	var probeInput string
	probeCmd := &cobra.Command{Use: "probe", Short: "Run the deployment health check", Example: "  opsctl probe\n  opsctl probe --base-url https://example.com:8443 --timeout 60s", RunE: func(cmd *cobra.Command, args []string) error {
		return fnRunProbe(cfg.baseURL(), probeTimeout, probeInput)
	}}
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", 60*time.Second, "per-request timeout")
	probeCmd.Flags().StringVar(&probeInput, "input", "", "prompt sent through the execute probe")
	root.AddCommand(probeCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	root.AddCommand(completionCmd)

	return root
}

// MainWithArgs is a testable variant of Main that accepts args explicitly.
// It returns an exit code (0 for success, non-zero on error).
func MainWithArgs(args []string) int {
	root := buildRootCmd(defaultConfig())
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// Main returns an exit code for use by cmd/opsctl.
func Main() int { return MainWithArgs(os.Args[1:]) }

package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"agentd/internal/agent"
	"agentd/internal/config"
	"agentd/internal/httpapi"
	"agentd/internal/llm"
	"agentd/internal/service"
	"agentd/internal/tasks"
)

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func main() {
	addr := flag.String("addr", "", "HTTP listen address, e.g. :8443 (overrides AGENTD_ADDR)")
	configPath := flag.String("config", "", "Optional config file (.yaml/.json/.toml)")
	envFile := flag.String("env-file", ".env", "Path to the .env file")
	mcpConfig := flag.String("mcp-config", "", "MCP server config file (overrides MCP_CONFIG)")
	corsEnabled := flag.Bool("cors-enabled", false, "Enable CORS middleware")
	corsOrigins := flag.String("cors-origins", "*", "Comma-separated allowed origins")
	logLevel := flag.String("log-level", "", "Log level: trace|debug|info|warn|error (overrides LOG_LEVEL)")
	flag.Parse()

	stderrLog := zerolog.New(os.Stderr)

	settings, err := config.LoadSettings(*envFile)
	if err != nil {
		stderrLog.Fatal().Err(err).Msg("load settings")
	}

	// Config file values sit between env defaults and command-line flags.
	if *configPath != "" {
		fc, err := config.Load(*configPath)
		if err != nil {
			stderrLog.Fatal().Err(err).Str("path", *configPath).Msg("load config file")
		}
		if fc.Addr != "" {
			settings.Addr = fc.Addr
		}
		if fc.UpstreamBaseURL != "" {
			settings.UpstreamBaseURL = fc.UpstreamBaseURL
		}
		if fc.Model != "" {
			settings.Model = fc.Model
		}
		if fc.LogLevel != "" {
			settings.LogLevel = fc.LogLevel
		}
		if fc.MCPConfigPath != "" {
			settings.MCPConfigPath = fc.MCPConfigPath
		}
	}
	if *addr != "" {
		settings.Addr = *addr
	}
	if *mcpConfig != "" {
		settings.MCPConfigPath = *mcpConfig
	}
	if *logLevel != "" {
		settings.LogLevel = *logLevel
	}

	lvl, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	httpapi.SetLogger(log)

	if err := settings.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	specs := agent.DefaultServers()
	if settings.MCPConfigPath != "" {
		specs, err = agent.LoadServers(settings.MCPConfigPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", settings.MCPConfigPath).Msg("load MCP server config")
		}
	}

	completer := llm.New(settings.UpstreamBaseURL, settings.APIKey, settings.Model)
	backend := agent.NewManager(specs, completer, log)

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	httpapi.SetBaseContext(baseCtx)

	// The server accepts connections immediately; /readyz and execute stay
	// at 503 until this finishes.
	go func() {
		if err := backend.Initialize(baseCtx); err != nil {
			log.Error().Err(err).Msg("agent backend failed to initialize")
			return
		}
		log.Info().Strs("tools", backend.Tools()).Msg("agent backend ready")
	}()

	tm := tasks.New(settings.TaskMaxRetries, time.Duration(settings.TaskRetryDelaySec)*time.Second, log)
	svc := service.New(backend, tm)

	httpapi.SetCORSOptions(*corsEnabled, splitCSV(*corsOrigins), nil, nil)
	srv := &http.Server{Addr: settings.Addr, Handler: httpapi.NewMux(svc)}

	go func() {
		log.Info().Str("addr", settings.Addr).Str("model", settings.Model).Msg("agentd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancel()
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	backend.Shutdown()
}

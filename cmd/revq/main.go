// Command revq extracts buyer reviews from marketplace profile pages.
//
// Usage:
//
//	revq -url https://example.com/shop/acme          # one-shot, JSON to stdout
//	revq -config revq.yaml                           # run with a config file
//	revq -config revq.yaml -serve :8080              # HTTP service
//	revq -config revq.yaml -mcp                      # MCP server on stdio
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/revq/harvest"
)

func main() {
	configPath := flag.String("config", "", "path to revq.yaml config file")
	profileURL := flag.String("url", "", "profile page URL (overrides config target)")
	outPath := flag.String("out", "", "write the result document to this file")
	limit := flag.Int("limit", 0, "maximum reviews to extract (0 = config default)")
	serveAddr := flag.String("serve", "", "run as an HTTP service on this address")
	mcpMode := flag.Bool("mcp", false, "run as an MCP server on stdio")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *profileURL, *outPath, *limit, *serveAddr, *mcpMode); err != nil {
		logger.Error("revq: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, profileURL, outPath string, limit int, serveAddr string, mcpMode bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if profileURL != "" {
		cfg.Target.URL = profileURL
	}
	if outPath != "" {
		cfg.Target.OutputPath = outPath
	}
	if limit > 0 {
		cfg.Target.ResultLimit = limit
	}

	sinks, err := buildSinks(cfg)
	if err != nil {
		return err
	}

	h := harvest.New(cfg, logger, sinks...)
	defer h.Close()

	switch {
	case serveAddr != "":
		return serveHTTP(ctx, logger, h, serveAddr)
	case mcpMode:
		return serveMCP(ctx, h)
	case cfg.Target.URL != "":
		_, err := h.Run(ctx, cfg.Target.URL, cfg.Target.ResultLimit)
		return err
	}

	fmt.Fprintln(os.Stderr, "usage: revq -url <url> | -config <file> [-serve <addr> | -mcp]")
	os.Exit(1)
	return nil
}

func loadConfig(path string) (*harvest.Config, error) {
	if path == "" {
		return harvest.DefaultConfig(), nil
	}
	return harvest.LoadConfigFile(path)
}

// buildSinks assembles the output chain. With no sinks configured the
// result document goes to stdout; -out adds a file sink on top.
func buildSinks(cfg *harvest.Config) ([]harvest.Sink, error) {
	sinks, err := harvest.BuildSinks(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Target.OutputPath != "" {
		s, err := harvest.NewFileSink(cfg.Target.OutputPath)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 0 {
		sinks = append(sinks, harvest.NewStdoutSink(nil))
	}
	return sinks, nil
}

func serveHTTP(ctx context.Context, logger *slog.Logger, h *harvest.Harvester, addr string) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	h.RegisterHTTP(r)

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	logger.Info("revq: http service listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func serveMCP(ctx context.Context, h *harvest.Harvester) error {
	srv := mcp.NewServer(&mcp.Implementation{Name: "revq", Version: "0.1.0"}, nil)
	h.RegisterMCP(srv)
	return srv.Run(ctx, &mcp.StdioTransport{})
}

// Coderagd routes qualified symbol names from a code knowledge graph
// to the project roots they belong to, and exposes the registry over
// MCP stdio plus an HTTP admin API.
//
// Configuration is loaded from ~/.config/coderagd/config.yaml and
// overridden by environment variables. With no explicit project
// mappings, a single default project is derived from TARGET_REPO_PATH.
//
// Usage:
//
//	# Start daemon with defaults
//	coderagd
//
//	# Configure via environment
//	TARGET_REPO_PATH=/srv/myrepo SERVER_PORT=9090 coderagd
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/coderagd/internal/config"
	"github.com/fyrsmithlabs/coderagd/internal/httpapi"
	"github.com/fyrsmithlabs/coderagd/internal/logging"
	"github.com/fyrsmithlabs/coderagd/internal/mcp"
	"github.com/fyrsmithlabs/coderagd/internal/pathres"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.config/coderagd/config.yaml)")
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  coderagd           Start the coderagd daemon\n")
			fmt.Fprintf(os.Stderr, "  coderagd version   Show version information\n")
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("coderagd: %v", err)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	registry := buildRegistry(cfg, logger)

	httpServer, err := httpapi.NewServer(registry, logger.Named("http"), &httpapi.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return fmt.Errorf("create http server: %w", err)
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Warn("http server stopped", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown failed", zap.Error(err))
		}
	}()

	mcpServer, err := mcp.NewServer(&mcp.Config{
		Name:    "coderagd",
		Version: version,
		Logger:  logger.Named("mcp"),
	}, registry)
	if err != nil {
		return fmt.Errorf("create mcp server: %w", err)
	}

	// Blocks until the client disconnects or the context is cancelled.
	return mcpServer.Run(ctx)
}

// buildRegistry constructs the path registry from explicit mappings
// when configured, otherwise from the single target repo path.
func buildRegistry(cfg *config.Config, logger *zap.Logger) *pathres.Registry {
	opt := pathres.WithLogger(logger.Named("pathres"))
	if len(cfg.Projects) > 0 {
		return pathres.FromConfig(cfg, opt)
	}
	return pathres.NewFromRoot(cfg.TargetRepoPath, opt)
}

func printVersion() {
	fmt.Printf("coderagd %s\n", version)
	fmt.Printf("  commit: %s\n", gitCommit)
	fmt.Printf("  built:  %s\n", buildDate)
}

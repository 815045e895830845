package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/pdfduck/pdfduck/internal/config"
	"github.com/pdfduck/pdfduck/internal/mcp"
	"github.com/pdfduck/pdfduck/internal/pdf"
	"github.com/pdfduck/pdfduck/internal/server"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures structured logging based on the run mode
func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	out := os.Stdout
	if cfg.IsStdioMode() {
		// In stdio mode the protocol owns stdout; logs go to stderr.
		out = os.Stderr
		log.SetOutput(os.Stderr)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: level,
	})))
}

// runHTTPMode serves the REST API with signal-driven graceful shutdown
func runHTTPMode(cfg *config.Config, pdfService *pdf.Service) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	srv := server.New(cfg, pdfService)
	if err := srv.Run(ctx); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runStdioMode serves MCP tools; the parent process controls the lifecycle
func runStdioMode(cfg *config.Config, pdfService *pdf.Service) {
	mcpServer, err := mcp.NewServer(cfg, pdfService)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	if err := mcpServer.Run(context.Background()); err != nil {
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && cfg.IsHTTPMode() {
		slog.Debug("starting", "config", cfg.String())
	}

	pdfService := pdf.NewService(cfg.MaxFileSize)

	if cfg.IsHTTPMode() {
		runHTTPMode(cfg, pdfService)
	} else {
		runStdioMode(cfg, pdfService)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("pdfduck\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}

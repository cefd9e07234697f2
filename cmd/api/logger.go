package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/saketg0210/autopo-server/internal/config"
	"github.com/saketg0210/autopo-server/internal/version"
)

func setupLogger() *slog.Logger {
	// Use sensible defaults: info level, text format
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler)
}

func printStartupBanner(cfg *config.Config) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "📄 Autopo Server %s - Gemini Purchase Order Proxy\n", version.Version)
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "Generate:   http://localhost%s/api/generate\n", cfg.ServerPort)
	fmt.Fprintf(os.Stderr, "Analyze:    http://localhost%s/api/analyzeDocument\n", cfg.ServerPort)
	fmt.Fprintf(os.Stderr, "Models:     http://localhost%s/api/models\n", cfg.ServerPort)
	fmt.Fprintf(os.Stderr, "Config:     %s\n", config.ConfigPath())
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "\n")
}

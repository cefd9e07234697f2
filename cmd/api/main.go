package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/saketg0210/autopo-server/internal/app"
	"github.com/saketg0210/autopo-server/internal/config"
	"github.com/saketg0210/autopo-server/internal/gemini"
	proxysvc "github.com/saketg0210/autopo-server/internal/proxy"
	"github.com/saketg0210/autopo-server/internal/tokenizer"
	"github.com/saketg0210/autopo-server/internal/transport/http/handler"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := setupLogger()

	if err := config.EnsureConfigFile(); err != nil {
		logger.Warn("could not write config template", "error", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		// Refuse to bind a port without a key: every proxied call would fail.
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		fmt.Fprintf(os.Stderr, "set GEMINI_API_KEY or add gemini_api_key to %s\n", config.ConfigPath())
		os.Exit(1)
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, any]{
		NumCounters: 1e7,
		MaxCost:     1 << 30,
		BufferItems: 64,
	})
	if err != nil {
		logger.Error("failed to initialize cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	client := gemini.NewClient(cfg.BaseURL, cfg.APIKey, cfg.UpstreamTimeout)
	tok := tokenizer.New()
	svc := proxysvc.NewService(client, tok, logger, cfg.DefaultModel)
	repo := handler.NewRepo(svc, client, cache, logger)

	router := app.NewRouter(repo, &app.RouterOptions{
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	})

	printStartupBanner(cfg)

	srv := app.NewServer(cfg, router, logger)

	idle := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
		close(idle)
	}()

	if err := srv.Start(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
	<-idle
}

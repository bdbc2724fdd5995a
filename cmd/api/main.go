package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"leadflow_backend/internal/config"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/http/router"
	"leadflow_backend/internal/leads"
	"leadflow_backend/internal/leads/agent"
	"leadflow_backend/internal/promptlog"
	"leadflow_backend/internal/sheets"
	"leadflow_backend/platform/ai/gemini"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Missing AI or spreadsheet credentials degrade the affected features
	// at runtime instead of aborting startup.
	var model agent.ModelClient
	client, err := gemini.New(ctx, gemini.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.LLMTimeout,
	})
	switch {
	case err == nil:
		model = client
		log.Info("gemini client initialized", "model", client.Model())
	case errors.Is(err, gemini.ErrNotConfigured):
		log.Warn("GEMINI_API_KEY not configured; AI stages run deterministic fallbacks")
	default:
		log.Error("failed to initialize gemini client", "error", err)
		panic("failed to initialize gemini client: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	promptlogModule := promptlog.NewModule(cfg.PromptLogCapacity)

	leadsModule := leads.NewModule(model, promptlogModule.Store(), val, log, cfg.AIEnabled(), cfg.SchedulingURL)

	sheetsModule := sheets.NewModule(ctx, cfg.SheetsCredentials, cfg.SheetsSpreadsheetID, leadsModule.Service(), log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			leadsModule,
			sheetsModule,
			promptlogModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, exiting")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// Package app wires the process lifecycle: env file, config, logger,
// key-value store, account seeding and the chat service. Process-wide
// state is initialized here explicitly, once, and torn down with Close;
// nothing happens at import time.
package app

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"rchat/pkg/accounts"
	"rchat/pkg/ai"
	"rchat/pkg/chat"
	"rchat/pkg/config"
	"rchat/pkg/logger"
	"rchat/pkg/store"
)

// App owns the process-wide components consumed by a presentation layer.
type App struct {
	Config *config.Config
	Chat   *chat.Service
}

// New loads configuration, opens the store, seeds default accounts and
// builds the chat service. When the AI client cannot be constructed (for
// example no API key is configured) the app still starts; AI turns then
// resolve to the adapter's fallback reply.
func New(ctx context.Context, cfgPath string) (*App, error) {
	_ = godotenv.Load(".env")

	cfg, _, err := config.LoadEffective(config.ResolveConfigPath(cfgPath))
	if err != nil {
		return nil, err
	}
	logger.InitWithLevel(cfg.Logging.Level)
	accounts.SetLoginLimits(cfg.Limits.LoginRPS, cfg.Limits.LoginBurst)

	if err := store.Open(cfg.Storage.DBPath); err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", cfg.Storage.DBPath, err)
	}
	if err := accounts.EnsureSeed(); err != nil {
		_ = store.Close()
		return nil, err
	}

	var responder ai.Responder
	if g, err := ai.NewGemini(ctx, cfg.AI.APIKey, cfg.AI.Model); err != nil {
		logger.Warn("ai_client_unavailable", "err", err)
		responder = ai.Unavailable(err)
	} else {
		responder = g
	}

	return &App{Config: cfg, Chat: chat.NewService(responder)}, nil
}

// Close releases the store handle.
func (a *App) Close() error {
	return store.Close()
}

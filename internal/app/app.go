package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/featurebake/internal/ctxlog"
	"github.com/vk/featurebake/internal/hclrecipe"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	defs   []*hclrecipe.Definition
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and the recipe
// definitions already loaded.
func NewApp(outW io.Writer, cfg *Config, loader *hclrecipe.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	defs, err := loader.Load(ctx, cfg.RecipePath)
	if err != nil {
		// A failure to load the recipe definitions is a fatal startup error.
		panic(fmt.Errorf("failed to load recipes: %w", err))
	}
	if len(defs) == 0 {
		panic(fmt.Errorf("no recipe blocks found under %s", cfg.RecipePath))
	}
	logger.Debug("Recipe definitions loaded.", "count", len(defs))

	return &App{
		outW:   outW,
		logger: logger,
		defs:   defs,
	}
}

// Definitions returns the loaded recipe definitions. This is primarily for testing.
func (a *App) Definitions() []*hclrecipe.Definition {
	return a.defs
}

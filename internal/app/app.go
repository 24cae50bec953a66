package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/psetgrid/internal/catalog"
	"github.com/vk/psetgrid/internal/config"
	"github.com/vk/psetgrid/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loader  config.Loader
	modules []catalog.Module
}

// NewApp is the constructor for the main application. Rendered output goes to
// outW and logs to logW. When no modules are given the core catalog is used
// for built-in declarations.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader, modules ...catalog.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = catalog.Core()
	}
	return &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		loader:  loader,
		modules: modules,
	}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

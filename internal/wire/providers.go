// Package wire assembles the application graph with google/wire.
package wire

import (
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/bilingo/internal/app"
	"github.com/sevigo/bilingo/internal/config"
	"github.com/sevigo/bilingo/internal/logger"
)

// AppSet provides the webhook server and everything it depends on.
var AppSet = wire.NewSet(
	app.NewApp,
	ToolkitSet,
	config.LoadConfig,
)

// ToolkitSet provides the translation pipeline for an already loaded config.
var ToolkitSet = wire.NewSet(
	app.NewToolkit,
	ProvideLogger,
)

// ProvideLogger builds the logger described by cfg.Logging and makes it the
// process default.
func ProvideLogger(cfg *config.Config) *slog.Logger {
	l := logger.NewLogger(cfg.Logging, nil)
	slog.SetDefault(l)
	return l
}

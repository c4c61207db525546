//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/bilingo/internal/app"
	"github.com/sevigo/bilingo/internal/config"
)

// InitializeApp creates and wires all webhook server dependencies.
func InitializeApp(ctx context.Context) (*app.App, error) {
	wire.Build(AppSet)
	return &app.App{}, nil
}

// InitializeToolkit wires the translation pipeline for cfg.
func InitializeToolkit(ctx context.Context, cfg *config.Config) (*app.Toolkit, error) {
	wire.Build(ToolkitSet)
	return &app.Toolkit{}, nil
}

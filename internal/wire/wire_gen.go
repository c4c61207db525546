// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"

	"github.com/sevigo/bilingo/internal/app"
	"github.com/sevigo/bilingo/internal/config"
)

// Injectors from wire.go:

// InitializeApp creates and wires all webhook server dependencies.
func InitializeApp(ctx context.Context) (*app.App, error) {
	configConfig, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	slogLogger := ProvideLogger(configConfig)
	toolkit, err := app.NewToolkit(ctx, configConfig, slogLogger)
	if err != nil {
		return nil, err
	}
	appApp, err := app.NewApp(ctx, toolkit)
	if err != nil {
		return nil, err
	}
	return appApp, nil
}

// InitializeToolkit wires the translation pipeline for cfg.
func InitializeToolkit(ctx context.Context, cfg *config.Config) (*app.Toolkit, error) {
	slogLogger := ProvideLogger(cfg)
	toolkit, err := app.NewToolkit(ctx, cfg, slogLogger)
	if err != nil {
		return nil, err
	}
	return toolkit, nil
}

// Package app initializes and orchestrates the main components of bilingo.
// It wires together the configuration, the translation pipeline and the
// webhook server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/bilingo/internal/change"
	"github.com/sevigo/bilingo/internal/config"
	"github.com/sevigo/bilingo/internal/core"
	"github.com/sevigo/bilingo/internal/github"
	"github.com/sevigo/bilingo/internal/gitutil"
	"github.com/sevigo/bilingo/internal/jobs"
	"github.com/sevigo/bilingo/internal/language"
	"github.com/sevigo/bilingo/internal/reconcile"
	"github.com/sevigo/bilingo/internal/server"
	"github.com/sevigo/bilingo/internal/translator"
)

const defaultOllamaHost = "http://localhost:11434"

// Toolkit bundles the translation pipeline shared by the CLI commands and
// the webhook server.
type Toolkit struct {
	Config     *config.Config
	Logger     *slog.Logger
	Translator *translator.Service
	Classifier language.Classifier
	Driver     *reconcile.Driver
	Git        *gitutil.Client
}

// NewToolkit builds the pipeline from configuration: the LLM generator, the
// translation service, the language classifier and the driver.
func NewToolkit(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Toolkit, error) {
	gen, err := NewGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator LLM: %w", err)
	}

	prompts, err := translator.NewPromptManager()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize prompt manager: %w", err)
	}

	service := translator.NewService(gen, prompts, translator.Config{
		Provider:         translator.ModelProvider(cfg.LLM.Provider),
		TranslateTimeout: cfg.LLM.TranslateTimeout,
		DetectTimeout:    cfg.LLM.DetectTimeout,
		MaxRetries:       cfg.LLM.MaxRetries,
		RetryDelay:       cfg.LLM.RetryDelay,
	}, logger)

	classifier, err := language.New(language.Options{
		Strategy: cfg.Translation.Detector,
		Languages: language.Languages{
			Primary:   cfg.Translation.PrimaryLanguage,
			Secondary: cfg.Translation.SecondaryLanguage,
		},
		Detector:      service,
		DetectTimeout: cfg.LLM.DetectTimeout,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create language classifier: %w", err)
	}

	policy := change.Policy{
		MaxDiffPercentage: cfg.Translation.MaxDiffPercentage,
		MaxTotalLines:     cfg.Translation.MaxTotalLines,
	}
	driver := reconcile.NewDriver(classifier, service, policy, cfg.Translation.Languages(), logger)

	return &Toolkit{
		Config:     cfg,
		Logger:     logger,
		Translator: service,
		Classifier: classifier,
		Driver:     driver,
		Git:        gitutil.NewClient(logger),
	}, nil
}

// DriverWithInstructions returns a driver whose prompts carry extra
// repository instructions. With no instructions the shared driver is returned.
func (t *Toolkit) DriverWithInstructions(instructions []string) *reconcile.Driver {
	if len(instructions) == 0 {
		return t.Driver
	}
	return t.Driver.WithOracle(t.Translator.WithInstructions(instructions))
}

// NewGenerator creates the LLM client for the configured provider.
func NewGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (translator.Generator, error) {
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		logger.Info("using OpenAI compatible LLM provider", "model", cfg.LLM.Model, "base_url", cfg.LLM.BaseURL)
		return translator.NewOpenAIGenerator(translator.OpenAISettings{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		})

	case config.ProviderGemini:
		logger.Info("using Gemini LLM provider", "model", cfg.LLM.Model)
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("llm.api_key is not set for gemini provider")
		}
		model, err := gemini.New(ctx,
			gemini.WithModel(cfg.LLM.Model),
			gemini.WithAPIKey(cfg.LLM.APIKey),
		)
		if err != nil {
			return nil, err
		}
		return translator.NewModelGenerator(model), nil

	case config.ProviderOllama:
		logger.Info("using Ollama LLM provider", "model", cfg.LLM.Model, "host", cfg.LLM.BaseURL)
		host := cfg.LLM.BaseURL
		if host == "" {
			host = defaultOllamaHost
		}
		model, err := ollama.New(
			ollama.WithServerURL(host),
			ollama.WithHTTPClient(newOllamaHTTPClient(cfg.LLM.TranslateTimeout)),
			ollama.WithModel(cfg.LLM.Model),
			ollama.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		return translator.NewModelGenerator(model), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLM.Provider)
	}
}

// newOllamaHTTPClient creates an HTTP client with generous timeouts; local
// models can take minutes on long documents.
func newOllamaHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxConnsPerHost:     10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Timeout: timeout + 30*time.Second,
	}
}

// App holds the webhook server components.
type App struct {
	cfg        *config.Config
	server     *server.Server
	logger     *slog.Logger
	dispatcher core.JobDispatcher
}

// NewApp sets up the webhook server on top of a Toolkit.
func NewApp(ctx context.Context, toolkit *Toolkit) (*App, error) {
	if toolkit == nil {
		return nil, fmt.Errorf("toolkit cannot be nil")
	}
	cfg, logger := toolkit.Config, toolkit.Logger
	if err := cfg.ValidateServer(); err != nil {
		return nil, err
	}

	logger.Info("initializing bilingo application",
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
		"languages", cfg.Translation.Languages(),
		"max_workers", cfg.Server.MaxWorkers)

	reconciler := jobs.NewEntityReconciler(toolkit.Driver, cfg.Translation.Label, logger)
	translateJob := jobs.NewTranslateJob(cfg, github.NewInstallationClientFactory(cfg, logger), reconciler, logger)
	dispatcher := jobs.NewDispatcher(ctx, translateJob, cfg.Server.MaxWorkers, logger)
	httpServer := server.NewServer(ctx, cfg, dispatcher, logger)

	logger.Info("bilingo application initialized successfully")
	return &App{
		cfg:        cfg,
		server:     httpServer,
		logger:     logger,
		dispatcher: dispatcher,
	}, nil
}

// Start runs the HTTP server.
func (a *App) Start() error {
	a.logger.Info("starting bilingo",
		"server_port", a.cfg.Server.Port,
		"max_workers", a.cfg.Server.MaxWorkers)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down bilingo services")

	// Stop the HTTP server first to prevent new incoming requests.
	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	// Let in-flight translation jobs finish.
	a.dispatcher.Stop()

	if serverErr != nil {
		return serverErr
	}
	a.logger.Info("bilingo stopped successfully")
	return nil
}

package wire

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/bilingo/internal/config"
	"github.com/sevigo/bilingo/internal/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", MaxWorkers: 1},
		LLM: config.LLMConfig{
			Provider: config.ProviderOpenAI,
			Model:    "gpt-4o-mini",
			APIKey:   "sk-test",
		},
		Translation: config.TranslationConfig{
			PrimaryLanguage:   "en",
			SecondaryLanguage: "ja",
			Detector:          "heuristic",
			Label:             "translated",
			MaxDiffPercentage: 50,
			MaxTotalLines:     100,
		},
		Logging: logger.Config{Level: "error", Format: "text", Output: "stderr"},
	}
}

func TestInitializeToolkit(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	toolkit, err := InitializeToolkit(context.Background(), testConfig())
	require.NoError(t, err)
	assert.Same(t, toolkit.Logger, slog.Default(), "the toolkit logger becomes the process default")
	assert.Equal(t, []string{"ja"}, toolkit.Driver.Targets("en"))
}

func TestInitializeToolkit_InvalidDetector(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	cfg := testConfig()
	cfg.Translation.Detector = "crystal-ball"
	_, err := InitializeToolkit(context.Background(), cfg)
	assert.Error(t, err)
}

func TestInitializeApp_RequiresServerSettings(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
	t.Chdir(t.TempDir())
	t.Setenv("BILINGO_LLM_API_KEY", "sk-test")
	t.Setenv("BILINGO_LOGGING_LEVEL", "error")

	_, err := InitializeApp(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "github.app_id")
}

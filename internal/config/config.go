// Package config loads the bot configuration from a YAML file and BILINGO_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/bilingo/internal/logger"
)

// History backends.
const (
	HistoryBackendJSON     = "json"
	HistoryBackendPostgres = "postgres"
)

// LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// Config holds the application's configuration values.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	GitHub      GitHubConfig      `mapstructure:"github"`
	LLM         LLMConfig         `mapstructure:"llm"`
	Translation TranslationConfig `mapstructure:"translation"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Database    *DBConfig         `mapstructure:"database"`
	Logging     logger.Config     `mapstructure:"logging"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port       string `mapstructure:"port"`
	MaxWorkers int    `mapstructure:"max_workers"`
}

// GitHubConfig holds the GitHub App credentials and the PAT used by the CLI.
type GitHubConfig struct {
	AppID          int64  `mapstructure:"app_id"`
	WebhookSecret  string `mapstructure:"webhook_secret"`
	PrivateKeyPath string `mapstructure:"private_key_path"`
	Token          string `mapstructure:"token"`
}

// LLMConfig selects the translation model.
type LLMConfig struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	// BaseURL is the OpenAI compatible endpoint or the Ollama host.
	BaseURL          string        `mapstructure:"base_url"`
	DetectTimeout    time.Duration `mapstructure:"detect_timeout"`
	TranslateTimeout time.Duration `mapstructure:"translate_timeout"`
	MaxRetries       int           `mapstructure:"max_retries"`
	RetryDelay       time.Duration `mapstructure:"retry_delay"`
}

// TranslationConfig describes the language pair and reconciliation policy.
type TranslationConfig struct {
	PrimaryLanguage   string `mapstructure:"primary_language"`
	SecondaryLanguage string `mapstructure:"secondary_language"`
	// Detector is heuristic, oracle or lingua.
	Detector           string  `mapstructure:"detector"`
	Label              string  `mapstructure:"label"`
	RequireLabelForPRs string  `mapstructure:"require_label_for_prs"`
	MaxDiffPercentage  float64 `mapstructure:"max_diff_percentage"`
	MaxTotalLines      int     `mapstructure:"max_total_lines"`
}

// Languages returns the configured pair, primary first.
func (t TranslationConfig) Languages() []string {
	return []string{t.PrimaryLanguage, t.SecondaryLanguage}
}

// StorageConfig selects where document translation history is kept.
type StorageConfig struct {
	HistoryBackend string `mapstructure:"history_backend"`
	HistoryPath    string `mapstructure:"history_path"`
}

// DBConfig holds the Postgres connection settings for the history table.
type DBConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// LoadConfig reads configuration from config.yaml (in . or ./config) and the
// environment.
func LoadConfig() (*Config, error) {
	return Load(viper.New(), "")
}

// Load reads configuration into v, which may already carry bound flags. When
// path is empty the default search locations are used; a missing file is not
// an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	v.SetEnvPrefix("BILINGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.max_workers", 1)

	v.SetDefault("github.app_id", 0)
	v.SetDefault("github.webhook_secret", "")
	v.SetDefault("github.private_key_path", "keys/bilingo.private-key.pem")
	v.SetDefault("github.token", "")

	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.detect_timeout", 10*time.Second)
	v.SetDefault("llm.translate_timeout", 5*time.Minute)
	v.SetDefault("llm.max_retries", 0)
	v.SetDefault("llm.retry_delay", 2*time.Second)

	v.SetDefault("translation.primary_language", "en")
	v.SetDefault("translation.secondary_language", "ja")
	v.SetDefault("translation.detector", "heuristic")
	v.SetDefault("translation.label", "translated")
	v.SetDefault("translation.require_label_for_prs", "")
	v.SetDefault("translation.max_diff_percentage", 50.0)
	v.SetDefault("translation.max_total_lines", 100)

	v.SetDefault("storage.history_backend", HistoryBackendJSON)
	v.SetDefault("storage.history_path", ".translation_history.json")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "bilingo")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "bilingo")
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.conn_max_idle_time", 5*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")
}

// Validate checks the settings every binary needs.
func (c *Config) Validate() error {
	t := c.Translation
	if !isLanguageCode(t.PrimaryLanguage) || !isLanguageCode(t.SecondaryLanguage) {
		return fmt.Errorf("translation languages must be two-letter codes, got %q and %q", t.PrimaryLanguage, t.SecondaryLanguage)
	}
	if t.PrimaryLanguage == t.SecondaryLanguage {
		return fmt.Errorf("translation languages must differ, both are %q", t.PrimaryLanguage)
	}
	switch t.Detector {
	case "heuristic", "oracle", "lingua":
	default:
		return fmt.Errorf("unsupported language detector: %s", t.Detector)
	}
	if t.MaxDiffPercentage < 0 || t.MaxDiffPercentage > 100 {
		return fmt.Errorf("translation.max_diff_percentage must be between 0 and 100")
	}
	if t.MaxTotalLines < 0 {
		return fmt.Errorf("translation.max_total_lines cannot be negative")
	}

	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderOllama, ProviderGemini:
	default:
		return fmt.Errorf("unsupported LLM provider: %s", c.LLM.Provider)
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("llm.max_retries cannot be negative")
	}

	switch c.Storage.HistoryBackend {
	case HistoryBackendJSON:
		if c.Storage.HistoryPath == "" {
			return fmt.Errorf("storage.history_path must be set for the json backend")
		}
	case HistoryBackendPostgres:
		if c.Database == nil || c.Database.Host == "" || c.Database.Database == "" {
			return fmt.Errorf("database.host and database.database must be set for the postgres backend")
		}
	default:
		return fmt.Errorf("unsupported history backend: %s", c.Storage.HistoryBackend)
	}
	return nil
}

// ValidateServer checks the settings only the webhook server needs.
func (c *Config) ValidateServer() error {
	if c.GitHub.AppID == 0 {
		return fmt.Errorf("github.app_id must be set")
	}
	if c.GitHub.WebhookSecret == "" {
		return fmt.Errorf("github.webhook_secret must be set")
	}
	if c.GitHub.PrivateKeyPath == "" {
		return fmt.Errorf("github.private_key_path must be set")
	}
	if c.Server.MaxWorkers < 1 {
		return fmt.Errorf("server.max_workers must be at least 1")
	}
	return nil
}

func isLanguageCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

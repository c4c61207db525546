// Package translator talks to the LLM that translates content and detects
// its language.
package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sevigo/bilingo/internal/change"
	"github.com/sevigo/bilingo/internal/language"
)

// ErrEmptyResponse is returned when the model answered with no text.
var ErrEmptyResponse = errors.New("empty response from model")

// Oracle is the translation service consumed by the reconciliation driver.
//
//go:generate mockgen -destination=../../mocks/mock_oracle.go -package=mocks . Oracle
type Oracle interface {
	// Translate translates text into the target language.
	Translate(ctx context.Context, text, targetLang string) (string, error)
	// TranslateIncremental updates an existing translation after the source
	// changed from base to current.
	TranslateIncremental(ctx context.Context, base, current, existing, targetLang string) (string, error)
	// DetectLanguage returns the two-letter code of the text's language.
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// Generator produces a completion for a single prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config tunes the Service.
type Config struct {
	Provider         ModelProvider
	TranslateTimeout time.Duration
	DetectTimeout    time.Duration
	MaxRetries       int
	RetryDelay       time.Duration
	// Instructions are appended to every translation prompt.
	Instructions []string
}

// Service implements Oracle on top of a Generator and the embedded prompts.
type Service struct {
	gen     Generator
	prompts *PromptManager
	cfg     Config
	logger  *slog.Logger
}

// NewService creates a translation service.
func NewService(gen Generator, prompts *PromptManager, cfg Config, logger *slog.Logger) *Service {
	if gen == nil {
		panic("generator cannot be nil")
	}
	if prompts == nil {
		panic("prompt manager cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if cfg.Provider == "" {
		cfg.Provider = DefaultProvider
	}
	if cfg.TranslateTimeout <= 0 {
		cfg.TranslateTimeout = 5 * time.Minute
	}
	if cfg.DetectTimeout <= 0 {
		cfg.DetectTimeout = language.DefaultDetectTimeout
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	return &Service{gen: gen, prompts: prompts, cfg: cfg, logger: logger}
}

// WithInstructions returns a copy of the service that appends repository
// specific instructions to its prompts.
func (s *Service) WithInstructions(instructions []string) *Service {
	clone := *s
	clone.cfg.Instructions = append(append([]string{}, s.cfg.Instructions...), instructions...)
	return &clone
}

// Translate implements Oracle.
func (s *Service) Translate(ctx context.Context, text, targetLang string) (string, error) {
	prompt, err := s.prompts.Render(TranslatePrompt, s.cfg.Provider, TranslateData{
		TargetCode:   targetLang,
		TargetName:   language.DisplayName(targetLang),
		Text:         text,
		Instructions: s.cfg.Instructions,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render translate prompt: %w", err)
	}

	out, err := s.generate(ctx, prompt, s.cfg.TranslateTimeout)
	if err != nil {
		return "", fmt.Errorf("translation to %s failed: %w", targetLang, err)
	}
	return cleanResponse(out)
}

// TranslateIncremental implements Oracle.
func (s *Service) TranslateIncremental(ctx context.Context, base, current, existing, targetLang string) (string, error) {
	prompt, err := s.prompts.Render(TranslateIncrementalPrompt, s.cfg.Provider, IncrementalData{
		TargetCode:   targetLang,
		TargetName:   language.DisplayName(targetLang),
		Base:         base,
		Current:      current,
		Delta:        change.Assess(base, current).Delta,
		Existing:     existing,
		Instructions: s.cfg.Instructions,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render incremental prompt: %w", err)
	}

	out, err := s.generate(ctx, prompt, s.cfg.TranslateTimeout)
	if err != nil {
		return "", fmt.Errorf("incremental translation to %s failed: %w", targetLang, err)
	}
	return cleanResponse(out)
}

// DetectLanguage implements Oracle.
func (s *Service) DetectLanguage(ctx context.Context, text string) (string, error) {
	prompt, err := s.prompts.Render(DetectLanguagePrompt, s.cfg.Provider, DetectData{Text: text})
	if err != nil {
		return "", fmt.Errorf("failed to render detection prompt: %w", err)
	}

	out, err := s.generate(ctx, prompt, s.cfg.DetectTimeout)
	if err != nil {
		return "", fmt.Errorf("language detection failed: %w", err)
	}
	code := strings.ToLower(strings.Trim(strings.TrimSpace(out), "\"'`."))
	if code == "" {
		return "", ErrEmptyResponse
	}
	return code, nil
}

// generate runs one prompt with a hard timeout per attempt and retries with
// exponential backoff when configured.
func (s *Service) generate(ctx context.Context, prompt string, timeout time.Duration) (string, error) {
	var err error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.cfg.RetryDelay * time.Duration(1<<(attempt-1))
			s.logger.Warn("model call failed, retrying",
				"attempt", attempt,
				"max_retries", s.cfg.MaxRetries,
				"delay", delay,
				"error", err,
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		var out string
		out, err = s.generateWithTimeout(ctx, prompt, timeout)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			return "", err
		}
	}
	return "", err
}

func (s *Service) generateWithTimeout(ctx context.Context, prompt string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		resp string
		err  error
	}
	resultCh := make(chan result, 1)

	go func() {
		resp, err := s.gen.Generate(ctx, prompt)
		resultCh <- result{resp, err}
	}()

	select {
	case res := <-resultCh:
		return res.resp, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// cleanResponse trims the answer and removes a fence the model wrapped
// around the whole output.
func cleanResponse(s string) (string, error) {
	s = stripWrappingFence(strings.TrimSpace(s))
	if s == "" {
		return "", ErrEmptyResponse
	}
	return s, nil
}

func stripWrappingFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	idx := strings.Index(s, "\n")
	if idx < 0 {
		return s
	}
	info := strings.TrimSpace(s[3:idx])
	if info != "" && info != "markdown" && info != "md" {
		return s
	}
	inner := s[idx+1 : len(s)-3]
	if strings.Contains(inner, "\n```") {
		return s
	}
	return strings.TrimSpace(inner)
}

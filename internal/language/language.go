// Package language decides which of the two configured languages a text is
// written in.
package language

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

// Strategy names accepted by New.
const (
	StrategyHeuristic = "heuristic"
	StrategyOracle    = "oracle"
	StrategyLingua    = "lingua"
)

const (
	// SampleSize is the number of characters sent to the oracle.
	SampleSize = 500
	// DefaultDetectTimeout bounds a single oracle detection call.
	DefaultDetectTimeout = 10 * time.Second
)

// Classifier returns the language code of a text. Implementations never
// fail; they fall back to the script heuristic instead.
type Classifier interface {
	Classify(ctx context.Context, text string) string
}

// Detector is the subset of the translation oracle used for detection.
type Detector interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// Languages is the configured language pair. Secondary is the language
// recognized by its script.
type Languages struct {
	Primary   string
	Secondary string
}

// Valid reports whether code is one of the pair.
func (l Languages) Valid(code string) bool {
	return code == l.Primary || code == l.Secondary
}

// Options configure a Classifier built by New.
type Options struct {
	Strategy      string
	Languages     Languages
	Detector      Detector
	DetectTimeout time.Duration
	Logger        *slog.Logger
}

// New builds the classifier selected by opts.Strategy.
func New(opts Options) (Classifier, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	heuristic := NewHeuristic(opts.Languages)

	switch opts.Strategy {
	case "", StrategyHeuristic:
		return heuristic, nil
	case StrategyOracle:
		if opts.Detector == nil {
			return nil, fmt.Errorf("oracle classifier requires a detector")
		}
		return NewOracle(opts.Detector, heuristic, opts.DetectTimeout, opts.Logger), nil
	case StrategyLingua:
		return NewLingua(opts.Languages, heuristic, opts.Logger)
	default:
		return nil, fmt.Errorf("unsupported language detector: %s", opts.Strategy)
	}
}

// Heuristic classifies by script: any Japanese kana or CJK ideograph selects
// the secondary language.
type Heuristic struct {
	langs Languages
}

// NewHeuristic returns the script based classifier.
func NewHeuristic(langs Languages) *Heuristic {
	return &Heuristic{langs: langs}
}

// Classify implements Classifier.
func (h *Heuristic) Classify(_ context.Context, text string) string {
	for _, r := range text {
		if isCJK(r) {
			return h.langs.Secondary
		}
	}
	return h.langs.Primary
}

func isCJK(r rune) bool {
	switch {
	case r >= 0x3040 && r <= 0x309F: // hiragana
		return true
	case r >= 0x30A0 && r <= 0x30FF: // katakana
		return true
	case r >= 0x4E00 && r <= 0x9FFF: // kanji
		return true
	case r >= 0xFF60 && r <= 0xFF9F: // half-width katakana
		return true
	}
	return false
}

// Oracle asks the translation oracle and falls back to a heuristic on any
// error or on an answer outside the configured pair.
type Oracle struct {
	detector Detector
	fallback *Heuristic
	timeout  time.Duration
	logger   *slog.Logger
}

// NewOracle returns an oracle backed classifier.
func NewOracle(detector Detector, fallback *Heuristic, timeout time.Duration, logger *slog.Logger) *Oracle {
	if timeout <= 0 {
		timeout = DefaultDetectTimeout
	}
	return &Oracle{detector: detector, fallback: fallback, timeout: timeout, logger: logger}
}

// Classify implements Classifier.
func (o *Oracle) Classify(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return o.fallback.langs.Primary
	}

	sample := Sample(Prose(text), SampleSize)
	if strings.TrimSpace(sample) == "" {
		sample = Sample(text, SampleSize)
	}

	detectCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	code, err := o.detector.DetectLanguage(detectCtx, sample)
	if err != nil {
		o.logger.Warn("language detection failed, using heuristic", "error", err)
		return o.fallback.Classify(ctx, text)
	}

	code = strings.ToLower(strings.TrimSpace(code))
	if !o.fallback.langs.Valid(code) {
		o.logger.Warn("language detection returned unexpected code, using heuristic", "code", code)
		return o.fallback.Classify(ctx, text)
	}
	return code
}

// Sample returns at most n characters of text.
func Sample(text string, n int) string {
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n])
}

package language

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// minLinguaLength is the shortest prose sample worth a statistical guess.
const minLinguaLength = 7

var linguaLanguages = map[string]lingua.Language{
	"en": lingua.English,
	"ja": lingua.Japanese,
	"fr": lingua.French,
	"de": lingua.German,
	"es": lingua.Spanish,
	"zh": lingua.Chinese,
	"ko": lingua.Korean,
	"pt": lingua.Portuguese,
	"ru": lingua.Russian,
}

// Lingua classifies with the lingua statistical detector restricted to the
// configured pair.
type Lingua struct {
	detector lingua.LanguageDetector
	codes    map[lingua.Language]string
	fallback *Heuristic
	logger   *slog.Logger
}

// NewLingua builds the detector. Building preloads the language models, so
// callers should reuse the instance.
func NewLingua(langs Languages, fallback *Heuristic, logger *slog.Logger) (*Lingua, error) {
	primary, ok := linguaLanguages[langs.Primary]
	if !ok {
		return nil, fmt.Errorf("lingua detector does not support language %q", langs.Primary)
	}
	secondary, ok := linguaLanguages[langs.Secondary]
	if !ok {
		return nil, fmt.Errorf("lingua detector does not support language %q", langs.Secondary)
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(primary, secondary).
		WithPreloadedLanguageModels().
		Build()

	logger.Info("lingua language detector initialized", "primary", langs.Primary, "secondary", langs.Secondary)
	return &Lingua{
		detector: detector,
		codes:    map[lingua.Language]string{primary: langs.Primary, secondary: langs.Secondary},
		fallback: fallback,
		logger:   logger,
	}, nil
}

// Classify implements Classifier.
func (l *Lingua) Classify(ctx context.Context, text string) string {
	sample := strings.TrimSpace(Sample(Prose(text), SampleSize))
	if len([]rune(sample)) < minLinguaLength {
		return l.fallback.Classify(ctx, text)
	}

	detected, ok := l.detector.DetectLanguageOf(sample)
	if !ok {
		l.logger.Debug("lingua could not decide, using heuristic")
		return l.fallback.Classify(ctx, text)
	}
	return l.codes[detected]
}

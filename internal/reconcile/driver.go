// Package reconcile keeps translations in step with their source. It decides
// per target language whether work is needed, picks full or incremental
// translation, and writes back only when the result differs.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sevigo/bilingo/internal/change"
	"github.com/sevigo/bilingo/internal/core"
	"github.com/sevigo/bilingo/internal/language"
	"github.com/sevigo/bilingo/internal/marker"
	"github.com/sevigo/bilingo/internal/translator"
)

// Translation modes reported in logs and results.
const (
	ModeFull        = "full"
	ModeIncremental = "incremental"
)

// BodyEditor persists a new body for an entity.
type BodyEditor interface {
	EditBody(ctx context.Context, entity *core.Entity, body string) error
}

// Driver reconciles entities and documents against the translation oracle.
type Driver struct {
	classifier language.Classifier
	oracle     translator.Oracle
	policy     change.Policy
	languages  []string
	logger     *slog.Logger
}

// NewDriver creates a Driver for the configured languages.
func NewDriver(classifier language.Classifier, oracle translator.Oracle, policy change.Policy, languages []string, logger *slog.Logger) *Driver {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if oracle == nil {
		panic("oracle cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Driver{
		classifier: classifier,
		oracle:     oracle,
		policy:     policy,
		languages:  languages,
		logger:     logger,
	}
}

// WithOracle returns a copy of the driver that uses a different oracle, for
// example one carrying repository specific instructions.
func (d *Driver) WithOracle(oracle translator.Oracle) *Driver {
	clone := *d
	clone.oracle = oracle
	return &clone
}

// Targets returns every configured language except source.
func (d *Driver) Targets(source string) []string {
	targets := make([]string, 0, len(d.languages))
	for _, l := range d.languages {
		if l != source {
			targets = append(targets, l)
		}
	}
	return targets
}

// ReconcileEntity brings the translations inside an entity body up to date.
// It returns true only when a new body was written through editor. Oracle
// failures are logged and never returned; the error result is reserved for
// a failed write.
func (d *Driver) ReconcileEntity(ctx context.Context, entity *core.Entity, editor BodyEditor) (bool, error) {
	if strings.TrimSpace(entity.Body) == "" {
		return false, nil
	}
	log := d.logger.With("entity", entity.Key(), "kind", entity.Kind)

	env := marker.Decode(entity.Body)
	if env.Original == "" {
		log.Debug("body has no original content, skipping")
		return false, nil
	}

	currentHash := change.Hash(env.Original)
	lastHash := env.Meta(core.MetaLastProcessedContent)
	unchanged := lastHash != "" && lastHash == currentHash

	source := env.OriginalLanguage
	if !unchanged || source == "" {
		source = d.classifier.Classify(ctx, env.Original)
	}

	base, hasBase := d.previousOriginal(entity.PreviousBody, lastHash)
	if lastHash == "" && hasBase && change.Normalize(base) == change.Normalize(env.Original) {
		unchanged = true
	}

	title := titleOf(entity)
	titleHash := change.Hash(title)
	titleUnchanged := env.Meta(core.MetaLastProcessedTitle) == titleHash

	updated, failed, titleFailed := 0, 0, 0
	for _, lang := range d.Targets(source) {
		if title != "" && (!titleUnchanged || env.TranslationTitle(lang) == "") {
			translated, err := d.oracle.Translate(ctx, title, lang)
			translated = strings.Join(strings.Fields(translated), " ")
			if err != nil || translated == "" {
				log.Error("title translation failed", "lang", lang, "error", err)
				titleFailed++
			} else {
				log.Info("translated title", "lang", lang)
				env.SetTitle(lang, translated)
				updated++
			}
		}

		existing, has := env.Translation(lang)
		has = has && strings.TrimSpace(existing) != ""
		if has && unchanged {
			log.Debug("translation is up to date", "lang", lang)
			continue
		}

		text, mode, ok := d.translate(ctx, log, lang, env.Original, existing, has, base, hasBase)
		if !ok {
			failed++
			continue
		}
		log.Info("translated", "lang", lang, "mode", mode)
		env.SetTranslation(lang, text)
		updated++
	}

	if updated == 0 {
		return false, nil
	}

	env.RemoveTranslation(source)
	env.OriginalLanguage = source
	if failed == 0 {
		env.SetMeta(core.MetaLastProcessedContent, currentHash)
	}
	if title != "" && titleFailed == 0 {
		env.SetMeta(core.MetaLastProcessedTitle, titleHash)
	}

	body := marker.Encode(env)
	if change.Normalize(body) == change.Normalize(entity.Body) {
		log.Debug("encoded body is unchanged, skipping write")
		return false, nil
	}

	if err := editor.EditBody(ctx, entity, body); err != nil {
		return false, fmt.Errorf("failed to write translated body for %s: %w", entity.Key(), err)
	}
	entity.Body = body
	return true, nil
}

// titleOf returns the title to translate alongside the body. Only pull
// request titles are translated.
func titleOf(entity *core.Entity) string {
	if entity.Kind != core.KindPullRequest {
		return ""
	}
	return strings.TrimSpace(entity.Title)
}

// previousOriginal extracts the original from the body before the last edit.
// It is only trusted when it matches the content the current translations
// were produced from.
func (d *Driver) previousOriginal(previousBody, lastHash string) (string, bool) {
	if strings.TrimSpace(previousBody) == "" {
		return "", false
	}
	prev := marker.Decode(previousBody).Original
	if lastHash != "" && change.Hash(prev) != lastHash {
		return "", false
	}
	return prev, true
}

// translate produces a translation of current into lang. When the policy
// allows it, the existing translation is patched incrementally; a failed
// incremental call falls back to a full translation.
func (d *Driver) translate(ctx context.Context, log *slog.Logger, lang, current, existing string, hasExisting bool, base string, hasBase bool) (string, string, bool) {
	assessment := change.Missing()
	if hasBase {
		assessment = change.Assess(base, current)
	}

	if d.policy.Incremental(assessment, hasExisting) {
		text, err := d.oracle.TranslateIncremental(ctx, base, current, existing, lang)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, ModeIncremental, true
		}
		log.Warn("incremental translation failed, falling back to full translation",
			"lang", lang,
			"diff_percentage", assessment.DiffPercentage,
			"error", err,
		)
	}

	text, err := d.oracle.Translate(ctx, current, lang)
	if err != nil || strings.TrimSpace(text) == "" {
		log.Error("translation failed", "lang", lang, "error", err)
		return "", "", false
	}
	return text, ModeFull, true
}

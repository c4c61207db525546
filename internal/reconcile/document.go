package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/sevigo/bilingo/internal/change"
	"github.com/sevigo/bilingo/internal/core"
)

// DocumentWriter stores a translated sibling of a document.
type DocumentWriter interface {
	WriteTranslation(ctx context.Context, doc *core.Document, lang, content string) error
}

// DocumentResult reports what a document pass did per target language.
type DocumentResult struct {
	Source string
	Hash   string
	// Written lists languages whose sibling file changed.
	Written []string
	// Current lists languages whose sibling now matches the source,
	// including those that were already up to date.
	Current []string
	Failed  []string
}

// Changed reports whether any sibling file was written.
func (r DocumentResult) Changed() bool {
	return len(r.Written) > 0
}

// ReconcileDocument brings the translated siblings of a Markdown document up
// to date. Oracle failures are recorded in the result; only writer failures
// are returned as errors.
func (d *Driver) ReconcileDocument(ctx context.Context, doc *core.Document, writer DocumentWriter) (DocumentResult, error) {
	var res DocumentResult
	if strings.TrimSpace(doc.Content) == "" {
		return res, nil
	}
	log := d.logger.With("file", doc.Path)

	res.Source = d.classifier.Classify(ctx, doc.Content)
	res.Hash = change.Hash(doc.Content)

	for _, lang := range d.Targets(res.Source) {
		existing, has := doc.Translations[lang]
		lastHash := doc.LastHashes[lang]
		if has && lastHash == res.Hash {
			log.Debug("translation is up to date", "lang", lang)
			res.Current = append(res.Current, lang)
			continue
		}

		hasBase := doc.HasPrevious && (lastHash == "" || change.Hash(doc.Previous) == lastHash)
		text, mode, ok := d.translate(ctx, log, lang, doc.Content, existing, has, doc.Previous, hasBase)
		if !ok {
			res.Failed = append(res.Failed, lang)
			continue
		}

		if has && change.Normalize(text) == change.Normalize(existing) {
			log.Debug("translation output is unchanged", "lang", lang)
			res.Current = append(res.Current, lang)
			continue
		}

		if err := writer.WriteTranslation(ctx, doc, lang, text); err != nil {
			return res, fmt.Errorf("failed to write %s translation of %s: %w", lang, doc.Path, err)
		}
		log.Info("translated", "lang", lang, "mode", mode)
		res.Written = append(res.Written, lang)
		res.Current = append(res.Current, lang)
	}
	return res, nil
}

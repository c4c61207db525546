// Package marker encodes and decodes translated bodies. A body carries the
// translations as collapsible blocks, followed by the original content and
// hidden metadata comments.
package marker

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sevigo/bilingo/internal/core"
	"github.com/sevigo/bilingo/internal/language"
)

// Sentinels written by Encode.
const (
	OriginalSentinel = "**Original Content:**"
	blockEndTag      = "<!-- bilingo:translation-end -->"
	titleTag         = "<!-- bilingo:title -->"
)

// Decode-only sentinels produced by earlier releases.
var legacyOriginalSentinels = []string{
	"**Original Comment:**",
}

const bareOriginalSentinel = "Original Content:"

var (
	metaRe = regexp.MustCompile(`<!--\s*bilingo:meta\s+([A-Za-z0-9_.-]+)=(.*?)\s*-->`)

	legacyWrapperRe = regexp.MustCompile(`(?m)^[ \t]*<!-- TRANSLATION-(?:START|END) -->[ \t]*\n?`)

	taggedBlockRe = regexp.MustCompile(`(?s)<details>\s*<summary>(?:<b>)?[^<]*(?:</b>)?</summary>\s*` +
		`<!-- bilingo:translation lang=([A-Za-z-]+) -->(.*?)` + regexp.QuoteMeta(blockEndTag) + `\s*</details>`)

	legacyBlockRe = regexp.MustCompile(`(?s)<details>\s*<summary>\s*(?:<b>)?([^<]*?)(?:</b>)?\s*</summary>(.*?)</details>`)

	translationHeadingRe = regexp.MustCompile(`(?m)^[ \t]*(?:\*\*)?Translation to ([A-Za-z]{2,3}(?:-[A-Za-z]+)?):(?:\*\*)?[ \t]*$`)

	legacyTitleRe = regexp.MustCompile(`(?m)^[ \t]*## (.+?)[ \t]*$`)

	leadingBreakRe = regexp.MustCompile(`^(?:<br\s*/?>\s*)+`)
)

// Encode renders an envelope as a body. Translation blocks come first in
// envelope order, then the original content, then metadata sorted by key.
// Translations with neither text nor title are not rendered.
func Encode(env core.Envelope) string {
	parts := make([]string, 0, len(env.Translations)+2)
	for _, t := range env.Translations {
		title, text := singleLine(t.Title), strings.TrimSpace(t.Text)
		if title == "" && text == "" {
			continue
		}
		parts = append(parts, renderBlock(t.Lang, title, text))
	}
	parts = append(parts, strings.TrimSpace(OriginalSentinel+"\n\n"+strings.TrimSpace(env.Original)))
	if meta := renderMeta(env); meta != "" {
		parts = append(parts, meta)
	}
	return strings.Join(parts, "\n\n")
}

func renderBlock(lang, title, text string) string {
	if title != "" {
		text = strings.TrimSpace(titleTag + "\n## " + title + "\n\n" + text)
	}
	return fmt.Sprintf("<details>\n<summary><b>%s</b></summary>\n<!-- bilingo:translation lang=%s -->\n\n%s\n\n%s\n</details>",
		language.DisplayName(lang), lang, text, blockEndTag)
}

// splitTitle separates a rendered title line from the block text.
func splitTitle(text string) (string, string) {
	rest, ok := strings.CutPrefix(text, titleTag)
	if !ok {
		return "", text
	}
	rest = strings.TrimLeft(rest, " \t\n")
	line, body, _ := strings.Cut(rest, "\n")
	title, ok := strings.CutPrefix(line, "## ")
	if !ok {
		return "", text
	}
	return strings.TrimSpace(title), strings.TrimSpace(body)
}

func renderMeta(env core.Envelope) string {
	values := make(map[string]string, len(env.Metadata)+1)
	for k, v := range env.Metadata {
		values[k] = v
	}
	if env.OriginalLanguage != "" {
		values[core.MetaOriginalLanguage] = env.OriginalLanguage
	}

	keys := make([]string, 0, len(values))
	for k, v := range values {
		if !core.ValidMetaKey(k) || sanitizeMeta(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("<!-- bilingo:meta %s=%s -->", k, sanitizeMeta(values[k])))
	}
	return strings.Join(lines, "\n")
}

// sanitizeMeta keeps a value on a single line and inside its comment.
func sanitizeMeta(v string) string {
	return singleLine(strings.ReplaceAll(v, "-->", ""))
}

func singleLine(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

// Decode parses a body into an envelope. It never fails: content without any
// recognizable sentinel is returned as the original with no translations.
//
// Precedence:
//  1. an original-content sentinel splits the body; the text after it is the
//     original and the text before it holds translation blocks, including
//     the untagged forms written by earlier releases;
//  2. otherwise tagged translation blocks are lifted out and all remaining
//     text is the original;
//  3. otherwise the whole body is the original.
func Decode(body string) core.Envelope {
	text := strings.ReplaceAll(body, "\r\n", "\n")

	var env core.Envelope
	text = extractMeta(text, &env)
	wrapped := legacyWrapperRe.MatchString(text)
	text = legacyWrapperRe.ReplaceAllString(text, "")

	if idx, width := findOriginalSentinel(text); idx >= 0 {
		original := strings.TrimSpace(text[idx+width:])
		if wrapped {
			original = strings.TrimSpace(leadingBreakRe.ReplaceAllString(original, ""))
		}
		env.Original = original
		blocks := findBlocks(text[:idx], true)
		pairLegacyTitles(text[:idx], blocks)
		env.Translations = translationsOf(blocks)
		return env
	}

	if blocks := findBlocks(text, false); len(blocks) > 0 {
		if original := outsideBlocks(text, blocks); original != "" {
			env.Original = original
			env.Translations = translationsOf(blocks)
			return env
		}
	}

	env.Original = strings.TrimSpace(text)
	return env
}

// outsideBlocks joins the text around blocks, so content on either side of
// the translations survives.
func outsideBlocks(text string, blocks []block) string {
	var parts []string
	prev := 0
	for _, b := range blocks {
		if seg := strings.TrimSpace(text[prev:b.start]); seg != "" {
			parts = append(parts, seg)
		}
		prev = b.end
	}
	if seg := strings.TrimSpace(text[prev:]); seg != "" {
		parts = append(parts, seg)
	}
	return strings.Join(parts, "\n\n")
}

// pairLegacyTitles assigns "## title" lines written ahead of the first block
// to the untitled blocks, in order.
func pairLegacyTitles(prefix string, blocks []block) {
	if len(blocks) == 0 {
		return
	}
	titles := legacyTitleRe.FindAllStringSubmatch(prefix[:blocks[0].start], -1)
	for i := range blocks {
		if i >= len(titles) {
			return
		}
		if blocks[i].title == "" {
			blocks[i].title = strings.TrimSpace(titles[i][1])
		}
	}
}

func extractMeta(text string, env *core.Envelope) string {
	for _, m := range metaRe.FindAllStringSubmatch(text, -1) {
		key, value := m[1], strings.TrimSpace(m[2])
		if key == core.MetaOriginalLanguage {
			env.OriginalLanguage = value
			continue
		}
		env.SetMeta(key, value)
	}
	return metaRe.ReplaceAllString(text, "")
}

func findOriginalSentinel(text string) (int, int) {
	best, width := -1, 0
	for _, s := range append([]string{OriginalSentinel}, legacyOriginalSentinels...) {
		if i := strings.Index(text, s); i >= 0 && (best < 0 || i < best) {
			best, width = i, len(s)
		}
	}
	if best >= 0 {
		return best, width
	}
	if i := strings.Index(text, bareOriginalSentinel); i >= 0 {
		return i, len(bareOriginalSentinel)
	}
	return -1, 0
}

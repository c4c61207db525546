package marker

import (
	"sort"
	"strings"

	"github.com/sevigo/bilingo/internal/core"
	"github.com/sevigo/bilingo/internal/language"
)

type block struct {
	start, end        int
	lang, title, text string
}

// findBlocks locates translation blocks in text, ordered by position.
// Tagged blocks are matched first. The untagged legacy forms are searched
// in the remaining text only when legacy is set, since a plain body may
// hold its own <details> sections.
func findBlocks(text string, legacy bool) []block {
	var blocks []block
	masked := []byte(text)

	for _, m := range taggedBlockRe.FindAllStringSubmatchIndex(text, -1) {
		title, body := splitTitle(strings.TrimSpace(text[m[4]:m[5]]))
		blocks = append(blocks, block{
			start: m[0],
			end:   m[1],
			lang:  text[m[2]:m[3]],
			title: title,
			text:  body,
		})
		mask(masked, m[0], m[1])
	}

	if !legacy {
		return blocks
	}

	for _, m := range legacyBlockRe.FindAllSubmatchIndex(masked, -1) {
		lang, ok := language.CodeForName(string(masked[m[2]:m[3]]))
		if !ok {
			continue
		}
		blocks = append(blocks, block{
			start: m[0],
			end:   m[1],
			lang:  lang,
			text:  strings.TrimSpace(text[m[4]:m[5]]),
		})
		mask(masked, m[0], m[1])
	}

	headings := translationHeadingRe.FindAllSubmatchIndex(masked, -1)
	if len(headings) > 0 {
		sort.Slice(blocks, func(i, j int) bool { return blocks[i].start < blocks[j].start })
		for i, h := range headings {
			end := len(text)
			if i+1 < len(headings) {
				end = headings[i+1][0]
			}
			for _, b := range blocks {
				if b.start > h[1] && b.start < end {
					end = b.start
					break
				}
			}
			blocks = append(blocks, block{
				start: h[0],
				end:   end,
				lang:  strings.ToLower(text[h[2]:h[3]]),
				text:  strings.TrimSpace(text[h[1]:end]),
			})
		}
	}

	sort.Slice(blocks, func(i, j int) bool { return blocks[i].start < blocks[j].start })
	return blocks
}

func mask(b []byte, from, to int) {
	for i := from; i < to; i++ {
		if b[i] != '\n' {
			b[i] = ' '
		}
	}
}

// translationsOf keeps the first block per language.
func translationsOf(blocks []block) []core.Translation {
	var out []core.Translation
	seen := make(map[string]bool, len(blocks))
	for _, b := range blocks {
		if (b.text == "" && b.title == "") || seen[b.lang] {
			continue
		}
		seen[b.lang] = true
		out = append(out, core.Translation{Lang: b.lang, Title: b.title, Text: b.text})
	}
	return out
}

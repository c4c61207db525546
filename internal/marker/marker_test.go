package marker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/bilingo/internal/core"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		env  core.Envelope
	}{
		{
			name: "original only",
			env:  core.Envelope{Original: "Just some text."},
		},
		{
			name: "one translation with metadata",
			env: core.Envelope{
				Original:         "Hello world\n\nSecond paragraph.",
				OriginalLanguage: "en",
				Translations:     []core.Translation{{Lang: "ja", Text: "こんにちは世界\n\n第二段落。"}},
				Metadata:         map[string]string{core.MetaLastProcessedContent: "abc123"},
			},
		},
		{
			name: "order is preserved",
			env: core.Envelope{
				Original:         "Bonjour",
				OriginalLanguage: "fr",
				Translations: []core.Translation{
					{Lang: "ja", Text: "こんにちは"},
					{Lang: "en", Text: "Hello"},
				},
			},
		},
		{
			name: "translation containing markdown and html",
			env: core.Envelope{
				Original: "See the table below.\n\n| a | b |\n|---|---|\n| 1 | 2 |",
				Translations: []core.Translation{{
					Lang: "ja",
					Text: "下の表を参照してください。\n\n<details><summary>詳細</summary>\n\n中身\n</details>\n\n```go\nfmt.Println(\"x\")\n```",
				}},
			},
		},
		{
			name: "translated titles",
			env: core.Envelope{
				Original:         "Adds a setup guide",
				OriginalLanguage: "en",
				Translations: []core.Translation{
					{Lang: "ja", Title: "セットアップガイドを追加", Text: "セットアップガイドを追加します"},
					{Lang: "fr", Title: "Ajouter un guide"},
				},
				Metadata: map[string]string{core.MetaLastProcessedTitle: "t1"},
			},
		},
		{
			name: "original starting with a line break tag",
			env: core.Envelope{
				Original:     "<br>\nspacing matters here",
				Translations: []core.Translation{{Lang: "ja", Text: "ここでは余白が重要"}},
			},
		},
		{
			name: "original holding its own details section",
			env: core.Envelope{
				Original:     "Bug description\n\n<details><summary>English</summary>\nstack trace\n</details>\n\nExpected behavior: it works",
				Translations: []core.Translation{{Lang: "ja", Text: "バグの説明"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := Encode(tt.env)
			assert.Equal(t, tt.env, Decode(encoded))
			assert.Equal(t, encoded, Encode(Decode(encoded)), "re-encoding must be stable")
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	body := Encode(core.Envelope{
		Original:         "Hello",
		OriginalLanguage: "en",
		Translations:     []core.Translation{{Lang: "ja", Text: "こんにちは"}},
		Metadata:         map[string]string{core.MetaLastProcessedContent: "h1"},
	})

	want := "<details>\n<summary><b>日本語</b></summary>\n<!-- bilingo:translation lang=ja -->\n\nこんにちは\n\n<!-- bilingo:translation-end -->\n</details>" +
		"\n\n**Original Content:**\n\nHello" +
		"\n\n<!-- bilingo:meta last_processed_content=h1 -->\n<!-- bilingo:meta original_language=en -->"
	assert.Equal(t, want, body)
}

func TestEncodeTitleLayout(t *testing.T) {
	body := Encode(core.Envelope{
		Original:     "Adds a guide",
		Translations: []core.Translation{{Lang: "ja", Title: "ガイド\n追加", Text: "ガイドを追加"}},
	})

	want := "<details>\n<summary><b>日本語</b></summary>\n<!-- bilingo:translation lang=ja -->\n\n" +
		"<!-- bilingo:title -->\n## ガイド 追加\n\nガイドを追加\n\n<!-- bilingo:translation-end -->\n</details>" +
		"\n\n**Original Content:**\n\nAdds a guide"
	assert.Equal(t, want, body)
}

func TestEncodeDropsUnpersistableMetaKeys(t *testing.T) {
	body := Encode(core.Envelope{
		Original: "x",
		Metadata: map[string]string{"bad key": "v", "k -->": "w", "good": "y"},
	})
	assert.NotContains(t, body, "bad key")
	assert.NotContains(t, body, "k -->")

	env := Decode(body)
	assert.Equal(t, "x", env.Original)
	assert.Equal(t, map[string]string{"good": "y"}, env.Metadata)
}

func TestEncodeSkipsEmptyTranslations(t *testing.T) {
	body := Encode(core.Envelope{
		Original:     "Hello",
		Translations: []core.Translation{{Lang: "ja", Text: "  "}},
	})
	assert.NotContains(t, body, "<details>")
}

func TestDecodeOriginalSentinelWins(t *testing.T) {
	body := "**Translation to ja:**\n\nこんにちは\n\n" +
		"<details>\n<summary><b>Français</b></summary>\n\nBonjour\n</details>\n\n" +
		"**Original Content:**\n\nHello"

	env := Decode(body)
	assert.Equal(t, "Hello", env.Original)
	require.Len(t, env.Translations, 2)
	assert.Equal(t, core.Translation{Lang: "ja", Text: "こんにちは"}, env.Translations[0])
	assert.Equal(t, core.Translation{Lang: "fr", Text: "Bonjour"}, env.Translations[1])
}

func TestDecodeBlocksWithoutOriginalSentinel(t *testing.T) {
	ja := renderBlock("ja", "", "こんにちは")
	tests := []struct {
		name     string
		body     string
		original string
	}{
		{
			name:     "blocks before original",
			body:     ja + "\n\nHello there",
			original: "Hello there",
		},
		{
			name:     "blocks after original",
			body:     "Hello there\n\n" + ja,
			original: "Hello there",
		},
		{
			name:     "original on both sides",
			body:     "Hello there\n\n" + ja + "\n\nGeneral Kenobi",
			original: "Hello there\n\nGeneral Kenobi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Decode(tt.body)
			assert.Equal(t, tt.original, env.Original)
			assert.Equal(t, []core.Translation{{Lang: "ja", Text: "こんにちは"}}, env.Translations)
		})
	}
}

func TestDecodePlainBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"text", "Just a regular issue body."},
		{"details section", "<details>\n<summary>Stack trace</summary>\n\npanic: boom\n</details>"},
		{"empty", ""},
		{
			"details named after a language",
			"Bug description\n\n<details><summary>English</summary>\nstack trace\n</details>\n\nExpected behavior: it works",
		},
		{
			"details with a two letter summary",
			"Steps:\n\n<details>\n<summary>DB</summary>\n\nSELECT 1;\n</details>\n\nThe query hangs.",
		},
		{"details before text", "<details>\n<summary>English</summary>\n\nHello\n</details>\n\nこんにちは"},
		{"heading lookalike", "Hello there\n\n**Translation to ja:**\n\nこんにちは"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Decode(tt.body)
			assert.Equal(t, strings.TrimSpace(tt.body), env.Original)
			assert.Empty(t, env.Translations)
			assert.Empty(t, env.Metadata)
		})
	}
}

func TestDecodeLegacyFormats(t *testing.T) {
	t.Run("comment marker", func(t *testing.T) {
		body := "<details>\n<summary>日本語</summary>\n\nこんにちは\n</details>\n\n<details>\n<summary>Français</summary>\n\nBonjour\n</details>\n\n**Original Comment:**\n\nHello"
		env := Decode(body)
		assert.Equal(t, "Hello", env.Original)
		assert.Equal(t, []core.Translation{{Lang: "ja", Text: "こんにちは"}, {Lang: "fr", Text: "Bonjour"}}, env.Translations)
	})

	t.Run("pull request wrapper", func(t *testing.T) {
		body := "Fix the parser\n<!-- TRANSLATION-START -->\n<details>\n<summary><b>日本語</b></summary>\n\nパーサーを修正\n</details>\n\n**Original Content:**\n\n<br>\nFix the parser\n<!-- TRANSLATION-END -->\n"
		env := Decode(body)
		assert.Equal(t, "Fix the parser", env.Original)
		assert.Equal(t, []core.Translation{{Lang: "ja", Text: "パーサーを修正"}}, env.Translations)
	})

	t.Run("pull request titles", func(t *testing.T) {
		body := "<!-- TRANSLATION-START -->\n## パーサーを修正\n\n## Corriger le parseur\n\n" +
			"<details>\n<summary><b>日本語</b></summary>\n\nパーサーを直す\n</details>\n\n" +
			"<details>\n<summary><b>Français</b></summary>\n\nCorrige le parseur\n</details>\n\n" +
			"**Original Content:**\n\n<br>\nFixes the parser\n<!-- TRANSLATION-END -->\n"
		env := Decode(body)
		assert.Equal(t, "Fixes the parser", env.Original)
		assert.Equal(t, []core.Translation{
			{Lang: "ja", Title: "パーサーを修正", Text: "パーサーを直す"},
			{Lang: "fr", Title: "Corriger le parseur", Text: "Corrige le parseur"},
		}, env.Translations)
	})

	t.Run("line breaks kept without wrapper", func(t *testing.T) {
		env := Decode("**Original Comment:**\n\n<br>\nHello")
		assert.Equal(t, "<br>\nHello", env.Original)
	})
}

func TestDecodeKeepsFirstBlockPerLanguage(t *testing.T) {
	block := func(text string) string {
		return renderBlock("ja", "", text)
	}
	body := block("一つ目") + "\n\n" + block("二つ目") + "\n\n" + OriginalSentinel + "\n\nOne"
	env := Decode(body)
	assert.Equal(t, []core.Translation{{Lang: "ja", Text: "一つ目"}}, env.Translations)
}

func TestDecodeCRLF(t *testing.T) {
	body := strings.ReplaceAll(Encode(core.Envelope{
		Original:     "line one\nline two",
		Translations: []core.Translation{{Lang: "ja", Text: "一行目\n二行目"}},
	}), "\n", "\r\n")
	env := Decode(body)
	assert.Equal(t, "line one\nline two", env.Original)
	assert.Equal(t, "一行目\n二行目", env.Translations[0].Text)
}

func TestMetadataSanitized(t *testing.T) {
	body := Encode(core.Envelope{Original: "x", Metadata: map[string]string{"note": "a -->\nb"}})
	env := Decode(body)
	assert.Equal(t, "a b", env.Meta("note"))
}

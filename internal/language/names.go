package language

import (
	"strings"
	"unicode"
)

var displayNames = map[string]string{
	"en": "English",
	"ja": "日本語",
	"fr": "Français",
	"de": "Deutsch",
	"es": "Español",
	"zh": "中文",
	"ko": "한국어",
}

// DisplayName returns the human readable heading used for a language block.
func DisplayName(lang string) string {
	if name, ok := displayNames[strings.ToLower(lang)]; ok {
		return name
	}
	if lang == "" {
		return lang
	}
	r := []rune(strings.ToLower(lang))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// CodeForName resolves a block heading back to a language code. Headings
// written by older releases carry only the display name.
func CodeForName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for code, display := range displayNames {
		if strings.EqualFold(display, name) {
			return code, true
		}
	}
	return "", false
}

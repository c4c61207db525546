package core

import (
	"regexp"
	"strings"
)

// Well-known metadata keys persisted in hidden comments.
const (
	MetaOriginalLanguage     = "original_language"
	MetaLastProcessedContent = "last_processed_content"
	MetaLastProcessedTitle   = "last_processed_title"
)

var metaKeyRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidMetaKey reports whether key can be persisted in a metadata comment.
func ValidMetaKey(key string) bool {
	return metaKeyRe.MatchString(key)
}

// Translation is one rendered translation of an original body. Title is
// set for pull requests whose title was translated alongside the body.
type Translation struct {
	Lang  string
	Title string
	Text  string
}

// Envelope is the parsed structure of a translated body: the authoritative
// original, its translations in presentation order and hidden metadata.
type Envelope struct {
	Original         string
	OriginalLanguage string
	Translations     []Translation
	Metadata         map[string]string
}

// Translation returns the translation for lang, if any.
func (e *Envelope) Translation(lang string) (string, bool) {
	for _, t := range e.Translations {
		if t.Lang == lang {
			return t.Text, true
		}
	}
	return "", false
}

// TranslationTitle returns the translated title for lang, or "".
func (e *Envelope) TranslationTitle(lang string) string {
	for _, t := range e.Translations {
		if t.Lang == lang {
			return t.Title
		}
	}
	return ""
}

// SetTranslation replaces the text for lang in place, or appends it.
// An existing title is kept.
func (e *Envelope) SetTranslation(lang, text string) {
	for i := range e.Translations {
		if e.Translations[i].Lang == lang {
			e.Translations[i].Text = text
			return
		}
	}
	e.Translations = append(e.Translations, Translation{Lang: lang, Text: text})
}

// SetTitle stores the translated title for lang, appending an empty
// translation when lang has none yet.
func (e *Envelope) SetTitle(lang, title string) {
	for i := range e.Translations {
		if e.Translations[i].Lang == lang {
			e.Translations[i].Title = title
			return
		}
	}
	e.Translations = append(e.Translations, Translation{Lang: lang, Title: title})
}

// RemoveTranslation drops the translation for lang. It reports whether one existed.
func (e *Envelope) RemoveTranslation(lang string) bool {
	for i := range e.Translations {
		if e.Translations[i].Lang == lang {
			e.Translations = append(e.Translations[:i], e.Translations[i+1:]...)
			return true
		}
	}
	return false
}

// Meta returns a metadata value, or "" when unset.
func (e *Envelope) Meta(key string) string {
	if e.Metadata == nil {
		return ""
	}
	return e.Metadata[key]
}

// SetMeta stores a metadata value. An empty value removes the key; keys
// that cannot be persisted are ignored.
func (e *Envelope) SetMeta(key, value string) {
	if !ValidMetaKey(key) {
		return
	}
	if value == "" {
		delete(e.Metadata, key)
		return
	}
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

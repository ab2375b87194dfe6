package i18n

import (
	"fmt"
	"strings"
	"sync"
)

// Language represents supported console languages
type Language string

const (
	English    Language = "English"
	Vietnamese Language = "Tiếng Việt"
)

// Translator provides translation functionality
type Translator struct {
	language     Language
	translations map[Language]map[string]string
	mu           sync.RWMutex
}

var (
	defaultTranslator *Translator
	once              sync.Once
)

// GetTranslator returns the singleton translator instance
func GetTranslator() *Translator {
	once.Do(func() {
		defaultTranslator = &Translator{
			language:     English,
			translations: make(map[Language]map[string]string),
		}
		defaultTranslator.loadTranslations()
	})
	return defaultTranslator
}

// SetLanguage sets the current language
func (t *Translator) SetLanguage(lang Language) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.language = lang
}

// GetLanguage returns the current language
func (t *Translator) GetLanguage() Language {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.language
}

// T translates a key with optional parameters. Keys missing from the
// current language fall back to English, then to the key itself.
func (t *Translator) T(key string, params ...interface{}) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	text, ok := t.translations[t.language][key]
	if !ok {
		text, ok = t.translations[English][key]
	}
	if !ok {
		return key
	}

	if len(params) > 0 {
		return fmt.Sprintf(text, params...)
	}
	return text
}

// T is a convenience function for translation
func T(key string, params ...interface{}) string {
	return GetTranslator().T(key, params...)
}

// SetLanguage is a convenience function to set language
func SetLanguage(lang Language) {
	GetTranslator().SetLanguage(lang)
}

// GetLanguage is a convenience function to get current language
func GetLanguage() Language {
	return GetTranslator().GetLanguage()
}

// ParseLanguage converts a config or flag value to a Language.
// Unknown values fall back to English.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vi", "vi-vn", "vietnamese", "tiếng việt":
		return Vietnamese
	default:
		return English
	}
}

// Code returns the short language code stored with generation history
func (l Language) Code() string {
	if l == Vietnamese {
		return "vi"
	}
	return "en"
}

// loadTranslations loads all translation strings
func (t *Translator) loadTranslations() {
	t.translations[English] = englishTranslations
	t.translations[Vietnamese] = vietnameseTranslations
}

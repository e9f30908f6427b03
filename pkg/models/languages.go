package models

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language pairs a stored language code with its display label
type Language struct {
	Code  string
	Label string
}

// supportedLanguageCodes lists the codes the service accepts, in menu order
var supportedLanguageCodes = []string{
	"en", "es", "fr", "de", "it", "pt", "nl", "pl", "tr",
	"ru", "uk", "ja", "ko", "zh", "ar", "hi",
}

// AvailableLanguages returns the selectable languages with labels rendered
// in their own script (e.g. "日本語" for ja). The document always stores the
// code, never the label.
func AvailableLanguages() []Language {
	languages := make([]Language, 0, len(supportedLanguageCodes))
	for _, code := range supportedLanguageCodes {
		label := display.Self.Name(language.Make(code))
		if label == "" {
			label = code
		}
		languages = append(languages, Language{Code: code, Label: label})
	}
	return languages
}

// ResolveLanguageCode maps a display label back to its code. Codes pass
// through unchanged; unknown input comes back trimmed so callers can still
// compare it verbatim.
func ResolveLanguageCode(labelOrCode string) string {
	trimmed := strings.TrimSpace(labelOrCode)
	for _, lang := range AvailableLanguages() {
		if strings.EqualFold(trimmed, lang.Code) || trimmed == lang.Label {
			return lang.Code
		}
	}
	return trimmed
}

// LanguageLabel returns the display label for a stored code
func LanguageLabel(code string) string {
	for _, lang := range AvailableLanguages() {
		if strings.EqualFold(code, lang.Code) {
			return lang.Label
		}
	}
	return code
}

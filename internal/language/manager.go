// Package language tracks the reply languages the assistant can translate
// into.
package language

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const DefaultLanguage = "en"

// LanguageInfo contains information about a supported language
type LanguageInfo struct {
	Code       string       `json:"code"`
	Name       string       `json:"name"`
	NativeName string       `json:"native_name"`
	IsEnabled  bool         `json:"is_enabled"`
	Tag        language.Tag `json:"-"`
}

// ValidationResult represents the result of language validation
type ValidationResult struct {
	Code         string `json:"code"`
	UsedFallback bool   `json:"used_fallback"`
}

var supported = []struct {
	code string
	name string
}{
	{"en", "English"},
	{"es", "Spanish"},
	{"fr", "French"},
	{"de", "German"},
	{"it", "Italian"},
	{"pt", "Portuguese"},
	{"ru", "Russian"},
	{"ja", "Japanese"},
	{"ko", "Korean"},
	{"zh-cn", "Chinese (Simplified)"},
	{"ar", "Arabic"},
	{"hi", "Hindi"},
	{"bn", "Bengali"},
	{"ur", "Urdu"},
	{"fa", "Persian"},
	{"tr", "Turkish"},
	{"pl", "Polish"},
	{"nl", "Dutch"},
	{"sv", "Swedish"},
	{"da", "Danish"},
	{"no", "Norwegian"},
	{"fi", "Finnish"},
	{"he", "Hebrew"},
	{"th", "Thai"},
	{"vi", "Vietnamese"},
	{"id", "Indonesian"},
	{"ms", "Malay"},
	{"tl", "Filipino"},
}

// Manager handles language support and validation
type Manager struct {
	languages map[string]*LanguageInfo
	mu        sync.RWMutex
}

// NewManager creates a manager with every supported language enabled.
func NewManager() *Manager {
	m := &Manager{languages: make(map[string]*LanguageInfo, len(supported))}
	for _, s := range supported {
		tag := language.Make(s.code)
		m.languages[s.code] = &LanguageInfo{
			Code:       s.code,
			Name:       s.name,
			NativeName: display.Self.Name(tag),
			IsEnabled:  true,
			Tag:        tag,
		}
	}
	return m
}

// Normalize maps user-supplied codes such as "ES", "pt-BR", "zh" or
// "en_US" onto registry codes. Codes that cannot be parsed are returned
// lowercased.
func Normalize(code string) string {
	c := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(code)), "_", "-")
	if c == "" {
		return c
	}
	for _, s := range supported {
		if s.code == c {
			return c
		}
	}

	tag, err := language.Parse(c)
	if err != nil {
		return c
	}
	base, _ := tag.Base()
	switch b := base.String(); b {
	case "zh":
		if script, _ := tag.Script(); script.String() == "Hant" {
			return "zh-tw"
		}
		return "zh-cn"
	case "fil":
		return "tl"
	case "nb", "nn":
		return "no"
	default:
		return b
	}
}

// IsSupported checks if a language code is supported and enabled
func (m *Manager) IsSupported(code string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lang, exists := m.languages[Normalize(code)]
	return exists && lang.IsEnabled
}

// Validate normalizes code and falls back to the default language when
// it is not supported.
func (m *Manager) Validate(code string) ValidationResult {
	if m.IsSupported(code) {
		return ValidationResult{Code: Normalize(code)}
	}
	return ValidationResult{Code: DefaultLanguage, UsedFallback: true}
}

// NeedsTranslation reports whether replies must be translated for code.
func (m *Manager) NeedsTranslation(code string) bool {
	return m.Validate(code).Code != DefaultLanguage
}

// GetLanguageInfo returns information about a language
func (m *Manager) GetLanguageInfo(code string) (LanguageInfo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lang, exists := m.languages[Normalize(code)]
	if !exists {
		return LanguageInfo{}, false
	}
	return *lang, true
}

// EnableLanguage enables a language
func (m *Manager) EnableLanguage(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if lang, exists := m.languages[Normalize(code)]; exists {
		lang.IsEnabled = true
	}
}

// DisableLanguage disables a language (cannot disable default language)
func (m *Manager) DisableLanguage(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code = Normalize(code)
	if code == DefaultLanguage {
		return
	}
	if lang, exists := m.languages[code]; exists {
		lang.IsEnabled = false
	}
}

// GetSupportedLanguages returns every enabled language sorted by code.
func (m *Manager) GetSupportedLanguages() []LanguageInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	languages := make([]LanguageInfo, 0, len(m.languages))
	for _, lang := range m.languages {
		if lang.IsEnabled {
			languages = append(languages, *lang)
		}
	}
	sort.Slice(languages, func(i, j int) bool { return languages[i].Code < languages[j].Code })
	return languages
}

var detectHints = []struct {
	code  string
	hints []string
}{
	{"es", []string{"hola", "gracias", "español", "¿", "¡"}},
	{"fr", []string{"bonjour", "merci", "français"}},
	{"de", []string{"hallo", "danke", "deutsch"}},
	{"hi", []string{"नमस्ते", "धन्यवाद", "हिंदी"}},
}

// Detect guesses the language of text from a few greeting words and
// defaults to English.
func Detect(text string) string {
	t := strings.ToLower(text)
	for _, d := range detectHints {
		for _, h := range d.hints {
			if strings.Contains(t, h) {
				return d.code
			}
		}
	}
	return DefaultLanguage
}

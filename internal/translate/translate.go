// Package translate turns English replies into the user's language.
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/language"
	"github.com/therohitnagar15/Wellbeing-Chatbot/pkg/llm"
)

// ErrUnsupportedLanguage is returned for target languages a translator
// cannot produce.
var ErrUnsupportedLanguage = errors.New("translate: unsupported language")

// Translator converts English text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// ModelTranslator asks the generative model for a translation.
type ModelTranslator struct {
	gen       llm.Generator
	languages *language.Manager
	logger    *zap.Logger
}

// NewModelTranslator creates a translator backed by gen.
func NewModelTranslator(gen llm.Generator, languages *language.Manager, logger *zap.Logger) *ModelTranslator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ModelTranslator{gen: gen, languages: languages, logger: logger}
}

// Translate returns text unchanged for blank input and English targets.
func (t *ModelTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	info, ok := t.languages.GetLanguageInfo(targetLang)
	if !ok || !info.IsEnabled {
		return text, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, targetLang)
	}
	if info.Code == language.DefaultLanguage {
		return text, nil
	}

	c := llm.Complete(ctx, t.gen, translationPrompt(text, info))
	if !c.OK() {
		t.logger.Warn("model translation failed",
			zap.String("lang", info.Code),
			zap.String("status", string(c.Status)),
			zap.Error(c.Err))
		return text, fmt.Errorf("translate to %s: %w", info.Code, c.Err)
	}
	return c.Text, nil
}

func translationPrompt(text string, info language.LanguageInfo) string {
	var sb strings.Builder
	sb.WriteString("Translate the following message from English into ")
	sb.WriteString(info.Name)
	if info.NativeName != "" && info.NativeName != info.Name {
		sb.WriteString(" (" + info.NativeName + ")")
	}
	sb.WriteString(". Keep the warm, supportive tone, keep any markdown formatting, phone numbers and bullet points as they are, and reply with the translation only.\n\n")
	sb.WriteString(text)
	return sb.String()
}

package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/language"
)

// Phrasebook translates a handful of exact phrases offline. It is used
// when no model is configured; any other text is returned unchanged.
type Phrasebook struct {
	phrases map[string]map[string]string
}

// NewPhrasebook returns the built-in phrasebook for es, fr, de and hi.
func NewPhrasebook() *Phrasebook {
	return &Phrasebook{phrases: defaultPhrases}
}

// Translate looks text up verbatim. Languages without a phrasebook yield
// ErrUnsupportedLanguage.
func (p *Phrasebook) Translate(_ context.Context, text, targetLang string) (string, error) {
	lang := language.Normalize(targetLang)
	if strings.TrimSpace(text) == "" || lang == language.DefaultLanguage {
		return text, nil
	}
	book, ok := p.phrases[lang]
	if !ok {
		return text, fmt.Errorf("%w: no phrasebook for %q", ErrUnsupportedLanguage, lang)
	}
	if translated, ok := book[text]; ok {
		return translated, nil
	}
	return text, nil
}

var defaultPhrases = map[string]map[string]string{
	"es": {
		"Hello":           "Hola",
		"How are you?":    "¿Cómo estás?",
		"I feel stressed": "Me siento estresado",
		"I need help":     "Necesito ayuda",
		"Thank you":       "Gracias",
		"I feel anxious":  "Me siento ansioso",
		"I feel sad":      "Me siento triste",
		"I feel happy":    "Me siento feliz",
		"Good morning":    "Buenos días",
		"Good evening":    "Buenas noches",
	},
	"fr": {
		"Hello":           "Bonjour",
		"How are you?":    "Comment allez-vous?",
		"I feel stressed": "Je me sens stressé",
		"I need help":     "J'ai besoin d'aide",
		"Thank you":       "Merci",
		"I feel anxious":  "Je me sens anxieux",
		"I feel sad":      "Je me sens triste",
		"I feel happy":    "Je me sens heureux",
		"Good morning":    "Bonjour",
		"Good evening":    "Bonsoir",
	},
	"de": {
		"Hello":           "Hallo",
		"How are you?":    "Wie geht es Ihnen?",
		"I feel stressed": "Ich fühle mich gestresst",
		"I need help":     "Ich brauche Hilfe",
		"Thank you":       "Danke",
		"I feel anxious":  "Ich fühle mich ängstlich",
		"I feel sad":      "Ich fühle mich traurig",
		"I feel happy":    "Ich fühle mich glücklich",
		"Good morning":    "Guten Morgen",
		"Good evening":    "Guten Abend",
	},
	"hi": {
		"Hello":           "नमस्ते",
		"How are you?":    "आप कैसे हैं?",
		"I feel stressed": "मैं तनाव महसूस कर रहा हूं",
		"I need help":     "मुझे मदद चाहिए",
		"Thank you":       "धन्यवाद",
		"I feel anxious":  "मैं चिंतित महसूस कर रहा हूं",
		"I feel sad":      "मैं दुखी महसूस कर रहा हूं",
		"I feel happy":    "मैं खुश महसूस कर रहा हूं",
		"Good morning":    "सुप्रभात",
		"Good evening":    "शुभ संध्या",
	},
}

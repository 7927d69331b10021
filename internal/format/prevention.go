package format

import (
	"strings"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/knowledge"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/lexicon"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/matcher"
)

const maxPreventionTips = 5

const additionalSupport = "**Additional Support:**\n" +
	Bullet + "Practice daily gratitude journaling\n" +
	Bullet + "Maintain social connections\n" +
	Bullet + "Regular exercise (even 20 minutes daily)\n" +
	Bullet + "Consider professional counseling\n\n"

const generalPrevention = "**General Health Prevention Tips:**\n\n" +
	Bullet + "**Maintain a healthy lifestyle:** Regular exercise, balanced nutrition, adequate sleep\n" +
	Bullet + "**Stay hydrated:** Drink plenty of water throughout the day\n" +
	Bullet + "**Practice stress management:** Meditation, deep breathing, hobbies\n" +
	Bullet + "**Regular health check-ups:** Annual physical exams and screenings\n" +
	Bullet + "**Build strong social connections:** Maintain relationships and community ties\n" +
	Bullet + "**Limit harmful substances:** Moderate alcohol, avoid smoking, be cautious with medications\n" +
	Bullet + "**Practice good hygiene:** Regular handwashing, vaccination when appropriate\n" +
	Bullet + "**Mental health awareness:** Address stress early, seek help when needed\n\n" +
	"For specific health concerns, please consult a healthcare professional for personalized advice."

const preventionDisclaimer = "\n*This information is for educational purposes. Please consult healthcare professionals for personalized medical advice.*"

// Conditions that also get the additional support block.
var supportConditions = map[string]bool{
	"depression": true,
	"anxiety":    true,
	"stress":     true,
}

// Prevention answers "how do I prevent / cope with X" questions from the
// lexicon's keyword mappings and the knowledge base.
type Prevention struct {
	kb    *knowledge.Base
	lex   *lexicon.Lexicon
	match matcher.KeywordMatcher
}

// NewPrevention creates a Prevention; a nil matcher means substring matching.
func NewPrevention(kb *knowledge.Base, lex *lexicon.Lexicon, m matcher.KeywordMatcher) *Prevention {
	if m == nil {
		m = matcher.Substring{}
	}
	return &Prevention{kb: kb, lex: lex, match: m}
}

// Solutions renders prevention advice for text. The first condition
// mapping that resolves contributes a condition block; the first wellness
// mapping that resolves appends its advice. Without either, generic
// "prevent"/"avoid" language yields the general checklist. ok is false
// when nothing at all matched.
func (p *Prevention) Solutions(text string) (reply string, ok bool) {
	t := strings.ToLower(text)
	var sb strings.Builder

	for _, m := range p.lex.PreventionConditions {
		if !p.match.Contains(t, m.Keyword) {
			continue
		}
		if c := p.firstCondition(m.Conditions); c != nil {
			writePreventionBlock(&sb, c)
			break
		}
	}

	for _, m := range p.lex.PreventionWellness {
		if !p.match.Contains(t, m.Keyword) {
			continue
		}
		if topic, found := p.kb.WellnessTopic(m.Topic); found {
			writeWellness(&sb, topic)
			break
		}
	}

	if sb.Len() == 0 && (strings.Contains(t, "prevent") || strings.Contains(t, "avoid")) {
		sb.WriteString(generalPrevention)
	}
	if sb.Len() == 0 {
		return "", false
	}
	sb.WriteString(preventionDisclaimer)
	return sb.String(), true
}

func (p *Prevention) firstCondition(names []string) *knowledge.Condition {
	for _, name := range names {
		if c, found := p.kb.Lookup(name); found {
			return c
		}
	}
	return nil
}

func writePreventionBlock(sb *strings.Builder, c *knowledge.Condition) {
	sb.WriteString("**Prevention and Solutions for " + Title(c.Name) + ":**\n\n")
	if len(c.Prevention) > 0 {
		sb.WriteString("**Prevention Tips:**\n")
		writeBullets(sb, head(c.Prevention, maxPreventionTips))
		sb.WriteString("\n")
	}
	if c.ImmediateHelp != "" {
		sb.WriteString("**Immediate Help:** " + c.ImmediateHelp + "\n\n")
	}
	if supportConditions[c.Name] {
		sb.WriteString(additionalSupport)
	}
}

func writeWellness(sb *strings.Builder, topic *knowledge.WellnessTopic) {
	sb.WriteString("**" + Title(topic.Name) + " Tips:**\n\n")
	for _, a := range topic.Advice {
		sb.WriteString(Bullet + Title(a.Key) + ": " + a.Text + "\n")
	}
	sb.WriteString("\n")
}

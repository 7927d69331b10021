// Package crisis detects high-risk messages and renders the emergency
// support response. Crisis handling runs before every other routing stage.
package crisis

import (
	"strings"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/lexicon"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/matcher"
)

// Category selects the coping section of the crisis response.
type Category string

const (
	Suicide          Category = "suicide"
	SelfHarm         Category = "self_harm"
	SevereDepression Category = "severe_depression"
	MentalCrisis     Category = "mental_crisis"
	TraumaAbuse      Category = "trauma_abuse"
	Addiction        Category = "addiction"
	General          Category = "general_crisis"
)

// precedence is the fixed order in which categories are tried. Violence
// has no section of its own and resolves to General.
var precedence = []struct {
	source lexicon.CrisisCategory
	target Category
}{
	{lexicon.CrisisSuicide, Suicide},
	{lexicon.CrisisSelfHarm, SelfHarm},
	{lexicon.CrisisSevereDepression, SevereDepression},
	{lexicon.CrisisMentalCrisis, MentalCrisis},
	{lexicon.CrisisTraumaAbuse, TraumaAbuse},
	{lexicon.CrisisAddiction, Addiction},
}

// Detector classifies messages against the crisis keyword sets.
type Detector struct {
	lex   *lexicon.Lexicon
	match matcher.KeywordMatcher
	all   lexicon.KeywordSet
}

// NewDetector creates a detector; a nil matcher means substring matching.
func NewDetector(lex *lexicon.Lexicon, m matcher.KeywordMatcher) *Detector {
	if m == nil {
		m = matcher.Substring{}
	}
	return &Detector{lex: lex, match: m, all: lex.AllCrisisKeywords()}
}

// Detect reports whether text contains any crisis keyword and, if so,
// which category applies. text must be lowercase.
func (d *Detector) Detect(text string) (Category, bool) {
	if !matcher.Any(d.match, text, d.all) {
		return "", false
	}
	return d.Category(text), true
}

// Category picks the first category, in precedence order, whose keywords
// occur in text. Texts that only match other sets are General.
func (d *Detector) Category(text string) Category {
	for _, p := range precedence {
		if matcher.Any(d.match, text, d.lex.CrisisKeywords(p.source)) {
			return p.target
		}
	}
	return General
}

// Response renders the full crisis message for category c.
func Response(c Category) string {
	sec, ok := sections[c]
	if !ok {
		sec = sections[General]
	}

	var sb strings.Builder
	sb.WriteString(opening)
	sb.WriteString("\n\n")
	writeList(&sb, emergencyHeader, emergencyServices, false)
	writeList(&sb, helplineHeader, helplines, false)
	writeList(&sb, sec.header, sec.tips, true)
	sb.WriteString(closing)
	return sb.String()
}

// writeList renders a bold header followed by bulleted "label: text"
// lines. Coping sections leave a blank line under the header.
func writeList(sb *strings.Builder, header string, items []item, spaced bool) {
	sb.WriteString("**" + header + "**\n")
	if spaced {
		sb.WriteString("\n")
	}
	for _, it := range items {
		sb.WriteString("• **" + it.label + "**: " + it.text + "\n")
	}
	sb.WriteString("\n")
}

// Package format renders knowledge-base hits and prevention advice as
// chat replies.
package format

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/knowledge"
)

// Bullet prefixes every list item in rendered replies.
const Bullet = "• "

const (
	maxResults            = 2
	describedSymptoms     = 4
	overviewSymptoms      = 3
	symptomCauses         = 5
	symptomPreventionTips = 6

	healthDisclaimer = "This is general information only. Please consult a healthcare professional for personalized medical advice."
	noHealthInfo     = "I don't have specific information about that health topic. Please consult a healthcare professional for medical advice."
)

// QueryMode is what a health question asks about.
type QueryMode int

const (
	ModeGeneral QueryMode = iota
	ModeDescription
	ModeSymptoms
	ModeCauses
	ModeTreatments
	ModePrevention
)

var modeCues = []struct {
	mode QueryMode
	cues []string
}{
	{ModeDescription, []string{"i have", "i'm experiencing", "feeling", "pain", "ache", "hurt"}},
	{ModeSymptoms, []string{"symptoms of", "symptom", "signs of", "what are the symptoms"}},
	{ModeCauses, []string{"cause", "causes", "why", "what causes"}},
	{ModeTreatments, []string{"treatment", "treatments", "cure", "how to treat", "medicine"}},
	{ModePrevention, []string{"prevent", "prevention", "avoid"}},
}

// DetectMode infers the query mode from phrase cues. A user describing
// their own symptoms wins over every other cue.
func DetectMode(query string) QueryMode {
	q := strings.ToLower(query)
	for _, mc := range modeCues {
		for _, cue := range mc.cues {
			if strings.Contains(q, cue) {
				return mc.mode
			}
		}
	}
	return ModeGeneral
}

// Title renders a canonical key such as "back_pain" as "Back Pain".
func Title(key string) string {
	return cases.Title(language.English).String(knowledge.Humanize(key))
}

// HealthResponse renders at most the first two search results for query.
// Mental-health and wellness hits contribute no text.
func HealthResponse(results []knowledge.SearchResult, query string) string {
	mode := DetectMode(query)
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	var sb strings.Builder
	for _, r := range results {
		switch r.Kind {
		case knowledge.KindCondition:
			writeCondition(&sb, r.Condition, mode)
		case knowledge.KindSymptom:
			sb.WriteString("Possible conditions for " + knowledge.Humanize(r.Name) + ":\n")
			writeBullets(&sb, head(r.Causes, symptomCauses))
			sb.WriteString("\n")
		case knowledge.KindPrevention:
			sb.WriteString("Prevention tips for " + knowledge.Humanize(r.Name) + ":\n")
			writeBullets(&sb, head(r.Tips, symptomPreventionTips))
			sb.WriteString("\n")
		}
	}

	if sb.Len() == 0 {
		return noHealthInfo
	}
	sb.WriteString(healthDisclaimer)
	return sb.String()
}

func writeCondition(sb *strings.Builder, c *knowledge.Condition, mode QueryMode) {
	if c == nil {
		return
	}
	name := Title(c.Name)

	switch mode {
	case ModeDescription:
		sb.WriteString("Based on your description, this could be related to " + name + ".\n\n")
		sb.WriteString("Key symptoms: " + strings.Join(head(c.Symptoms, describedSymptoms), ", ") + "\n\n")
		sb.WriteString("Please consult a healthcare professional for proper diagnosis.\n\n")
	case ModeSymptoms:
		writeSection(sb, "Symptoms of "+name, c.Symptoms)
	case ModeCauses:
		writeSection(sb, "Causes of "+name, c.Causes)
	case ModeTreatments:
		writeSection(sb, "Treatments for "+name, c.Treatments)
	case ModePrevention:
		writeSection(sb, "Prevention of "+name, c.Prevention)
	default:
		sb.WriteString(name + ":\n")
		sb.WriteString("A condition characterized by: " + strings.Join(head(c.Symptoms, overviewSymptoms), ", ") + "\n\n")
	}
}

func writeSection(sb *strings.Builder, title string, items []string) {
	sb.WriteString(title + ":\n")
	writeBullets(sb, items)
	sb.WriteString("\n")
}

func writeBullets(sb *strings.Builder, items []string) {
	for _, it := range items {
		sb.WriteString(Bullet + it + "\n")
	}
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

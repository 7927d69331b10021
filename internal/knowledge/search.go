package knowledge

import "strings"

// Kind tags the variant carried by a SearchResult.
type Kind string

const (
	KindCondition    Kind = "condition"
	KindMentalHealth Kind = "mental_health"
	KindSymptom      Kind = "symptom"
	KindWellness     Kind = "wellness"
	KindPrevention   Kind = "prevention"
)

// SearchResult is one hit of Search. Exactly one payload field is set,
// selected by Kind: Condition for condition and mental_health, Causes for
// symptom, Advice for wellness, Tips for prevention.
type SearchResult struct {
	Kind      Kind
	Name      string
	Condition *Condition
	Causes    []string
	Advice    []Advice
	Tips      []string
}

// Search matches query against every table independently and returns the
// hits in table order. Matching is case-insensitive substring containment:
//
//   - conditions: the key, the key with underscores as spaces, or any
//     symptom phrase appears in the query
//   - mental-health conditions: the key or its spaced form
//   - symptoms, wellness topics, symptom prevention: the key
//
// Results are neither ranked nor de-duplicated across tables.
func (kb *Base) Search(query string) []SearchResult {
	q := strings.ToLower(query)
	var results []SearchResult

	for i := range kb.Conditions {
		c := &kb.Conditions[i]
		if keyIn(q, c.Name) || anyIn(q, c.Symptoms) {
			results = append(results, SearchResult{Kind: KindCondition, Name: c.Name, Condition: c})
		}
	}

	for i := range kb.MentalHealth {
		c := &kb.MentalHealth[i]
		if keyIn(q, c.Name) {
			results = append(results, SearchResult{Kind: KindMentalHealth, Name: c.Name, Condition: c})
		}
	}

	for _, s := range kb.Symptoms {
		if strings.Contains(q, s.Name) {
			results = append(results, SearchResult{Kind: KindSymptom, Name: s.Name, Causes: s.Causes})
		}
	}

	for _, w := range kb.Wellness {
		if strings.Contains(q, w.Name) {
			results = append(results, SearchResult{Kind: KindWellness, Name: w.Name, Advice: w.Advice})
		}
	}

	for _, p := range kb.SymptomPrevention {
		if strings.Contains(q, p.Name) {
			results = append(results, SearchResult{Kind: KindPrevention, Name: p.Name, Tips: p.Tips})
		}
	}

	return results
}

func keyIn(q, key string) bool {
	return strings.Contains(q, key) || strings.Contains(q, Humanize(key))
}

func anyIn(q string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(q, p) {
			return true
		}
	}
	return false
}

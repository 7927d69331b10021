// Package lexicon holds the keyword tables and canned responses that drive
// the response router. Tables are parsed once from YAML and must be treated
// as read-only afterwards.
package lexicon

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultYAML []byte

// KeywordSet is an ordered list of lowercase phrases for one category.
type KeywordSet []string

// CrisisCategory names one of the high-risk topics.
type CrisisCategory string

const (
	CrisisSuicide          CrisisCategory = "suicide"
	CrisisSelfHarm         CrisisCategory = "self_harm"
	CrisisMentalCrisis     CrisisCategory = "mental_crisis"
	CrisisViolence         CrisisCategory = "violence"
	CrisisSevereDepression CrisisCategory = "severe_depression"
	CrisisAddiction        CrisisCategory = "addiction"
	CrisisTraumaAbuse      CrisisCategory = "trauma_abuse"
)

// KnownCrisisCategories lists every category the lexicon may define.
var KnownCrisisCategories = []CrisisCategory{
	CrisisSuicide,
	CrisisSelfHarm,
	CrisisMentalCrisis,
	CrisisViolence,
	CrisisSevereDepression,
	CrisisAddiction,
	CrisisTraumaAbuse,
}

// CrisisSet binds a crisis category to its trigger phrases.
type CrisisSet struct {
	Category CrisisCategory `yaml:"category"`
	Keywords KeywordSet     `yaml:"keywords"`
}

// Phrasebook is a trigger set with the canned replies it selects from.
type Phrasebook struct {
	Keywords  KeywordSet `yaml:"keywords"`
	Responses []string   `yaml:"responses"`
}

// Greeting is a Phrasebook that only applies to short messages.
type Greeting struct {
	Phrasebook `yaml:",inline"`
	MaxWords   int `yaml:"max_words"`
}

// Intent maps an intent key, matched as a literal substring, to one reply.
type Intent struct {
	Key      string `yaml:"key"`
	Response string `yaml:"response"`
}

// ConditionMapping points a prevention keyword at knowledge-base conditions.
type ConditionMapping struct {
	Keyword    string   `yaml:"keyword"`
	Conditions []string `yaml:"conditions"`
}

// WellnessMapping points a prevention keyword at a wellness topic.
type WellnessMapping struct {
	Keyword string `yaml:"keyword"`
	Topic   string `yaml:"topic"`
}

// Lexicon is the full set of router tables. Slice order is significant.
type Lexicon struct {
	Crisis               []CrisisSet        `yaml:"crisis"`
	Greeting             Greeting           `yaml:"greeting"`
	Routine              Phrasebook         `yaml:"routine"`
	Breathing            KeywordSet         `yaml:"breathing"`
	Mindfulness          KeywordSet         `yaml:"mindfulness"`
	PreventionTriggers   KeywordSet         `yaml:"prevention_triggers"`
	Professor            KeywordSet         `yaml:"professor"`
	Intents              []Intent           `yaml:"intents"`
	Academic             Phrasebook         `yaml:"academic"`
	WorkLife             Phrasebook         `yaml:"work_life"`
	Professional         Phrasebook         `yaml:"professional"`
	Doctor               KeywordSet         `yaml:"doctor"`
	PreventionConditions []ConditionMapping `yaml:"prevention_conditions"`
	PreventionWellness   []WellnessMapping  `yaml:"prevention_wellness"`
}

// Default parses the lexicon compiled into the binary.
func Default() (*Lexicon, error) {
	return Parse(defaultYAML)
}

// MustDefault is Default for package-level initialisation and tests.
func MustDefault() *Lexicon {
	lex, err := Default()
	if err != nil {
		panic(err)
	}
	return lex
}

// LoadFile parses a replacement lexicon from disk.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a lexicon document. Keywords are lowercased.
func Parse(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	lex.normalize()
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	return &lex, nil
}

func (l *Lexicon) normalize() {
	for i := range l.Crisis {
		l.Crisis[i].Keywords = l.Crisis[i].Keywords.lower()
	}
	l.Greeting.Keywords = l.Greeting.Keywords.lower()
	l.Routine.Keywords = l.Routine.Keywords.lower()
	l.Breathing = l.Breathing.lower()
	l.Mindfulness = l.Mindfulness.lower()
	l.PreventionTriggers = l.PreventionTriggers.lower()
	l.Professor = l.Professor.lower()
	l.Academic.Keywords = l.Academic.Keywords.lower()
	l.WorkLife.Keywords = l.WorkLife.Keywords.lower()
	l.Professional.Keywords = l.Professional.Keywords.lower()
	l.Doctor = l.Doctor.lower()
	for i := range l.Intents {
		l.Intents[i].Key = strings.ToLower(l.Intents[i].Key)
	}
	for i := range l.PreventionConditions {
		l.PreventionConditions[i].Keyword = strings.ToLower(l.PreventionConditions[i].Keyword)
	}
	for i := range l.PreventionWellness {
		l.PreventionWellness[i].Keyword = strings.ToLower(l.PreventionWellness[i].Keyword)
	}
}

func (k KeywordSet) lower() KeywordSet {
	out := make(KeywordSet, 0, len(k))
	for _, w := range k {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Validate checks the structural invariants the router relies on.
func (l *Lexicon) Validate() error {
	var errs []error

	if len(l.Crisis) == 0 {
		errs = append(errs, errors.New("no crisis categories"))
	}
	seen := make(map[CrisisCategory]bool)
	for _, set := range l.Crisis {
		if !isKnownCategory(set.Category) {
			errs = append(errs, fmt.Errorf("unknown crisis category %q", set.Category))
		}
		if seen[set.Category] {
			errs = append(errs, fmt.Errorf("duplicate crisis category %q", set.Category))
		}
		seen[set.Category] = true
		if len(set.Keywords) == 0 {
			errs = append(errs, fmt.Errorf("crisis category %q has no keywords", set.Category))
		}
	}

	for name, pb := range map[string]Phrasebook{
		"greeting":     l.Greeting.Phrasebook,
		"routine":      l.Routine,
		"academic":     l.Academic,
		"work_life":    l.WorkLife,
		"professional": l.Professional,
	} {
		if len(pb.Keywords) == 0 || len(pb.Responses) == 0 {
			errs = append(errs, fmt.Errorf("%s needs keywords and responses", name))
		}
	}
	if l.Greeting.MaxWords <= 0 {
		errs = append(errs, errors.New("greeting.max_words must be positive"))
	}

	for i, intent := range l.Intents {
		if intent.Key == "" || intent.Response == "" {
			errs = append(errs, fmt.Errorf("intent #%d is incomplete", i))
		}
	}

	return errors.Join(errs...)
}

func isKnownCategory(c CrisisCategory) bool {
	for _, k := range KnownCrisisCategories {
		if k == c {
			return true
		}
	}
	return false
}

// CrisisKeywords returns the keywords of one category, or nil.
func (l *Lexicon) CrisisKeywords(c CrisisCategory) KeywordSet {
	for _, set := range l.Crisis {
		if set.Category == c {
			return set.Keywords
		}
	}
	return nil
}

// AllCrisisKeywords returns the union of every crisis category, in
// table order.
func (l *Lexicon) AllCrisisKeywords() KeywordSet {
	var all KeywordSet
	for _, set := range l.Crisis {
		all = append(all, set.Keywords...)
	}
	return all
}

// Package knowledge is the static health information base consulted by the
// router: conditions, mental-health conditions, symptom causes, wellness
// topics and symptom prevention tips.
package knowledge

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var defaultYAML []byte

// Condition is one record of the condition tables.
type Condition struct {
	Name          string   `yaml:"name"`
	Symptoms      []string `yaml:"symptoms"`
	Causes        []string `yaml:"causes"`
	Treatments    []string `yaml:"treatments"`
	Management    []string `yaml:"management"`
	Prevention    []string `yaml:"prevention"`
	ImmediateHelp string   `yaml:"immediate_help"`
}

// Symptom lists possible causes for a symptom.
type Symptom struct {
	Name   string   `yaml:"name"`
	Causes []string `yaml:"causes"`
}

// Advice is a single piece of wellness advice.
type Advice struct {
	Key  string `yaml:"key"`
	Text string `yaml:"text"`
}

// WellnessTopic groups advice on one area of wellbeing.
type WellnessTopic struct {
	Name   string   `yaml:"name"`
	Advice []Advice `yaml:"advice"`
}

// SymptomPrevention lists prevention tips for a symptom.
type SymptomPrevention struct {
	Name string   `yaml:"name"`
	Tips []string `yaml:"tips"`
}

// Base is the immutable knowledge base. Use Search or the lookup helpers;
// do not modify the slices.
type Base struct {
	Conditions        []Condition         `yaml:"conditions"`
	MentalHealth      []Condition         `yaml:"mental_health"`
	Symptoms          []Symptom           `yaml:"symptoms"`
	Wellness          []WellnessTopic     `yaml:"wellness"`
	SymptomPrevention []SymptomPrevention `yaml:"symptom_prevention"`

	conditions map[string]*Condition
	mental     map[string]*Condition
	wellness   map[string]*WellnessTopic
}

// Default parses the knowledge base compiled into the binary.
func Default() (*Base, error) {
	return Parse(defaultYAML)
}

// MustDefault is Default for initialisation and tests.
func MustDefault() *Base {
	kb, err := Default()
	if err != nil {
		panic(err)
	}
	return kb
}

// LoadFile parses a replacement knowledge base from disk.
func LoadFile(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a knowledge base document.
func Parse(data []byte) (*Base, error) {
	var kb Base
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	if err := kb.Validate(); err != nil {
		return nil, err
	}
	kb.index()
	return &kb, nil
}

func (kb *Base) index() {
	kb.conditions = make(map[string]*Condition, len(kb.Conditions))
	for i := range kb.Conditions {
		kb.conditions[kb.Conditions[i].Name] = &kb.Conditions[i]
	}
	kb.mental = make(map[string]*Condition, len(kb.MentalHealth))
	for i := range kb.MentalHealth {
		kb.mental[kb.MentalHealth[i].Name] = &kb.MentalHealth[i]
	}
	kb.wellness = make(map[string]*WellnessTopic, len(kb.Wellness))
	for i := range kb.Wellness {
		kb.wellness[kb.Wellness[i].Name] = &kb.Wellness[i]
	}
}

// Validate enforces that every condition is named and offers prevention
// tips.
func (kb *Base) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	for _, c := range kb.AllConditions() {
		if c.Name == "" {
			errs = append(errs, errors.New("condition without a name"))
			continue
		}
		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("duplicate condition %q", c.Name))
		}
		seen[c.Name] = true
		if len(c.Prevention) == 0 {
			errs = append(errs, fmt.Errorf("condition %q has no prevention tips", c.Name))
		}
	}
	return errors.Join(errs...)
}

// AllConditions returns general then mental-health conditions.
func (kb *Base) AllConditions() []Condition {
	all := make([]Condition, 0, len(kb.Conditions)+len(kb.MentalHealth))
	all = append(all, kb.Conditions...)
	return append(all, kb.MentalHealth...)
}

// Condition looks a condition up by canonical name in the general table.
func (kb *Base) Condition(name string) (*Condition, bool) {
	c, ok := kb.conditions[name]
	return c, ok
}

// Lookup resolves a condition name in the general table, then the
// mental-health table.
func (kb *Base) Lookup(name string) (*Condition, bool) {
	if c, ok := kb.conditions[name]; ok {
		return c, true
	}
	c, ok := kb.mental[name]
	return c, ok
}

// WellnessTopic looks a wellness topic up by name.
func (kb *Base) WellnessTopic(name string) (*WellnessTopic, bool) {
	t, ok := kb.wellness[name]
	return t, ok
}

// Humanize turns a canonical key such as "back_pain" into "back pain".
func Humanize(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

// Package exercises serves the guided exercise and information templates
// returned verbatim by the router.
package exercises

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed exercises.yaml
var defaultYAML []byte

// Name identifies a template.
type Name string

const (
	Breathing              Name = "breathing"
	Mindfulness            Name = "mindfulness"
	AcademicTimeManagement Name = "academic_time_management"
	TenureTrackStress      Name = "tenure_track_stress"
	WorkLifeBoundaries     Name = "work_life_boundaries"
	ImposterSyndrome       Name = "imposter_syndrome"
	GradingOverwhelm       Name = "grading_overwhelm"
	ResearchBlocks         Name = "research_blocks"
	StudentRecharge        Name = "student_recharge"
	SocialConnection       Name = "social_connection"
	Sabbatical             Name = "sabbatical"
	DoctorConsultation     Name = "doctor_consultation"
)

// Required lists every template the router can ask for.
var Required = []Name{
	Breathing,
	Mindfulness,
	AcademicTimeManagement,
	TenureTrackStress,
	WorkLifeBoundaries,
	ImposterSyndrome,
	GradingOverwhelm,
	ResearchBlocks,
	StudentRecharge,
	SocialConnection,
	Sabbatical,
	DoctorConsultation,
}

// Catalog is a read-only set of templates.
type Catalog struct {
	templates map[Name]string
}

type document struct {
	Templates []struct {
		Name Name   `yaml:"name"`
		Text string `yaml:"text"`
	} `yaml:"templates"`
}

// Default parses the templates compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultYAML)
}

// MustDefault is Default for initialisation and tests.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes a template document and checks that every required
// template is present.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse exercises: %w", err)
	}

	c := &Catalog{templates: make(map[Name]string, len(doc.Templates))}
	for _, t := range doc.Templates {
		c.templates[t.Name] = t.Text
	}
	for _, name := range Required {
		if c.templates[name] == "" {
			return nil, fmt.Errorf("exercise template %q missing", name)
		}
	}
	return c, nil
}

// Get returns the template text; unknown names yield "".
func (c *Catalog) Get(name Name) string {
	return c.templates[name]
}

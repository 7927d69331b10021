package classifier

import (
	"strings"
	"unicode/utf8"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/crisis"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/exercises"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/format"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/knowledge"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/lexicon"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/matcher"
)

// Stage identifies the cascade step that claimed a message.
type Stage string

const (
	StageCrisis       Stage = "crisis"
	StageGreeting     Stage = "greeting"
	StageRoutine      Stage = "routine"
	StageBreathing    Stage = "breathing"
	StageMindfulness  Stage = "mindfulness"
	StagePrevention   Stage = "prevention"
	StageIntent       Stage = "intent"
	StageKnowledge    Stage = "knowledge"
	StageAcademic     Stage = "academic"
	StageWorkLife     Stage = "work_life"
	StageProfessional Stage = "professional"
	StageDoctor       Stage = "doctor"
	StageGenerative   Stage = "generative"
)

// Stages lists every stage in cascade order.
var Stages = []Stage{
	StageCrisis,
	StageGreeting,
	StageRoutine,
	StageBreathing,
	StageMindfulness,
	StagePrevention,
	StageIntent,
	StageKnowledge,
	StageAcademic,
	StageWorkLife,
	StageProfessional,
	StageDoctor,
	StageGenerative,
}

// Exchange is one stored (user message, bot response) pair.
type Exchange struct {
	UserMessage string
	BotResponse string
}

// SessionContext is the per-message view of the user's session. It is
// built fresh for every message and never modified by the router.
type SessionContext struct {
	Username string
	Mood     string
	Language string
	// History is oldest first.
	History []Exchange
}

// Decision is the outcome of routing a message. When Stage is
// StageGenerative, Response is empty and the caller must produce the
// reply through the generative path.
type Decision struct {
	Stage    Stage
	Response string
	Crisis   crisis.Category
	// Detail names the intent key, exercise or sub-branch that matched.
	Detail string
}

// Delegate reports whether the decision defers to the generative path.
func (d Decision) Delegate() bool {
	return d.Stage == StageGenerative
}

// Router runs the ordered response cascade. It is safe for concurrent use;
// all of its tables are read-only.
type Router struct {
	lex        *lexicon.Lexicon
	kb         *knowledge.Base
	exercises  *exercises.Catalog
	match      matcher.KeywordMatcher
	crisis     *crisis.Detector
	prevention *format.Prevention
}

// Option configures a Router.
type Option func(*Router)

// WithMatcher replaces the default substring matcher used for keyword sets.
func WithMatcher(m matcher.KeywordMatcher) Option {
	return func(r *Router) {
		if m != nil {
			r.match = m
		}
	}
}

// NewRouter creates a router over the given tables.
func NewRouter(lex *lexicon.Lexicon, kb *knowledge.Base, ex *exercises.Catalog, opts ...Option) *Router {
	r := &Router{
		lex:       lex,
		kb:        kb,
		exercises: ex,
		match:     matcher.Substring{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.crisis = crisis.NewDetector(lex, r.match)
	r.prevention = format.NewPrevention(kb, lex, r.match)
	return r
}

// Route classifies text. Stages are tried strictly in cascade order and
// the first one that claims the text wins.
func (r *Router) Route(text string, session SessionContext) Decision {
	t := strings.ToLower(text)

	if category, ok := r.crisis.Detect(t); ok {
		return Decision{Stage: StageCrisis, Response: crisis.Response(category), Crisis: category, Detail: string(category)}
	}

	if r.any(t, r.lex.Greeting.Keywords) && len(strings.Fields(text)) <= r.lex.Greeting.MaxWords {
		return Decision{Stage: StageGreeting, Response: pick(r.lex.Greeting.Responses, text)}
	}

	if r.any(t, r.lex.Routine.Keywords) {
		return Decision{Stage: StageRoutine, Response: pick(r.lex.Routine.Responses, text)}
	}

	if r.any(t, r.lex.Breathing) {
		return r.exercise(StageBreathing, exercises.Breathing)
	}
	if r.any(t, r.lex.Mindfulness) {
		return r.exercise(StageMindfulness, exercises.Mindfulness)
	}

	professorQuery := r.any(t, r.lex.Professor)
	preventionQuery := r.any(t, r.lex.PreventionTriggers)
	if preventionQuery {
		if reply, ok := r.prevention.Solutions(t); ok {
			return Decision{Stage: StagePrevention, Response: reply}
		}
	}

	// Intent keys are literal substrings regardless of the matcher.
	for _, in := range r.lex.Intents {
		if strings.Contains(t, in.Key) {
			return Decision{Stage: StageIntent, Response: in.Response, Detail: in.Key}
		}
	}

	if !professorQuery && !preventionQuery {
		if results := r.kb.Search(t); len(results) > 0 {
			return Decision{Stage: StageKnowledge, Response: format.HealthResponse(results, t), Detail: results[0].Name}
		}
	}

	if d, ok := r.professorContext(text, t, session.Mood); ok {
		return d
	}

	if r.any(t, r.lex.Doctor) {
		return r.exercise(StageDoctor, exercises.DoctorConsultation)
	}

	return Decision{Stage: StageGenerative}
}

func (r *Router) exercise(stage Stage, name exercises.Name) Decision {
	return Decision{Stage: stage, Response: r.exercises.Get(name), Detail: string(name)}
}

func (r *Router) any(text string, keywords []string) bool {
	return matcher.Any(r.match, text, keywords)
}

// pick is the deterministic reply selector: the rune length of the raw
// text modulo the number of replies.
func pick(responses []string, text string) string {
	if len(responses) == 0 {
		return ""
	}
	return responses[utf8.RuneCountInString(text)%len(responses)]
}

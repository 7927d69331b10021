// Package generative produces replies for messages no canned stage claimed.
// It wraps the model call with a timeout and a circuit breaker, translates
// successful replies and degrades to the rule-based fallback on any model
// failure.
package generative

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/circuitbreaker"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/classifier"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/fallback"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/language"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/metrics"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/privacy"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/prompt"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/translate"
	"github.com/therohitnagar15/Wellbeing-Chatbot/pkg/llm"
)

// ErrNoModel is the completion error when no generator is configured.
var ErrNoModel = errors.New("generative: no model configured")

// errCallerGone marks model calls abandoned because the request context
// ended; they do not count against the breaker.
var errCallerGone = errors.New("generative: caller cancelled")

// Request is one generative turn.
type Request struct {
	Username string
	Mood     string
	Message  string
	// History is oldest first.
	History []classifier.Exchange
	// TargetLang is the reply language; empty or "en" skips translation.
	TargetLang string
}

// Reply is the text returned to the user and how it was produced.
type Reply struct {
	Text   string
	Status llm.Status
	// FallbackReason is set when Text came from the rule-based generator.
	FallbackReason fallback.Reason
	Translated     bool
}

// FromFallback reports whether the reply was produced without the model.
func (r Reply) FromFallback() bool {
	return r.FallbackReason != ""
}

// Config tunes an Adapter. Zero values fall back to defaults.
type Config struct {
	Timeout          time.Duration
	TranslateTimeout time.Duration
	HistoryLimit     int
	Breaker          circuitbreaker.Options
}

// Adapter is the generative path of the chat engine.
type Adapter struct {
	gen              llm.Generator
	translator       translate.Translator
	builder          *prompt.Builder
	breaker          *circuitbreaker.CircuitBreaker
	timeout          time.Duration
	translateTimeout time.Duration
	logger           *zap.Logger
	metrics          *metrics.Metrics
}

// NewAdapter creates an adapter. gen and translator may be nil: without a
// generator every reply comes from the fallback, without a translator
// replies stay in English.
func NewAdapter(gen llm.Generator, translator translate.Translator, cfg Config, logger *zap.Logger, m *metrics.Metrics) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.TranslateTimeout <= 0 {
		cfg.TranslateTimeout = 10 * time.Second
	}

	cfg.Breaker.Ignore = func(err error) bool { return errors.Is(err, errCallerGone) }
	notify := cfg.Breaker.OnStateChange
	cfg.Breaker.OnStateChange = func(from, to circuitbreaker.State) {
		logger.Warn("model circuit breaker state changed",
			zap.Stringer("from", from),
			zap.Stringer("to", to))
		m.SetBreakerState(int(to))
		if notify != nil {
			notify(from, to)
		}
	}

	return &Adapter{
		gen:              gen,
		translator:       translator,
		builder:          prompt.NewBuilder(cfg.HistoryLimit),
		breaker:          circuitbreaker.NewCircuitBreaker(cfg.Breaker),
		timeout:          cfg.Timeout,
		translateTimeout: cfg.TranslateTimeout,
		logger:           logger,
		metrics:          m,
	}
}

// BreakerState reports the model circuit breaker state.
func (a *Adapter) BreakerState() circuitbreaker.State {
	return a.breaker.State()
}

// Respond always returns a non-empty reply.
func (a *Adapter) Respond(ctx context.Context, req Request) Reply {
	p := a.builder.Build(prompt.Request{
		Username: req.Username,
		Mood:     req.Mood,
		Message:  privacy.Redact(req.Message),
		History:  redactHistory(req.History),
	})

	c := a.complete(ctx, p)
	if !c.OK() {
		a.logger.Warn("model unavailable, using fallback",
			zap.String("username", req.Username),
			zap.String("status", string(c.Status)),
			zap.Error(c.Err))

		fb := fallback.Classify(req.Message, req.Mood)
		a.metrics.ObserveFallback(string(fb.Reason))
		return Reply{Text: fb.Content, Status: c.Status, FallbackReason: fb.Reason}
	}

	reply := Reply{Text: c.Text, Status: c.Status}
	if text, ok := a.translate(ctx, c.Text, req.TargetLang); ok {
		reply.Text = text
		reply.Translated = true
	}
	return reply
}

// redactHistory strips identifiers from the user side of each exchange.
// Bot replies are left alone; they carry helpline numbers.
func redactHistory(history []classifier.Exchange) []classifier.Exchange {
	out := make([]classifier.Exchange, len(history))
	for i, ex := range history {
		out[i] = classifier.Exchange{UserMessage: privacy.Redact(ex.UserMessage), BotResponse: ex.BotResponse}
	}
	return out
}

// complete runs the model call behind the breaker and the timeout.
func (a *Adapter) complete(ctx context.Context, p string) llm.Completion {
	if a.gen == nil {
		return llm.Completion{Status: llm.StatusFailed, Err: ErrNoModel}
	}

	start := time.Now()
	var c llm.Completion
	err := a.breaker.Call(func() error {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		c = llm.Complete(callCtx, a.gen, p)
		if c.Err != nil && ctx.Err() != nil {
			return errCallerGone
		}
		return c.Err
	})
	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		c = llm.Completion{Status: llm.StatusCircuitOpen, Err: err}
	case errors.Is(err, circuitbreaker.ErrPanic):
		c = llm.Completion{Status: llm.StatusFailed, Err: err}
	}

	a.metrics.ObserveModelCall(string(c.Status), time.Since(start))
	return c
}

// translate reports false when the text should stay as it is.
func (a *Adapter) translate(ctx context.Context, text, lang string) (string, bool) {
	if a.translator == nil || lang == "" || language.Normalize(lang) == language.DefaultLanguage {
		return text, false
	}

	tctx, cancel := context.WithTimeout(ctx, a.translateTimeout)
	defer cancel()

	translated, err := a.translator.Translate(tctx, text, lang)
	if err != nil {
		a.logger.Warn("translation failed, keeping original text",
			zap.String("lang", lang),
			zap.Error(err))
		a.metrics.ObserveTranslation(lang, "failed")
		return text, false
	}
	a.metrics.ObserveTranslation(lang, "ok")
	return translated, translated != text
}

// Package chat is the transport-agnostic entry point: it loads the user's
// session, routes the message, delegates to the generative path when no
// canned stage claims it and records the exchange.
package chat

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/classifier"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/generative"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/language"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/metrics"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/privacy"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/prompt"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/store"
)

// Router classifies a message against the canned stages.
type Router interface {
	Route(text string, session classifier.SessionContext) classifier.Decision
}

// Responder produces a reply for messages the router delegates.
type Responder interface {
	Respond(ctx context.Context, req generative.Request) generative.Reply
}

// Result describes how a message was answered.
type Result struct {
	Reply    string
	Stage    classifier.Stage
	Decision classifier.Decision
	// Generative is set only for delegated messages.
	Generative *generative.Reply
	Persisted  bool
}

// Engine handles core conversation logic independent of transport.
type Engine struct {
	store        store.SessionStore
	router       Router
	responder    Responder
	historyLimit int
	logger       *zap.Logger
	metrics      *metrics.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithHistoryLimit sets how many stored exchanges are loaded per message.
func WithHistoryLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.historyLimit = n
		}
	}
}

// NewEngine creates a chat engine.
func NewEngine(st store.SessionStore, router Router, responder Responder, opts ...Option) *Engine {
	e := &Engine{
		store:        st,
		router:       router,
		responder:    responder,
		historyLimit: prompt.DefaultHistoryLimit,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateResponse answers text for username. targetLang overrides the
// user's stored language when set. It never fails: every path resolves
// to a reply.
func (e *Engine) GenerateResponse(ctx context.Context, username, text, targetLang string) string {
	return e.Process(ctx, username, text, targetLang).Reply
}

// Process is GenerateResponse with routing details.
func (e *Engine) Process(ctx context.Context, username, text, targetLang string) Result {
	start := time.Now()
	user, session := e.loadSession(ctx, username)

	lang := targetLang
	if lang == "" {
		lang = session.Language
	}

	if privacy.ContainsPII(text) {
		e.logger.Warn("potential PII in message", zap.String("username", username))
	}

	decision := e.router.Route(text, session)
	res := Result{Reply: decision.Response, Stage: decision.Stage, Decision: decision}

	if decision.Delegate() {
		reply := e.responder.Respond(ctx, generative.Request{
			Username:   username,
			Mood:       session.Mood,
			Message:    text,
			History:    session.History,
			TargetLang: lang,
		})
		res.Reply = reply.Text
		res.Generative = &reply
	}

	e.metrics.ObserveStage(string(res.Stage))
	e.logger.Info("message routed",
		zap.String("username", username),
		zap.String("stage", string(res.Stage)),
		zap.String("detail", decision.Detail),
		zap.Int("message_len", len(text)),
		zap.Duration("took", time.Since(start)))

	if user != nil {
		res.Persisted = e.persist(ctx, user.ID, text, res.Reply)
	}
	return res
}

// loadSession returns a nil user for unknown usernames; the session then
// carries no mood, no history and the default language.
func (e *Engine) loadSession(ctx context.Context, username string) (*store.User, classifier.SessionContext) {
	session := classifier.SessionContext{Username: username, Language: language.DefaultLanguage}

	user, err := e.store.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			e.logger.Debug("unknown user", zap.String("username", username))
		} else {
			e.logger.Error("failed to load user", zap.String("username", username), zap.Error(err))
		}
		return nil, session
	}
	if user.Language != "" {
		session.Language = user.Language
	}

	var (
		mood    string
		entries []store.ChatEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := e.store.GetTodayMood(gctx, user.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}
		mood = m
		return nil
	})
	g.Go(func() error {
		h, err := e.store.RecentHistory(gctx, user.ID, e.historyLimit)
		if err != nil {
			return err
		}
		entries = h
		return nil
	})
	if err := g.Wait(); err != nil {
		e.logger.Warn("failed to load session, continuing without it",
			zap.String("username", username),
			zap.Error(err))
	}

	session.Mood = mood
	session.History = make([]classifier.Exchange, 0, len(entries))
	for _, en := range entries {
		session.History = append(session.History, classifier.Exchange{
			UserMessage: en.UserMessage,
			BotResponse: en.BotResponse,
		})
	}
	return user, session
}

func (e *Engine) persist(ctx context.Context, userID int64, text, reply string) bool {
	if err := e.store.AppendChat(ctx, userID, text, reply); err != nil {
		e.metrics.ObservePersistFailure()
		e.logger.Error("failed to persist chat", zap.Int64("user_id", userID), zap.Error(err))
		return false
	}
	return true
}

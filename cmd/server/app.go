package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/chat"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/circuitbreaker"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/classifier"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/config"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/exercises"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/generative"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/knowledge"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/language"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/lexicon"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/matcher"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/metrics"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/store"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/translate"
	"github.com/therohitnagar15/Wellbeing-Chatbot/pkg/deepseek"
	"github.com/therohitnagar15/Wellbeing-Chatbot/pkg/gemini"
	"github.com/therohitnagar15/Wellbeing-Chatbot/pkg/llm"
)

// app is the assembled object graph shared by serve and ask.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	store     store.SessionStore
	engine    *chat.Engine
	languages *language.Manager
	metrics   *metrics.Metrics
	closers   []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("shutdown step failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	if lvl == zapcore.DebugLevel {
		zcfg.Development = true
		zcfg.Encoding = "console"
	}
	return zcfg.Build()
}

// newApp loads configuration and wires every component. Callers must
// Close the result.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:       cfg,
		logger:    logger,
		languages: language.NewManager(),
		metrics:   metrics.New(),
	}

	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}

	router, err := a.newRouter()
	if err != nil {
		a.Close()
		return nil, err
	}

	gen, err := a.newGenerator(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	var translator translate.Translator = translate.NewPhrasebook()
	if gen != nil {
		translator = translate.NewModelTranslator(gen, a.languages, logger)
	}

	adapter := generative.NewAdapter(gen, translator, generative.Config{
		Timeout:          cfg.ModelTimeout,
		TranslateTimeout: cfg.TranslateTimeout,
		HistoryLimit:     cfg.HistoryLimit,
		Breaker: circuitbreaker.Options{
			MaxFailures:  cfg.BreakerMaxFailures,
			ResetTimeout: cfg.BreakerReset,
		},
	}, logger, a.metrics)

	a.engine = chat.NewEngine(a.store, router, adapter,
		chat.WithLogger(logger),
		chat.WithMetrics(a.metrics),
		chat.WithHistoryLimit(cfg.HistoryLimit),
	)
	return a, nil
}

func (a *app) openStore(ctx context.Context) error {
	if a.cfg.DatabaseURL == "" {
		a.logger.Warn("DATABASE_URL not set, sessions are kept in memory")
		a.store = store.NewMemory()
		return nil
	}

	if err := store.Migrate(a.cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	pg, err := store.Open(ctx, store.Config{URL: a.cfg.DatabaseURL}, a.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	a.store = pg
	a.closers = append(a.closers, pg.Close)
	a.logger.Info("database connected")
	return nil
}

func (a *app) newRouter() (*classifier.Router, error) {
	lex, err := lexicon.Default()
	if a.cfg.LexiconFile != "" {
		lex, err = lexicon.LoadFile(a.cfg.LexiconFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	kb, err := knowledge.Default()
	if a.cfg.KnowledgeFile != "" {
		kb, err = knowledge.LoadFile(a.cfg.KnowledgeFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}

	ex, err := exercises.Default()
	if err != nil {
		return nil, fmt.Errorf("failed to load exercises: %w", err)
	}

	m, err := matcher.New(a.cfg.MatchStrategy, a.cfg.SimilarityThreshold)
	if err != nil {
		return nil, err
	}

	a.logger.Info("router ready",
		zap.String("match_strategy", a.cfg.MatchStrategy),
		zap.Int("conditions", len(kb.AllConditions())))
	return classifier.NewRouter(lex, kb, ex, classifier.WithMatcher(m)), nil
}

// newGenerator returns nil when no API key is configured; the engine then
// answers open-ended messages from the fallback table.
func (a *app) newGenerator(ctx context.Context) (llm.Generator, error) {
	key := a.cfg.ModelAPIKey()
	if key == "" {
		a.logger.Warn("no model API key configured, generative replies use fallback text",
			zap.String("provider", a.cfg.Provider))
		return nil, nil
	}

	switch {
	case a.cfg.Provider == config.ProviderDeepSeek:
		a.logger.Info("using DeepSeek")
		return deepseek.NewHTTPClient(deepseek.Config{
			APIKey:  key,
			Timeout: a.cfg.ModelTimeout,
		}), nil
	case a.cfg.GeminiTransport == "rest":
		a.logger.Info("using Gemini REST", zap.String("model", a.cfg.GeminiModel))
		return gemini.NewHTTPClient(gemini.Config{
			APIKey:  key,
			Model:   a.cfg.GeminiModel,
			Timeout: a.cfg.ModelTimeout,
		}), nil
	default:
		a.logger.Info("using Gemini SDK", zap.String("model", a.cfg.GeminiModel))
		c, err := gemini.NewSDKClient(ctx, gemini.Config{
			APIKey:  key,
			Model:   a.cfg.GeminiModel,
			Timeout: a.cfg.ModelTimeout,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

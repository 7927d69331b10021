package generative

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/circuitbreaker"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/classifier"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/fallback"
	"github.com/therohitnagar15/Wellbeing-Chatbot/internal/metrics"
	"github.com/therohitnagar15/Wellbeing-Chatbot/pkg/llm"
)

type fakeTranslator struct {
	mu    sync.Mutex
	err   error
	calls []string
}

func (f *fakeTranslator) Translate(_ context.Context, text, lang string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, lang)
	if f.err != nil {
		return "", f.err
	}
	return "[" + lang + "] " + text, nil
}

func TestAdapter_Success(t *testing.T) {
	gen := llm.NewMockGenerator("  That sounds like a lot. Want to talk it through?  ")
	a := NewAdapter(gen, nil, Config{}, nil, metrics.New())

	reply := a.Respond(context.Background(), Request{
		Username: "asha",
		Mood:     "tired",
		Message:  "work has been a lot lately",
		History: []classifier.Exchange{
			{UserMessage: "hello", BotResponse: "Hi there! How's your day going?"},
		},
	})

	assert.Equal(t, "That sounds like a lot. Want to talk it through?", reply.Text)
	assert.Equal(t, llm.StatusOK, reply.Status)
	assert.False(t, reply.FromFallback())

	p := gen.LastPrompt()
	assert.Contains(t, p, "asha's wellbeing")
	assert.Contains(t, p, "They mentioned feeling tired recently.")
	assert.Contains(t, p, "user: hello\nassistant: Hi there! How's your day going?\nuser: work has been a lot lately")
	assert.True(t, strings.HasSuffix(p, "user: work has been a lot lately"))
}

func TestAdapter_FallbackOnFailure(t *testing.T) {
	tests := []struct {
		name       string
		gen        llm.Generator
		wantStatus llm.Status
	}{
		{
			name: "model error",
			gen: llm.GeneratorFunc(func(context.Context, string) (string, error) {
				return "", errors.New("503 service unavailable")
			}),
			wantStatus: llm.StatusFailed,
		},
		{
			name:       "empty response",
			gen:        llm.NewMockGenerator("   "),
			wantStatus: llm.StatusEmpty,
		},
		{
			name:       "no model",
			gen:        nil,
			wantStatus: llm.StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdapter(tt.gen, nil, Config{}, nil, nil)

			reply := a.Respond(context.Background(), Request{
				Username: "sam",
				Message:  "I feel so stressed, what can i do",
			})

			want := fallback.Classify("I feel so stressed, what can i do", "")
			assert.Equal(t, want.Content, reply.Text)
			assert.Equal(t, fallback.ReasonStress, reply.FallbackReason)
			assert.Equal(t, tt.wantStatus, reply.Status)
		})
	}
}

func TestAdapter_Timeout(t *testing.T) {
	gen := llm.GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	a := NewAdapter(gen, nil, Config{Timeout: 20 * time.Millisecond}, nil, nil)

	reply := a.Respond(context.Background(), Request{Username: "sam", Message: "tell me something", Mood: "calm"})

	assert.Equal(t, llm.StatusTimeout, reply.Status)
	assert.True(t, reply.FromFallback())
	assert.NotEmpty(t, reply.Text)
}

func TestAdapter_BreakerOpens(t *testing.T) {
	gen := &llm.MockGenerator{
		GenerateFunc: func(context.Context, string) (string, error) {
			return "", errors.New("boom")
		},
	}
	var states []circuitbreaker.State
	a := NewAdapter(gen, nil, Config{
		Breaker: circuitbreaker.Options{
			MaxFailures:   2,
			ResetTimeout:  time.Hour,
			OnStateChange: func(_, to circuitbreaker.State) { states = append(states, to) },
		},
	}, nil, metrics.New())

	for i := 0; i < 2; i++ {
		reply := a.Respond(context.Background(), Request{Message: "thanks"})
		assert.Equal(t, llm.StatusFailed, reply.Status)
	}
	require.Equal(t, circuitbreaker.StateOpen, a.BreakerState())

	reply := a.Respond(context.Background(), Request{Message: "thanks"})
	assert.Equal(t, llm.StatusCircuitOpen, reply.Status)
	assert.Equal(t, fallback.ReasonGratitude, reply.FallbackReason)
	assert.Equal(t, 2, gen.CallCount())
	assert.Equal(t, []circuitbreaker.State{circuitbreaker.StateOpen}, states)
}

func TestAdapter_CallerCancellationDoesNotTripBreaker(t *testing.T) {
	gen := llm.GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "glad you reached out", nil
	})
	a := NewAdapter(gen, nil, Config{
		Breaker: circuitbreaker.Options{MaxFailures: 2, ResetTimeout: time.Hour},
	}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		reply := a.Respond(ctx, Request{Message: "tell me something"})
		assert.True(t, reply.FromFallback())
	}
	assert.Equal(t, circuitbreaker.StateClosed, a.BreakerState())

	reply := a.Respond(context.Background(), Request{Message: "tell me something"})
	assert.Equal(t, llm.StatusOK, reply.Status)
	assert.Equal(t, "glad you reached out", reply.Text)
}

func TestAdapter_ModelPanicFallsBack(t *testing.T) {
	gen := llm.GeneratorFunc(func(context.Context, string) (string, error) {
		panic("nil map")
	})
	a := NewAdapter(gen, nil, Config{}, nil, nil)

	reply := a.Respond(context.Background(), Request{Message: "thanks"})
	assert.Equal(t, llm.StatusFailed, reply.Status)
	assert.Equal(t, fallback.ReasonGratitude, reply.FallbackReason)
}

func TestAdapter_Translation(t *testing.T) {
	t.Run("non-english target is translated", func(t *testing.T) {
		tr := &fakeTranslator{}
		a := NewAdapter(llm.NewMockGenerator("Take a slow breath."), tr, Config{}, nil, nil)

		reply := a.Respond(context.Background(), Request{Message: "hmm", TargetLang: "es"})

		assert.Equal(t, "[es] Take a slow breath.", reply.Text)
		assert.True(t, reply.Translated)
	})

	t.Run("english target skips the translator", func(t *testing.T) {
		tr := &fakeTranslator{}
		a := NewAdapter(llm.NewMockGenerator("Take a slow breath."), tr, Config{}, nil, nil)

		for _, lang := range []string{"", "en", "EN"} {
			reply := a.Respond(context.Background(), Request{Message: "hmm", TargetLang: lang})
			assert.Equal(t, "Take a slow breath.", reply.Text)
		}
		assert.Empty(t, tr.calls)
	})

	t.Run("translation failure keeps the original", func(t *testing.T) {
		tr := &fakeTranslator{err: errors.New("quota exceeded")}
		a := NewAdapter(llm.NewMockGenerator("Take a slow breath."), tr, Config{}, nil, nil)

		reply := a.Respond(context.Background(), Request{Message: "hmm", TargetLang: "fr"})

		assert.Equal(t, "Take a slow breath.", reply.Text)
		assert.False(t, reply.Translated)
		assert.Equal(t, llm.StatusOK, reply.Status)
	})

	t.Run("fallback replies are not translated", func(t *testing.T) {
		tr := &fakeTranslator{}
		a := NewAdapter(nil, tr, Config{}, nil, nil)

		reply := a.Respond(context.Background(), Request{Message: "hmm", TargetLang: "hi"})

		assert.True(t, reply.FromFallback())
		assert.Empty(t, tr.calls)
	})
}

func TestAdapter_RedactsUserTurns(t *testing.T) {
	gen := llm.NewMockGenerator("Noted.")
	a := NewAdapter(gen, nil, Config{}, nil, nil)

	a.Respond(context.Background(), Request{
		Username: "sam",
		Message:  "email me at sam@example.com",
		History: []classifier.Exchange{
			{UserMessage: "call 555-123-4567", BotResponse: "KIRAN Mental Health: 1800-599-0019"},
		},
	})

	p := gen.LastPrompt()
	assert.Contains(t, p, "user: email me at [EMAIL]")
	assert.Contains(t, p, "user: call [PHONE]")
	assert.Contains(t, p, "assistant: KIRAN Mental Health: 1800-599-0019")
	assert.NotContains(t, p, "sam@example.com")
}

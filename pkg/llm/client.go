package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyResponse is returned by generators when the model produced no text.
var ErrEmptyResponse = errors.New("llm: empty response")

// Generator is the narrow capability the chat core needs from a model:
// a single prompt in, a single block of text out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Complete runs g and folds the outcome into a Completion. It never
// returns an error; failures are carried in the result.
func Complete(ctx context.Context, g Generator, prompt string) Completion {
	text, err := g.Generate(ctx, prompt)
	if err != nil {
		return Failed(ctx, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Completion{Status: StatusEmpty, Err: ErrEmptyResponse}
	}
	return Completion{Text: text, Status: StatusOK}
}

// Failed classifies err into a failed or timed out Completion.
func Failed(ctx context.Context, err error) Completion {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Completion{Status: StatusTimeout, Err: err}
	}
	if errors.Is(err, ErrEmptyResponse) {
		return Completion{Status: StatusEmpty, Err: err}
	}
	return Completion{Status: StatusFailed, Err: err}
}

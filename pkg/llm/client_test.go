package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestComplete(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name       string
		gen        Generator
		wantStatus Status
		wantText   string
	}{
		{
			name:       "ok trims whitespace",
			gen:        NewMockGenerator("  hello there \n"),
			wantStatus: StatusOK,
			wantText:   "hello there",
		},
		{
			name:       "blank text is empty",
			gen:        NewMockGenerator("   "),
			wantStatus: StatusEmpty,
		},
		{
			name: "error is failed",
			gen: GeneratorFunc(func(context.Context, string) (string, error) {
				return "", errBoom
			}),
			wantStatus: StatusFailed,
		},
		{
			name: "wrapped empty response",
			gen: GeneratorFunc(func(context.Context, string) (string, error) {
				return "", fmt.Errorf("provider: %w", ErrEmptyResponse)
			}),
			wantStatus: StatusEmpty,
		},
		{
			name: "deadline is timeout",
			gen: GeneratorFunc(func(context.Context, string) (string, error) {
				return "", fmt.Errorf("request: %w", context.DeadlineExceeded)
			}),
			wantStatus: StatusTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Complete(context.Background(), tt.gen, "prompt")
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", got.Status, tt.wantStatus)
			}
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", got.Text, tt.wantText)
			}
			if got.OK() != (tt.wantStatus == StatusOK) {
				t.Errorf("OK() = %v for status %v", got.OK(), got.Status)
			}
			if !got.OK() && got.Err == nil {
				t.Error("failed completion must carry an error")
			}
		})
	}
}

func TestFailed_ExpiredContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	got := Failed(ctx, errors.New("transport closed"))
	if got.Status != StatusTimeout {
		t.Errorf("Status = %v, want %v", got.Status, StatusTimeout)
	}
}

func TestMockGenerator_RecordsPrompts(t *testing.T) {
	mock := NewMockGenerator("reply")

	for _, p := range []string{"first", "second"} {
		if _, err := mock.Generate(context.Background(), p); err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
	}

	if mock.CallCount() != 2 {
		t.Errorf("CallCount() = %d, want 2", mock.CallCount())
	}
	if mock.LastPrompt() != "second" {
		t.Errorf("LastPrompt() = %q, want %q", mock.LastPrompt(), "second")
	}
}

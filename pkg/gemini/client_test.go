package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/therohitnagar15/Wellbeing-Chatbot/pkg/llm"
)

func TestNewHTTPClient(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantBaseURL string
		wantModel   string
		wantTimeout time.Duration
	}{
		{
			name:        "default configuration",
			config:      Config{APIKey: "test-key"},
			wantBaseURL: defaultBaseURL,
			wantModel:   "gemini-2.0-flash",
			wantTimeout: 30 * time.Second,
		},
		{
			name: "custom configuration",
			config: Config{
				APIKey:  "test-key",
				BaseURL: "https://custom.api.com/",
				Model:   "gemini-1.5-pro",
				Timeout: 60 * time.Second,
			},
			wantBaseURL: "https://custom.api.com",
			wantModel:   "gemini-1.5-pro",
			wantTimeout: 60 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewHTTPClient(tt.config)

			if client.baseURL != tt.wantBaseURL {
				t.Errorf("baseURL = %v, want %v", client.baseURL, tt.wantBaseURL)
			}
			if client.model != tt.wantModel {
				t.Errorf("model = %v, want %v", client.model, tt.wantModel)
			}
			if client.timeout != tt.wantTimeout {
				t.Errorf("timeout = %v, want %v", client.timeout, tt.wantTimeout)
			}
		})
	}
}

func TestHTTPClient_Generate(t *testing.T) {
	tests := []struct {
		name           string
		statusCode     int
		serverResponse string
		want           string
		wantErr        bool
		wantEmpty      bool
	}{
		{
			name:           "joins candidate parts",
			statusCode:     http.StatusOK,
			serverResponse: `{"candidates":[{"content":{"parts":[{"text":"  Hello "},{"text":"there! "}]},"finishReason":"STOP"}]}`,
			want:           "Hello there!",
		},
		{
			name:           "no candidates",
			statusCode:     http.StatusOK,
			serverResponse: `{"candidates":[]}`,
			wantErr:        true,
			wantEmpty:      true,
		},
		{
			name:           "blank text",
			statusCode:     http.StatusOK,
			serverResponse: `{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`,
			wantErr:        true,
			wantEmpty:      true,
		},
		{
			name:           "API error",
			statusCode:     http.StatusForbidden,
			serverResponse: `{"error":{"message":"API key not valid"}}`,
			wantErr:        true,
		},
		{
			name:           "malformed body",
			statusCode:     http.StatusOK,
			serverResponse: `not json`,
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if !strings.HasSuffix(r.URL.Path, "/gemini-test:generateContent") {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.URL.Query().Get("key") != "test-key" {
					t.Errorf("expected key query parameter")
				}

				var req geminiRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("decode request: %v", err)
				}
				if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "say hi" {
					t.Errorf("unexpected request contents: %+v", req.Contents)
				}

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.serverResponse))
			}))
			defer server.Close()

			client := NewHTTPClient(Config{
				APIKey:  "test-key",
				BaseURL: server.URL,
				Model:   "gemini-test",
				Timeout: 5 * time.Second,
			})

			got, err := client.Generate(context.Background(), "say hi")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantEmpty && !errors.Is(err, llm.ErrEmptyResponse) {
					t.Errorf("expected ErrEmptyResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPClient_Generate_ContextTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewHTTPClient(Config{APIKey: "k", BaseURL: server.URL})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Generate(ctx, "hello")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}

	completion := llm.Failed(ctx, err)
	if completion.Status != llm.StatusTimeout {
		t.Errorf("status = %v, want %v", completion.Status, llm.StatusTimeout)
	}
}

func TestNewSDKClient_RequiresKey(t *testing.T) {
	if _, err := NewSDKClient(context.Background(), Config{}); err == nil {
		t.Error("expected error for missing API key")
	}
}

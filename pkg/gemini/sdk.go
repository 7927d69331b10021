package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/therohitnagar15/Wellbeing-Chatbot/pkg/llm"
)

// SDKClient implements llm.Generator on top of the official Gen AI SDK.
type SDKClient struct {
	client *genai.Client
	model  string
}

var _ llm.Generator = (*SDKClient)(nil)

// NewSDKClient creates a Gemini client backed by google.golang.org/genai.
func NewSDKClient(ctx context.Context, config Config) (*SDKClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	config = config.withDefaults()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &SDKClient{client: client, model: config.Model}, nil
}

// Generate sends prompt as a single user turn and returns the response text.
func (c *SDKClient) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const defaultGroqBaseURL = "https://api.groq.com/openai/v1/"

// GroqClient calls Groq's OpenAI-compatible chat completions endpoint in JSON mode
type GroqClient struct {
	client      *openai.Client
	model       string
	temperature float64
}

// NewGroqClient creates a Groq backend. An empty baseURL selects the public
// endpoint.
func NewGroqClient(apiKey, model, baseURL string, temperature float64) (*GroqClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)
	return &GroqClient{
		client:      &client,
		model:       model,
		temperature: temperature,
	}, nil
}

// Complete sends the system and user messages and returns the assistant content
func (g *GroqClient) Complete(ctx context.Context, req Request) (string, error) {
	if g.model == "" {
		return "", errors.New("groq: model is empty")
	}

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(g.temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from groq")
	}
	return resp.Choices[0].Message.Content, nil
}

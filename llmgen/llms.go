// Package llmgen is the boundary to the external text-generation provider.
// Both request contracts build a structured prompt, make a single attempt
// with no retry, and parse a structured response back out; on any failure the
// caller sees an error and no partial result.
package llmgen

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// Completer produces one completion for a system/user prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// CompleterConfig holds configuration for a completion provider.
type CompleterConfig struct {
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// DefaultHTTPClient returns an http.Client with sensible defaults
func DefaultHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 60 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// OpenAICompleter implements Completer for OpenAI
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

func NewOpenAICompleter(config CompleterConfig) *OpenAICompleter {
	cfg := openai.DefaultConfig(config.APIKey)
	if config.HTTPClient != nil {
		cfg.HTTPClient = config.HTTPClient
	}
	return &OpenAICompleter{client: openai.NewClientWithConfig(cfg), model: config.Model}
}

func (c *OpenAICompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("error creating chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("provider returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// This pattern helps in easily mocking the provider in tests.
// NewCompleterFunc is the type for the provider factory function.
type NewCompleterFunc func(provider string, config CompleterConfig) (Completer, error)

// NewCompleter creates a new completion provider based on the specified type.
var NewCompleter NewCompleterFunc = func(provider string, config CompleterConfig) (Completer, error) {
	switch strings.ToLower(provider) {
	case "openai":
		if config.APIKey == "" {
			return nil, fmt.Errorf("API key required for OpenAI")
		}
		if config.HTTPClient == nil {
			config.HTTPClient = DefaultHTTPClient()
		}
		return NewOpenAICompleter(config), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

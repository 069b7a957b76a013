package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/conneroisu/groq-go"

	"storyboardgen/internal/storyboard"
	"storyboardgen/pkg/prompts"
)

type GroqClient struct {
	client      *groq.Client
	model       groq.ChatModel
	prompts     *prompts.Prompts
	temperature float32
	maxTokens   int
}

type GroqOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
}

func NewGroqClient(apiKey string, p *prompts.Prompts, opts GroqOptions) (*GroqClient, error) {
	client, err := groq.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}

	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1200
	}

	return &GroqClient{
		client:      client,
		model:       groq.ChatModel(opts.Model),
		prompts:     p,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// GenerateScript asks the model for a storyboard and runs the output through
// the parse-validate pipeline. Output that cannot be turned into a valid
// script is absorbed into a fallback; the error return is reserved for
// provider failures (unreachable endpoint, rejected auth, empty completion).
func (c *GroqClient) GenerateScript(ctx context.Context, idea, tone string) (*storyboard.Script, error) {
	prompt, err := c.prompts.RenderScript(prompts.ScriptParams{
		Idea:       idea,
		Tone:       tone,
		SceneCount: storyboard.SceneCount,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storyboard.ErrProviderUnavailable, err)
	}

	script, err := storyboard.Parse(raw)
	if err != nil {
		slog.Warn("Model output rejected, returning fallback script", "error", err)
		return storyboard.Fallback(idea, tone, err), nil
	}

	return script, nil
}

func (c *GroqClient) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model: c.model,
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		ResponseFormat: &groq.ChatResponseFormat{
			Type: "json_object",
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response")
	}

	return content, nil
}

package assist

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

type OpenAIConfig struct {
	APIKey  string
	BaseURL string // optional; set for OpenAI-compatible local servers (Ollama etc.)
	Model   string
}

// OpenAIProvider implements Provider over any OpenAI-compatible chat API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &OpenAIProvider{client: openai.NewClientWithConfig(c), model: model}
}

func (p *OpenAIProvider) BreakdownQuest(ctx context.Context, title, description string, maxSteps int) ([]string, error) {
	if maxSteps <= 0 {
		maxSteps = 5
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Break this task into at most %d small, concrete, ordered steps.\n", maxSteps)
	fmt.Fprintf(&b, "Task: %s\n", title)
	if description != "" {
		fmt.Fprintf(&b, "Details: %s\n", description)
	}
	b.WriteString("Answer with one step per line, no preamble.")

	raw, err := p.chat(ctx, b.String())
	if err != nil {
		return nil, fmt.Errorf("breakdown: %w", err)
	}
	steps := parseSteps(raw, maxSteps)
	if len(steps) == 0 {
		return nil, fmt.Errorf("breakdown: empty response")
	}
	return steps, nil
}

func (p *OpenAIProvider) ClassifyCapture(ctx context.Context, content string) (string, error) {
	prompt := "Classify this captured note into exactly one category: quest (actionable task), " +
		"note (free-form thought), item (physical thing to track), or source_document (reference material).\n" +
		"Text: " + content + "\n" +
		"Answer with the single category word only."

	raw, err := p.chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("classify: %w", err)
	}
	return normalizeKind(raw), nil
}

func (p *OpenAIProvider) chat(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

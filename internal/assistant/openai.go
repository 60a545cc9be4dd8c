package assistant

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ChatTurn is one prior exchange included in the model prompt.
type ChatTurn struct {
	UserMessage string
	AIResponse  string
}

// TextGenerator produces model completions. The production implementation
// calls OpenAI; tests substitute a stub.
type TextGenerator interface {
	// Generate answers message given the system prompt and prior turns.
	Generate(ctx context.Context, systemPrompt string, history []ChatTurn, message string) (string, error)
	// Rewrite polishes raw post text, keeping its meaning.
	Rewrite(ctx context.Context, text string) (string, error)
	// Analyze returns a short sentiment/topic note for a post.
	Analyze(ctx context.Context, text string) (string, error)
	// Comment writes a short friendly reply to a post.
	Comment(ctx context.Context, text string) (string, error)
}

type openAIGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAIGenerator returns a TextGenerator backed by the OpenAI chat
// completions API.
func NewOpenAIGenerator(apiKey, model string) TextGenerator {
	return &openAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (g *openAIGenerator) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *openAIGenerator) Generate(ctx context.Context, systemPrompt string, history []ChatTurn, message string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2*len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range history {
		messages = append(messages,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: turn.UserMessage},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: turn.AIResponse},
		)
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})
	return g.complete(ctx, messages)
}

func (g *openAIGenerator) Rewrite(ctx context.Context, text string) (string, error) {
	return g.complete(ctx, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: "Rewrite the user's social media post to be clearer and more engaging. Keep the original meaning and tone. Reply with the rewritten post only.",
		},
		{Role: openai.ChatMessageRoleUser, Content: text},
	})
}

func (g *openAIGenerator) Analyze(ctx context.Context, text string) (string, error) {
	return g.complete(ctx, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: "Summarize the sentiment and main topic of the following social media post in one short sentence.",
		},
		{Role: openai.ChatMessageRoleUser, Content: text},
	})
}

func (g *openAIGenerator) Comment(ctx context.Context, text string) (string, error) {
	return g.complete(ctx, []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: "Write a short, friendly comment reacting to the following social media post. One or two sentences.",
		},
		{Role: openai.ChatMessageRoleUser, Content: text},
	})
}

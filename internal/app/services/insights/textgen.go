package insights

import (
	"context"

	"github.com/palisadeengineering/goal-achievement-dashboard/internal/config"
	"github.com/palisadeengineering/goal-achievement-dashboard/internal/httputil"
)

// ChatGenerator calls a chat-completions style endpoint.
type ChatGenerator struct {
	client *httputil.Client
	model  string
}

var _ TextGenerator = (*ChatGenerator)(nil)

// NewChatGenerator builds a generator from the text-generation collaborator
// config.
func NewChatGenerator(cfg config.TextGenConfig) *ChatGenerator {
	return &ChatGenerator{
		client: httputil.NewClient(httputil.ClientConfig{BaseURL: cfg.URL, APIKey: cfg.APIKey}),
		model:  cfg.Model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends the system instruction and prompt and returns the first
// choice's content. A response without choices yields an empty string, which
// the caller substitutes with fallback text.
func (g *ChatGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	req := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	}

	var resp chatResponse
	if err := g.client.PostJSON(ctx, "/v1/chat/completions", req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

package ai

import (
	"context"
	"time"

	"google.golang.org/genai"

	"ai-chat-backend/internal/domain"
	"ai-chat-backend/internal/domain/ports/adapter"
	"ai-chat-backend/internal/normalize"
)

var _ adapter.CompletionClient = (*GenAIAdapter)(nil)

// GenAIAdapter implements adapter.CompletionClient through the official SDK.
// Same contract as GeminiAdapter; selected with ai.provider: gemini-sdk.
// With no API key the client is left nil and every Complete call reports
// domain.ErrMissingCredential, same as the REST adapters.
type GenAIAdapter struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGenAIAdapter(ctx context.Context, apiKey, model, baseURL string, timeout time.Duration) (*GenAIAdapter, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	a := &GenAIAdapter{model: model, timeout: timeout}
	if apiKey == "" {
		return a, nil
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	a.client = c
	return a, nil
}

func (g *GenAIAdapter) Complete(ctx context.Context, prompt string) (normalize.Value, error) {
	if g.client == nil {
		return normalize.Absent(), domain.ErrMissingCredential
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt+"\n\n"+markdownInstruction),
		nil,
	)
	if err != nil {
		return normalize.Absent(), classifyTransport(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return normalize.Absent(), domain.ErrNoCandidates
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return normalize.Absent(), nil
	}
	// The SDK already types parts as text; the raw-value contract still
	// holds, the shape is just always a string here.
	return normalize.String(cand.Content.Parts[0].Text), nil
}

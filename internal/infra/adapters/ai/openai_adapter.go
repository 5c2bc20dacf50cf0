package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ai-chat-backend/internal/domain"
	"ai-chat-backend/internal/domain/ports/adapter"
	"ai-chat-backend/internal/normalize"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.CompletionClient = (*OpenAIAdapter)(nil)

// OpenAIAdapter implements adapter.CompletionClient against any
// OpenAI-compatible /chat/completions gateway. Useful when the configured
// provider is an OpenAI-style proxy rather than the Generative Language API.
type OpenAIAdapter struct {
	apiKey string
	base   string // e.g., https://api.openai.com/v1
	model  string
	client *http.Client
}

func NewOpenAIAdapter(apiKey, model, base string, timeout time.Duration) *OpenAIAdapter {
	if model == "" {
		model = "gpt-4o-mini"
	}
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OpenAIAdapter{
		apiKey: apiKey,
		base:   strings.TrimRight(base, "/"),
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

func (o *OpenAIAdapter) Complete(ctx context.Context, prompt string) (normalize.Value, error) {
	if o.apiKey == "" {
		return normalize.Absent(), domain.ErrMissingCredential
	}

	reqBody := struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}{
		Model: o.model,
		Messages: []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		}{
			{Role: "user", Content: prompt + "\n\n" + markdownInstruction},
		},
	}
	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.base+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return normalize.Absent(), domain.TransportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return normalize.Absent(), classifyTransport(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return normalize.Absent(), domain.TransportError(fmt.Errorf("openai http %d", resp.StatusCode))
	}

	var payload struct {
		Choices []struct {
			Message struct {
				Content any `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return normalize.Absent(), domain.TransportError(err)
	}
	if len(payload.Choices) == 0 {
		return normalize.Absent(), domain.ErrNoCandidates
	}
	return normalize.FromJSON(payload.Choices[0].Message.Content), nil
}

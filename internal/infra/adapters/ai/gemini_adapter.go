package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ai-chat-backend/internal/domain"
	"ai-chat-backend/internal/domain/ports/adapter"
	"ai-chat-backend/internal/normalize"
)

// markdownInstruction is appended to every prompt so replies render well in
// the chat UI.
const markdownInstruction = "Please format your answer in Markdown."

const defaultTimeout = 15 * time.Second

// Compile-time assurance this adapter satisfies the port
var _ adapter.CompletionClient = (*GeminiAdapter)(nil)

// GeminiAdapter implements adapter.CompletionClient against the Generative
// Language REST API (generateContent). The text field of the first
// candidate is decoded loosely: providers have returned strings, fragment
// lists, and nested objects there, and all of those must survive to the
// normalizer intact.
type GeminiAdapter struct {
	apiKey string
	base   string // e.g., https://generativelanguage.googleapis.com
	model  string
	client *http.Client
}

// NewGeminiAdapter builds the REST client. An empty apiKey is allowed: the
// process still serves requests, and every Complete call reports
// domain.ErrMissingCredential without touching the network.
func NewGeminiAdapter(apiKey, model, base string, timeout time.Duration) *GeminiAdapter {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if base == "" {
		base = "https://generativelanguage.googleapis.com"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &GeminiAdapter{
		apiKey: apiKey,
		base:   strings.TrimRight(base, "/"),
		model:  model,
		client: &http.Client{Timeout: timeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

func (g *GeminiAdapter) Complete(ctx context.Context, prompt string) (normalize.Value, error) {
	if g.apiKey == "" {
		return normalize.Absent(), domain.ErrMissingCredential
	}

	reqBody := struct {
		Contents []geminiContent `json:"contents"`
	}{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt + "\n\n" + markdownInstruction}}},
		},
	}
	b, _ := json.Marshal(reqBody)

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		g.base, g.model, url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return normalize.Absent(), domain.TransportError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return normalize.Absent(), classifyTransport(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return normalize.Absent(), domain.TransportError(fmt.Errorf("gemini http %d", resp.StatusCode))
	}

	// parts[].text is `any` on purpose; see the type comment above.
	var payload struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text any `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return normalize.Absent(), domain.TransportError(err)
	}

	if len(payload.Candidates) == 0 {
		return normalize.Absent(), domain.ErrNoCandidates
	}
	parts := payload.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return normalize.Absent(), nil
	}
	return normalize.FromJSON(parts[0].Text), nil
}

// classifyTransport splits client-side failures into the timeout and
// transport sentinels.
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrProviderTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrProviderTimeout, err)
	}
	return domain.TransportError(err)
}

package adapter

import (
	"context"

	"ai-chat-backend/internal/normalize"
)

// CompletionClient is the port for the external generative-text provider.
//
// Complete sends a single prompt and returns the first candidate's text
// content as a raw, un-normalized value. Normalization belongs to the
// caller; the client's only job is transport and candidate extraction.
// Failures are reported with the domain provider sentinels
// (ErrMissingCredential, ErrProviderTimeout, ErrProviderTransport,
// ErrNoCandidates).
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (normalize.Value, error)
}

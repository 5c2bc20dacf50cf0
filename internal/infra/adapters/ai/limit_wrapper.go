package ai

import (
	"context"

	"ai-chat-backend/internal/domain/ports/adapter"
	"ai-chat-backend/internal/normalize"
)

// Compile-time check
var _ adapter.CompletionClient = (*limitedClient)(nil)

type limitedClient struct {
	inner adapter.CompletionClient
	sem   chan struct{}
}

// NewLimitedClient caps concurrent provider calls with a semaphore. With
// maxConcurrent <= 0 the inner client is returned unwrapped.
func NewLimitedClient(inner adapter.CompletionClient, maxConcurrent int) adapter.CompletionClient {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedClient{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedClient) Complete(ctx context.Context, prompt string) (normalize.Value, error) {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return normalize.Absent(), ctx.Err()
	}
	defer func() { <-l.sem }()
	return l.inner.Complete(ctx, prompt)
}

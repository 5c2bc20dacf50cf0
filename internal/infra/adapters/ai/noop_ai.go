package ai

import (
	"context"
	"time"

	"ai-chat-backend/internal/domain/ports/adapter"
	"ai-chat-backend/internal/normalize"
)

var _ adapter.CompletionClient = (*NoopAdapter)(nil)

// NoopAdapter implements adapter.CompletionClient for local/dev runs. It
// answers every prompt with a canned reply instead of sending real requests.
type NoopAdapter struct{}

func NewNoopAdapter() *NoopAdapter { return &NoopAdapter{} }

func (a *NoopAdapter) Complete(ctx context.Context, prompt string) (normalize.Value, error) {
	// Simulate slight processing time and respect ctx.
	select {
	case <-time.After(50 * time.Millisecond):
	case <-ctx.Done():
		return normalize.Absent(), ctx.Err()
	}
	return normalize.String("This is a noop completion."), nil
}

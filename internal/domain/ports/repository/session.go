package repository

import "context"

// SessionRepository binds opaque session IDs to user IDs. The client never
// holds a user ID directly, only the session ID (inside a signed cookie).
type SessionRepository interface {
	Save(ctx context.Context, sessionID, userID string) error
	// Resolve returns the bound user ID, or domain.ErrUnauthenticated when
	// the binding is missing or expired.
	Resolve(ctx context.Context, sessionID string) (string, error)
	// Delete removes the binding. Deleting an unknown ID is a no-op.
	Delete(ctx context.Context, sessionID string) error
}

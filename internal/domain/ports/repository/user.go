package repository

import (
	"context"

	"ai-chat-backend/internal/domain/model"
)

// UserRepository is a key-value registry of accounts keyed by username.
type UserRepository interface {
	// Create inserts a new user. A username collision yields
	// domain.ErrDuplicateUsername and leaves the existing record untouched.
	Create(ctx context.Context, u *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

package model

import (
	"strings"
	"time"

	"ai-chat-backend/internal/domain"

	"github.com/google/uuid"
)

// User is an account created at signup. Records are immutable after
// creation and never deleted by this system.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser builds a user with a fresh ID. The password hash is produced by
// the caller; this constructor never sees a plaintext password.
func NewUser(username, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.ErrInvalidArgument
	}
	if passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }

// File: internal/usecase/auth_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"ai-chat-backend/internal/domain"
	"ai-chat-backend/internal/domain/model"
	"ai-chat-backend/internal/domain/ports/repository"
)

// Compile-time check
var _ AuthUseCase = (*authUC)(nil)

// AuthUseCase owns account creation and the session lifecycle.
type AuthUseCase interface {
	Signup(ctx context.Context, username, password string) (*model.User, error)
	// Login verifies credentials and issues a fresh opaque session ID.
	Login(ctx context.Context, username, password string) (string, error)
	// Logout destroys the session binding; unknown IDs are a no-op.
	Logout(ctx context.Context, sessionID string) error
	// Resolve returns the user ID bound to the session, or
	// domain.ErrUnauthenticated.
	Resolve(ctx context.Context, sessionID string) (string, error)
	// CurrentUser loads the account behind the session.
	CurrentUser(ctx context.Context, sessionID string) (*model.User, error)
}

type authUC struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	cost     int
	log      *zerolog.Logger
}

// NewAuthUseCase wires the auth use case. cost is the bcrypt work factor;
// pass 0 for the default. Tests use bcrypt.MinCost to stay fast.
func NewAuthUseCase(users repository.UserRepository, sessions repository.SessionRepository, cost int, logger *zerolog.Logger) *authUC {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &authUC{users: users, sessions: sessions, cost: cost, log: logger}
}

func (a *authUC) Signup(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidArgument
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return nil, err
	}
	u, err := model.NewUser(username, string(hash))
	if err != nil {
		return nil, err
	}
	if err := a.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, domain.ErrDuplicateUsername
		}
		a.log.Error().Err(err).Str("username", username).Msg("signup: create user")
		return nil, err
	}
	a.log.Info().Str("user_id", u.ID).Msg("user created")
	return u, nil
}

func (a *authUC) Login(ctx context.Context, username, password string) (string, error) {
	u, err := a.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same answer as a wrong password so usernames can't be probed.
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	sessionID := uuid.NewString()
	if err := a.sessions.Save(ctx, sessionID, u.ID); err != nil {
		return "", err
	}
	a.log.Info().Str("user_id", u.ID).Msg("session established")
	return sessionID, nil
}

func (a *authUC) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return a.sessions.Delete(ctx, sessionID)
}

func (a *authUC) Resolve(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", domain.ErrUnauthenticated
	}
	return a.sessions.Resolve(ctx, sessionID)
}

func (a *authUC) CurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	userID, err := a.Resolve(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	u, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The session outlived the account; treat it as logged out.
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return u, nil
}

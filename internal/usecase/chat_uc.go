// File: internal/usecase/chat_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ai-chat-backend/internal/domain"
	"ai-chat-backend/internal/domain/model"
	"ai-chat-backend/internal/domain/ports/adapter"
	"ai-chat-backend/internal/domain/ports/repository"
	"ai-chat-backend/internal/infra/logging"
	"ai-chat-backend/internal/infra/metrics"
	"ai-chat-backend/internal/normalize"
)

// Compile-time check
var _ ChatUseCase = (*chatUC)(nil)

// ChatUseCase is the chat exchange orchestrator: session check, provider
// call, normalization, history append.
type ChatUseCase interface {
	SubmitMessage(ctx context.Context, sessionID, rawMessage string) (reply string, err error)
	History(ctx context.Context, sessionID string) ([]*model.HistoryRecord, error)
}

type chatUC struct {
	sessions repository.SessionRepository
	history  repository.HistoryRepository
	ai       adapter.CompletionClient
	log      *zerolog.Logger
}

func NewChatUseCase(sessions repository.SessionRepository, history repository.HistoryRepository, ai adapter.CompletionClient, logger *zerolog.Logger) *chatUC {
	return &chatUC{sessions: sessions, history: history, ai: ai, log: logger}
}

// SubmitMessage runs one exchange. The provider is called at most once and a
// provider failure short-circuits: no history record is written and the
// error is returned as-is. A history write failure also fails the whole
// exchange; the reply computed before the failed write is withheld.
func (c *chatUC) SubmitMessage(ctx context.Context, sessionID, rawMessage string) (string, error) {
	userID, err := c.sessions.Resolve(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			metrics.IncExchange("unauthenticated")
			return "", domain.ErrUnauthenticated
		}
		// The session store itself failed; that is an outage, not a
		// missing login.
		metrics.IncExchange("storage_error")
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	ctx = logging.WithUserID(ctx, userID)
	log := logging.With(ctx, c.log)

	msg := strings.TrimSpace(rawMessage)
	if msg == "" {
		metrics.IncExchange("empty_message")
		return "", domain.ErrEmptyMessage
	}

	start := time.Now()
	raw, err := c.ai.Complete(ctx, msg)
	metrics.ObserveCompletion(time.Since(start), err == nil)
	if err != nil {
		log.Warn().Err(err).Msg("completion failed")
		metrics.IncExchange("provider_error")
		if domain.IsProviderError(err) {
			return "", err
		}
		// Anything unexpected out of the adapter is still a provider
		// failure from the caller's point of view.
		return "", domain.TransportError(err)
	}

	reply := normalize.Normalize(raw)
	// The question crossed the API boundary too; normalizing it keeps the
	// "only strings reach storage" invariant even for odd inputs.
	question := normalize.Normalize(normalize.String(msg))

	rec := model.NewHistoryRecord(userID, question, reply)
	if err := c.history.Append(ctx, rec); err != nil {
		log.Error().Err(err).Msg("history append failed")
		metrics.IncExchange("storage_error")
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}

	metrics.IncExchange("ok")
	return reply, nil
}

// History returns the caller's exchanges in timestamp-ascending order. A
// missing or expired session yields an empty list, not an error; a session
// store outage is reported as ErrStorageUnavailable.
func (c *chatUC) History(ctx context.Context, sessionID string) ([]*model.HistoryRecord, error) {
	userID, err := c.sessions.Resolve(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return []*model.HistoryRecord{}, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	recs, err := c.history.FindByUser(ctx, userID)
	if err != nil {
		logging.With(logging.WithUserID(ctx, userID), c.log).Error().Err(err).Msg("history fetch failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	metrics.IncHistoryFetch()
	return recs, nil
}

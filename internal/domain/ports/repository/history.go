package repository

import (
	"context"

	"ai-chat-backend/internal/domain/model"
)

// HistoryRepository is an append-only log of question/answer exchanges.
type HistoryRepository interface {
	Append(ctx context.Context, rec *model.HistoryRecord) error
	// FindByUser returns all records for a user in (created_at, id)
	// ascending order.
	FindByUser(ctx context.Context, userID string) ([]*model.HistoryRecord, error)
}

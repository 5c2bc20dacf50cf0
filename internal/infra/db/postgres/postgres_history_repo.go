package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"ai-chat-backend/internal/domain/model"
	"ai-chat-backend/internal/domain/ports/repository"
)

var _ repository.HistoryRepository = (*PostgresHistoryRepo)(nil)

// PostgresHistoryRepo is the append-only exchange log. Records are never
// updated or deleted here.
type PostgresHistoryRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresHistoryRepo(pool *pgxpool.Pool) *PostgresHistoryRepo {
	return &PostgresHistoryRepo{pool: pool}
}

func (r *PostgresHistoryRepo) Append(ctx context.Context, rec *model.HistoryRecord) error {
	const q = `
INSERT INTO history (id, user_id, question, answer, created_at)
VALUES ($1,$2,$3,$4,$5);
`
	_, err := r.pool.Exec(ctx, q, rec.ID, rec.UserID, rec.Question, rec.Answer, rec.CreatedAt)
	return err
}

func (r *PostgresHistoryRepo) FindByUser(ctx context.Context, userID string) ([]*model.HistoryRecord, error) {
	// id breaks ties between equal timestamps; ULIDs sort by creation.
	const q = `
SELECT id, user_id, question, answer, created_at
  FROM history WHERE user_id=$1
 ORDER BY created_at ASC, id ASC;
`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.HistoryRecord{}
	for rows.Next() {
		var rec model.HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Question, &rec.Answer, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

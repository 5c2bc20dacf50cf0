package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ai-chat-backend/internal/domain"
	"ai-chat-backend/internal/domain/model"
	"ai-chat-backend/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*PostgresUserRepo)(nil)

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

// uniqueViolation is the Postgres error code for a unique index conflict.
const uniqueViolation = "23505"

func (r *PostgresUserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, username, password_hash, created_at)
VALUES ($1,$2,$3,$4);
`
	if _, err := r.pool.Exec(ctx, q, u.ID, u.Username, u.PasswordHash, u.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `
SELECT id, username, password_hash, created_at
  FROM users WHERE username=$1;
`
	return r.scanOne(r.pool.QueryRow(ctx, q, username))
}

func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
SELECT id, username, password_hash, created_at
  FROM users WHERE id=$1;
`
	return r.scanOne(r.pool.QueryRow(ctx, q, id))
}

func (r *PostgresUserRepo) scanOne(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

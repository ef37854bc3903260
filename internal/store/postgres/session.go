package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sivajik34/aifastcommerce/internal/domain"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) Create(ctx context.Context, s *domain.ChatSession) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO chat_sessions (id, status, title, created_at, updated_at)
		 VALUES ($1, $2, $3, now(), now())`,
		s.ID, s.Status, s.Title,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("sessionRepo.Create: %w", domain.ErrConflict)
		}
		return fmt.Errorf("sessionRepo.Create: %w", err)
	}

	return nil
}

func (r *SessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	var s domain.ChatSession

	err := r.pool.QueryRow(ctx,
		`SELECT id, status, title, created_at, updated_at
		 FROM chat_sessions WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Status, &s.Title, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("sessionRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sessionRepo.GetByID: %w", err)
	}

	return &s, nil
}

func (r *SessionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SessionStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE chat_sessions SET status = $1, updated_at = now() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("sessionRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sessionRepo.UpdateStatus: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM chat_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("sessionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sessionRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

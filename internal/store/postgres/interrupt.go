package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sivajik34/aifastcommerce/internal/domain"
)

// InterruptRepo records operator confirmations. A partial unique index on
// (session_id) WHERE status = 'pending' enforces the single-outstanding-
// interrupt invariant at the database level.
type InterruptRepo struct {
	pool *pgxpool.Pool
}

func NewInterruptRepo(pool *pgxpool.Pool) *InterruptRepo {
	return &InterruptRepo{pool: pool}
}

func (r *InterruptRepo) Create(ctx context.Context, i *domain.Interrupt) error {
	args, err := json.Marshal(i.Args)
	if err != nil {
		return fmt.Errorf("interruptRepo.Create: marshal args: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO interrupts (id, session_id, action, args, description, status, created_at, resolved_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		i.ID, i.SessionID, i.Action, args, i.Description, i.Status, i.CreatedAt, i.ResolvedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("interruptRepo.Create: %w", domain.ErrInterruptPending)
		}
		return fmt.Errorf("interruptRepo.Create: %w", err)
	}

	return nil
}

func (r *InterruptRepo) GetPending(ctx context.Context, sessionID uuid.UUID) (*domain.Interrupt, error) {
	var i domain.Interrupt
	var args []byte

	err := r.pool.QueryRow(ctx,
		`SELECT id, session_id, action, args, description, status, created_at, resolved_at
		 FROM interrupts WHERE session_id = $1 AND status = $2`,
		sessionID, domain.InterruptStatusPending,
	).Scan(&i.ID, &i.SessionID, &i.Action, &args, &i.Description, &i.Status, &i.CreatedAt, &i.ResolvedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("interruptRepo.GetPending: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("interruptRepo.GetPending: %w", err)
	}

	err = json.Unmarshal(args, &i.Args)
	if err != nil {
		return nil, fmt.Errorf("interruptRepo.GetPending: unmarshal args: %w", err)
	}

	return &i, nil
}

func (r *InterruptRepo) Resolve(ctx context.Context, sessionID uuid.UUID, decision domain.DecisionType) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE interrupts SET status = $1, decision = $2, resolved_at = now()
		 WHERE session_id = $3 AND status = $4`,
		domain.InterruptStatusResolved, decision, sessionID, domain.InterruptStatusPending,
	)
	if err != nil {
		return fmt.Errorf("interruptRepo.Resolve: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("interruptRepo.Resolve: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *InterruptRepo) CancelPending(ctx context.Context, sessionID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE interrupts SET status = $1, resolved_at = now()
		 WHERE session_id = $2 AND status = $3`,
		domain.InterruptStatusCancelled, sessionID, domain.InterruptStatusPending,
	)
	if err != nil {
		return fmt.Errorf("interruptRepo.CancelPending: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("interruptRepo.CancelPending: %w", domain.ErrNotFound)
	}

	return nil
}

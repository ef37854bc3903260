package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sivajik34/aifastcommerce/internal/domain"
)

// CheckpointRepo persists the per-session runtime state: the transcript plus
// the pending sensitive call while paused. One row per session, upserted.
type CheckpointRepo struct {
	pool *pgxpool.Pool
}

func NewCheckpointRepo(pool *pgxpool.Pool) *CheckpointRepo {
	return &CheckpointRepo{pool: pool}
}

func (r *CheckpointRepo) Save(ctx context.Context, cp *domain.Checkpoint) error {
	messages, err := json.Marshal(cp.Messages)
	if err != nil {
		return fmt.Errorf("checkpointRepo.Save: marshal messages: %w", err)
	}

	var pending []byte
	if cp.PendingCall != nil {
		pending, err = json.Marshal(cp.PendingCall)
		if err != nil {
			return fmt.Errorf("checkpointRepo.Save: marshal pending call: %w", err)
		}
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO checkpoints (session_id, messages, pending_call, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (session_id)
		 DO UPDATE SET messages = EXCLUDED.messages, pending_call = EXCLUDED.pending_call, updated_at = now()`,
		cp.SessionID, messages, pending,
	)
	if err != nil {
		return fmt.Errorf("checkpointRepo.Save: %w", err)
	}

	return nil
}

func (r *CheckpointRepo) Load(ctx context.Context, sessionID uuid.UUID) (*domain.Checkpoint, error) {
	var cp domain.Checkpoint
	var messages, pending []byte

	err := r.pool.QueryRow(ctx,
		`SELECT session_id, messages, pending_call, updated_at
		 FROM checkpoints WHERE session_id = $1`,
		sessionID,
	).Scan(&cp.SessionID, &messages, &pending, &cp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("checkpointRepo.Load: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("checkpointRepo.Load: %w", err)
	}

	err = json.Unmarshal(messages, &cp.Messages)
	if err != nil {
		return nil, fmt.Errorf("checkpointRepo.Load: unmarshal messages: %w", err)
	}
	if len(pending) > 0 {
		err = json.Unmarshal(pending, &cp.PendingCall)
		if err != nil {
			return nil, fmt.Errorf("checkpointRepo.Load: unmarshal pending call: %w", err)
		}
	}

	return &cp, nil
}

func (r *CheckpointRepo) Delete(ctx context.Context, sessionID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM checkpoints WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("checkpointRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("checkpointRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

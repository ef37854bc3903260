// Package postgres implements the domain repositories over a pgx connection
// pool.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sivajik34/aifastcommerce/internal/domain"
)

type Store struct {
	pool        *pgxpool.Pool
	sessions    *SessionRepo
	checkpoints *CheckpointRepo
	interrupts  *InterruptRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:        pool,
		sessions:    NewSessionRepo(pool),
		checkpoints: NewCheckpointRepo(pool),
		interrupts:  NewInterruptRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Sessions() domain.ChatSessionRepository    { return s.sessions }
func (s *Store) Checkpoints() domain.CheckpointRepository  { return s.checkpoints }
func (s *Store) Interrupts() domain.InterruptRepository    { return s.interrupts }

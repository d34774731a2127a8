package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store combines the query surface with a transactional unit of work.
type Store interface {
	Querier

	// ExecTx runs fn inside a single database transaction. The Querier
	// passed to fn is bound to that transaction; any error (or panic)
	// rolls every statement back.
	ExecTx(ctx context.Context, fn func(Querier) error) error
}

// SQLStore implements Store on a pgx connection pool.
type SQLStore struct {
	pool *pgxpool.Pool
	*Queries
}

// NewStore creates a Store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *SQLStore {
	return &SQLStore{
		pool:    pool,
		Queries: New(pool),
	}
}

// ExecTx implements Store.
func (s *SQLStore) ExecTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(s.Queries.WithTx(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

var _ Store = (*SQLStore)(nil)

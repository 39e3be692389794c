// Package memory is a process-local implementation of the storage ports.
// Writers are serialized: a transaction holds the single writer slot from
// Begin until Commit or Rollback and works on a private copy of the state,
// which replaces the committed state on Commit. Readers outside a
// transaction see only committed state.
package memory

import (
	"context"
	"errors"
	"sync"

	"points-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var errForeignTx = errors.New("memory: transaction was not started by this store")

type state struct {
	actors      map[uuid.UUID]domain.Actor
	wallets     map[uuid.UUID]domain.Wallet // keyed by actor id
	entries     []domain.LedgerEntry
	idempotency map[string]domain.IdempotencyLog
	seq         int64
}

func newState() *state {
	return &state{
		actors:      make(map[uuid.UUID]domain.Actor),
		wallets:     make(map[uuid.UUID]domain.Wallet),
		idempotency: make(map[string]domain.IdempotencyLog),
	}
}

func (s *state) clone() *state {
	c := &state{
		actors:      make(map[uuid.UUID]domain.Actor, len(s.actors)),
		wallets:     make(map[uuid.UUID]domain.Wallet, len(s.wallets)),
		entries:     s.entries[:len(s.entries):len(s.entries)],
		idempotency: make(map[string]domain.IdempotencyLog, len(s.idempotency)),
		seq:         s.seq,
	}
	for k, v := range s.actors {
		c.actors[k] = v
	}
	for k, v := range s.wallets {
		c.wallets[k] = v
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	return c
}

// Store holds the committed state and hands out transactions.
type Store struct {
	writer chan struct{}
	mu     sync.RWMutex
	state  *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		writer: make(chan struct{}, 1),
		state:  newState(),
	}
}

// Begin waits for the writer slot and returns a transaction over a private
// copy of the committed state. It implements ports.DBTransactor.
func (s *Store) Begin(ctx context.Context) (pgx.Tx, error) {
	select {
	case s.writer <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.RLock()
	work := s.state.clone()
	s.mu.RUnlock()

	return &Tx{store: s, work: work}, nil
}

func (s *Store) view(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// update runs fn in its own transaction.
func (s *Store) update(ctx context.Context, fn func(st *state) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(tx.(*Tx).work); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "memory" }

// Ping implements ports.HealthChecker.
func (s *Store) Ping(_ context.Context) error { return nil }

// Tx is a store transaction. Only Commit and Rollback are supported; the
// SQL methods of pgx.Tx are not.
type Tx struct {
	pgx.Tx
	store  *Store
	work   *state
	closed bool
}

// Commit publishes the working copy and releases the writer slot.
func (t *Tx) Commit(_ context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.store.mu.Lock()
	t.store.state = t.work
	t.store.mu.Unlock()
	t.release()
	return nil
}

// Rollback discards the working copy and releases the writer slot.
func (t *Tx) Rollback(_ context.Context) error {
	if t.closed {
		return pgx.ErrTxClosed
	}
	t.release()
	return nil
}

func (t *Tx) release() {
	t.closed = true
	t.work = nil
	<-t.store.writer
}

func working(tx pgx.Tx) (*state, error) {
	t, ok := tx.(*Tx)
	if !ok {
		return nil, errForeignTx
	}
	if t.closed {
		return nil, pgx.ErrTxClosed
	}
	return t.work, nil
}

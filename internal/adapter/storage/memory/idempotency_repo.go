package memory

import (
	"context"

	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// IdempotencyRepo implements ports.IdempotencyRepository.
type IdempotencyRepo struct {
	store *Store
}

func NewIdempotencyRepo(store *Store) *IdempotencyRepo {
	return &IdempotencyRepo{store: store}
}

func (r *IdempotencyRepo) Create(_ context.Context, tx pgx.Tx, log *domain.IdempotencyLog) error {
	st, err := working(tx)
	if err != nil {
		return err
	}
	if _, ok := st.idempotency[log.Key]; ok {
		return ports.ErrDuplicateIdempotencyKey
	}
	st.idempotency[log.Key] = *log
	return nil
}

func (r *IdempotencyRepo) Get(_ context.Context, key string) (*domain.IdempotencyLog, error) {
	var out *domain.IdempotencyLog
	r.store.view(func(st *state) {
		if l, ok := st.idempotency[key]; ok {
			out = &l
		}
	})
	return out, nil
}

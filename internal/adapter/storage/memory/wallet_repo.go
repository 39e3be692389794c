package memory

import (
	"context"
	"fmt"
	"time"

	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	store *Store
}

func NewWalletRepo(store *Store) *WalletRepo {
	return &WalletRepo{store: store}
}

func (r *WalletRepo) Create(_ context.Context, tx pgx.Tx, wallet *domain.Wallet) error {
	st, err := working(tx)
	if err != nil {
		return err
	}
	if _, ok := st.wallets[wallet.ActorID]; ok {
		return ports.ErrDuplicateWallet
	}
	st.wallets[wallet.ActorID] = *wallet
	return nil
}

func (r *WalletRepo) GetByActorID(_ context.Context, actorID uuid.UUID) (*domain.Wallet, error) {
	var out *domain.Wallet
	r.store.view(func(st *state) {
		if w, ok := st.wallets[actorID]; ok {
			out = &w
		}
	})
	return out, nil
}

// GetByActorIDForUpdate reads from the transaction's copy; holding the
// transaction already excludes other writers.
func (r *WalletRepo) GetByActorIDForUpdate(_ context.Context, tx pgx.Tx, actorID uuid.UUID) (*domain.Wallet, error) {
	st, err := working(tx)
	if err != nil {
		return nil, err
	}
	w, ok := st.wallets[actorID]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WalletRepo) ApplyDelta(_ context.Context, tx pgx.Tx, delta domain.WalletDelta) (*domain.Wallet, error) {
	st, err := working(tx)
	if err != nil {
		return nil, err
	}
	w, ok := st.wallets[delta.ActorID]
	if !ok {
		return nil, fmt.Errorf("wallet for actor %s not found", delta.ActorID)
	}
	w = delta.Apply(w)
	if w.Role == domain.RoleCustomer && w.Balance.IsNegative() {
		return nil, fmt.Errorf("wallet %s: customer balance would be negative", w.ID)
	}
	w.UpdatedAt = time.Now().UTC()
	st.wallets[delta.ActorID] = w
	return &w, nil
}

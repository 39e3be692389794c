package postgres

import (
	"context"
	"errors"
	"fmt"

	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const walletColumns = `id, actor_id, role, balance, issued_total, collected_total, version, created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet within a database transaction.
func (r *WalletRepo) Create(ctx context.Context, tx pgx.Tx, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, actor_id, role, balance, issued_total, collected_total, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		w.ID, w.ActorID, w.Role, w.Balance, w.IssuedTotal, w.CollectedTotal,
		w.Version, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if hasPgCode(err, pgUniqueViolation) {
			return ports.ErrDuplicateWallet
		}
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByActorID fetches an actor's wallet (non-locking read).
func (r *WalletRepo) GetByActorID(ctx context.Context, actorID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE actor_id = $1`
	return scanWallet(r.pool.QueryRow(ctx, query, actorID))
}

// GetByActorIDForUpdate fetches an actor's wallet with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByActorIDForUpdate(ctx context.Context, tx pgx.Tx, actorID uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE actor_id = $1 FOR UPDATE`
	return scanWallet(tx.QueryRow(ctx, query, actorID))
}

// ApplyDelta adds the delta to the wallet's aggregates and returns the new row.
func (r *WalletRepo) ApplyDelta(ctx context.Context, tx pgx.Tx, d domain.WalletDelta) (*domain.Wallet, error) {
	query := `UPDATE wallets SET
			balance = balance + $1,
			issued_total = issued_total + $2,
			collected_total = collected_total + $3,
			version = version + 1,
			updated_at = NOW()
		WHERE actor_id = $4
		RETURNING ` + walletColumns

	w, err := scanWallet(tx.QueryRow(ctx, query, d.Balance, d.Issued, d.Collected, d.ActorID))
	if err != nil {
		if hasPgCode(err, pgCheckViolation) {
			return nil, fmt.Errorf("wallet %s constraint violated: %w", d.ActorID, err)
		}
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("wallet not found: %s", d.ActorID)
	}
	return w, nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.ActorID, &w.Role, &w.Balance, &w.IssuedTotal, &w.CollectedTotal,
		&w.Version, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet: %w", err)
	}
	return w, nil
}

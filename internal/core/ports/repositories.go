package ports

import (
	"context"
	"errors"
	"math"
	"time"

	"points-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	// ErrDuplicateIdempotencyKey is returned when an idempotency log with the
	// same key already exists.
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")
	// ErrDuplicateWallet is returned when the actor already owns a wallet.
	ErrDuplicateWallet = errors.New("duplicate wallet")
	// ErrDuplicateActor is returned when the actor id is already mirrored.
	ErrDuplicateActor = errors.New("duplicate actor")
)

// ActorRepository persists the mirrored actor records.
type ActorRepository interface {
	Create(ctx context.Context, tx pgx.Tx, actor *domain.Actor) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Actor, error)
	GetByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Actor, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ActorStatus) (*domain.Actor, error)
	// AvailableMerchants lists active merchants that never issued to the customer.
	AvailableMerchants(ctx context.Context, customerID uuid.UUID) ([]domain.AvailableMerchant, error)
}

// WalletRepository defines persistence operations for wallets.
// ApplyDelta is the only mutator and is reserved for the ledger store.
type WalletRepository interface {
	Create(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet) error
	GetByActorID(ctx context.Context, actorID uuid.UUID) (*domain.Wallet, error)
	GetByActorIDForUpdate(ctx context.Context, tx pgx.Tx, actorID uuid.UUID) (*domain.Wallet, error)
	ApplyDelta(ctx context.Context, tx pgx.Tx, delta domain.WalletDelta) (*domain.Wallet, error)
}

// LedgerEntryRepository is the append-only entry log. It has no update or
// delete operations.
type LedgerEntryRepository interface {
	Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LedgerEntry, error)
	List(ctx context.Context, params LedgerListParams) ([]*domain.LedgerEntry, int64, error)
	// ListByActor returns every entry touching the actor, oldest first.
	ListByActor(ctx context.Context, actorID uuid.UUID) ([]*domain.LedgerEntry, error)
	HasIssued(ctx context.Context, customerID, merchantID uuid.UUID) (bool, error)
	HasIssuedTx(ctx context.Context, tx pgx.Tx, customerID, merchantID uuid.UUID) (bool, error)
	IssuingMerchants(ctx context.Context, customerID uuid.UUID) ([]domain.BlockedMerchant, error)
	// LatestIssuerExcluding returns the merchant of the customer's most recent
	// issue entry not sent by excluded, or nil.
	LatestIssuerExcluding(ctx context.Context, tx pgx.Tx, customerID, excluded uuid.UUID) (*uuid.UUID, error)
	MerchantActivity(ctx context.Context, merchantID uuid.UUID, since time.Time) (*domain.MerchantActivity, error)
}

// LedgerListParams holds filter + pagination for listing an actor's entries.
type LedgerListParams struct {
	ActorID  uuid.UUID
	Kind     *domain.EntryKind
	Page     int
	PageSize int
}

// Offset returns how many matching rows precede the page. ok is false when
// the page starts past any addressable row, in which case it is empty.
func (p LedgerListParams) Offset() (offset int, ok bool) {
	page, size := max(p.Page, 1), max(p.PageSize, 1)
	if page-1 > math.MaxInt32/size {
		return 0, false
	}
	return (page - 1) * size, true
}

// IdempotencyRepository defines persistence for idempotency logs (DB backup).
type IdempotencyRepository interface {
	Create(ctx context.Context, tx pgx.Tx, log *domain.IdempotencyLog) error
	Get(ctx context.Context, key string) (*domain.IdempotencyLog, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

package ports

import (
	"context"
	"time"

	"points-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// IdempotencyCache is the Redis-layer idempotency check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// EligibilityCache remembers same-store decisions per (customer, merchant).
// It is never authoritative.
type EligibilityCache interface {
	Get(ctx context.Context, customerID, merchantID uuid.UUID) (eligible bool, found bool, err error)
	Set(ctx context.Context, customerID, merchantID uuid.UUID, eligible bool, ttl time.Duration) error
	Invalidate(ctx context.Context, customerID, merchantID uuid.UUID) error
	InvalidateCustomer(ctx context.Context, customerID uuid.UUID) error
}

// --- Service Ports (Business Logic) ---

// LedgerStore appends entries and applies their wallet effects. It is the
// only writer of wallet aggregates.
type LedgerStore interface {
	// LockWallets locks the actors' wallets in a fixed order.
	LockWallets(ctx context.Context, tx pgx.Tx, actorIDs ...uuid.UUID) (map[uuid.UUID]*domain.Wallet, error)
	Commit(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) (*CommitResult, error)
}

// CommitResult is a committed entry with the post-commit wallet snapshots.
type CommitResult struct {
	Entry   *domain.LedgerEntry
	Wallets map[uuid.UUID]*domain.Wallet
}

// EligibilityService answers the same-store redemption question.
type EligibilityService interface {
	IsEligible(ctx context.Context, customerID, merchantID uuid.UUID) (bool, error)
	SpendableAmount(ctx context.Context, customerID, merchantID uuid.UUID) (decimal.Decimal, error)
	BlockedMerchants(ctx context.Context, customerID uuid.UUID) ([]domain.BlockedMerchant, error)
	AvailableMerchants(ctx context.Context, customerID uuid.UUID) ([]domain.AvailableMerchant, error)
	CheckCustomer(ctx context.Context, customerID, merchantID uuid.UUID) (*domain.CustomerCheck, error)
	Invalidate(ctx context.Context, customerID, merchantID uuid.UUID) error
	InvalidateCustomer(ctx context.Context, customerID uuid.UUID) error
}

// PointsService holds wallet creation and the issue/redeem primitives.
type PointsService interface {
	CreateWallet(ctx context.Context, req CreateWalletRequest) (*CreateWalletResult, error)
	SetActorStatus(ctx context.Context, actorID uuid.UUID, status domain.ActorStatus) (*domain.Actor, error)
	IssuePoints(ctx context.Context, req IssueRequest) (*MovementResult, error)
	RedeemPoints(ctx context.Context, req RedeemRequest) (*MovementResult, error)
}

// CreateWalletRequest is sent by account management when an actor is created.
type CreateWalletRequest struct {
	ActorID     uuid.UUID
	Role        domain.Role
	DisplayName string
}

// CreateWalletResult is the new wallet and the welcome bonus, if any.
type CreateWalletResult struct {
	Wallet       *domain.Wallet      `json:"wallet"`
	WelcomeBonus *domain.LedgerEntry `json:"welcome_bonus,omitempty"`
}

// IssueRequest holds validated input for issuing points on a cash purchase.
type IssueRequest struct {
	MerchantID     uuid.UUID
	CustomerID     uuid.UUID
	CashAmount     decimal.Decimal
	Description    string
	Metadata       map[string]any
	IdempotencyKey string
}

// RedeemRequest holds validated input for spending points at a merchant.
type RedeemRequest struct {
	CustomerID     uuid.UUID
	MerchantID     uuid.UUID
	Points         decimal.Decimal
	Description    string
	Metadata       map[string]any
	IdempotencyKey string
}

// MovementResult is one committed entry with both wallets after it.
type MovementResult struct {
	Entry          *domain.LedgerEntry `json:"entry"`
	CustomerWallet *domain.Wallet      `json:"customer_wallet"`
	MerchantWallet *domain.Wallet      `json:"merchant_wallet"`
}

// CheckoutService runs the compound redeem-then-issue checkout.
type CheckoutService interface {
	PreviewCheckout(ctx context.Context, req CheckoutRequest) (*domain.CheckoutQuote, error)
	CommitCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
}

// CheckoutRequest holds validated input for a checkout.
type CheckoutRequest struct {
	CustomerID     uuid.UUID
	MerchantID     uuid.UUID
	Categories     []domain.CheckoutCategory
	IdempotencyKey string
}

// CheckoutResult is a committed checkout. Either entry may be nil when its
// amount was zero.
type CheckoutResult struct {
	CheckoutID     uuid.UUID             `json:"checkout_id"`
	Quote          *domain.CheckoutQuote `json:"quote"`
	RedeemEntry    *domain.LedgerEntry   `json:"redeem_entry,omitempty"`
	IssueEntry     *domain.LedgerEntry   `json:"issue_entry,omitempty"`
	CustomerWallet *domain.Wallet        `json:"customer_wallet"`
	MerchantWallet *domain.Wallet        `json:"merchant_wallet"`
}

// WalletQueryService defines read-only wallet and history queries.
type WalletQueryService interface {
	GetWallet(ctx context.Context, actorID uuid.UUID) (*domain.Wallet, error)
	GetLedgerHistory(ctx context.Context, params LedgerListParams) (*LedgerPage, error)
	ReconcileWallet(ctx context.Context, actorID uuid.UUID) (*ReconcileResult, error)
	MerchantStats(ctx context.Context, merchantID uuid.UUID, days int) (*domain.MerchantStats, error)
}

// LedgerPage is one page of an actor's history, newest first.
type LedgerPage struct {
	Entries  []*domain.LedgerEntry
	Total    int64
	Page     int
	PageSize int
}

// ReconcileResult compares stored aggregates against a full replay.
type ReconcileResult struct {
	Wallet     *domain.Wallet
	Replayed   domain.WalletTotals
	EntryCount int
	Consistent bool
}

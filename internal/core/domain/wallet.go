package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is the balance aggregate of one customer or merchant. It is a
// snapshot: the only way to change a wallet is committing a LedgerEntry.
type Wallet struct {
	ID             uuid.UUID       `json:"id"`
	ActorID        uuid.UUID       `json:"actor_id"`
	Role           Role            `json:"role"`
	Balance        decimal.Decimal `json:"balance"`
	IssuedTotal    decimal.Decimal `json:"issued_total"`
	CollectedTotal decimal.Decimal `json:"collected_total"`
	Version        int64           `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MerchantNet is collected minus issued. Negative means the merchant has
// handed out more points than it has taken back.
func (w *Wallet) MerchantNet() decimal.Decimal {
	return w.CollectedTotal.Sub(w.IssuedTotal)
}

// HasSufficient reports whether the balance covers amount.
func (w *Wallet) HasSufficient(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}

// WalletDelta is the change one entry applies to one wallet.
type WalletDelta struct {
	ActorID   uuid.UUID
	Balance   decimal.Decimal
	Issued    decimal.Decimal
	Collected decimal.Decimal
}

// IsZero reports whether the delta changes nothing.
func (d WalletDelta) IsZero() bool {
	return d.Balance.IsZero() && d.Issued.IsZero() && d.Collected.IsZero()
}

// Apply returns a copy of w with d applied.
func (d WalletDelta) Apply(w Wallet) Wallet {
	w.Balance = w.Balance.Add(d.Balance)
	w.IssuedTotal = w.IssuedTotal.Add(d.Issued)
	w.CollectedTotal = w.CollectedTotal.Add(d.Collected)
	w.Version++
	return w
}

// WalletTotals are the aggregates recomputed from ledger history.
type WalletTotals struct {
	Balance        decimal.Decimal `json:"balance"`
	IssuedTotal    decimal.Decimal `json:"issued_total"`
	CollectedTotal decimal.Decimal `json:"collected_total"`
}

// ReplayWallet recomputes an actor's aggregates from its entries.
func ReplayWallet(actorID uuid.UUID, entries []*LedgerEntry) WalletTotals {
	totals := WalletTotals{
		Balance:        decimal.Zero,
		IssuedTotal:    decimal.Zero,
		CollectedTotal: decimal.Zero,
	}
	for _, e := range entries {
		for _, d := range e.Effects() {
			if d.ActorID != actorID {
				continue
			}
			totals.Balance = totals.Balance.Add(d.Balance)
			totals.IssuedTotal = totals.IssuedTotal.Add(d.Issued)
			totals.CollectedTotal = totals.CollectedTotal.Add(d.Collected)
		}
	}
	return totals
}

// Matches reports whether the replayed totals agree with the stored wallet.
func (t WalletTotals) Matches(w *Wallet) bool {
	return t.Balance.Equal(w.Balance) &&
		t.IssuedTotal.Equal(w.IssuedTotal) &&
		t.CollectedTotal.Equal(w.CollectedTotal)
}

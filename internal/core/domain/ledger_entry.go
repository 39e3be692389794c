package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryKind is the kind of point movement a ledger entry records.
type EntryKind string

const (
	EntryKindIssue        EntryKind = "issue"
	EntryKindRedeem       EntryKind = "redeem"
	EntryKindWelcomeBonus EntryKind = "welcome_bonus"
	EntryKindEventBonus   EntryKind = "event_bonus"
	EntryKindRefund       EntryKind = "refund"
	EntryKindExpiry       EntryKind = "expiry"
)

// Valid reports whether k is a known entry kind.
func (k EntryKind) Valid() bool {
	switch k {
	case EntryKindIssue, EntryKindRedeem, EntryKindWelcomeBonus,
		EntryKindEventBonus, EntryKindRefund, EntryKindExpiry:
		return true
	}
	return false
}

// RequiresSender reports whether entries of this kind must name a sender.
func (k EntryKind) RequiresSender() bool {
	return k == EntryKindIssue || k == EntryKindRedeem
}

// ExpectedRoles returns the roles sender and recipient must hold. An empty
// sender role means any (or no) sender is accepted.
func (k EntryKind) ExpectedRoles() (sender Role, recipient Role) {
	switch k {
	case EntryKindIssue:
		return RoleMerchant, RoleCustomer
	case EntryKindRedeem:
		return RoleCustomer, RoleMerchant
	default:
		return "", RoleCustomer
	}
}

var (
	ErrEntryAmountNotPositive = errors.New("amount must be greater than zero")
	ErrEntryAmountPrecision   = errors.New("amount must have at most two decimal places")
	ErrEntryUnknownKind       = errors.New("unknown entry kind")
	ErrEntryMissingSender     = errors.New("entry kind requires a sender")
	ErrEntryMissingRecipient  = errors.New("entry requires a recipient")
	ErrEntrySelfTransfer      = errors.New("sender and recipient must differ")
	ErrEntryCashAmount        = errors.New("cash amount must be positive with at most two decimal places")
)

// LedgerEntry is one immutable point movement. Entries are appended, never
// updated or deleted; wallets are derived from them.
type LedgerEntry struct {
	ID               uuid.UUID           `json:"id"`
	Seq              int64               `json:"seq"`
	SenderID         *uuid.UUID          `json:"sender_id,omitempty"`
	RecipientID      uuid.UUID           `json:"recipient_id"`
	Amount           decimal.Decimal     `json:"amount"`
	CashAmount       decimal.NullDecimal `json:"cash_amount"`
	Kind             EntryKind           `json:"kind"`
	OriginMerchantID *uuid.UUID          `json:"origin_merchant_id,omitempty"`
	CheckoutID       *uuid.UUID          `json:"checkout_id,omitempty"`
	Description      string              `json:"description,omitempty"`
	Metadata         map[string]any      `json:"metadata,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

// HasTwoDecimals reports whether d carries no more than two decimal places.
func HasTwoDecimals(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}

// Validate checks the entry's shape. Actor existence and roles are checked
// by the ledger store, which can see the actors.
func (e *LedgerEntry) Validate() error {
	if !e.Kind.Valid() {
		return ErrEntryUnknownKind
	}
	if !e.Amount.IsPositive() {
		return ErrEntryAmountNotPositive
	}
	if !HasTwoDecimals(e.Amount) {
		return ErrEntryAmountPrecision
	}
	if e.RecipientID == uuid.Nil {
		return ErrEntryMissingRecipient
	}
	if e.Kind.RequiresSender() && (e.SenderID == nil || *e.SenderID == uuid.Nil) {
		return ErrEntryMissingSender
	}
	if e.SenderID != nil && *e.SenderID == e.RecipientID {
		return ErrEntrySelfTransfer
	}
	if e.CashAmount.Valid && (!e.CashAmount.Decimal.IsPositive() || !HasTwoDecimals(e.CashAmount.Decimal)) {
		return ErrEntryCashAmount
	}
	return nil
}

// Effects returns the wallet changes committing this entry applies.
func (e *LedgerEntry) Effects() []WalletDelta {
	a := e.Amount
	switch e.Kind {
	case EntryKindIssue:
		return []WalletDelta{
			{ActorID: e.RecipientID, Balance: a},
			{ActorID: *e.SenderID, Issued: a},
		}
	case EntryKindRedeem:
		return []WalletDelta{
			{ActorID: *e.SenderID, Balance: a.Neg()},
			{ActorID: e.RecipientID, Collected: a},
		}
	case EntryKindExpiry:
		return []WalletDelta{{ActorID: e.RecipientID, Balance: a.Neg()}}
	default:
		return []WalletDelta{{ActorID: e.RecipientID, Balance: a}}
	}
}

// ActorIDs returns every actor the entry references, sender first.
func (e *LedgerEntry) ActorIDs() []uuid.UUID {
	if e.SenderID == nil {
		return []uuid.UUID{e.RecipientID}
	}
	return []uuid.UUID{*e.SenderID, e.RecipientID}
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BlockedMerchant is a merchant where a customer cannot spend points,
// with how much it issued to them.
type BlockedMerchant struct {
	MerchantID     uuid.UUID       `json:"merchant_id"`
	PointsReceived decimal.Decimal `json:"points_received"`
	IssueCount     int64           `json:"issue_count"`
	LastIssuedAt   time.Time       `json:"last_issued_at"`
}

// CustomerCheck is what a merchant sees before serving a customer.
type CustomerCheck struct {
	CustomerID    uuid.UUID       `json:"customer_id"`
	MerchantID    uuid.UUID       `json:"merchant_id"`
	TotalBalance  decimal.Decimal `json:"total_balance"`
	SpendableHere decimal.Decimal `json:"spendable_here"`
	CanSpend      bool            `json:"can_spend"`
	BlockReason   string          `json:"block_reason,omitempty"`
}

// AvailableMerchant is an active merchant where a customer can still spend.
type AvailableMerchant struct {
	MerchantID  uuid.UUID `json:"merchant_id"`
	DisplayName string    `json:"display_name"`
}

// MerchantActivity aggregates a merchant's entries since a point in time.
type MerchantActivity struct {
	Issued          decimal.Decimal `json:"issued"`
	Collected       decimal.Decimal `json:"collected"`
	UniqueCustomers int64           `json:"unique_customers"`
	EntryCount      int64           `json:"entry_count"`
}

// MerchantStats pairs a merchant's lifetime totals with a trailing window.
type MerchantStats struct {
	MerchantID     uuid.UUID        `json:"merchant_id"`
	Days           int              `json:"days"`
	Since          time.Time        `json:"since"`
	IssuedTotal    decimal.Decimal  `json:"issued_total"`
	CollectedTotal decimal.Decimal  `json:"collected_total"`
	Net            decimal.Decimal  `json:"net"`
	Period         MerchantActivity `json:"period"`
}

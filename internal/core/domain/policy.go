package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// PointsPolicy holds the economic parameters of the ledger. It is built once
// from configuration and handed to the services that need it.
type PointsPolicy struct {
	WelcomeBonus            decimal.Decimal
	EuroPerPoint            decimal.Decimal
	MaxPointsPerTransaction decimal.Decimal
	ExpiryDays              int // informational, no expiry job runs
}

// DefaultPointsPolicy returns the stock parameters: 10 points welcome bonus,
// one point per 10 euro, at most 500 points per transaction.
func DefaultPointsPolicy() PointsPolicy {
	return PointsPolicy{
		WelcomeBonus:            decimal.NewFromInt(10),
		EuroPerPoint:            decimal.NewFromInt(10),
		MaxPointsPerTransaction: decimal.NewFromInt(500),
		ExpiryDays:              180,
	}
}

// Validate rejects policies the ledger cannot operate with.
func (p PointsPolicy) Validate() error {
	if !p.EuroPerPoint.IsPositive() {
		return errors.New("euro_per_point must be greater than zero")
	}
	if p.WelcomeBonus.IsNegative() || !HasTwoDecimals(p.WelcomeBonus) {
		return errors.New("welcome_bonus_points must be a non-negative two-decimal amount")
	}
	if !p.MaxPointsPerTransaction.IsPositive() {
		return errors.New("max_points_per_transaction must be greater than zero")
	}
	if p.ExpiryDays < 0 {
		return errors.New("points_expiry_days must not be negative")
	}
	return nil
}

// PointsForCash converts a euro amount to points, rounded half away from
// zero to two decimals.
func (p PointsPolicy) PointsForCash(cash decimal.Decimal) decimal.Decimal {
	if !cash.IsPositive() {
		return decimal.Zero
	}
	return cash.Div(p.EuroPerPoint).Round(2)
}

// ExceedsCap reports whether points is above the per-transaction cap.
func (p PointsPolicy) ExceedsCap(points decimal.Decimal) bool {
	return points.GreaterThan(p.MaxPointsPerTransaction)
}

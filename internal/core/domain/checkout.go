package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// SameStoreReason is shown to customers whose points cannot be spent at a merchant.
const SameStoreReason = "Punti guadagnati in questo negozio"

var hundred = decimal.NewFromInt(100)

// CheckoutCategory is one purchase line of a checkout.
type CheckoutCategory struct {
	Name               string          `json:"name"`
	Amount             decimal.Decimal `json:"amount"`
	MaxDiscountPercent int             `json:"max_discount_percent"`
}

// CategoryBreakdown is a category with its computed discount ceiling.
type CategoryBreakdown struct {
	Name               string          `json:"name"`
	Amount             decimal.Decimal `json:"amount"`
	MaxDiscountPercent int             `json:"max_discount_percent"`
	MaxDiscount        decimal.Decimal `json:"max_discount"`
}

// CheckoutQuote is the full computation of a checkout before commit.
type CheckoutQuote struct {
	TotalPurchase    decimal.Decimal     `json:"total_purchase"`
	MaxDiscount      decimal.Decimal     `json:"max_discount"`
	AvailablePoints  decimal.Decimal     `json:"available_points"`
	SpendablePoints  decimal.Decimal     `json:"spendable_points"`
	Discount         decimal.Decimal     `json:"discount"`
	NetPayable       decimal.Decimal     `json:"net_payable"`
	NewPoints        decimal.Decimal     `json:"new_points"`
	ProjectedBalance decimal.Decimal     `json:"projected_balance"`
	Eligible         bool                `json:"eligible"`
	BlockReason      string              `json:"block_reason,omitempty"`
	Categories       []CategoryBreakdown `json:"categories"`
}

var ErrCheckoutNoCategories = errors.New("checkout requires at least one category")

// QuoteCheckout computes discount, net payable and new points for a
// checkout. It has no side effects: same inputs, same quote.
func QuoteCheckout(categories []CheckoutCategory, balance decimal.Decimal, eligible bool, policy PointsPolicy) (*CheckoutQuote, error) {
	if len(categories) == 0 {
		return nil, ErrCheckoutNoCategories
	}

	total := decimal.Zero
	maxDiscount := decimal.Zero
	breakdown := make([]CategoryBreakdown, 0, len(categories))
	for i, c := range categories {
		if !c.Amount.IsPositive() || !HasTwoDecimals(c.Amount) {
			return nil, fmt.Errorf("category %d: amount must be positive with at most two decimal places", i)
		}
		if c.MaxDiscountPercent < 0 || c.MaxDiscountPercent > 100 {
			return nil, fmt.Errorf("category %d: max discount percent must be between 0 and 100", i)
		}
		ceiling := c.Amount.Mul(decimal.NewFromInt(int64(c.MaxDiscountPercent))).Div(hundred)
		total = total.Add(c.Amount)
		maxDiscount = maxDiscount.Add(ceiling)
		breakdown = append(breakdown, CategoryBreakdown{
			Name:               c.Name,
			Amount:             c.Amount,
			MaxDiscountPercent: c.MaxDiscountPercent,
			MaxDiscount:        ceiling.Round(2),
		})
	}
	maxDiscount = maxDiscount.Round(2)

	q := &CheckoutQuote{
		TotalPurchase:   total,
		MaxDiscount:     maxDiscount,
		AvailablePoints: balance,
		SpendablePoints: decimal.Zero,
		Discount:        decimal.Zero,
		Eligible:        eligible,
		Categories:      breakdown,
	}
	if eligible {
		q.SpendablePoints = balance
		q.Discount = decimal.Min(balance, maxDiscount)
	} else {
		q.BlockReason = SameStoreReason
	}
	q.NetPayable = total.Sub(q.Discount)
	q.NewPoints = policy.PointsForCash(q.NetPayable)
	q.ProjectedBalance = balance.Sub(q.Discount).Add(q.NewPoints)
	return q, nil
}

// Metadata renders the per-category breakdown for storage on ledger entries.
func (q *CheckoutQuote) Metadata() []map[string]any {
	out := make([]map[string]any, 0, len(q.Categories))
	for _, c := range q.Categories {
		out = append(out, map[string]any{
			"name":                 c.Name,
			"amount":               c.Amount.StringFixed(2),
			"max_discount_percent": c.MaxDiscountPercent,
			"max_discount":         c.MaxDiscount.StringFixed(2),
		})
	}
	return out
}

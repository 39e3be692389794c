package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRole(t *testing.T) {
	tests := []struct {
		role       Role
		valid      bool
		ownsWallet bool
	}{
		{RoleCustomer, true, true},
		{RoleMerchant, true, true},
		{RoleRepresentative, true, false},
		{RoleAdmin, true, false},
		{Role("auditor"), false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.role.Valid())
			assert.Equal(t, tt.ownsWallet, tt.role.OwnsWallet())
		})
	}
}

func TestActor_IsActive(t *testing.T) {
	assert.True(t, (&Actor{Status: ActorStatusActive}).IsActive())
	assert.False(t, (&Actor{Status: ActorStatusDeactivated}).IsActive())
}

func TestWallet_DerivedValues(t *testing.T) {
	w := &Wallet{
		Balance:        d("35.00"),
		IssuedTotal:    d("40.00"),
		CollectedTotal: d("25.50"),
	}

	assert.True(t, w.MerchantNet().Equal(d("-14.50")))
	assert.True(t, w.HasSufficient(d("35.00")))
	assert.False(t, w.HasSufficient(d("35.01")))
}

func TestLedgerEntry_Validate(t *testing.T) {
	merchant := uuid.New()
	customer := uuid.New()

	tests := []struct {
		name  string
		entry LedgerEntry
		want  error
	}{
		{
			name:  "valid issue",
			entry: LedgerEntry{Kind: EntryKindIssue, SenderID: &merchant, RecipientID: customer, Amount: d("2.50")},
		},
		{
			name:  "valid welcome bonus without sender",
			entry: LedgerEntry{Kind: EntryKindWelcomeBonus, RecipientID: customer, Amount: d("10")},
		},
		{
			name:  "zero amount",
			entry: LedgerEntry{Kind: EntryKindIssue, SenderID: &merchant, RecipientID: customer, Amount: decimal.Zero},
			want:  ErrEntryAmountNotPositive,
		},
		{
			name:  "negative amount",
			entry: LedgerEntry{Kind: EntryKindRedeem, SenderID: &customer, RecipientID: merchant, Amount: d("-1")},
			want:  ErrEntryAmountNotPositive,
		},
		{
			name:  "three decimals",
			entry: LedgerEntry{Kind: EntryKindIssue, SenderID: &merchant, RecipientID: customer, Amount: d("1.005")},
			want:  ErrEntryAmountPrecision,
		},
		{
			name:  "unknown kind",
			entry: LedgerEntry{Kind: EntryKind("gift"), RecipientID: customer, Amount: d("1")},
			want:  ErrEntryUnknownKind,
		},
		{
			name:  "redeem without sender",
			entry: LedgerEntry{Kind: EntryKindRedeem, RecipientID: merchant, Amount: d("1")},
			want:  ErrEntryMissingSender,
		},
		{
			name:  "missing recipient",
			entry: LedgerEntry{Kind: EntryKindRefund, Amount: d("1")},
			want:  ErrEntryMissingRecipient,
		},
		{
			name:  "self transfer",
			entry: LedgerEntry{Kind: EntryKindIssue, SenderID: &customer, RecipientID: customer, Amount: d("1")},
			want:  ErrEntrySelfTransfer,
		},
		{
			name: "negative cash amount",
			entry: LedgerEntry{
				Kind: EntryKindIssue, SenderID: &merchant, RecipientID: customer, Amount: d("1"),
				CashAmount: decimal.NewNullDecimal(d("-10")),
			},
			want: ErrEntryCashAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLedgerEntry_Effects(t *testing.T) {
	merchant := uuid.New()
	customer := uuid.New()

	issue := &LedgerEntry{Kind: EntryKindIssue, SenderID: &merchant, RecipientID: customer, Amount: d("25")}
	effects := issue.Effects()
	require.Len(t, effects, 2)
	assert.Equal(t, customer, effects[0].ActorID)
	assert.True(t, effects[0].Balance.Equal(d("25")))
	assert.Equal(t, merchant, effects[1].ActorID)
	assert.True(t, effects[1].Issued.Equal(d("25")))
	assert.True(t, effects[1].Balance.IsZero())

	redeem := &LedgerEntry{Kind: EntryKindRedeem, SenderID: &customer, RecipientID: merchant, Amount: d("20")}
	effects = redeem.Effects()
	require.Len(t, effects, 2)
	assert.True(t, effects[0].Balance.Equal(d("-20")))
	assert.True(t, effects[1].Collected.Equal(d("20")))
	assert.True(t, effects[1].Balance.IsZero(), "merchant balance is not touched by a redeem")

	expiry := &LedgerEntry{Kind: EntryKindExpiry, RecipientID: customer, Amount: d("3")}
	effects = expiry.Effects()
	require.Len(t, effects, 1)
	assert.True(t, effects[0].Balance.Equal(d("-3")))

	bonus := &LedgerEntry{Kind: EntryKindWelcomeBonus, RecipientID: customer, Amount: d("10")}
	assert.True(t, bonus.Effects()[0].Balance.Equal(d("10")))
}

func TestReplayWallet(t *testing.T) {
	x := uuid.New()
	y := uuid.New()
	c := uuid.New()

	entries := []*LedgerEntry{
		{Kind: EntryKindWelcomeBonus, RecipientID: c, Amount: d("10")},
		{Kind: EntryKindIssue, SenderID: &x, RecipientID: c, Amount: d("25")},
		{Kind: EntryKindRedeem, SenderID: &c, RecipientID: y, Amount: d("20")},
	}

	customer := ReplayWallet(c, entries)
	assert.True(t, customer.Balance.Equal(d("15")))

	merchantX := ReplayWallet(x, entries)
	assert.True(t, merchantX.IssuedTotal.Equal(d("25")))
	assert.True(t, merchantX.Balance.IsZero())

	merchantY := ReplayWallet(y, entries)
	assert.True(t, merchantY.CollectedTotal.Equal(d("20")))

	assert.True(t, customer.Matches(&Wallet{Balance: d("15.00"), IssuedTotal: decimal.Zero, CollectedTotal: decimal.Zero}))
	assert.False(t, customer.Matches(&Wallet{Balance: d("14.99"), IssuedTotal: decimal.Zero, CollectedTotal: decimal.Zero}))
}

func TestWalletDelta_Apply(t *testing.T) {
	w := Wallet{Balance: d("10"), Version: 3}
	out := WalletDelta{Balance: d("-4.50")}.Apply(w)

	assert.True(t, out.Balance.Equal(d("5.50")))
	assert.Equal(t, int64(4), out.Version)
	assert.True(t, w.Balance.Equal(d("10")), "original snapshot is not modified")
	assert.True(t, WalletDelta{}.IsZero())
}

func TestPointsPolicy_PointsForCash(t *testing.T) {
	p := DefaultPointsPolicy()

	assert.True(t, p.PointsForCash(d("59.00")).Equal(d("5.90")))
	assert.True(t, p.PointsForCash(d("25.05")).Equal(d("2.51")), "half rounds away from zero")
	assert.True(t, p.PointsForCash(d("0.04")).Equal(d("0")))
	assert.True(t, p.PointsForCash(decimal.Zero).IsZero())

	p.EuroPerPoint = d("1")
	assert.True(t, p.PointsForCash(d("25.00")).Equal(d("25")))
}

func TestPointsPolicy_Validate(t *testing.T) {
	assert.NoError(t, DefaultPointsPolicy().Validate())

	p := DefaultPointsPolicy()
	p.EuroPerPoint = decimal.Zero
	assert.Error(t, p.Validate())

	p = DefaultPointsPolicy()
	p.WelcomeBonus = d("-1")
	assert.Error(t, p.Validate())

	p = DefaultPointsPolicy()
	p.MaxPointsPerTransaction = decimal.Zero
	assert.Error(t, p.Validate())

	p = DefaultPointsPolicy()
	assert.True(t, p.ExceedsCap(d("500.01")))
	assert.False(t, p.ExceedsCap(d("500")))
}

func TestQuoteCheckout_EligibleCustomer(t *testing.T) {
	categories := []CheckoutCategory{
		{Name: "food", Amount: d("50.00"), MaxDiscountPercent: 30},
		{Name: "drinks", Amount: d("30.00"), MaxDiscountPercent: 20},
	}

	q, err := QuoteCheckout(categories, d("100.00"), true, DefaultPointsPolicy())
	require.NoError(t, err)

	assert.True(t, q.TotalPurchase.Equal(d("80.00")))
	assert.True(t, q.MaxDiscount.Equal(d("21.00")))
	assert.True(t, q.Discount.Equal(d("21.00")))
	assert.True(t, q.NetPayable.Equal(d("59.00")))
	assert.True(t, q.NewPoints.Equal(d("5.90")))
	assert.True(t, q.ProjectedBalance.Equal(d("84.90")))
	assert.True(t, q.SpendablePoints.Equal(d("100.00")))
	assert.Empty(t, q.BlockReason)
	require.Len(t, q.Categories, 2)
	assert.True(t, q.Categories[0].MaxDiscount.Equal(d("15.00")))
	assert.True(t, q.Categories[1].MaxDiscount.Equal(d("6.00")))
}

func TestQuoteCheckout_BalanceBelowCeiling(t *testing.T) {
	categories := []CheckoutCategory{{Name: "shoes", Amount: d("100.00"), MaxDiscountPercent: 50}}

	q, err := QuoteCheckout(categories, d("12.34"), true, DefaultPointsPolicy())
	require.NoError(t, err)

	assert.True(t, q.Discount.Equal(d("12.34")))
	assert.True(t, q.NetPayable.Equal(d("87.66")))
	assert.True(t, q.NewPoints.Equal(d("8.77")))
}

func TestQuoteCheckout_Blocked(t *testing.T) {
	categories := []CheckoutCategory{{Name: "food", Amount: d("40.00"), MaxDiscountPercent: 100}}

	q, err := QuoteCheckout(categories, d("100.00"), false, DefaultPointsPolicy())
	require.NoError(t, err)

	assert.False(t, q.Eligible)
	assert.Equal(t, SameStoreReason, q.BlockReason)
	assert.True(t, q.Discount.IsZero())
	assert.True(t, q.SpendablePoints.IsZero())
	assert.True(t, q.NetPayable.Equal(d("40.00")))
	assert.True(t, q.NewPoints.Equal(d("4.00")))
	assert.True(t, q.ProjectedBalance.Equal(d("104.00")))
}

func TestQuoteCheckout_IsDeterministic(t *testing.T) {
	categories := []CheckoutCategory{
		{Name: "a", Amount: d("33.33"), MaxDiscountPercent: 33},
		{Name: "b", Amount: d("10.01"), MaxDiscountPercent: 15},
	}

	first, err := QuoteCheckout(categories, d("50"), true, DefaultPointsPolicy())
	require.NoError(t, err)
	second, err := QuoteCheckout(categories, d("50"), true, DefaultPointsPolicy())
	require.NoError(t, err)

	assert.Equal(t, first.MaxDiscount.String(), second.MaxDiscount.String())
	assert.Equal(t, first.NetPayable.String(), second.NetPayable.String())
	assert.Equal(t, first.NewPoints.String(), second.NewPoints.String())
}

func TestQuoteCheckout_InvalidInput(t *testing.T) {
	policy := DefaultPointsPolicy()

	_, err := QuoteCheckout(nil, d("10"), true, policy)
	assert.ErrorIs(t, err, ErrCheckoutNoCategories)

	_, err = QuoteCheckout([]CheckoutCategory{{Amount: d("0"), MaxDiscountPercent: 10}}, d("10"), true, policy)
	assert.Error(t, err)

	_, err = QuoteCheckout([]CheckoutCategory{{Amount: d("10"), MaxDiscountPercent: 101}}, d("10"), true, policy)
	assert.Error(t, err)

	_, err = QuoteCheckout([]CheckoutCategory{{Amount: d("10.001"), MaxDiscountPercent: 10}}, d("10"), true, policy)
	assert.Error(t, err)
}

func TestCheckoutQuote_Metadata(t *testing.T) {
	q, err := QuoteCheckout([]CheckoutCategory{{Name: "food", Amount: d("50"), MaxDiscountPercent: 30}}, d("0"), true, DefaultPointsPolicy())
	require.NoError(t, err)

	meta := q.Metadata()
	require.Len(t, meta, 1)
	assert.Equal(t, "food", meta[0]["name"])
	assert.Equal(t, "50.00", meta[0]["amount"])
	assert.Equal(t, "15.00", meta[0]["max_discount"])
}

func TestBuildIdempotencyKey(t *testing.T) {
	actor := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
	key := BuildIdempotencyKey(actor, OpRedeem, "retry-1")
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000:redeem:retry-1", key)
}

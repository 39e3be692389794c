package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"
	"points-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingEntryRepo fails appends of one entry kind.
type failingEntryRepo struct {
	ports.LedgerEntryRepository
	failKind domain.EntryKind
}

func (r *failingEntryRepo) Create(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error {
	if entry.Kind == r.failKind {
		return errors.New("disk full")
	}
	return r.LedgerEntryRepository.Create(ctx, tx, entry)
}

func mixedBasket() []domain.CheckoutCategory {
	return []domain.CheckoutCategory{
		{Name: "groceries", Amount: dec("50.00"), MaxDiscountPercent: 30},
		{Name: "household", Amount: dec("30.00"), MaxDiscountPercent: 20},
	}
}

func TestCheckoutService_CommitCheckout_RedeemThenIssue(t *testing.T) {
	h := newHarness(t, domain.DefaultPointsPolicy())
	ctx := context.Background()
	customer := h.newActor(t, domain.RoleCustomer)
	merchant := h.newActor(t, domain.RoleMerchant)
	h.credit(t, customer, "90")

	res, err := h.checkout.CommitCheckout(ctx, ports.CheckoutRequest{CustomerID: customer, MerchantID: merchant, Categories: mixedBasket()})
	require.NoError(t, err)

	q := res.Quote
	assert.Equal(t, "80.00", q.TotalPurchase.StringFixed(2))
	assert.Equal(t, "21.00", q.MaxDiscount.StringFixed(2))
	assert.Equal(t, "21.00", q.Discount.StringFixed(2))
	assert.Equal(t, "59.00", q.NetPayable.StringFixed(2))
	assert.Equal(t, "5.90", q.NewPoints.StringFixed(2))

	require.NotNil(t, res.RedeemEntry)
	require.NotNil(t, res.IssueEntry)
	assert.Less(t, res.RedeemEntry.Seq, res.IssueEntry.Seq, "redeem is appended before issue")
	assert.Equal(t, res.CheckoutID, *res.RedeemEntry.CheckoutID)
	assert.Equal(t, res.CheckoutID, *res.IssueEntry.CheckoutID)
	assert.Equal(t, "59.00", res.IssueEntry.CashAmount.Decimal.StringFixed(2))
	assert.Equal(t, res.CheckoutID.String(), res.IssueEntry.Metadata["checkout_id"])

	assert.Equal(t, "84.90", res.CustomerWallet.Balance.StringFixed(2))
	assert.Equal(t, "21.00", res.MerchantWallet.CollectedTotal.StringFixed(2))
	assert.Equal(t, "5.90", res.MerchantWallet.IssuedTotal.StringFixed(2))
	assert.Equal(t, "84.90", h.wallet(t, customer).Balance.StringFixed(2))

	h.requireConsistent(t, customer, merchant)
}

func TestCheckoutService_CommitCheckout_BlockedAfterEarning(t *testing.T) {
	h := newHarness(t, domain.DefaultPointsPolicy())
	ctx := context.Background()
	customer := h.newActor(t, domain.RoleCustomer)
	merchant := h.newActor(t, domain.RoleMerchant)
	h.credit(t, customer, "90")
	req := ports.CheckoutRequest{CustomerID: customer, MerchantID: merchant, Categories: mixedBasket()}

	_, err := h.checkout.CommitCheckout(ctx, req)
	require.NoError(t, err)

	res, err := h.checkout.CommitCheckout(ctx, req)
	require.NoError(t, err)
	assert.False(t, res.Quote.Eligible)
	assert.Equal(t, domain.SameStoreReason, res.Quote.BlockReason)
	assert.True(t, res.Quote.Discount.IsZero())
	assert.Nil(t, res.RedeemEntry)
	require.NotNil(t, res.IssueEntry)
	assert.Equal(t, "8.00", res.IssueEntry.Amount.StringFixed(2))
	assert.Equal(t, "92.90", h.wallet(t, customer).Balance.StringFixed(2))
}

func TestCheckoutService_CommitCheckout_BalanceBelowCeiling(t *testing.T) {
	h := newHarness(t, domain.DefaultPointsPolicy())
	customer := h.newActor(t, domain.RoleCustomer)
	merchant := h.newActor(t, domain.RoleMerchant)
	h.credit(t, customer, "2.34")

	res, err := h.checkout.CommitCheckout(context.Background(), ports.CheckoutRequest{
		CustomerID: customer,
		MerchantID: merchant,
		Categories: []domain.CheckoutCategory{{Name: "all", Amount: dec("100.00"), MaxDiscountPercent: 50}},
	})
	require.NoError(t, err)
	assert.Equal(t, "12.34", res.Quote.Discount.StringFixed(2))
	assert.Equal(t, "87.66", res.Quote.NetPayable.StringFixed(2))
	assert.Equal(t, "8.77", res.Quote.NewPoints.StringFixed(2))
	assert.Equal(t, "8.77", res.CustomerWallet.Balance.StringFixed(2))
}

func TestCheckoutService_CommitCheckout_FullDiscountRedeemsOnly(t *testing.T) {
	h := newHarness(t, domain.DefaultPointsPolicy())
	customer := h.newActor(t, domain.RoleCustomer)
	merchant := h.newActor(t, domain.RoleMerchant)

	res, err := h.checkout.CommitCheckout(context.Background(), ports.CheckoutRequest{
		CustomerID: customer,
		MerchantID: merchant,
		Categories: []domain.CheckoutCategory{{Name: "voucher", Amount: dec("8.00"), MaxDiscountPercent: 100}},
	})
	require.NoError(t, err)
	assert.True(t, res.Quote.NetPayable.IsZero())
	require.NotNil(t, res.RedeemEntry)
	assert.Nil(t, res.IssueEntry)
	assert.Equal(t, "2.00", res.CustomerWallet.Balance.StringFixed(2))
}

func TestCheckoutService_CommitCheckout_AllOrNothing(t *testing.T) {
	base := newHarness(t, domain.DefaultPointsPolicy())
	customer := base.newActor(t, domain.RoleCustomer)
	merchant := base.newActor(t, domain.RoleMerchant)
	base.credit(t, customer, "90")

	broken := buildHarness(t, base.store, &failingEntryRepo{
		LedgerEntryRepository: base.entries,
		failKind:              domain.EntryKindIssue,
	}, domain.DefaultPointsPolicy())

	_, err := broken.checkout.CommitCheckout(context.Background(), ports.CheckoutRequest{
		CustomerID: customer, MerchantID: merchant, Categories: mixedBasket(), IdempotencyKey: "basket-1",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInternal, apperror.CodeOf(err))

	assert.Equal(t, "100.00", base.wallet(t, customer).Balance.StringFixed(2))
	assert.True(t, base.wallet(t, merchant).CollectedTotal.IsZero())
	assert.Empty(t, base.history(t, merchant), "the redeem step was rolled back with the issue step")
	logged, err := base.idemp.Get(context.Background(), domain.BuildIdempotencyKey(customer, domain.OpCheckout, "basket-1"))
	require.NoError(t, err)
	assert.Nil(t, logged)
	base.requireConsistent(t, customer, merchant)
}

func TestCheckoutService_CommitCheckout_Rejections(t *testing.T) {
	policy := domain.DefaultPointsPolicy()
	policy.MaxPointsPerTransaction = dec("5")
	h := newHarness(t, policy)
	ctx := context.Background()
	customer := h.newActor(t, domain.RoleCustomer)
	merchant := h.newActor(t, domain.RoleMerchant)
	h.credit(t, customer, "90")

	_, err := h.checkout.CommitCheckout(ctx, ports.CheckoutRequest{CustomerID: customer, MerchantID: merchant, Categories: mixedBasket()})
	assert.True(t, apperror.HasCode(err, apperror.CodeLimitExceeded), "5.90 new points exceed a cap of 5")

	_, err = h.checkout.CommitCheckout(ctx, ports.CheckoutRequest{CustomerID: customer, MerchantID: merchant})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidEntry))

	_, err = h.checkout.CommitCheckout(ctx, ports.CheckoutRequest{
		CustomerID: customer, MerchantID: merchant,
		Categories: []domain.CheckoutCategory{{Name: "x", Amount: dec("10"), MaxDiscountPercent: 101}},
	})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidEntry))

	_, err = h.checkout.CommitCheckout(ctx, ports.CheckoutRequest{CustomerID: merchant, MerchantID: customer, Categories: mixedBasket()})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidMerchant))

	assert.Equal(t, "100.00", h.wallet(t, customer).Balance.StringFixed(2))
}

func TestCheckoutService_CommitCheckout_NothingToMove(t *testing.T) {
	h := newHarness(t, domain.DefaultPointsPolicy())
	ctx := context.Background()
	customer := h.newActor(t, domain.RoleCustomer)
	merchant := h.newActor(t, domain.RoleMerchant)

	_, err := h.points.IssuePoints(ctx, ports.IssueRequest{MerchantID: merchant, CustomerID: customer, CashAmount: dec("10")})
	require.NoError(t, err)

	_, err = h.checkout.CommitCheckout(ctx, ports.CheckoutRequest{
		CustomerID: customer, MerchantID: merchant,
		Categories: []domain.CheckoutCategory{{Name: "gum", Amount: dec("0.04"), MaxDiscountPercent: 10}},
	})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidEntry))
}

func TestCheckoutService_CommitCheckout_Idempotent(t *testing.T) {
	h := newHarness(t, domain.DefaultPointsPolicy())
	ctx := context.Background()
	customer := h.newActor(t, domain.RoleCustomer)
	merchant := h.newActor(t, domain.RoleMerchant)
	h.credit(t, customer, "90")
	req := ports.CheckoutRequest{CustomerID: customer, MerchantID: merchant, Categories: mixedBasket(), IdempotencyKey: "till-4"}

	first, err := h.checkout.CommitCheckout(ctx, req)
	require.NoError(t, err)
	second, err := h.checkout.CommitCheckout(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.CheckoutID, second.CheckoutID)
	assert.Equal(t, "84.90", h.wallet(t, customer).Balance.StringFixed(2))
	assert.Len(t, h.history(t, merchant), 2)
}

func TestCheckoutService_PreviewCheckout(t *testing.T) {
	h := newHarness(t, domain.DefaultPointsPolicy())
	ctx := context.Background()
	customer := h.newActor(t, domain.RoleCustomer)
	merchant := h.newActor(t, domain.RoleMerchant)
	h.credit(t, customer, "90")
	req := ports.CheckoutRequest{CustomerID: customer, MerchantID: merchant, Categories: mixedBasket()}

	first, err := h.checkout.PreviewCheckout(ctx, req)
	require.NoError(t, err)
	second, err := h.checkout.PreviewCheckout(ctx, req)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(firstJSON), string(secondJSON))
	assert.Equal(t, "84.90", first.ProjectedBalance.StringFixed(2))
	assert.Equal(t, "100.00", h.wallet(t, customer).Balance.StringFixed(2), "preview writes nothing")
	assert.Empty(t, h.history(t, merchant))

	_, err = h.checkout.PreviewCheckout(ctx, ports.CheckoutRequest{CustomerID: customer, MerchantID: uuid.New(), Categories: mixedBasket()})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidMerchant))

	_, err = h.checkout.PreviewCheckout(ctx, ports.CheckoutRequest{CustomerID: customer, MerchantID: merchant})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidEntry))
}

func TestCheckoutService_PreviewCheckout_ShowsBlock(t *testing.T) {
	h := newHarness(t, domain.DefaultPointsPolicy())
	ctx := context.Background()
	customer := h.newActor(t, domain.RoleCustomer)
	merchant := h.newActor(t, domain.RoleMerchant)

	_, err := h.points.IssuePoints(ctx, ports.IssueRequest{MerchantID: merchant, CustomerID: customer, CashAmount: dec("30")})
	require.NoError(t, err)

	q, err := h.checkout.PreviewCheckout(ctx, ports.CheckoutRequest{CustomerID: customer, MerchantID: merchant, Categories: mixedBasket()})
	require.NoError(t, err)
	assert.False(t, q.Eligible)
	assert.Equal(t, domain.SameStoreReason, q.BlockReason)
	assert.True(t, q.SpendablePoints.IsZero())
	assert.Equal(t, "13.00", q.AvailablePoints.StringFixed(2))
	assert.Equal(t, "80.00", q.NetPayable.StringFixed(2))
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"
	"points-ledger/internal/core/ports/mocks"
	"points-ledger/internal/metrics"
	"points-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type eligibilityTestDeps struct {
	svc        *EligibilityServiceImpl
	actorRepo  *mocks.MockActorRepository
	entryRepo  *mocks.MockLedgerEntryRepository
	walletRepo *mocks.MockWalletRepository
	cache      *mocks.MockEligibilityCache
	ctrl       *gomock.Controller
}

func setupEligibilityService(t *testing.T) *eligibilityTestDeps {
	ctrl := gomock.NewController(t)
	d := &eligibilityTestDeps{
		actorRepo:  mocks.NewMockActorRepository(ctrl),
		entryRepo:  mocks.NewMockLedgerEntryRepository(ctrl),
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		cache:      mocks.NewMockEligibilityCache(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewEligibilityService(d.actorRepo, d.entryRepo, d.walletRepo, d.cache, time.Minute, metrics.New(), zerolog.Nop())
	return d
}

func TestEligibilityService_IsEligible_CacheHit(t *testing.T) {
	d := setupEligibilityService(t)
	ctx := context.Background()
	customerID, merchantID := uuid.New(), uuid.New()

	d.cache.EXPECT().Get(ctx, customerID, merchantID).Return(false, true, nil)

	eligible, err := d.svc.IsEligible(ctx, customerID, merchantID)
	require.NoError(t, err)
	assert.False(t, eligible)
}

func TestEligibilityService_IsEligible_CacheMiss(t *testing.T) {
	d := setupEligibilityService(t)
	ctx := context.Background()
	customerID, merchantID := uuid.New(), uuid.New()

	d.cache.EXPECT().Get(ctx, customerID, merchantID).Return(false, false, nil)
	d.entryRepo.EXPECT().HasIssued(ctx, customerID, merchantID).Return(true, nil)
	d.cache.EXPECT().Set(ctx, customerID, merchantID, false, time.Minute).Return(nil)

	eligible, err := d.svc.IsEligible(ctx, customerID, merchantID)
	require.NoError(t, err)
	assert.False(t, eligible)
}

func TestEligibilityService_IsEligible_CacheDownUsesLedger(t *testing.T) {
	d := setupEligibilityService(t)
	ctx := context.Background()
	customerID, merchantID := uuid.New(), uuid.New()

	d.cache.EXPECT().Get(ctx, customerID, merchantID).Return(false, false, errors.New("redis: connection refused"))
	d.entryRepo.EXPECT().HasIssued(ctx, customerID, merchantID).Return(false, nil)
	d.cache.EXPECT().Set(ctx, customerID, merchantID, true, time.Minute).Return(errors.New("redis: connection refused"))

	eligible, err := d.svc.IsEligible(ctx, customerID, merchantID)
	require.NoError(t, err)
	assert.True(t, eligible)
}

func TestEligibilityService_IsEligible_LedgerError(t *testing.T) {
	d := setupEligibilityService(t)
	ctx := context.Background()
	customerID, merchantID := uuid.New(), uuid.New()

	d.cache.EXPECT().Get(ctx, customerID, merchantID).Return(false, false, nil)
	d.entryRepo.EXPECT().HasIssued(ctx, customerID, merchantID).Return(false, errors.New("timeout"))

	_, err := d.svc.IsEligible(ctx, customerID, merchantID)
	assert.Equal(t, apperror.CodeInternal, apperror.CodeOf(err))
}

func TestEligibilityService_Invalidate(t *testing.T) {
	d := setupEligibilityService(t)
	ctx := context.Background()
	customerID, merchantID := uuid.New(), uuid.New()

	d.cache.EXPECT().Invalidate(ctx, customerID, merchantID).Return(nil)
	d.cache.EXPECT().InvalidateCustomer(ctx, customerID).Return(errors.New("boom"))

	require.NoError(t, d.svc.Invalidate(ctx, customerID, merchantID))
	assert.Error(t, d.svc.InvalidateCustomer(ctx, customerID))
}

func TestEligibilityService_NoCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	entryRepo := mocks.NewMockLedgerEntryRepository(ctrl)
	svc := NewEligibilityService(mocks.NewMockActorRepository(ctrl), entryRepo, mocks.NewMockWalletRepository(ctrl), nil, 0, nil, zerolog.Nop())
	ctx := context.Background()
	customerID, merchantID := uuid.New(), uuid.New()

	entryRepo.EXPECT().HasIssued(ctx, customerID, merchantID).Return(false, nil)

	eligible, err := svc.IsEligible(ctx, customerID, merchantID)
	require.NoError(t, err)
	assert.True(t, eligible)
	assert.NoError(t, svc.Invalidate(ctx, customerID, merchantID))
	assert.NoError(t, svc.InvalidateCustomer(ctx, customerID))
}

func TestEligibilityService_WalletChecks(t *testing.T) {
	d := setupEligibilityService(t)
	ctx := context.Background()
	merchantID := uuid.New()

	missing := uuid.New()
	d.walletRepo.EXPECT().GetByActorID(ctx, missing).Return(nil, nil)
	_, err := d.svc.CheckCustomer(ctx, missing, uuid.New())
	assert.True(t, apperror.HasCode(err, apperror.CodeWalletNotFound))

	d.walletRepo.EXPECT().GetByActorID(ctx, merchantID).Return(&domain.Wallet{ActorID: merchantID, Role: domain.RoleMerchant}, nil)
	_, err = d.svc.BlockedMerchants(ctx, merchantID)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidCustomer))
}

func TestEligibilityService_AvailableMerchants_RepoError(t *testing.T) {
	d := setupEligibilityService(t)
	ctx := context.Background()
	customerID := uuid.New()

	d.walletRepo.EXPECT().GetByActorID(ctx, customerID).Return(&domain.Wallet{ActorID: customerID, Role: domain.RoleCustomer}, nil)
	d.actorRepo.EXPECT().AvailableMerchants(ctx, customerID).Return(nil, errors.New("timeout"))

	_, err := d.svc.AvailableMerchants(ctx, customerID)
	assert.Equal(t, apperror.CodeInternal, apperror.CodeOf(err))
}

func TestEligibilityService_Views(t *testing.T) {
	h := newHarness(t, oneToOnePolicy())
	ctx := context.Background()
	customer := h.newActor(t, domain.RoleCustomer)
	x := h.newActor(t, domain.RoleMerchant)
	y := h.newActor(t, domain.RoleMerchant)

	blocked, err := h.eligibility.BlockedMerchants(ctx, customer)
	require.NoError(t, err)
	assert.NotNil(t, blocked)
	assert.Empty(t, blocked)

	available, err := h.eligibility.AvailableMerchants(ctx, customer)
	require.NoError(t, err)
	assert.Len(t, available, 2)

	for _, cash := range []string{"4", "6"} {
		_, err := h.points.IssuePoints(ctx, ports.IssueRequest{MerchantID: x, CustomerID: customer, CashAmount: dec(cash)})
		require.NoError(t, err)
	}

	blocked, err = h.eligibility.BlockedMerchants(ctx, customer)
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	assert.Equal(t, x, blocked[0].MerchantID)
	assert.Equal(t, "10.00", blocked[0].PointsReceived.StringFixed(2))
	assert.Equal(t, int64(2), blocked[0].IssueCount)

	available, err = h.eligibility.AvailableMerchants(ctx, customer)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, y, available[0].MerchantID)

	_, err = h.points.SetActorStatus(ctx, y, domain.ActorStatusDeactivated)
	require.NoError(t, err)
	available, err = h.eligibility.AvailableMerchants(ctx, customer)
	require.NoError(t, err)
	assert.Empty(t, available)
	_, err = h.points.SetActorStatus(ctx, y, domain.ActorStatusActive)
	require.NoError(t, err)

	atX, err := h.eligibility.CheckCustomer(ctx, customer, x)
	require.NoError(t, err)
	assert.False(t, atX.CanSpend)
	assert.True(t, atX.SpendableHere.IsZero())
	assert.Equal(t, "20.00", atX.TotalBalance.StringFixed(2))
	assert.Equal(t, domain.SameStoreReason, atX.BlockReason)

	atY, err := h.eligibility.CheckCustomer(ctx, customer, y)
	require.NoError(t, err)
	assert.True(t, atY.CanSpend)
	assert.Empty(t, atY.BlockReason)

	spendable, err := h.eligibility.SpendableAmount(ctx, customer, y)
	require.NoError(t, err)
	assert.True(t, spendable.Equal(decimal.NewFromInt(20)))

	spendable, err = h.eligibility.SpendableAmount(ctx, customer, x)
	require.NoError(t, err)
	assert.True(t, spendable.IsZero())
}

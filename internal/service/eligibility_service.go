package service

import (
	"context"
	"fmt"
	"time"

	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"
	"points-ledger/internal/metrics"
	"points-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const defaultEligibilityTTL = 5 * time.Minute

// EligibilityServiceImpl implements ports.EligibilityService. Answers come
// from the ledger; the cache only saves the lookup. A cached answer can be
// stale for at most the TTL, so debits re-check inside their transaction.
type EligibilityServiceImpl struct {
	actorRepo  ports.ActorRepository
	entryRepo  ports.LedgerEntryRepository
	walletRepo ports.WalletRepository
	cache      ports.EligibilityCache
	ttl        time.Duration
	metrics    *metrics.LedgerMetrics
	log        zerolog.Logger
}

// NewEligibilityService creates a new EligibilityServiceImpl. cache may be nil.
func NewEligibilityService(
	actorRepo ports.ActorRepository,
	entryRepo ports.LedgerEntryRepository,
	walletRepo ports.WalletRepository,
	cache ports.EligibilityCache,
	ttl time.Duration,
	m *metrics.LedgerMetrics,
	log zerolog.Logger,
) *EligibilityServiceImpl {
	if ttl <= 0 {
		ttl = defaultEligibilityTTL
	}
	return &EligibilityServiceImpl{
		actorRepo:  actorRepo,
		entryRepo:  entryRepo,
		walletRepo: walletRepo,
		cache:      cache,
		ttl:        ttl,
		metrics:    m,
		log:        log,
	}
}

// IsEligible is true unless the merchant has ever issued points to the customer.
func (s *EligibilityServiceImpl) IsEligible(ctx context.Context, customerID, merchantID uuid.UUID) (bool, error) {
	if s.cache != nil {
		eligible, found, err := s.cache.Get(ctx, customerID, merchantID)
		switch {
		case err != nil:
			s.metrics.ObserveCacheLookup(metrics.CacheError)
			s.log.Warn().Err(err).
				Str("customer_id", customerID.String()).
				Str("merchant_id", merchantID.String()).
				Msg("eligibility cache read failed, querying ledger")
		case found:
			s.metrics.ObserveCacheLookup(metrics.CacheHit)
			return eligible, nil
		default:
			s.metrics.ObserveCacheLookup(metrics.CacheMiss)
		}
	}

	issued, err := s.entryRepo.HasIssued(ctx, customerID, merchantID)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("check issue history: %w", err))
	}
	eligible := !issued

	if s.cache != nil {
		if err := s.cache.Set(ctx, customerID, merchantID, eligible, s.ttl); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache eligibility")
		}
	}
	return eligible, nil
}

// SpendableAmount is the full balance when eligible and zero otherwise.
func (s *EligibilityServiceImpl) SpendableAmount(ctx context.Context, customerID, merchantID uuid.UUID) (decimal.Decimal, error) {
	wallet, err := s.customerWallet(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	eligible, err := s.IsEligible(ctx, customerID, merchantID)
	if err != nil {
		return decimal.Zero, err
	}
	if !eligible {
		return decimal.Zero, nil
	}
	return wallet.Balance, nil
}

// BlockedMerchants lists every merchant that has issued points to the customer.
func (s *EligibilityServiceImpl) BlockedMerchants(ctx context.Context, customerID uuid.UUID) ([]domain.BlockedMerchant, error) {
	if _, err := s.customerWallet(ctx, customerID); err != nil {
		return nil, err
	}
	blocked, err := s.entryRepo.IssuingMerchants(ctx, customerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list issuing merchants: %w", err))
	}
	if blocked == nil {
		blocked = []domain.BlockedMerchant{}
	}
	return blocked, nil
}

// AvailableMerchants lists the active merchants where the customer can still
// spend points.
func (s *EligibilityServiceImpl) AvailableMerchants(ctx context.Context, customerID uuid.UUID) ([]domain.AvailableMerchant, error) {
	if _, err := s.customerWallet(ctx, customerID); err != nil {
		return nil, err
	}
	available, err := s.actorRepo.AvailableMerchants(ctx, customerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list available merchants: %w", err))
	}
	if available == nil {
		available = []domain.AvailableMerchant{}
	}
	return available, nil
}

// CheckCustomer is the merchant-side view of a customer before checkout.
func (s *EligibilityServiceImpl) CheckCustomer(ctx context.Context, customerID, merchantID uuid.UUID) (*domain.CustomerCheck, error) {
	wallet, err := s.customerWallet(ctx, customerID)
	if err != nil {
		return nil, err
	}
	eligible, err := s.IsEligible(ctx, customerID, merchantID)
	if err != nil {
		return nil, err
	}

	check := &domain.CustomerCheck{
		CustomerID:    customerID,
		MerchantID:    merchantID,
		TotalBalance:  wallet.Balance,
		SpendableHere: decimal.Zero,
		CanSpend:      eligible && wallet.Balance.IsPositive(),
	}
	if eligible {
		check.SpendableHere = wallet.Balance
	} else {
		check.BlockReason = domain.SameStoreReason
	}
	return check, nil
}

// Invalidate evicts one cached pair.
func (s *EligibilityServiceImpl) Invalidate(ctx context.Context, customerID, merchantID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, customerID, merchantID); err != nil {
		return apperror.InternalError(fmt.Errorf("invalidate eligibility: %w", err))
	}
	return nil
}

// InvalidateCustomer evicts every cached pair of one customer.
func (s *EligibilityServiceImpl) InvalidateCustomer(ctx context.Context, customerID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.InvalidateCustomer(ctx, customerID); err != nil {
		return apperror.InternalError(fmt.Errorf("invalidate customer eligibility: %w", err))
	}
	return nil
}

func (s *EligibilityServiceImpl) customerWallet(ctx context.Context, customerID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByActorID(ctx, customerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	if wallet.Role != domain.RoleCustomer {
		return nil, apperror.ErrInvalidCustomer("actor is not a customer")
	}
	return wallet, nil
}

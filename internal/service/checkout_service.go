package service

import (
	"context"
	"errors"
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

// CheckoutServiceImpl implements ports.CheckoutService: one checkout is a
// redeem of the discount and an issue on the net cash, committed together.
type CheckoutServiceImpl struct {
	actorRepo   ports.ActorRepository
	walletRepo  ports.WalletRepository
	entryRepo   ports.LedgerEntryRepository
	ledger      ports.LedgerStore
	eligibility ports.EligibilityService
	idem        *idempotencyGuard
	transactor  ports.DBTransactor
	policy      domain.PointsPolicy
	metrics     *metrics.LedgerMetrics
	log         zerolog.Logger
}

// NewCheckoutService creates a new CheckoutServiceImpl.
func NewCheckoutService(
	actorRepo ports.ActorRepository,
	walletRepo ports.WalletRepository,
	entryRepo ports.LedgerEntryRepository,
	ledger ports.LedgerStore,
	eligibility ports.EligibilityService,
	idempRepo ports.IdempotencyRepository,
	idempCache ports.IdempotencyCache,
	transactor ports.DBTransactor,
	policy domain.PointsPolicy,
	idempotencyTTL time.Duration,
	m *metrics.LedgerMetrics,
	log zerolog.Logger,
) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		actorRepo:   actorRepo,
		walletRepo:  walletRepo,
		entryRepo:   entryRepo,
		ledger:      ledger,
		eligibility: eligibility,
		idem:        newIdempotencyGuard(idempRepo, idempCache, idempotencyTTL, log),
		transactor:  transactor,
		policy:      policy,
		metrics:     m,
		log:         log,
	}
}

// PreviewCheckout quotes a checkout without writing anything.
func (s *CheckoutServiceImpl) PreviewCheckout(ctx context.Context, req ports.CheckoutRequest) (*domain.CheckoutQuote, error) {
	if err := s.checkPartiesRead(ctx, req.MerchantID, req.CustomerID); err != nil {
		return nil, err
	}

	wallet, err := s.walletRepo.GetByActorID(ctx, req.CustomerID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	eligible, err := s.eligibility.IsEligible(ctx, req.CustomerID, req.MerchantID)
	if err != nil {
		return nil, err
	}

	quote, err := domain.QuoteCheckout(req.Categories, wallet.Balance, eligible, s.policy)
	if err != nil {
		return nil, apperror.ErrInvalidEntry(err.Error())
	}
	return quote, nil
}

// CommitCheckout applies a checkout atomically: either both entries are
// written or neither is.
func (s *CheckoutServiceImpl) CommitCheckout(ctx context.Context, req ports.CheckoutRequest) (result *ports.CheckoutResult, err error) {
	defer func() { s.metrics.ObserveRejection(domain.OpCheckout, err) }()

	idempKey := ""
	if req.IdempotencyKey != "" {
		idempKey = domain.BuildIdempotencyKey(req.CustomerID, domain.OpCheckout, req.IdempotencyKey)
	}
	cached, err := s.idem.lookup(ctx, idempKey)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return replay[ports.CheckoutResult](cached)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := checkParties(ctx, s.actorRepo, dbTx, req.MerchantID, req.CustomerID); err != nil {
		return nil, err
	}

	wallets, err := s.ledger.LockWallets(ctx, dbTx, req.CustomerID, req.MerchantID)
	if err != nil {
		return nil, err
	}

	// Eligibility is decided once, here, under the locks.
	issued, err := s.entryRepo.HasIssuedTx(ctx, dbTx, req.CustomerID, req.MerchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check issue history: %w", err))
	}

	quote, err := domain.QuoteCheckout(req.Categories, wallets[req.CustomerID].Balance, !issued, s.policy)
	if err != nil {
		return nil, apperror.ErrInvalidEntry(err.Error())
	}
	if s.policy.ExceedsCap(quote.NewPoints) {
		return nil, apperror.ErrLimitExceeded(fmt.Sprintf(
			"%s points exceed the per-transaction limit of %s",
			quote.NewPoints.StringFixed(2), s.policy.MaxPointsPerTransaction.StringFixed(2)))
	}
	if quote.Discount.IsZero() && quote.NewPoints.IsZero() {
		return nil, apperror.ErrInvalidEntry("checkout moves no points")
	}

	checkoutID := uuid.New()
	meta := map[string]any{
		"checkout_id":    checkoutID.String(),
		"total_purchase": quote.TotalPurchase.StringFixed(2),
		"discount":       quote.Discount.StringFixed(2),
		"net_payable":    quote.NetPayable.StringFixed(2),
		"categories":     quote.Metadata(),
	}
	result = &ports.CheckoutResult{
		CheckoutID:     checkoutID,
		Quote:          quote,
		CustomerWallet: wallets[req.CustomerID],
		MerchantWallet: wallets[req.MerchantID],
	}

	if quote.Discount.IsPositive() {
		origin, err := s.entryRepo.LatestIssuerExcluding(ctx, dbTx, req.CustomerID, req.MerchantID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("resolve origin merchant: %w", err))
		}
		customerID := req.CustomerID
		committed, err := s.ledger.Commit(ctx, dbTx, &domain.LedgerEntry{
			ID:               uuid.New(),
			SenderID:         &customerID,
			RecipientID:      req.MerchantID,
			Amount:           quote.Discount,
			Kind:             domain.EntryKindRedeem,
			OriginMerchantID: origin,
			CheckoutID:       &checkoutID,
			Description:      "Checkout discount",
			Metadata:         meta,
		})
		if err != nil {
			return nil, err
		}
		result.RedeemEntry = committed.Entry
		result.CustomerWallet = committed.Wallets[req.CustomerID]
		result.MerchantWallet = committed.Wallets[req.MerchantID]
	}

	if quote.NewPoints.IsPositive() {
		merchantID := req.MerchantID
		committed, err := s.ledger.Commit(ctx, dbTx, &domain.LedgerEntry{
			ID:          uuid.New(),
			SenderID:    &merchantID,
			RecipientID: req.CustomerID,
			Amount:      quote.NewPoints,
			CashAmount:  decimal.NewNullDecimal(quote.NetPayable),
			Kind:        domain.EntryKindIssue,
			CheckoutID:  &checkoutID,
			Description: "Checkout points",
			Metadata:    meta,
		})
		if err != nil {
			return nil, err
		}
		result.IssueEntry = committed.Entry
		result.CustomerWallet = committed.Wallets[req.CustomerID]
		result.MerchantWallet = committed.Wallets[req.MerchantID]
	}

	respJSON, err := s.idem.record(ctx, dbTx, idempKey, checkoutID, result)
	if errors.Is(err, ports.ErrDuplicateIdempotencyKey) {
		return replayAfterConflict[ports.CheckoutResult](ctx, s.idem, idempKey)
	}
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save idempotency log: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.idem.remember(ctx, idempKey, respJSON)
	if result.IssueEntry != nil {
		if err := s.eligibility.Invalidate(ctx, req.CustomerID, req.MerchantID); err != nil {
			s.log.Warn().Err(err).Msg("failed to invalidate eligibility cache, entry expires with TTL")
		}
	}
	s.metrics.ObserveEntry(result.RedeemEntry)
	s.metrics.ObserveEntry(result.IssueEntry)

	s.log.Info().
		Str("checkout_id", checkoutID.String()).
		Str("customer_id", req.CustomerID.String()).
		Str("merchant_id", req.MerchantID.String()).
		Str("discount", quote.Discount.StringFixed(2)).
		Str("net_payable", quote.NetPayable.StringFixed(2)).
		Str("new_points", quote.NewPoints.StringFixed(2)).
		Msg("checkout committed")

	return result, nil
}

func (s *CheckoutServiceImpl) checkPartiesRead(ctx context.Context, merchantID, customerID uuid.UUID) error {
	merchant, err := s.actorRepo.GetByID(ctx, merchantID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load merchant: %w", err))
	}
	if merchant == nil || merchant.Role != domain.RoleMerchant || !merchant.IsActive() {
		return apperror.ErrInvalidMerchant("merchant not found or not active")
	}
	customer, err := s.actorRepo.GetByID(ctx, customerID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load customer: %w", err))
	}
	if customer == nil || customer.Role != domain.RoleCustomer || !customer.IsActive() {
		return apperror.ErrInvalidCustomer("customer not found or not active")
	}
	return nil
}

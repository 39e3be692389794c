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
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PointsServiceImpl implements ports.PointsService.
type PointsServiceImpl struct {
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

// NewPointsService creates a new PointsServiceImpl.
func NewPointsService(
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
) *PointsServiceImpl {
	return &PointsServiceImpl{
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

// CreateWallet mirrors the actor, opens its wallet and, for customers,
// credits the welcome bonus, all in one transaction.
func (s *PointsServiceImpl) CreateWallet(ctx context.Context, req ports.CreateWalletRequest) (*ports.CreateWalletResult, error) {
	if req.ActorID == uuid.Nil {
		return nil, apperror.ErrInvalidEntry("actor id is required")
	}
	if !req.Role.Valid() {
		return nil, apperror.ErrInvalidEntry(fmt.Sprintf("unknown role %q", req.Role))
	}
	if !req.Role.OwnsWallet() {
		return nil, apperror.ErrInvalidEntry(fmt.Sprintf("role %s does not hold a wallet", req.Role))
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	actor, err := s.actorRepo.GetByIDTx(ctx, dbTx, req.ActorID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load actor: %w", err))
	}
	if actor == nil {
		actor = &domain.Actor{
			ID:          req.ActorID,
			Role:        req.Role,
			DisplayName: req.DisplayName,
			Status:      domain.ActorStatusActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.actorRepo.Create(ctx, dbTx, actor); err != nil {
			// A concurrent create for the same actor won the insert.
			if errors.Is(err, ports.ErrDuplicateActor) {
				return nil, apperror.ErrWalletExists()
			}
			return nil, apperror.InternalError(fmt.Errorf("create actor: %w", err))
		}
	} else if actor.Role != req.Role {
		return nil, apperror.ErrInvalidEntry("actor role cannot change")
	}

	existing, err := s.walletRepo.GetByActorIDForUpdate(ctx, dbTx, req.ActorID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check wallet: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrWalletExists()
	}

	wallet := &domain.Wallet{
		ID:             uuid.New(),
		ActorID:        req.ActorID,
		Role:           req.Role,
		Balance:        decimal.Zero,
		IssuedTotal:    decimal.Zero,
		CollectedTotal: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.walletRepo.Create(ctx, dbTx, wallet); err != nil {
		if errors.Is(err, ports.ErrDuplicateWallet) {
			return nil, apperror.ErrWalletExists()
		}
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}

	result := &ports.CreateWalletResult{Wallet: wallet}
	if req.Role == domain.RoleCustomer && s.policy.WelcomeBonus.IsPositive() {
		committed, err := s.ledger.Commit(ctx, dbTx, &domain.LedgerEntry{
			RecipientID: req.ActorID,
			Amount:      s.policy.WelcomeBonus,
			Kind:        domain.EntryKindWelcomeBonus,
			Description: "Welcome bonus",
		})
		if err != nil {
			return nil, err
		}
		result.Wallet = committed.Wallets[req.ActorID]
		result.WelcomeBonus = committed.Entry
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.ObserveEntry(result.WelcomeBonus)
	s.log.Info().
		Str("actor_id", req.ActorID.String()).
		Str("role", string(req.Role)).
		Str("balance", result.Wallet.Balance.StringFixed(2)).
		Msg("wallet created")

	return result, nil
}

// SetActorStatus records a soft (de)activation from account management.
func (s *PointsServiceImpl) SetActorStatus(ctx context.Context, actorID uuid.UUID, status domain.ActorStatus) (*domain.Actor, error) {
	if status != domain.ActorStatusActive && status != domain.ActorStatusDeactivated {
		return nil, apperror.ErrInvalidEntry(fmt.Sprintf("unknown actor status %q", status))
	}
	actor, err := s.actorRepo.UpdateStatus(ctx, actorID, status)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update actor status: %w", err))
	}
	if actor == nil {
		return nil, apperror.ErrActorNotFound()
	}

	s.log.Info().
		Str("actor_id", actorID.String()).
		Str("status", string(status)).
		Msg("actor status changed")
	return actor, nil
}

// IssuePoints credits the customer with points for a cash purchase at the merchant.
func (s *PointsServiceImpl) IssuePoints(ctx context.Context, req ports.IssueRequest) (result *ports.MovementResult, err error) {
	defer func() { s.metrics.ObserveRejection(domain.OpIssue, err) }()

	if !req.CashAmount.IsPositive() || !domain.HasTwoDecimals(req.CashAmount) {
		return nil, apperror.ErrInvalidEntry("cash amount must be positive with at most two decimal places")
	}

	idempKey := ""
	if req.IdempotencyKey != "" {
		idempKey = domain.BuildIdempotencyKey(req.MerchantID, domain.OpIssue, req.IdempotencyKey)
	}
	cached, err := s.idem.lookup(ctx, idempKey)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return replay[ports.MovementResult](cached)
	}

	points := s.policy.PointsForCash(req.CashAmount)
	if !points.IsPositive() {
		return nil, apperror.ErrInvalidEntry("cash amount is too small to earn points")
	}
	if s.policy.ExceedsCap(points) {
		return nil, apperror.ErrLimitExceeded(fmt.Sprintf(
			"%s points exceed the per-transaction limit of %s",
			points.StringFixed(2), s.policy.MaxPointsPerTransaction.StringFixed(2)))
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.checkParties(ctx, dbTx, req.MerchantID, req.CustomerID); err != nil {
		return nil, err
	}

	merchantID := req.MerchantID
	committed, err := s.ledger.Commit(ctx, dbTx, &domain.LedgerEntry{
		ID:          uuid.New(),
		SenderID:    &merchantID,
		RecipientID: req.CustomerID,
		Amount:      points,
		CashAmount:  decimal.NewNullDecimal(req.CashAmount),
		Kind:        domain.EntryKindIssue,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, err
	}
	result = &ports.MovementResult{
		Entry:          committed.Entry,
		CustomerWallet: committed.Wallets[req.CustomerID],
		MerchantWallet: committed.Wallets[req.MerchantID],
	}

	respJSON, err := s.idem.record(ctx, dbTx, idempKey, committed.Entry.ID, result)
	if errors.Is(err, ports.ErrDuplicateIdempotencyKey) {
		return replayAfterConflict[ports.MovementResult](ctx, s.idem, idempKey)
	}
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save idempotency log: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.idem.remember(ctx, idempKey, respJSON)
	s.invalidatePair(ctx, req.CustomerID, req.MerchantID)
	s.metrics.ObserveEntry(committed.Entry)

	s.log.Info().
		Str("entry_id", committed.Entry.ID.String()).
		Str("merchant_id", req.MerchantID.String()).
		Str("customer_id", req.CustomerID.String()).
		Str("cash_amount", req.CashAmount.StringFixed(2)).
		Str("points", points.StringFixed(2)).
		Msg("points issued")

	return result, nil
}

// RedeemPoints debits the customer's points as payment at the merchant.
func (s *PointsServiceImpl) RedeemPoints(ctx context.Context, req ports.RedeemRequest) (result *ports.MovementResult, err error) {
	defer func() { s.metrics.ObserveRejection(domain.OpRedeem, err) }()

	if !req.Points.IsPositive() || !domain.HasTwoDecimals(req.Points) {
		return nil, apperror.ErrInvalidEntry("points must be positive with at most two decimal places")
	}

	idempKey := ""
	if req.IdempotencyKey != "" {
		idempKey = domain.BuildIdempotencyKey(req.CustomerID, domain.OpRedeem, req.IdempotencyKey)
	}
	cached, err := s.idem.lookup(ctx, idempKey)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return replay[ports.MovementResult](cached)
	}

	// Cached answer: fast reject only.
	eligible, err := s.eligibility.IsEligible(ctx, req.CustomerID, req.MerchantID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		s.logBlocked(req.CustomerID, req.MerchantID)
		return nil, apperror.ErrSameStoreBlocked(domain.SameStoreReason)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.checkParties(ctx, dbTx, req.MerchantID, req.CustomerID); err != nil {
		return nil, err
	}

	wallets, err := s.ledger.LockWallets(ctx, dbTx, req.CustomerID, req.MerchantID)
	if err != nil {
		return nil, err
	}

	// Authoritative same-store check under the wallet locks.
	issued, err := s.entryRepo.HasIssuedTx(ctx, dbTx, req.CustomerID, req.MerchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check issue history: %w", err))
	}
	if issued {
		s.logBlocked(req.CustomerID, req.MerchantID)
		return nil, apperror.ErrSameStoreBlocked(domain.SameStoreReason)
	}

	if !wallets[req.CustomerID].HasSufficient(req.Points) {
		return nil, apperror.ErrInsufficientBalance()
	}

	origin, err := s.entryRepo.LatestIssuerExcluding(ctx, dbTx, req.CustomerID, req.MerchantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("resolve origin merchant: %w", err))
	}

	customerID := req.CustomerID
	committed, err := s.ledger.Commit(ctx, dbTx, &domain.LedgerEntry{
		ID:               uuid.New(),
		SenderID:         &customerID,
		RecipientID:      req.MerchantID,
		Amount:           req.Points,
		Kind:             domain.EntryKindRedeem,
		OriginMerchantID: origin,
		Description:      req.Description,
		Metadata:         req.Metadata,
	})
	if err != nil {
		return nil, err
	}
	result = &ports.MovementResult{
		Entry:          committed.Entry,
		CustomerWallet: committed.Wallets[req.CustomerID],
		MerchantWallet: committed.Wallets[req.MerchantID],
	}

	respJSON, err := s.idem.record(ctx, dbTx, idempKey, committed.Entry.ID, result)
	if errors.Is(err, ports.ErrDuplicateIdempotencyKey) {
		return replayAfterConflict[ports.MovementResult](ctx, s.idem, idempKey)
	}
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save idempotency log: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.idem.remember(ctx, idempKey, respJSON)
	s.metrics.ObserveEntry(committed.Entry)

	s.log.Info().
		Str("entry_id", committed.Entry.ID.String()).
		Str("customer_id", req.CustomerID.String()).
		Str("merchant_id", req.MerchantID.String()).
		Str("points", req.Points.StringFixed(2)).
		Msg("points redeemed")

	return result, nil
}

func (s *PointsServiceImpl) checkParties(ctx context.Context, tx pgx.Tx, merchantID, customerID uuid.UUID) error {
	return checkParties(ctx, s.actorRepo, tx, merchantID, customerID)
}

func (s *PointsServiceImpl) invalidatePair(ctx context.Context, customerID, merchantID uuid.UUID) {
	if err := s.eligibility.Invalidate(ctx, customerID, merchantID); err != nil {
		s.log.Warn().Err(err).
			Str("customer_id", customerID.String()).
			Str("merchant_id", merchantID.String()).
			Msg("failed to invalidate eligibility cache, entry expires with TTL")
	}
}

func (s *PointsServiceImpl) logBlocked(customerID, merchantID uuid.UUID) {
	s.log.Warn().
		Str("customer_id", customerID.String()).
		Str("merchant_id", merchantID.String()).
		Msg("redemption blocked: points earned at this merchant")
}

// checkParties verifies the merchant and customer exist, are active and
// hold the expected roles.
func checkParties(ctx context.Context, actors ports.ActorRepository, tx pgx.Tx, merchantID, customerID uuid.UUID) error {
	merchant, err := actors.GetByIDTx(ctx, tx, merchantID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load merchant: %w", err))
	}
	switch {
	case merchant == nil:
		return apperror.ErrInvalidMerchant("merchant not found")
	case merchant.Role != domain.RoleMerchant:
		return apperror.ErrInvalidMerchant("actor is not a merchant")
	case !merchant.IsActive():
		return apperror.ErrInvalidMerchant("merchant is deactivated")
	}

	customer, err := actors.GetByIDTx(ctx, tx, customerID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load customer: %w", err))
	}
	switch {
	case customer == nil:
		return apperror.ErrInvalidCustomer("customer not found")
	case customer.Role != domain.RoleCustomer:
		return apperror.ErrInvalidCustomer("actor is not a customer")
	case !customer.IsActive():
		return apperror.ErrInvalidCustomer("customer is deactivated")
	}
	return nil
}

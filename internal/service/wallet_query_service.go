package service

import (
	"context"
	"fmt"
	"time"

	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"
	"points-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPageSize  = 20
	maxPageSize      = 100
	defaultStatsDays = 30
	maxStatsDays     = 365
)

// WalletQueryServiceImpl implements ports.WalletQueryService.
type WalletQueryServiceImpl struct {
	actorRepo  ports.ActorRepository
	walletRepo ports.WalletRepository
	entryRepo  ports.LedgerEntryRepository
	log        zerolog.Logger
}

// NewWalletQueryService creates a new WalletQueryServiceImpl.
func NewWalletQueryService(
	actorRepo ports.ActorRepository,
	walletRepo ports.WalletRepository,
	entryRepo ports.LedgerEntryRepository,
	log zerolog.Logger,
) *WalletQueryServiceImpl {
	return &WalletQueryServiceImpl{
		actorRepo:  actorRepo,
		walletRepo: walletRepo,
		entryRepo:  entryRepo,
		log:        log,
	}
}

// GetWallet returns the actor's current wallet snapshot.
func (s *WalletQueryServiceImpl) GetWallet(ctx context.Context, actorID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByActorID(ctx, actorID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

// GetLedgerHistory returns one page of entries touching the actor, newest first.
func (s *WalletQueryServiceImpl) GetLedgerHistory(ctx context.Context, params ports.LedgerListParams) (*ports.LedgerPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = defaultPageSize
	}
	if params.PageSize > maxPageSize {
		params.PageSize = maxPageSize
	}
	if params.Kind != nil && !params.Kind.Valid() {
		return nil, apperror.ErrInvalidEntry(fmt.Sprintf("unknown entry kind %q", *params.Kind))
	}

	actor, err := s.actorRepo.GetByID(ctx, params.ActorID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get actor: %w", err))
	}
	if actor == nil {
		return nil, apperror.ErrActorNotFound()
	}

	entries, total, err := s.entryRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list entries: %w", err))
	}
	if entries == nil {
		entries = []*domain.LedgerEntry{}
	}

	return &ports.LedgerPage{
		Entries:  entries,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

// ReconcileWallet replays the actor's full history and compares it to the
// stored aggregates.
func (s *WalletQueryServiceImpl) ReconcileWallet(ctx context.Context, actorID uuid.UUID) (*ports.ReconcileResult, error) {
	wallet, err := s.GetWallet(ctx, actorID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListByActor(ctx, actorID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list history: %w", err))
	}

	replayed := domain.ReplayWallet(actorID, entries)
	result := &ports.ReconcileResult{
		Wallet:     wallet,
		Replayed:   replayed,
		EntryCount: len(entries),
		Consistent: replayed.Matches(wallet),
	}

	if !result.Consistent {
		s.log.Error().
			Str("actor_id", actorID.String()).
			Str("stored_balance", wallet.Balance.StringFixed(2)).
			Str("replayed_balance", replayed.Balance.StringFixed(2)).
			Msg("wallet diverged from ledger history")
	}
	return result, nil
}

// MerchantStats reports a merchant's lifetime totals next to its activity over
// the trailing days. days of zero means the default window.
func (s *WalletQueryServiceImpl) MerchantStats(ctx context.Context, merchantID uuid.UUID, days int) (*domain.MerchantStats, error) {
	if days == 0 {
		days = defaultStatsDays
	}
	if days < 1 || days > maxStatsDays {
		return nil, apperror.ErrInvalidEntry(fmt.Sprintf("days must be between 1 and %d", maxStatsDays))
	}

	wallet, err := s.GetWallet(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if wallet.Role != domain.RoleMerchant {
		return nil, apperror.ErrInvalidMerchant("actor is not a merchant")
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	activity, err := s.entryRepo.MerchantActivity(ctx, merchantID, since)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("merchant activity: %w", err))
	}

	return &domain.MerchantStats{
		MerchantID:     merchantID,
		Days:           days,
		Since:          since,
		IssuedTotal:    wallet.IssuedTotal,
		CollectedTotal: wallet.CollectedTotal,
		Net:            wallet.MerchantNet(),
		Period:         *activity,
	}, nil
}

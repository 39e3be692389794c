package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"
	"points-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// LedgerStoreImpl implements ports.LedgerStore. Every wallet change in the
// system goes through Commit.
type LedgerStoreImpl struct {
	actorRepo  ports.ActorRepository
	walletRepo ports.WalletRepository
	entryRepo  ports.LedgerEntryRepository
	now        func() time.Time
	log        zerolog.Logger
}

// NewLedgerStore creates a new LedgerStoreImpl.
func NewLedgerStore(
	actorRepo ports.ActorRepository,
	walletRepo ports.WalletRepository,
	entryRepo ports.LedgerEntryRepository,
	log zerolog.Logger,
) *LedgerStoreImpl {
	return &LedgerStoreImpl{
		actorRepo:  actorRepo,
		walletRepo: walletRepo,
		entryRepo:  entryRepo,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
}

// LockWallets takes row locks on the actors' wallets in ascending id order,
// so two units locking the same pair can never deadlock.
func (s *LedgerStoreImpl) LockWallets(ctx context.Context, tx pgx.Tx, actorIDs ...uuid.UUID) (map[uuid.UUID]*domain.Wallet, error) {
	ids := sortedUnique(actorIDs)
	wallets := make(map[uuid.UUID]*domain.Wallet, len(ids))
	for _, id := range ids {
		w, err := s.walletRepo.GetByActorIDForUpdate(ctx, tx, id)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("lock wallet %s: %w", id, err))
		}
		if w == nil {
			return nil, apperror.ErrWalletNotFound()
		}
		wallets[id] = w
	}
	return wallets, nil
}

// Commit validates the entry, applies its effects and appends it, all inside
// the caller's transaction. Nothing is written when an error is returned.
func (s *LedgerStoreImpl) Commit(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) (*ports.CommitResult, error) {
	if err := entry.Validate(); err != nil {
		return nil, apperror.ErrInvalidEntry(err.Error())
	}
	if err := s.resolveActors(ctx, tx, entry); err != nil {
		return nil, err
	}

	effects := entry.Effects()
	touched := make([]uuid.UUID, 0, len(effects))
	for _, d := range effects {
		touched = append(touched, d.ActorID)
	}
	wallets, err := s.LockWallets(ctx, tx, touched...)
	if err != nil {
		return nil, err
	}

	// Customer balances never go below zero.
	for _, d := range effects {
		w := wallets[d.ActorID]
		if w.Role == domain.RoleCustomer && w.Balance.Add(d.Balance).IsNegative() {
			return nil, apperror.ErrInsufficientBalance()
		}
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}

	snapshots := make(map[uuid.UUID]*domain.Wallet, len(effects))
	for _, d := range effects {
		updated, err := s.walletRepo.ApplyDelta(ctx, tx, d)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("apply delta to %s: %w", d.ActorID, err))
		}
		snapshots[d.ActorID] = updated
	}

	if err := s.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append entry: %w", err))
	}

	s.log.Debug().
		Str("entry_id", entry.ID.String()).
		Int64("seq", entry.Seq).
		Str("kind", string(entry.Kind)).
		Str("amount", entry.Amount.StringFixed(2)).
		Msg("ledger entry appended")

	return &ports.CommitResult{Entry: entry, Wallets: snapshots}, nil
}

func (s *LedgerStoreImpl) resolveActors(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error {
	senderRole, recipientRole := entry.Kind.ExpectedRoles()

	if err := s.requireActor(ctx, tx, entry.RecipientID, recipientRole, "recipient"); err != nil {
		return err
	}
	if entry.SenderID != nil {
		if err := s.requireActor(ctx, tx, *entry.SenderID, senderRole, "sender"); err != nil {
			return err
		}
	}
	return nil
}

func (s *LedgerStoreImpl) requireActor(ctx context.Context, tx pgx.Tx, id uuid.UUID, role domain.Role, side string) error {
	actor, err := s.actorRepo.GetByIDTx(ctx, tx, id)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load %s: %w", side, err))
	}
	if actor == nil {
		return apperror.ErrInvalidEntry(side + " does not exist")
	}
	if !actor.IsActive() {
		return apperror.ErrInvalidEntry(side + " is deactivated")
	}
	if role != "" && actor.Role != role {
		return apperror.ErrInvalidEntry(fmt.Sprintf("%s must be a %s", side, role))
	}
	return nil
}

func sortedUnique(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}

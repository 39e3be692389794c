package service

import (
	"context"
	"testing"

	"points-ledger/internal/adapter/storage/memory"
	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"
	"points-ledger/internal/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

// ledgerHarness wires every service over one in-memory store.
type ledgerHarness struct {
	store       *memory.Store
	actors      *memory.ActorRepo
	wallets     *memory.WalletRepo
	entries     ports.LedgerEntryRepository
	idemp       *memory.IdempotencyRepo
	cache       *memory.EligibilityCache
	ledger      *LedgerStoreImpl
	eligibility *EligibilityServiceImpl
	points      *PointsServiceImpl
	checkout    *CheckoutServiceImpl
	queries     *WalletQueryServiceImpl
	metrics     *metrics.LedgerMetrics
}

func newHarness(t *testing.T, policy domain.PointsPolicy) *ledgerHarness {
	t.Helper()
	store := memory.NewStore()
	return buildHarness(t, store, memory.NewLedgerEntryRepo(store), policy)
}

func buildHarness(t *testing.T, store *memory.Store, entries ports.LedgerEntryRepository, policy domain.PointsPolicy) *ledgerHarness {
	t.Helper()
	require.NoError(t, policy.Validate())

	h := &ledgerHarness{
		store:   store,
		actors:  memory.NewActorRepo(store),
		wallets: memory.NewWalletRepo(store),
		entries: entries,
		idemp:   memory.NewIdempotencyRepo(store),
		cache:   memory.NewEligibilityCache(),
		metrics: metrics.New(),
	}
	log := zerolog.Nop()
	h.ledger = NewLedgerStore(h.actors, h.wallets, h.entries, log)
	h.eligibility = NewEligibilityService(h.actors, h.entries, h.wallets, h.cache, 0, h.metrics, log)
	h.points = NewPointsService(h.actors, h.wallets, h.entries, h.ledger, h.eligibility,
		h.idemp, nil, store, policy, 0, h.metrics, log)
	h.checkout = NewCheckoutService(h.actors, h.wallets, h.entries, h.ledger, h.eligibility,
		h.idemp, nil, store, policy, 0, h.metrics, log)
	h.queries = NewWalletQueryService(h.actors, h.wallets, h.entries, log)
	return h
}

// oneToOnePolicy earns one point per euro.
func oneToOnePolicy() domain.PointsPolicy {
	p := domain.DefaultPointsPolicy()
	p.EuroPerPoint = decimal.NewFromInt(1)
	return p
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (h *ledgerHarness) newActor(t *testing.T, role domain.Role) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := h.points.CreateWallet(context.Background(), ports.CreateWalletRequest{
		ActorID:     id,
		Role:        role,
		DisplayName: string(role) + "-" + id.String()[:8],
	})
	require.NoError(t, err)
	return id
}

// credit tops up a customer with an event bonus.
func (h *ledgerHarness) credit(t *testing.T, customerID uuid.UUID, amount string) {
	t.Helper()
	ctx := context.Background()
	tx, err := h.store.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = h.ledger.Commit(ctx, tx, &domain.LedgerEntry{
		RecipientID: customerID,
		Amount:      dec(amount),
		Kind:        domain.EntryKindEventBonus,
		Description: "test top-up",
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
}

func (h *ledgerHarness) wallet(t *testing.T, actorID uuid.UUID) *domain.Wallet {
	t.Helper()
	w, err := h.queries.GetWallet(context.Background(), actorID)
	require.NoError(t, err)
	return w
}

func (h *ledgerHarness) history(t *testing.T, actorID uuid.UUID) []*domain.LedgerEntry {
	t.Helper()
	entries, err := h.entries.ListByActor(context.Background(), actorID)
	require.NoError(t, err)
	return entries
}

func (h *ledgerHarness) requireConsistent(t *testing.T, actorIDs ...uuid.UUID) {
	t.Helper()
	for _, id := range actorIDs {
		res, err := h.queries.ReconcileWallet(context.Background(), id)
		require.NoError(t, err)
		require.True(t, res.Consistent, "wallet %s diverged from its history", id)
	}
}

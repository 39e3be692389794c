package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerEntryRepo implements ports.LedgerEntryRepository.
type LedgerEntryRepo struct {
	store *Store
}

func NewLedgerEntryRepo(store *Store) *LedgerEntryRepo {
	return &LedgerEntryRepo{store: store}
}

func (r *LedgerEntryRepo) Create(_ context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error {
	st, err := working(tx)
	if err != nil {
		return err
	}
	for i := range st.entries {
		if st.entries[i].ID == entry.ID {
			return fmt.Errorf("entry %s already exists", entry.ID)
		}
	}
	st.seq++
	entry.Seq = st.seq
	st.entries = append(st.entries, *entry)
	return nil
}

func (r *LedgerEntryRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.LedgerEntry, error) {
	var out *domain.LedgerEntry
	r.store.view(func(st *state) {
		for i := range st.entries {
			if st.entries[i].ID == id {
				e := st.entries[i]
				out = &e
				return
			}
		}
	})
	return out, nil
}

func (r *LedgerEntryRepo) List(_ context.Context, params ports.LedgerListParams) ([]*domain.LedgerEntry, int64, error) {
	var matched []*domain.LedgerEntry
	r.store.view(func(st *state) {
		for i := len(st.entries) - 1; i >= 0; i-- {
			e := st.entries[i]
			if !touches(&e, params.ActorID) {
				continue
			}
			if params.Kind != nil && e.Kind != *params.Kind {
				continue
			}
			matched = append(matched, &e)
		}
	})

	total := int64(len(matched))
	offset, ok := params.Offset()
	if !ok || offset >= len(matched) {
		return []*domain.LedgerEntry{}, total, nil
	}
	end := min(offset+max(params.PageSize, 1), len(matched))
	return matched[offset:end], total, nil
}

func (r *LedgerEntryRepo) ListByActor(_ context.Context, actorID uuid.UUID) ([]*domain.LedgerEntry, error) {
	var out []*domain.LedgerEntry
	r.store.view(func(st *state) {
		for i := range st.entries {
			e := st.entries[i]
			if touches(&e, actorID) {
				out = append(out, &e)
			}
		}
	})
	return out, nil
}

func (r *LedgerEntryRepo) HasIssued(_ context.Context, customerID, merchantID uuid.UUID) (bool, error) {
	var found bool
	r.store.view(func(st *state) {
		found = hasIssued(st, customerID, merchantID)
	})
	return found, nil
}

func (r *LedgerEntryRepo) HasIssuedTx(_ context.Context, tx pgx.Tx, customerID, merchantID uuid.UUID) (bool, error) {
	st, err := working(tx)
	if err != nil {
		return false, err
	}
	return hasIssued(st, customerID, merchantID), nil
}

func (r *LedgerEntryRepo) IssuingMerchants(_ context.Context, customerID uuid.UUID) ([]domain.BlockedMerchant, error) {
	byMerchant := make(map[uuid.UUID]*domain.BlockedMerchant)
	r.store.view(func(st *state) {
		for i := range st.entries {
			e := &st.entries[i]
			if !isIssueTo(e, customerID) {
				continue
			}
			bm, ok := byMerchant[*e.SenderID]
			if !ok {
				bm = &domain.BlockedMerchant{MerchantID: *e.SenderID, PointsReceived: decimal.Zero}
				byMerchant[*e.SenderID] = bm
			}
			bm.PointsReceived = bm.PointsReceived.Add(e.Amount)
			bm.IssueCount++
			if e.CreatedAt.After(bm.LastIssuedAt) {
				bm.LastIssuedAt = e.CreatedAt
			}
		}
	})

	out := make([]domain.BlockedMerchant, 0, len(byMerchant))
	for _, bm := range byMerchant {
		out = append(out, *bm)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastIssuedAt.After(out[j].LastIssuedAt)
	})
	return out, nil
}

func (r *LedgerEntryRepo) LatestIssuerExcluding(_ context.Context, tx pgx.Tx, customerID, excluded uuid.UUID) (*uuid.UUID, error) {
	st, err := working(tx)
	if err != nil {
		return nil, err
	}
	for i := len(st.entries) - 1; i >= 0; i-- {
		e := &st.entries[i]
		if isIssueTo(e, customerID) && *e.SenderID != excluded {
			id := *e.SenderID
			return &id, nil
		}
	}
	return nil, nil
}

func (r *LedgerEntryRepo) MerchantActivity(_ context.Context, merchantID uuid.UUID, since time.Time) (*domain.MerchantActivity, error) {
	out := &domain.MerchantActivity{Issued: decimal.Zero, Collected: decimal.Zero}
	customers := make(map[uuid.UUID]struct{})
	r.store.view(func(st *state) {
		for i := range st.entries {
			e := &st.entries[i]
			if !touches(e, merchantID) || e.CreatedAt.Before(since) {
				continue
			}
			out.EntryCount++
			switch {
			case e.Kind == domain.EntryKindIssue && *e.SenderID == merchantID:
				out.Issued = out.Issued.Add(e.Amount)
				customers[e.RecipientID] = struct{}{}
			case e.Kind == domain.EntryKindRedeem && e.RecipientID == merchantID:
				out.Collected = out.Collected.Add(e.Amount)
			}
		}
	})
	out.UniqueCustomers = int64(len(customers))
	return out, nil
}

func touches(e *domain.LedgerEntry, actorID uuid.UUID) bool {
	return e.RecipientID == actorID || (e.SenderID != nil && *e.SenderID == actorID)
}

func isIssueTo(e *domain.LedgerEntry, customerID uuid.UUID) bool {
	return e.Kind == domain.EntryKindIssue && e.RecipientID == customerID && e.SenderID != nil
}

func hasIssued(st *state, customerID, merchantID uuid.UUID) bool {
	for i := range st.entries {
		e := &st.entries[i]
		if isIssueTo(e, customerID) && *e.SenderID == merchantID {
			return true
		}
	}
	return false
}

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
)

// ActorRepo implements ports.ActorRepository.
type ActorRepo struct {
	store *Store
}

func NewActorRepo(store *Store) *ActorRepo {
	return &ActorRepo{store: store}
}

func (r *ActorRepo) Create(_ context.Context, tx pgx.Tx, actor *domain.Actor) error {
	st, err := working(tx)
	if err != nil {
		return err
	}
	if _, ok := st.actors[actor.ID]; ok {
		return ports.ErrDuplicateActor
	}
	st.actors[actor.ID] = *actor
	return nil
}

func (r *ActorRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Actor, error) {
	var out *domain.Actor
	r.store.view(func(st *state) {
		if a, ok := st.actors[id]; ok {
			out = &a
		}
	})
	return out, nil
}

func (r *ActorRepo) GetByIDTx(_ context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Actor, error) {
	st, err := working(tx)
	if err != nil {
		return nil, err
	}
	a, ok := st.actors[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *ActorRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ActorStatus) (*domain.Actor, error) {
	var out *domain.Actor
	err := r.store.update(ctx, func(st *state) error {
		a, ok := st.actors[id]
		if !ok {
			return nil
		}
		a.Status = status
		a.UpdatedAt = time.Now().UTC()
		st.actors[id] = a
		out = &a
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update actor status: %w", err)
	}
	return out, nil
}

func (r *ActorRepo) AvailableMerchants(_ context.Context, customerID uuid.UUID) ([]domain.AvailableMerchant, error) {
	out := []domain.AvailableMerchant{}
	r.store.view(func(st *state) {
		blocked := make(map[uuid.UUID]bool)
		for i := range st.entries {
			if e := &st.entries[i]; isIssueTo(e, customerID) {
				blocked[*e.SenderID] = true
			}
		}
		for _, a := range st.actors {
			if a.Role != domain.RoleMerchant || !a.IsActive() || blocked[a.ID] {
				continue
			}
			out = append(out, domain.AvailableMerchant{MerchantID: a.ID, DisplayName: a.DisplayName})
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayName != out[j].DisplayName {
			return out[i].DisplayName < out[j].DisplayName
		}
		return out[i].MerchantID.String() < out[j].MerchantID.String()
	})
	return out, nil
}

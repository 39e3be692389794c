package postgres

import (
	"context"
	"errors"
	"fmt"

	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const actorColumns = `id, role, display_name, status, created_at, updated_at`

// ActorRepo implements ports.ActorRepository.
type ActorRepo struct {
	pool Pool
}

// NewActorRepo creates a new ActorRepo.
func NewActorRepo(pool Pool) *ActorRepo {
	return &ActorRepo{pool: pool}
}

// Create inserts a mirrored actor within a database transaction.
func (r *ActorRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Actor) error {
	query := `INSERT INTO actors (id, role, display_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query, a.ID, a.Role, a.DisplayName, a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if hasPgCode(err, pgUniqueViolation) {
			return ports.ErrDuplicateActor
		}
		return fmt.Errorf("insert actor: %w", err)
	}
	return nil
}

// GetByID fetches an actor by UUID.
func (r *ActorRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors WHERE id = $1`
	return scanActor(r.pool.QueryRow(ctx, query, id))
}

// GetByIDTx fetches an actor inside tx, seeing rows the tx has written.
func (r *ActorRepo) GetByIDTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Actor, error) {
	query := `SELECT ` + actorColumns + ` FROM actors WHERE id = $1`
	return scanActor(tx.QueryRow(ctx, query, id))
}

// UpdateStatus sets the actor's status. It returns nil when no actor matches.
func (r *ActorRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ActorStatus) (*domain.Actor, error) {
	query := `UPDATE actors SET status = $1, updated_at = NOW() WHERE id = $2
		RETURNING ` + actorColumns
	return scanActor(r.pool.QueryRow(ctx, query, status, id))
}

// AvailableMerchants lists active merchants that never issued points to the
// customer, ordered by display name.
func (r *ActorRepo) AvailableMerchants(ctx context.Context, customerID uuid.UUID) ([]domain.AvailableMerchant, error) {
	query := `SELECT a.id, a.display_name FROM actors a
		WHERE a.role = 'merchant' AND a.status = 'ACTIVE'
		AND NOT EXISTS (
			SELECT 1 FROM ledger_entries e
			WHERE e.kind = 'issue' AND e.recipient_id = $1 AND e.sender_id = a.id
		)
		ORDER BY a.display_name, a.id`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list available merchants: %w", err)
	}
	defer rows.Close()

	out := []domain.AvailableMerchant{}
	for rows.Next() {
		var m domain.AvailableMerchant
		if err := rows.Scan(&m.MerchantID, &m.DisplayName); err != nil {
			return nil, fmt.Errorf("scan available merchant row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate available merchant rows: %w", err)
	}
	return out, nil
}

func scanActor(row pgx.Row) (*domain.Actor, error) {
	a := &domain.Actor{}
	err := row.Scan(&a.ID, &a.Role, &a.DisplayName, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan actor: %w", err)
	}
	return a, nil
}

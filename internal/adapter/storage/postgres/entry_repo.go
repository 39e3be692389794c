package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const entryColumns = `id, seq, sender_id, recipient_id, amount, cash_amount, kind,
	origin_merchant_id, checkout_id, description, metadata, created_at`

// LedgerEntryRepo implements ports.LedgerEntryRepository. The table is
// append-only; a trigger rejects UPDATE and DELETE.
type LedgerEntryRepo struct {
	pool Pool
}

// NewLedgerEntryRepo creates a new LedgerEntryRepo.
func NewLedgerEntryRepo(pool Pool) *LedgerEntryRepo {
	return &LedgerEntryRepo{pool: pool}
}

// Create appends an entry within a database transaction and fills in its Seq.
func (r *LedgerEntryRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	metadata := []byte(`{}`)
	if len(e.Metadata) > 0 {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal entry metadata: %w", err)
		}
		metadata = raw
	}

	query := `INSERT INTO ledger_entries (id, sender_id, recipient_id, amount, cash_amount, kind,
		origin_merchant_id, checkout_id, description, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING seq`

	err := tx.QueryRow(ctx, query,
		e.ID, e.SenderID, e.RecipientID, e.Amount, e.CashAmount, e.Kind,
		e.OriginMerchantID, e.CheckoutID, e.Description, metadata, e.CreatedAt,
	).Scan(&e.Seq)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// GetByID fetches an entry by UUID.
func (r *LedgerEntryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE id = $1`

	e, err := scanEntry(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return e, err
}

// List fetches one page of the entries touching an actor, newest first.
func (r *LedgerEntryRepo) List(ctx context.Context, params ports.LedgerListParams) ([]*domain.LedgerEntry, int64, error) {
	conditions := []string{"(sender_id = $1 OR recipient_id = $1)"}
	args := []any{params.ActorID}
	argIdx := 2

	if params.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, *params.Kind)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM ledger_entries %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ledger entries: %w", err)
	}

	// Fetch page
	offset, ok := params.Offset()
	if !ok {
		return []*domain.LedgerEntry{}, total, nil
	}
	dataQuery := fmt.Sprintf(`SELECT %s FROM ledger_entries %s ORDER BY seq DESC LIMIT $%d OFFSET $%d`,
		entryColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	entries, err := r.query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListByActor returns every entry touching the actor, oldest first.
func (r *LedgerEntryRepo) ListByActor(ctx context.Context, actorID uuid.UUID) ([]*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries
		WHERE sender_id = $1 OR recipient_id = $1 ORDER BY seq ASC`
	return r.query(ctx, query, actorID)
}

const hasIssuedQuery = `SELECT EXISTS(SELECT 1 FROM ledger_entries
	WHERE kind = 'issue' AND recipient_id = $1 AND sender_id = $2)`

// HasIssued reports whether the merchant has ever issued points to the customer.
func (r *LedgerEntryRepo) HasIssued(ctx context.Context, customerID, merchantID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, hasIssuedQuery, customerID, merchantID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check issue history: %w", err)
	}
	return exists, nil
}

// HasIssuedTx is HasIssued inside tx.
func (r *LedgerEntryRepo) HasIssuedTx(ctx context.Context, tx pgx.Tx, customerID, merchantID uuid.UUID) (bool, error) {
	var exists bool
	if err := tx.QueryRow(ctx, hasIssuedQuery, customerID, merchantID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check issue history: %w", err)
	}
	return exists, nil
}

// IssuingMerchants aggregates the customer's issue entries per merchant,
// most recent issuer first.
func (r *LedgerEntryRepo) IssuingMerchants(ctx context.Context, customerID uuid.UUID) ([]domain.BlockedMerchant, error) {
	query := `SELECT sender_id, SUM(amount), COUNT(*), MAX(created_at)
		FROM ledger_entries
		WHERE kind = 'issue' AND recipient_id = $1
		GROUP BY sender_id
		ORDER BY MAX(created_at) DESC, sender_id`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list issuing merchants: %w", err)
	}
	defer rows.Close()

	var out []domain.BlockedMerchant
	for rows.Next() {
		var b domain.BlockedMerchant
		if err := rows.Scan(&b.MerchantID, &b.PointsReceived, &b.IssueCount, &b.LastIssuedAt); err != nil {
			return nil, fmt.Errorf("scan issuing merchant row: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate issuing merchant rows: %w", err)
	}
	return out, nil
}

// MerchantActivity sums the merchant's issue and redeem entries created at or
// after since.
func (r *LedgerEntryRepo) MerchantActivity(ctx context.Context, merchantID uuid.UUID, since time.Time) (*domain.MerchantActivity, error) {
	query := `SELECT
			COALESCE(SUM(amount) FILTER (WHERE kind = 'issue' AND sender_id = $1), 0),
			COALESCE(SUM(amount) FILTER (WHERE kind = 'redeem' AND recipient_id = $1), 0),
			COUNT(DISTINCT recipient_id) FILTER (WHERE kind = 'issue' AND sender_id = $1),
			COUNT(*)
		FROM ledger_entries
		WHERE (sender_id = $1 OR recipient_id = $1) AND created_at >= $2`

	a := &domain.MerchantActivity{}
	err := r.pool.QueryRow(ctx, query, merchantID, since).
		Scan(&a.Issued, &a.Collected, &a.UniqueCustomers, &a.EntryCount)
	if err != nil {
		return nil, fmt.Errorf("merchant activity: %w", err)
	}
	return a, nil
}

// LatestIssuerExcluding returns the sender of the customer's most recent
// issue entry not sent by excluded, or nil.
func (r *LedgerEntryRepo) LatestIssuerExcluding(ctx context.Context, tx pgx.Tx, customerID, excluded uuid.UUID) (*uuid.UUID, error) {
	query := `SELECT sender_id FROM ledger_entries
		WHERE kind = 'issue' AND recipient_id = $1 AND sender_id <> $2
		ORDER BY seq DESC LIMIT 1`

	var merchantID uuid.UUID
	err := tx.QueryRow(ctx, query, customerID, excluded).Scan(&merchantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest issuer: %w", err)
	}
	return &merchantID, nil
}

func (r *LedgerEntryRepo) query(ctx context.Context, query string, args ...any) ([]*domain.LedgerEntry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entry rows: %w", err)
	}
	return entries, nil
}

// scanEntry returns pgx.ErrNoRows unwrapped so single-row callers can map it.
func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	e := &domain.LedgerEntry{}
	var metadata []byte
	err := row.Scan(
		&e.ID, &e.Seq, &e.SenderID, &e.RecipientID, &e.Amount, &e.CashAmount, &e.Kind,
		&e.OriginMerchantID, &e.CheckoutID, &e.Description, &metadata, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan ledger entry: %w", err)
	}
	if len(metadata) > 0 && string(metadata) != "{}" {
		if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
			return nil, fmt.Errorf("decode entry metadata: %w", err)
		}
	}
	return e, nil
}

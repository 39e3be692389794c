package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryColumnNames() []string {
	return []string{"id", "seq", "sender_id", "recipient_id", "amount", "cash_amount", "kind",
		"origin_merchant_id", "checkout_id", "description", "metadata", "created_at"}
}

func newTestIssueEntry() *domain.LedgerEntry {
	merchantID := uuid.New()
	return &domain.LedgerEntry{
		ID:          uuid.New(),
		SenderID:    &merchantID,
		RecipientID: uuid.New(),
		Amount:      decimal.RequireFromString("2.51"),
		CashAmount:  decimal.NewNullDecimal(decimal.RequireFromString("25.05")),
		Kind:        domain.EntryKindIssue,
		Description: "Receipt 0042",
		Metadata:    map[string]any{"till": "2"},
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func addEntryRow(rows *pgxmock.Rows, e *domain.LedgerEntry, metadata []byte) *pgxmock.Rows {
	return rows.AddRow(e.ID, e.Seq, e.SenderID, e.RecipientID, e.Amount, e.CashAmount, e.Kind,
		e.OriginMerchantID, e.CheckoutID, e.Description, metadata, e.CreatedAt)
}

func TestLedgerEntryRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerEntryRepo(mock)
	e := newTestIssueEntry()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO ledger_entries .+ RETURNING seq").
		WithArgs(e.ID, e.SenderID, e.RecipientID, pgxmock.AnyArg(), pgxmock.AnyArg(), e.Kind,
			e.OriginMerchantID, e.CheckoutID, e.Description, []byte(`{"till":"2"}`), e.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"seq"}).AddRow(int64(42)))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.Create(context.Background(), tx, e))
	assert.Equal(t, int64(42), e.Seq)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerEntryRepo_Create_EmptyMetadata(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerEntryRepo(mock)
	e := &domain.LedgerEntry{ID: uuid.New(), RecipientID: uuid.New(), Amount: decimal.NewFromInt(10), Kind: domain.EntryKindWelcomeBonus}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO ledger_entries").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), []byte(`{}`), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"seq"}).AddRow(int64(1)))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.Create(context.Background(), tx, e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerEntryRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerEntryRepo(mock)
	e := newTestIssueEntry()
	e.Seq = 7

	mock.ExpectQuery("SELECT .+ FROM ledger_entries WHERE id").
		WithArgs(e.ID).
		WillReturnRows(addEntryRow(pgxmock.NewRows(entryColumnNames()), e, []byte(`{"till":"2"}`)))
	mock.ExpectQuery("SELECT .+ FROM ledger_entries WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(entryColumnNames()))

	result, err := repo.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(7), result.Seq)
	assert.Equal(t, *e.SenderID, *result.SenderID)
	assert.Equal(t, "25.05", result.CashAmount.Decimal.StringFixed(2))
	assert.Equal(t, "2", result.Metadata["till"])

	missing, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerEntryRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerEntryRepo(mock)
	e := newTestIssueEntry()
	kind := domain.EntryKindIssue

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(e.RecipientID, kind).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(21)))
	mock.ExpectQuery("SELECT .+ FROM ledger_entries WHERE .+ ORDER BY seq DESC LIMIT").
		WithArgs(e.RecipientID, kind, 10, 20).
		WillReturnRows(addEntryRow(pgxmock.NewRows(entryColumnNames()), e, []byte(`{}`)))

	entries, total, err := repo.List(context.Background(), ports.LedgerListParams{
		ActorID: e.RecipientID, Kind: &kind, Page: 3, PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(21), total)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Metadata)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerEntryRepo_List_PageBeyondRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerEntryRepo(mock)
	actorID := uuid.New()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(actorID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	entries, total, err := repo.List(context.Background(), ports.LedgerListParams{
		ActorID: actorID, Page: 1e17, PageSize: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerEntryRepo_ListByActor(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerEntryRepo(mock)
	first := newTestIssueEntry()
	first.Seq = 1
	second := &domain.LedgerEntry{ID: uuid.New(), Seq: 2, RecipientID: first.RecipientID, Amount: decimal.NewFromInt(10), Kind: domain.EntryKindEventBonus}

	rows := pgxmock.NewRows(entryColumnNames())
	addEntryRow(rows, first, []byte(`{}`))
	addEntryRow(rows, second, []byte(`{}`))
	mock.ExpectQuery("SELECT .+ FROM ledger_entries WHERE sender_id = .+ ORDER BY seq ASC").
		WithArgs(first.RecipientID).
		WillReturnRows(rows)

	entries, err := repo.ListByActor(context.Background(), first.RecipientID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].Seq)
	assert.Nil(t, entries[1].SenderID)
	assert.False(t, entries[1].CashAmount.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerEntryRepo_HasIssued(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerEntryRepo(mock)
	customerID, merchantID := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(customerID, merchantID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(customerID, merchantID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	issued, err := repo.HasIssued(context.Background(), customerID, merchantID)
	require.NoError(t, err)
	assert.True(t, issued)

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	issued, err = repo.HasIssuedTx(context.Background(), tx, customerID, merchantID)
	require.NoError(t, err)
	assert.False(t, issued)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerEntryRepo_IssuingMerchants(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerEntryRepo(mock)
	customerID, x, y := uuid.New(), uuid.New(), uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT sender_id, SUM.+ GROUP BY sender_id").
		WithArgs(customerID).
		WillReturnRows(pgxmock.NewRows([]string{"sender_id", "sum", "count", "max"}).
			AddRow(x, decimal.RequireFromString("20.00"), int64(2), now).
			AddRow(y, decimal.RequireFromString("1.50"), int64(1), now.Add(-time.Hour)))

	blocked, err := repo.IssuingMerchants(context.Background(), customerID)
	require.NoError(t, err)
	require.Len(t, blocked, 2)
	assert.Equal(t, x, blocked[0].MerchantID)
	assert.Equal(t, "20.00", blocked[0].PointsReceived.StringFixed(2))
	assert.Equal(t, int64(2), blocked[0].IssueCount)
	assert.Equal(t, now, blocked[0].LastIssuedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerEntryRepo_MerchantActivity(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerEntryRepo(mock)
	merchantID := uuid.New()
	since := time.Now().UTC().AddDate(0, 0, -30)

	mock.ExpectQuery("SELECT .+ FILTER .+ FROM ledger_entries WHERE .+ created_at >=").
		WithArgs(merchantID, since).
		WillReturnRows(pgxmock.NewRows([]string{"issued", "collected", "customers", "count"}).
			AddRow(decimal.RequireFromString("42.50"), decimal.RequireFromString("12.00"), int64(3), int64(9)))
	mock.ExpectQuery("SELECT .+ FILTER .+ FROM ledger_entries").
		WithArgs(merchantID, since).
		WillReturnError(errors.New("connection reset"))

	activity, err := repo.MerchantActivity(context.Background(), merchantID, since)
	require.NoError(t, err)
	assert.Equal(t, "42.50", activity.Issued.StringFixed(2))
	assert.Equal(t, "12.00", activity.Collected.StringFixed(2))
	assert.Equal(t, int64(3), activity.UniqueCustomers)
	assert.Equal(t, int64(9), activity.EntryCount)

	_, err = repo.MerchantActivity(context.Background(), merchantID, since)
	assert.ErrorContains(t, err, "merchant activity")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerEntryRepo_LatestIssuerExcluding(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerEntryRepo(mock)
	customerID, x, y := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT sender_id FROM ledger_entries .+ ORDER BY seq DESC LIMIT 1").
		WithArgs(customerID, y).
		WillReturnRows(pgxmock.NewRows([]string{"sender_id"}).AddRow(x))
	mock.ExpectQuery("SELECT sender_id FROM ledger_entries").
		WithArgs(customerID, x).
		WillReturnRows(pgxmock.NewRows([]string{"sender_id"}))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	origin, err := repo.LatestIssuerExcluding(context.Background(), tx, customerID, y)
	require.NoError(t, err)
	require.NotNil(t, origin)
	assert.Equal(t, x, *origin)

	origin, err = repo.LatestIssuerExcluding(context.Background(), tx, customerID, x)
	require.NoError(t, err)
	assert.Nil(t, origin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

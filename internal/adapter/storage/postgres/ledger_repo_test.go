package postgres

import (
	"context"
	"testing"
	"time"

	"escrow-ledger-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepo_Append_AssignsSeq(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)
	walletID := uuid.New()
	event := &domain.LedgerEvent{
		ID:          uuid.New(),
		WalletID:    walletID,
		Kind:        domain.EventKindDeposit,
		Amount:      500000,
		Currency:    "USD",
		CausationID: "dep-001",
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO ledger_events").
		WithArgs(event.ID, event.WalletID, event.CampaignID, event.MilestoneID,
			event.Kind, event.Amount, event.Currency, event.CausationID, event.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"seq"}).AddRow(int64(7)))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Append(context.Background(), tx, event)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), event.Seq)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_GetByCausation_Found(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)
	id := uuid.New()
	walletID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT .+ FROM ledger_events WHERE causation_id").
		WithArgs("dep-001").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "wallet_id", "campaign_id", "milestone_id", "kind",
			"amount", "currency", "seq", "causation_id", "created_at",
		}).AddRow(id, walletID, (*uuid.UUID)(nil), (*uuid.UUID)(nil),
			domain.EventKindDeposit, int64(500000), "USD", int64(1), "dep-001", now))

	event, err := repo.GetByCausation(context.Background(), "dep-001")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, id, event.ID)
	assert.Equal(t, int64(1), event.Seq)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepo_GetByCausation_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM ledger_events WHERE causation_id").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "wallet_id", "campaign_id", "milestone_id", "kind",
			"amount", "currency", "seq", "causation_id", "created_at",
		}))

	event, err := repo.GetByCausation(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, event)
}

func TestLedgerRepo_ListByWallet_OrderedBySeq(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLedgerRepo(mock)
	walletID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT .+ FROM ledger_events WHERE wallet_id .+ ORDER BY seq").
		WithArgs(walletID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "wallet_id", "campaign_id", "milestone_id", "kind",
			"amount", "currency", "seq", "causation_id", "created_at",
		}).
			AddRow(uuid.New(), walletID, (*uuid.UUID)(nil), (*uuid.UUID)(nil),
				domain.EventKindDeposit, int64(500000), "USD", int64(1), "dep-001", now).
			AddRow(uuid.New(), walletID, (*uuid.UUID)(nil), (*uuid.UUID)(nil),
				domain.EventKindWithdraw, int64(100000), "USD", int64(2), "wd-001", now))

	events, err := repo.ListByWallet(context.Background(), walletID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(1), events[0].Seq)
	assert.Equal(t, int64(2), events[1].Seq)
	assert.NoError(t, mock.ExpectationsWereMet())
}

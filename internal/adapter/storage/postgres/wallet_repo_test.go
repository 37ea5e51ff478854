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

func walletRows(w *domain.WalletBalance) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"wallet_id", "currency", "deposited", "allocated", "locked", "released", "withdrawn", "updated_at",
	}).AddRow(w.WalletID, w.Currency, w.Deposited, w.Allocated, w.Locked, w.Released, w.Withdrawn, w.UpdatedAt)
}

func TestWalletRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := &domain.WalletBalance{
		WalletID:  uuid.New(),
		Currency:  "USD",
		UpdatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO wallet_balances").
		WithArgs(w.WalletID, w.Currency, w.Deposited, w.Allocated, w.Locked, w.Released, w.Withdrawn, w.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetForUpdate_LocksRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := &domain.WalletBalance{
		WalletID:  uuid.New(),
		Currency:  "USD",
		Deposited: 500000,
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM wallet_balances WHERE wallet_id .+ FOR UPDATE").
		WithArgs(w.WalletID).
		WillReturnRows(walletRows(w))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	got, err := repo.GetForUpdate(context.Background(), tx, w.WalletID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(500000), got.Deposited)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM wallet_balances WHERE wallet_id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{
			"wallet_id", "currency", "deposited", "allocated", "locked", "released", "withdrawn", "updated_at",
		}))

	got, err := repo.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestWalletRepo_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := &domain.WalletBalance{
		WalletID:  uuid.New(),
		Deposited: 500000,
		Allocated: 500000,
		Locked:    200000,
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallet_balances").
		WithArgs(w.Deposited, w.Allocated, w.Locked, w.Released, w.Withdrawn, w.WalletID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	assert.NoError(t, repo.Update(context.Background(), tx, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := &domain.WalletBalance{WalletID: uuid.New()}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE wallet_balances").
		WithArgs(w.Deposited, w.Allocated, w.Locked, w.Released, w.Withdrawn, w.WalletID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	assert.Error(t, repo.Update(context.Background(), tx, w))
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"escrow-ledger-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository for the WalletBalance
// projection.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

const walletColumns = `wallet_id, currency, deposited, allocated, locked, released, withdrawn, updated_at`

// Create inserts a fresh projection row for a wallet.
func (r *WalletRepo) Create(ctx context.Context, w *domain.WalletBalance) error {
	query := `INSERT INTO wallet_balances (wallet_id, currency, deposited, allocated, locked, released, withdrawn, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		w.WalletID, w.Currency, w.Deposited, w.Allocated,
		w.Locked, w.Released, w.Withdrawn, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet balance: %w", err)
	}
	return nil
}

// GetByID fetches a wallet projection without locking.
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WalletBalance, error) {
	query := fmt.Sprintf(`SELECT %s FROM wallet_balances WHERE wallet_id = $1`, walletColumns)
	return r.scanWallet(r.pool.QueryRow(ctx, query, id))
}

// GetForUpdate fetches a wallet projection with a pessimistic row lock.
// This MUST be called within a transaction; it is the single-writer
// serialization point for the wallet aggregate.
func (r *WalletRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WalletBalance, error) {
	query := fmt.Sprintf(`SELECT %s FROM wallet_balances WHERE wallet_id = $1 FOR UPDATE`, walletColumns)
	return r.scanWallet(tx.QueryRow(ctx, query, id))
}

// Update persists projection counters within a transaction.
func (r *WalletRepo) Update(ctx context.Context, tx pgx.Tx, w *domain.WalletBalance) error {
	query := `UPDATE wallet_balances
		SET deposited = $1, allocated = $2, locked = $3, released = $4, withdrawn = $5, updated_at = NOW()
		WHERE wallet_id = $6`

	tag, err := tx.Exec(ctx, query,
		w.Deposited, w.Allocated, w.Locked, w.Released, w.Withdrawn, w.WalletID,
	)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wallet not found: %s", w.WalletID)
	}
	return nil
}

func (r *WalletRepo) scanWallet(row pgx.Row) (*domain.WalletBalance, error) {
	w := &domain.WalletBalance{}
	err := row.Scan(
		&w.WalletID, &w.Currency, &w.Deposited, &w.Allocated,
		&w.Locked, &w.Released, &w.Withdrawn, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wallet balance: %w", err)
	}
	return w, nil
}

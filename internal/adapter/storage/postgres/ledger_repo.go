package postgres

import (
	"context"
	"errors"
	"fmt"

	"escrow-ledger-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LedgerRepo implements ports.LedgerRepository. The ledger_events table is
// append-only: no UPDATE or DELETE statements exist against it.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

const ledgerColumns = `id, wallet_id, campaign_id, milestone_id, kind, amount, currency, seq, causation_id, created_at`

// Append inserts a ledger event, assigning the next per-wallet sequence
// number. Callers must hold the wallet projection row lock in tx, which
// serializes appends per wallet and makes the subselect race-free.
func (r *LedgerRepo) Append(ctx context.Context, tx pgx.Tx, e *domain.LedgerEvent) error {
	query := `INSERT INTO ledger_events (id, wallet_id, campaign_id, milestone_id, kind, amount, currency, seq, causation_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM ledger_events WHERE wallet_id = $2),
			$8, $9)
		RETURNING seq`

	err := tx.QueryRow(ctx, query,
		e.ID, e.WalletID, e.CampaignID, e.MilestoneID,
		e.Kind, e.Amount, e.Currency, e.CausationID, e.CreatedAt,
	).Scan(&e.Seq)
	if err != nil {
		return fmt.Errorf("append ledger event: %w", err)
	}
	return nil
}

// GetByCausation fetches the event admitted for a causation ID, if any.
func (r *LedgerRepo) GetByCausation(ctx context.Context, causationID string) (*domain.LedgerEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM ledger_events WHERE causation_id = $1`, ledgerColumns)
	return r.scanEvent(r.pool.QueryRow(ctx, query, causationID))
}

// ListByWallet returns the wallet's full event history in Seq order.
func (r *LedgerRepo) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.LedgerEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM ledger_events WHERE wallet_id = $1 ORDER BY seq`, ledgerColumns)

	rows, err := r.pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list ledger events by wallet: %w", err)
	}
	defer rows.Close()
	return r.collectEvents(rows)
}

// ListByCampaign returns all events scoped to a campaign in Seq order.
func (r *LedgerRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.LedgerEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM ledger_events WHERE campaign_id = $1 ORDER BY seq`, ledgerColumns)

	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list ledger events by campaign: %w", err)
	}
	defer rows.Close()
	return r.collectEvents(rows)
}

func (r *LedgerRepo) collectEvents(rows pgx.Rows) ([]domain.LedgerEvent, error) {
	var events []domain.LedgerEvent
	for rows.Next() {
		e := domain.LedgerEvent{}
		err := rows.Scan(
			&e.ID, &e.WalletID, &e.CampaignID, &e.MilestoneID,
			&e.Kind, &e.Amount, &e.Currency, &e.Seq, &e.CausationID, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ledger event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger event rows: %w", err)
	}
	return events, nil
}

func (r *LedgerRepo) scanEvent(row pgx.Row) (*domain.LedgerEvent, error) {
	e := &domain.LedgerEvent{}
	err := row.Scan(
		&e.ID, &e.WalletID, &e.CampaignID, &e.MilestoneID,
		&e.Kind, &e.Amount, &e.Currency, &e.Seq, &e.CausationID, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan ledger event: %w", err)
	}
	return e, nil
}

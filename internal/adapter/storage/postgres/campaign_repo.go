package postgres

import (
	"context"
	"errors"
	"fmt"

	"escrow-ledger-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CampaignRepo implements ports.CampaignRepository for campaign escrow
// projections and milestones.
type CampaignRepo struct {
	pool Pool
}

// NewCampaignRepo creates a new CampaignRepo.
func NewCampaignRepo(pool Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

const campaignColumns = `id, wallet_id, creator_id, currency, target_budget, funded, locked, released, created_at, updated_at`
const milestoneColumns = `id, campaign_id, amount, due_date, status, locked_amount, submission_ref, submitted_by, approved_by, payout_pending, created_at, updated_at`

// Create inserts a new campaign escrow row.
func (r *CampaignRepo) Create(ctx context.Context, c *domain.CampaignEscrow) error {
	query := `INSERT INTO campaign_escrows (id, wallet_id, creator_id, currency, target_budget, funded, locked, released, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.WalletID, c.CreatorID, c.Currency, c.TargetBudget,
		c.Funded, c.Locked, c.Released, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert campaign escrow: %w", err)
	}
	return nil
}

// GetByID fetches a campaign escrow without locking.
func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CampaignEscrow, error) {
	query := fmt.Sprintf(`SELECT %s FROM campaign_escrows WHERE id = $1`, campaignColumns)
	return r.scanCampaign(r.pool.QueryRow(ctx, query, id))
}

// GetForUpdate fetches a campaign escrow with a pessimistic row lock.
// This MUST be called within a transaction.
func (r *CampaignRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.CampaignEscrow, error) {
	query := fmt.Sprintf(`SELECT %s FROM campaign_escrows WHERE id = $1 FOR UPDATE`, campaignColumns)
	return r.scanCampaign(tx.QueryRow(ctx, query, id))
}

// UpdateBalances persists the funded/locked/released projection counters.
func (r *CampaignRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, c *domain.CampaignEscrow) error {
	query := `UPDATE campaign_escrows SET funded = $1, locked = $2, released = $3, updated_at = NOW() WHERE id = $4`

	tag, err := tx.Exec(ctx, query, c.Funded, c.Locked, c.Released, c.ID)
	if err != nil {
		return fmt.Errorf("update campaign balances: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign not found: %s", c.ID)
	}
	return nil
}

// CreateMilestone inserts a new milestone.
func (r *CampaignRepo) CreateMilestone(ctx context.Context, m *domain.Milestone) error {
	query := `INSERT INTO milestones (id, campaign_id, amount, due_date, status, locked_amount, submission_ref, submitted_by, approved_by, payout_pending, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		m.ID, m.CampaignID, m.Amount, m.DueDate, m.Status, m.LockedAmount,
		m.SubmissionRef, m.SubmittedBy, m.ApprovedBy, m.PayoutPending,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert milestone: %w", err)
	}
	return nil
}

// GetMilestone fetches a milestone by ID.
func (r *CampaignRepo) GetMilestone(ctx context.Context, id uuid.UUID) (*domain.Milestone, error) {
	query := fmt.Sprintf(`SELECT %s FROM milestones WHERE id = $1`, milestoneColumns)
	return r.scanMilestone(r.pool.QueryRow(ctx, query, id))
}

// ListMilestones returns a campaign's milestones in creation order.
func (r *CampaignRepo) ListMilestones(ctx context.Context, campaignID uuid.UUID) ([]domain.Milestone, error) {
	query := fmt.Sprintf(`SELECT %s FROM milestones WHERE campaign_id = $1 ORDER BY created_at`, milestoneColumns)

	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	defer rows.Close()
	return r.collectMilestones(rows)
}

// UpdateMilestone persists milestone state within a transaction.
func (r *CampaignRepo) UpdateMilestone(ctx context.Context, tx pgx.Tx, m *domain.Milestone) error {
	query := `UPDATE milestones
		SET status = $1, locked_amount = $2, submission_ref = $3, submitted_by = $4,
			approved_by = $5, payout_pending = $6, updated_at = NOW()
		WHERE id = $7`

	tag, err := tx.Exec(ctx, query,
		m.Status, m.LockedAmount, m.SubmissionRef, m.SubmittedBy,
		m.ApprovedBy, m.PayoutPending, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update milestone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("milestone not found: %s", m.ID)
	}
	return nil
}

// ListPayoutPending returns milestones awaiting the creator's payout gate.
func (r *CampaignRepo) ListPayoutPending(ctx context.Context, creatorID uuid.UUID) ([]domain.Milestone, error) {
	query := fmt.Sprintf(`SELECT %s FROM milestones
		WHERE payout_pending AND status = 'APPROVED'
		AND campaign_id IN (SELECT id FROM campaign_escrows WHERE creator_id = $1)
		ORDER BY created_at`, milestoneColumns)

	rows, err := r.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list payout pending milestones: %w", err)
	}
	defer rows.Close()
	return r.collectMilestones(rows)
}

// SumPayoutPendingByWallet sums gated milestone amounts across the
// campaigns funded by a wallet.
func (r *CampaignRepo) SumPayoutPendingByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(SUM(m.locked_amount), 0) FROM milestones m
		JOIN campaign_escrows c ON c.id = m.campaign_id
		WHERE c.wallet_id = $1 AND m.payout_pending AND m.status = 'APPROVED'`

	var total int64
	if err := r.pool.QueryRow(ctx, query, walletID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum payout pending: %w", err)
	}
	return total, nil
}

func (r *CampaignRepo) collectMilestones(rows pgx.Rows) ([]domain.Milestone, error) {
	var milestones []domain.Milestone
	for rows.Next() {
		m := domain.Milestone{}
		err := rows.Scan(
			&m.ID, &m.CampaignID, &m.Amount, &m.DueDate, &m.Status, &m.LockedAmount,
			&m.SubmissionRef, &m.SubmittedBy, &m.ApprovedBy, &m.PayoutPending,
			&m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan milestone row: %w", err)
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate milestone rows: %w", err)
	}
	return milestones, nil
}

func (r *CampaignRepo) scanCampaign(row pgx.Row) (*domain.CampaignEscrow, error) {
	c := &domain.CampaignEscrow{}
	err := row.Scan(
		&c.ID, &c.WalletID, &c.CreatorID, &c.Currency, &c.TargetBudget,
		&c.Funded, &c.Locked, &c.Released, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan campaign escrow: %w", err)
	}
	return c, nil
}

func (r *CampaignRepo) scanMilestone(row pgx.Row) (*domain.Milestone, error) {
	m := &domain.Milestone{}
	err := row.Scan(
		&m.ID, &m.CampaignID, &m.Amount, &m.DueDate, &m.Status, &m.LockedAmount,
		&m.SubmissionRef, &m.SubmittedBy, &m.ApprovedBy, &m.PayoutPending,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan milestone: %w", err)
	}
	return m, nil
}

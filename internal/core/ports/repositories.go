package ports

import (
	"context"
	"time"

	"escrow-ledger-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=repositories.go -destination=mocks/repositories.go -package=mocks

// LedgerRepository is the append-only store of LedgerEvents, the single
// source of truth for all balances. Append assigns the per-wallet sequence
// number and MUST be called inside the transaction that holds the wallet
// projection row lock.
type LedgerRepository interface {
	Append(ctx context.Context, tx pgx.Tx, event *domain.LedgerEvent) error
	GetByCausation(ctx context.Context, causationID string) (*domain.LedgerEvent, error)
	ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.LedgerEvent, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.LedgerEvent, error)
}

// WalletRepository persists the WalletBalance projection. GetForUpdate is
// the single-writer serialization point for a wallet aggregate.
type WalletRepository interface {
	Create(ctx context.Context, w *domain.WalletBalance) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WalletBalance, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WalletBalance, error)
	Update(ctx context.Context, tx pgx.Tx, w *domain.WalletBalance) error
}

// CampaignRepository persists CampaignEscrow projections and milestones.
type CampaignRepository interface {
	Create(ctx context.Context, c *domain.CampaignEscrow) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CampaignEscrow, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.CampaignEscrow, error)
	UpdateBalances(ctx context.Context, tx pgx.Tx, c *domain.CampaignEscrow) error

	CreateMilestone(ctx context.Context, m *domain.Milestone) error
	GetMilestone(ctx context.Context, id uuid.UUID) (*domain.Milestone, error)
	ListMilestones(ctx context.Context, campaignID uuid.UUID) ([]domain.Milestone, error)
	UpdateMilestone(ctx context.Context, tx pgx.Tx, m *domain.Milestone) error
	ListPayoutPending(ctx context.Context, creatorID uuid.UUID) ([]domain.Milestone, error)
	SumPayoutPendingByWallet(ctx context.Context, walletID uuid.UUID) (int64, error)
}

// OnboardingRepository persists OnboardingRecords, owned exclusively by the
// onboarding state machine.
type OnboardingRepository interface {
	Get(ctx context.Context, creatorID uuid.UUID) (*domain.OnboardingRecord, error)
	GetByEntityID(ctx context.Context, entityID string) (*domain.OnboardingRecord, error)
	Upsert(ctx context.Context, rec *domain.OnboardingRecord) error
}

// ReconciliationRepository is the scheduler-owned task queue. ListDue
// claims due Active tasks for one polling pass.
type ReconciliationRepository interface {
	Upsert(ctx context.Context, task *domain.ReconciliationTask) error
	Delete(ctx context.Context, subjectType domain.SubjectType, subjectID string) error
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.ReconciliationTask, error)
	ListStalled(ctx context.Context) ([]domain.ReconciliationTask, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"escrow-ledger-engine/internal/core/domain"
	"escrow-ledger-engine/internal/core/ports"
	"escrow-ledger-engine/internal/core/ports/mocks"
	"escrow-ledger-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type escrowTestDeps struct {
	svc            *EscrowServiceImpl
	ledgerRepo     *mocks.MockLedgerRepository
	walletRepo     *mocks.MockWalletRepository
	campaignRepo   *mocks.MockCampaignRepository
	onboardingRepo *mocks.MockOnboardingRepository
	causationCache *mocks.MockCausationCache
	transactor     *mocks.MockDBTransactor
	ctrl           *gomock.Controller
}

func setupEscrowService(t *testing.T) *escrowTestDeps {
	ctrl := gomock.NewController(t)
	d := &escrowTestDeps{
		ledgerRepo:     mocks.NewMockLedgerRepository(ctrl),
		walletRepo:     mocks.NewMockWalletRepository(ctrl),
		campaignRepo:   mocks.NewMockCampaignRepository(ctrl),
		onboardingRepo: mocks.NewMockOnboardingRepository(ctrl),
		causationCache: mocks.NewMockCausationCache(ctrl),
		transactor:     mocks.NewMockDBTransactor(ctrl),
		ctrl:           ctrl,
	}
	d.svc = NewEscrowService(
		d.ledgerRepo, d.walletRepo, d.campaignRepo, d.onboardingRepo,
		d.causationCache, d.transactor, zerolog.Nop(),
	)
	return d
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

// ==================== Deposit Tests ====================

func TestEscrowService_Deposit_Success(t *testing.T) {
	d := setupEscrowService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}

	req := ports.DepositRequest{
		WalletID:    walletID,
		Amount:      500000,
		Currency:    "USD",
		CausationID: "dep-001",
	}

	d.causationCache.EXPECT().Get(ctx, "dep-001").Return(nil, nil)
	d.ledgerRepo.EXPECT().GetByCausation(ctx, "dep-001").Return(nil, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetForUpdate(ctx, tx, walletID).Return(&domain.WalletBalance{
		WalletID: walletID,
		Currency: "USD",
	}, nil)
	d.ledgerRepo.EXPECT().Append(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, ev *domain.LedgerEvent) error {
			ev.Seq = 1
			return nil
		})
	d.walletRepo.EXPECT().Update(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, w *domain.WalletBalance) error {
			assert.Equal(t, int64(500000), w.Deposited)
			return nil
		})
	d.causationCache.EXPECT().Set(ctx, "dep-001", gomock.Any(), causationTTL).Return(nil)

	event, err := d.svc.Deposit(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, domain.EventKindDeposit, event.Kind)
	assert.Equal(t, int64(500000), event.Amount)
	assert.Equal(t, int64(1), event.Seq)
}

func TestEscrowService_Deposit_InvalidAmount(t *testing.T) {
	d := setupEscrowService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.Deposit(context.Background(), ports.DepositRequest{
		WalletID:    uuid.New(),
		Amount:      0,
		Currency:    "USD",
		CausationID: "dep-002",
	})
	require.Error(t, err)
	assert.Equal(t, "LED_002", appErrCode(t, err))
}

func TestEscrowService_Deposit_DuplicateCausationReturnsOriginal(t *testing.T) {
	d := setupEscrowService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	prior := &domain.LedgerEvent{
		ID:          uuid.New(),
		Kind:        domain.EventKindDeposit,
		Amount:      500000,
		Seq:         1,
		CausationID: "dep-001",
	}
	cached, _ := json.Marshal(prior)

	d.causationCache.EXPECT().Get(ctx, "dep-001").Return(cached, nil)

	event, err := d.svc.Deposit(ctx, ports.DepositRequest{
		WalletID:    uuid.New(),
		Amount:      500000,
		Currency:    "USD",
		CausationID: "dep-001",
	})
	require.NoError(t, err)
	assert.Equal(t, prior.ID, event.ID)
	assert.Equal(t, int64(1), event.Seq)
}

func TestEscrowService_Deposit_StrictDuplicateFails(t *testing.T) {
	d := setupEscrowService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	d.causationCache.EXPECT().Get(ctx, "dep-001").Return(nil, nil)
	d.ledgerRepo.EXPECT().GetByCausation(ctx, "dep-001").Return(&domain.LedgerEvent{
		ID:          uuid.New(),
		CausationID: "dep-001",
	}, nil)

	_, err := d.svc.Deposit(ctx, ports.DepositRequest{
		WalletID:    uuid.New(),
		Amount:      500000,
		Currency:    "USD",
		CausationID: "dep-001",
		Strict:      true,
	})
	require.Error(t, err)
	assert.Equal(t, "LED_003", appErrCode(t, err))
}

func TestEscrowService_Deposit_CurrencyMismatch(t *testing.T) {
	d := setupEscrowService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}

	d.causationCache.EXPECT().Get(ctx, "dep-003").Return(nil, nil)
	d.ledgerRepo.EXPECT().GetByCausation(ctx, "dep-003").Return(nil, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetForUpdate(ctx, tx, walletID).Return(&domain.WalletBalance{
		WalletID: walletID,
		Currency: "USD",
	}, nil)

	_, err := d.svc.Deposit(ctx, ports.DepositRequest{
		WalletID:    walletID,
		Amount:      1000,
		Currency:    "EUR",
		CausationID: "dep-003",
	})
	require.Error(t, err)
	assert.Equal(t, "LED_005", appErrCode(t, err))
}

// ==================== Allocate Tests ====================

func TestEscrowService_Allocate_InsufficientUncommitted(t *testing.T) {
	d := setupEscrowService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	campaignID := uuid.New()
	tx := &mockTx{}

	d.causationCache.EXPECT().Get(ctx, "alloc-001").Return(nil, nil)
	d.ledgerRepo.EXPECT().GetByCausation(ctx, "alloc-001").Return(nil, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	// 500000 deposited, 400000 already allocated: only 100000 uncommitted
	d.walletRepo.EXPECT().GetForUpdate(ctx, tx, walletID).Return(&domain.WalletBalance{
		WalletID:  walletID,
		Currency:  "USD",
		Deposited: 500000,
		Allocated: 400000,
	}, nil)
	d.campaignRepo.EXPECT().GetForUpdate(ctx, tx, campaignID).Return(&domain.CampaignEscrow{
		ID:       campaignID,
		WalletID: walletID,
	}, nil)

	_, err := d.svc.AllocateToCampaign(ctx, ports.AllocateRequest{
		WalletID:    walletID,
		CampaignID:  campaignID,
		Amount:      300000,
		CausationID: "alloc-001",
	})
	require.Error(t, err)
	assert.Equal(t, "LED_001", appErrCode(t, err))
}

func TestEscrowService_Allocate_Success(t *testing.T) {
	d := setupEscrowService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	campaignID := uuid.New()
	tx := &mockTx{}

	d.causationCache.EXPECT().Get(ctx, "alloc-002").Return(nil, nil)
	d.ledgerRepo.EXPECT().GetByCausation(ctx, "alloc-002").Return(nil, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetForUpdate(ctx, tx, walletID).Return(&domain.WalletBalance{
		WalletID:  walletID,
		Currency:  "USD",
		Deposited: 500000,
	}, nil)
	d.campaignRepo.EXPECT().GetForUpdate(ctx, tx, campaignID).Return(&domain.CampaignEscrow{
		ID:       campaignID,
		WalletID: walletID,
	}, nil)
	d.ledgerRepo.EXPECT().Append(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, ev *domain.LedgerEvent) error {
			ev.Seq = 2
			return nil
		})
	d.walletRepo.EXPECT().Update(ctx, tx, gomock.Any()).Return(nil)
	d.campaignRepo.EXPECT().UpdateBalances(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, c *domain.CampaignEscrow) error {
			assert.Equal(t, int64(300000), c.Funded)
			return nil
		})
	d.causationCache.EXPECT().Set(ctx, "alloc-002", gomock.Any(), causationTTL).Return(nil)

	event, err := d.svc.AllocateToCampaign(ctx, ports.AllocateRequest{
		WalletID:    walletID,
		CampaignID:  campaignID,
		Amount:      300000,
		CausationID: "alloc-002",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EventKindAllocate, event.Kind)
	require.NotNil(t, event.CampaignID)
	assert.Equal(t, campaignID, *event.CampaignID)
}

// ==================== Release Tests ====================

func TestEscrowService_Release_PayoutGateClosed(t *testing.T) {
	d := setupEscrowService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	campaignID := uuid.New()
	milestoneID := uuid.New()
	creatorID := uuid.New()
	causation := domain.BuildReleaseCausation(milestoneID)

	d.causationCache.EXPECT().Get(ctx, causation).Return(nil, nil)
	d.ledgerRepo.EXPECT().GetByCausation(ctx, causation).Return(nil, nil)
	d.campaignRepo.EXPECT().GetByID(ctx, campaignID).Return(&domain.CampaignEscrow{
		ID:        campaignID,
		CreatorID: creatorID,
	}, nil)
	d.onboardingRepo.EXPECT().Get(ctx, creatorID).Return(&domain.OnboardingRecord{
		CreatorID: creatorID,
		Status:    domain.OnboardingPendingApproval,
	}, nil)
	// No transaction, no append: the gate is checked before any write.

	_, err := d.svc.Release(ctx, ports.ReleaseRequest{
		CampaignID:  campaignID,
		MilestoneID: milestoneID,
	})
	require.Error(t, err)
	assert.Equal(t, "PAYOUT_001", appErrCode(t, err))
}

func TestEscrowService_Release_Success(t *testing.T) {
	d := setupEscrowService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	campaignID := uuid.New()
	milestoneID := uuid.New()
	creatorID := uuid.New()
	causation := domain.BuildReleaseCausation(milestoneID)
	tx := &mockTx{}

	d.causationCache.EXPECT().Get(ctx, causation).Return(nil, nil)
	d.ledgerRepo.EXPECT().GetByCausation(ctx, causation).Return(nil, nil)
	d.campaignRepo.EXPECT().GetByID(ctx, campaignID).Return(&domain.CampaignEscrow{
		ID:        campaignID,
		WalletID:  walletID,
		CreatorID: creatorID,
	}, nil)
	d.onboardingRepo.EXPECT().Get(ctx, creatorID).Return(&domain.OnboardingRecord{
		CreatorID: creatorID,
		Status:    domain.OnboardingApproved,
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetForUpdate(ctx, tx, walletID).Return(&domain.WalletBalance{
		WalletID:  walletID,
		Currency:  "USD",
		Deposited: 500000,
		Allocated: 500000,
		Locked:    200000,
	}, nil)
	d.campaignRepo.EXPECT().GetForUpdate(ctx, tx, campaignID).Return(&domain.CampaignEscrow{
		ID:        campaignID,
		WalletID:  walletID,
		CreatorID: creatorID,
		Funded:    500000,
		Locked:    200000,
	}, nil)
	d.campaignRepo.EXPECT().GetMilestone(ctx, milestoneID).Return(&domain.Milestone{
		ID:           milestoneID,
		CampaignID:   campaignID,
		Status:       domain.MilestoneStatusApproved,
		LockedAmount: 200000,
	}, nil)
	d.ledgerRepo.EXPECT().Append(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, ev *domain.LedgerEvent) error {
			assert.Equal(t, domain.EventKindRelease, ev.Kind)
			assert.Equal(t, int64(200000), ev.Amount)
			ev.Seq = 4
			return nil
		})
	d.walletRepo.EXPECT().Update(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, w *domain.WalletBalance) error {
			assert.Equal(t, int64(0), w.Locked)
			assert.Equal(t, int64(200000), w.Released)
			return nil
		})
	d.campaignRepo.EXPECT().UpdateBalances(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, c *domain.CampaignEscrow) error {
			assert.Equal(t, int64(0), c.Locked)
			assert.Equal(t, int64(200000), c.Released)
			return nil
		})
	d.campaignRepo.EXPECT().UpdateMilestone(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, m *domain.Milestone) error {
			assert.Equal(t, domain.MilestoneStatusReleased, m.Status)
			assert.False(t, m.PayoutPending)
			return nil
		})
	d.causationCache.EXPECT().Set(ctx, causation, gomock.Any(), causationTTL).Return(nil)

	event, err := d.svc.Release(ctx, ports.ReleaseRequest{
		CampaignID:  campaignID,
		MilestoneID: milestoneID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EventKindRelease, event.Kind)
}

// ==================== Withdraw Tests ====================

func TestEscrowService_Withdraw_GuardsAllocatedFunds(t *testing.T) {
	d := setupEscrowService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	tx := &mockTx{}

	d.causationCache.EXPECT().Get(ctx, "wd-001").Return(nil, nil)
	d.ledgerRepo.EXPECT().GetByCausation(ctx, "wd-001").Return(nil, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	// Everything deposited is already allocated to campaigns.
	d.walletRepo.EXPECT().GetForUpdate(ctx, tx, walletID).Return(&domain.WalletBalance{
		WalletID:  walletID,
		Currency:  "USD",
		Deposited: 500000,
		Allocated: 500000,
	}, nil)

	_, err := d.svc.Withdraw(ctx, ports.WithdrawRequest{
		WalletID:    walletID,
		Amount:      100000,
		CausationID: "wd-001",
	})
	require.Error(t, err)
	assert.Equal(t, "LED_001", appErrCode(t, err))
}

// ==================== RebuildWallet Tests ====================

func TestEscrowService_RebuildWallet_ReplaysHistory(t *testing.T) {
	d := setupEscrowService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(&domain.WalletBalance{
		WalletID: walletID,
		Currency: "USD",
	}, nil)
	d.ledgerRepo.EXPECT().ListByWallet(ctx, walletID).Return([]domain.LedgerEvent{
		{Kind: domain.EventKindDeposit, Amount: 500000, Seq: 1},
		{Kind: domain.EventKindAllocate, Amount: 500000, Seq: 2},
		{Kind: domain.EventKindLock, Amount: 200000, Seq: 3},
		{Kind: domain.EventKindRelease, Amount: 200000, Seq: 4},
	}, nil)

	rebuilt, err := d.svc.RebuildWallet(ctx, walletID)
	require.NoError(t, err)
	assert.Equal(t, int64(500000), rebuilt.Deposited)
	assert.Equal(t, int64(0), rebuilt.Locked)
	assert.Equal(t, int64(200000), rebuilt.Released)
	assert.Equal(t, int64(300000), rebuilt.Available())
}

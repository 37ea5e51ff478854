package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"escrow-ledger-engine/internal/core/domain"
	"escrow-ledger-engine/internal/core/ports"
	"escrow-ledger-engine/internal/service"
	"escrow-ledger-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// harness wires the real services against in-memory adapters.
type harness struct {
	escrowSvc     ports.EscrowService
	milestoneSvc  ports.MilestoneService
	onboardingSvc ports.OnboardingService
	statusSvc     ports.StatusService

	ledgerRepo     *inMemoryLedgerRepo
	walletRepo     *inMemoryWalletRepo
	campaignRepo   *inMemoryCampaignRepo
	onboardingRepo *inMemoryOnboardingRepo
	reconRepo      *inMemoryReconRepo
	notifier       *recordingNotifier
	gateway        *stubPayoutGateway
}

func newHarness() *harness {
	h := &harness{
		ledgerRepo:     newInMemoryLedgerRepo(),
		walletRepo:     newInMemoryWalletRepo(),
		campaignRepo:   newInMemoryCampaignRepo(),
		onboardingRepo: newInMemoryOnboardingRepo(),
		reconRepo:      newInMemoryReconRepo(),
		notifier:       newRecordingNotifier(),
		gateway:        newStubPayoutGateway(),
	}
	log := zerolog.Nop()
	transactor := newSerializingTransactor()
	h.escrowSvc = service.NewEscrowService(
		h.ledgerRepo, h.walletRepo, h.campaignRepo, h.onboardingRepo,
		newInMemoryCausationCache(), transactor, log,
	)
	h.milestoneSvc = service.NewMilestoneService(h.campaignRepo, h.escrowSvc, transactor, h.notifier, log)
	h.onboardingSvc = service.NewOnboardingService(
		h.onboardingRepo, h.reconRepo, h.gateway, h.milestoneSvc, h.notifier,
		10*time.Second, log,
	)
	h.statusSvc = service.NewStatusService(h.onboardingRepo, h.walletRepo, h.campaignRepo, h.reconRepo, log)
	return h
}

// fundCampaign seeds a wallet and a fully funded campaign with one locked
// milestone that has been submitted and approved by distinct actors.
func (h *harness) fundCampaign(t *testing.T, ctx context.Context, walletID, creatorID uuid.UUID, deposit, milestoneAmount int64) *domain.Milestone {
	t.Helper()

	_, err := h.escrowSvc.Deposit(ctx, ports.DepositRequest{
		WalletID: walletID, Amount: deposit, Currency: "USD", CausationID: "dep-" + walletID.String(),
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	campaign := &domain.CampaignEscrow{
		ID: uuid.New(), WalletID: walletID, CreatorID: creatorID,
		Currency: "USD", TargetBudget: deposit, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, h.campaignRepo.Create(ctx, campaign))

	_, err = h.escrowSvc.AllocateToCampaign(ctx, ports.AllocateRequest{
		WalletID: walletID, CampaignID: campaign.ID, Amount: deposit,
		CausationID: "alloc-" + campaign.ID.String(),
	})
	require.NoError(t, err)

	milestone := &domain.Milestone{
		ID: uuid.New(), CampaignID: campaign.ID, Amount: milestoneAmount,
		Status: domain.MilestoneStatusPending, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, h.campaignRepo.CreateMilestone(ctx, milestone))

	_, err = h.escrowSvc.LockForMilestone(ctx, ports.LockRequest{
		CampaignID: campaign.ID, MilestoneID: milestone.ID, Amount: milestoneAmount,
		CausationID: "lock-" + milestone.ID.String(),
	})
	require.NoError(t, err)

	_, err = h.milestoneSvc.Submit(ctx, ports.SubmitRequest{
		MilestoneID: milestone.ID, SubmitterID: creatorID, SubmissionRef: "deliverable-v1",
	})
	require.NoError(t, err)

	approved, err := h.milestoneSvc.Approve(ctx, ports.ApproveRequest{
		MilestoneID: milestone.ID, ApproverID: uuid.New(),
	})
	require.NoError(t, err)
	return approved
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestGatedReleaseFlow(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	walletID := uuid.New()
	creatorID := uuid.New()

	// Approval before onboarding defers the payout instead of failing.
	approved := h.fundCampaign(t, ctx, walletID, creatorID, 500000, 200000)
	assert.Equal(t, domain.MilestoneStatusApproved, approved.Status)
	assert.True(t, approved.PayoutPending)
	assert.Equal(t, int64(200000), approved.LockedAmount)

	// Funds stay locked while the gate is closed.
	wallet, err := h.walletRepo.GetByID(ctx, walletID)
	require.NoError(t, err)
	assert.Equal(t, int64(200000), wallet.Locked)
	assert.Equal(t, int64(0), wallet.Released)

	// Creator completes hosted onboarding.
	rec, err := h.onboardingSvc.Initiate(ctx, creatorID)
	require.NoError(t, err)
	assert.Equal(t, domain.OnboardingLinkGenerated, rec.Status)
	require.NotEmpty(t, rec.ExternalEntityID)

	applied, err := h.onboardingSvc.ApplyProviderEvent(ctx, ports.ProviderEvent{
		EntityID: rec.ExternalEntityID, Status: domain.ProviderStatusStarted,
	})
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = h.onboardingSvc.ApplyProviderEvent(ctx, ports.ProviderEvent{
		EntityID: rec.ExternalEntityID, Status: domain.ProviderStatusApproved,
	})
	require.NoError(t, err)
	assert.True(t, applied)

	// Approval clears the gate and releases the deferred milestone.
	milestone, err := h.campaignRepo.GetMilestone(ctx, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MilestoneStatusReleased, milestone.Status)
	assert.False(t, milestone.PayoutPending)

	wallet, err = h.walletRepo.GetByID(ctx, walletID)
	require.NoError(t, err)
	assert.Equal(t, int64(500000), wallet.Deposited)
	assert.Equal(t, int64(0), wallet.Locked)
	assert.Equal(t, int64(200000), wallet.Released)
	assert.Equal(t, int64(300000), wallet.Available())

	// Terminal state removes the reconciliation task.
	due, err := h.reconRepo.ListDue(ctx, time.Now().Add(time.Hour), 50)
	require.NoError(t, err)
	assert.Empty(t, due)

	assert.Len(t, h.notifier.eventsOfType("onboarding.approved"), 1)
	assert.Len(t, h.notifier.eventsOfType("milestone.released"), 1)
}

func TestDepositIdempotentReplay(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	walletID := uuid.New()

	first, err := h.escrowSvc.Deposit(ctx, ports.DepositRequest{
		WalletID: walletID, Amount: 500000, Currency: "USD", CausationID: "dep-001",
	})
	require.NoError(t, err)

	replay, err := h.escrowSvc.Deposit(ctx, ports.DepositRequest{
		WalletID: walletID, Amount: 500000, Currency: "USD", CausationID: "dep-001",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, replay.ID)
	assert.Equal(t, first.Seq, replay.Seq)

	events, err := h.ledgerRepo.ListByWallet(ctx, walletID)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	wallet, err := h.walletRepo.GetByID(ctx, walletID)
	require.NoError(t, err)
	assert.Equal(t, int64(500000), wallet.Deposited)

	// Strict mode surfaces the duplicate instead of replaying.
	_, err = h.escrowSvc.Deposit(ctx, ports.DepositRequest{
		WalletID: walletID, Amount: 500000, Currency: "USD", CausationID: "dep-001", Strict: true,
	})
	require.Error(t, err)
	assert.Equal(t, "LED_003", appCode(t, err))
}

func TestProjectionMatchesReplay(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	walletID := uuid.New()
	creatorID := uuid.New()

	h.fundCampaign(t, ctx, walletID, creatorID, 500000, 200000)

	rebuilt, err := h.escrowSvc.RebuildWallet(ctx, walletID)
	require.NoError(t, err)

	projected, err := h.walletRepo.GetByID(ctx, walletID)
	require.NoError(t, err)

	assert.Equal(t, projected.Deposited, rebuilt.Deposited)
	assert.Equal(t, projected.Allocated, rebuilt.Allocated)
	assert.Equal(t, projected.Locked, rebuilt.Locked)
	assert.Equal(t, projected.Released, rebuilt.Released)
	assert.Equal(t, projected.Withdrawn, rebuilt.Withdrawn)
}

func TestWalletSummaryReflectsDeferredPayouts(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	walletID := uuid.New()
	creatorID := uuid.New()

	h.fundCampaign(t, ctx, walletID, creatorID, 500000, 200000)

	view, err := h.statusSvc.WalletSummary(ctx, walletID)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), view.AvailableBalance)
	assert.Equal(t, int64(200000), view.EscrowAmount)
	assert.Equal(t, int64(200000), view.PendingPayouts)
}

func TestRefundAfterDispute(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	walletID := uuid.New()
	creatorID := uuid.New()

	_, err := h.escrowSvc.Deposit(ctx, ports.DepositRequest{
		WalletID: walletID, Amount: 500000, Currency: "USD", CausationID: "dep-001",
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	campaign := &domain.CampaignEscrow{
		ID: uuid.New(), WalletID: walletID, CreatorID: creatorID,
		Currency: "USD", TargetBudget: 500000, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, h.campaignRepo.Create(ctx, campaign))

	_, err = h.escrowSvc.AllocateToCampaign(ctx, ports.AllocateRequest{
		WalletID: walletID, CampaignID: campaign.ID, Amount: 300000, CausationID: "alloc-001",
	})
	require.NoError(t, err)

	milestone := &domain.Milestone{
		ID: uuid.New(), CampaignID: campaign.ID, Amount: 200000,
		Status: domain.MilestoneStatusPending, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, h.campaignRepo.CreateMilestone(ctx, milestone))

	_, err = h.escrowSvc.LockForMilestone(ctx, ports.LockRequest{
		CampaignID: campaign.ID, MilestoneID: milestone.ID, Amount: 200000, CausationID: "lock-001",
	})
	require.NoError(t, err)

	_, err = h.milestoneSvc.Submit(ctx, ports.SubmitRequest{
		MilestoneID: milestone.ID, SubmitterID: creatorID, SubmissionRef: "deliverable-v1",
	})
	require.NoError(t, err)

	_, err = h.milestoneSvc.Dispute(ctx, milestone.ID, uuid.New())
	require.NoError(t, err)

	refunded, err := h.milestoneSvc.RefundLock(ctx, milestone.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), refunded.LockedAmount)

	// Refund returns the lock to the uncommitted pool.
	wallet, err := h.walletRepo.GetByID(ctx, walletID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), wallet.Locked)
	assert.Equal(t, int64(100000), wallet.Allocated)
	assert.Equal(t, int64(400000), wallet.Uncommitted())

	updatedCampaign, err := h.campaignRepo.GetByID(ctx, campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), updatedCampaign.Funded)
	assert.Equal(t, int64(0), updatedCampaign.Locked)
}

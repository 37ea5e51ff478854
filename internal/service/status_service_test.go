package service

import (
	"context"
	"testing"
	"time"

	"escrow-ledger-engine/internal/core/domain"
	"escrow-ledger-engine/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type statusTestDeps struct {
	svc            *StatusServiceImpl
	onboardingRepo *mocks.MockOnboardingRepository
	walletRepo     *mocks.MockWalletRepository
	campaignRepo   *mocks.MockCampaignRepository
	reconRepo      *mocks.MockReconciliationRepository
	ctrl           *gomock.Controller
}

func setupStatusService(t *testing.T) *statusTestDeps {
	ctrl := gomock.NewController(t)
	d := &statusTestDeps{
		onboardingRepo: mocks.NewMockOnboardingRepository(ctrl),
		walletRepo:     mocks.NewMockWalletRepository(ctrl),
		campaignRepo:   mocks.NewMockCampaignRepository(ctrl),
		reconRepo:      mocks.NewMockReconciliationRepository(ctrl),
		ctrl:           ctrl,
	}
	d.svc = NewStatusService(d.onboardingRepo, d.walletRepo, d.campaignRepo, d.reconRepo, zerolog.Nop())
	return d
}

func TestStatusService_OnboardingStatus_NoRecord(t *testing.T) {
	d := setupStatusService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	creatorID := uuid.New()

	d.onboardingRepo.EXPECT().Get(ctx, creatorID).Return(nil, nil)

	view, err := d.svc.OnboardingStatus(ctx, creatorID)
	require.NoError(t, err)
	assert.Equal(t, "NOT_STARTED", view.OnboardingStatus)
	assert.False(t, view.IsComplete)
	assert.False(t, view.IsActive)
	assert.NotEmpty(t, view.Reason)
}

func TestStatusService_OnboardingStatus_ExpiredLinkHidden(t *testing.T) {
	d := setupStatusService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	creatorID := uuid.New()
	expired := time.Now().Add(-time.Hour).UTC()

	d.onboardingRepo.EXPECT().Get(ctx, creatorID).Return(&domain.OnboardingRecord{
		CreatorID:      creatorID,
		Status:         domain.OnboardingLinkGenerated,
		OnboardingLink: "https://provider.example/onboard/abc",
		LinkExpiresAt:  &expired,
	}, nil)

	view, err := d.svc.OnboardingStatus(ctx, creatorID)
	require.NoError(t, err)
	assert.True(t, view.LinkExpired)
	assert.Empty(t, view.OnboardingLink)
	assert.Contains(t, view.Reason, "expired")
}

func TestStatusService_OnboardingStatus_Approved(t *testing.T) {
	d := setupStatusService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	creatorID := uuid.New()

	d.onboardingRepo.EXPECT().Get(ctx, creatorID).Return(&domain.OnboardingRecord{
		CreatorID:             creatorID,
		Status:                domain.OnboardingApproved,
		ExternalBeneficiaryID: "ben_12345678",
	}, nil)

	view, err := d.svc.OnboardingStatus(ctx, creatorID)
	require.NoError(t, err)
	assert.True(t, view.IsComplete)
	assert.False(t, view.IsActive)
	require.NotNil(t, view.BankDetails)
	assert.Equal(t, "****5678", *view.BankDetails)
}

func TestStatusService_WalletSummary(t *testing.T) {
	d := setupStatusService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(&domain.WalletBalance{
		WalletID:  walletID,
		Currency:  "USD",
		Deposited: 500000,
		Allocated: 500000,
		Locked:    100000,
		Released:  200000,
	}, nil)
	d.campaignRepo.EXPECT().SumPayoutPendingByWallet(ctx, walletID).Return(int64(100000), nil)

	view, err := d.svc.WalletSummary(ctx, walletID)
	require.NoError(t, err)
	assert.Equal(t, int64(200000), view.AvailableBalance)
	assert.InDelta(t, 0.4, view.LiquidityRatio, 0.0001)
	assert.Equal(t, int64(100000), view.EscrowAmount)
	assert.Equal(t, int64(100000), view.PendingPayouts)
	assert.Equal(t, "USD", view.Currency)
}

func TestStatusService_WalletSummary_NotFound(t *testing.T) {
	d := setupStatusService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(nil, nil)

	_, err := d.svc.WalletSummary(ctx, walletID)
	require.Error(t, err)
	assert.Equal(t, "LED_004", appErrCode(t, err))
}

func TestStatusService_StalledReconciliations(t *testing.T) {
	d := setupStatusService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()

	d.reconRepo.EXPECT().ListStalled(ctx).Return([]domain.ReconciliationTask{
		{ID: uuid.New(), SubjectType: domain.SubjectTypeOnboarding, SubjectID: "ent_abc", Status: domain.TaskStatusStalled},
	}, nil)

	tasks, err := d.svc.StalledReconciliations(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.TaskStatusStalled, tasks[0].Status)
}

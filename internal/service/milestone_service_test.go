package service

import (
	"context"
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

type milestoneTestDeps struct {
	svc          *MilestoneServiceImpl
	campaignRepo *mocks.MockCampaignRepository
	escrowSvc    *mocks.MockEscrowService
	transactor   *mocks.MockDBTransactor
	notifier     *mocks.MockNotifier
	ctrl         *gomock.Controller
}

func setupMilestoneService(t *testing.T) *milestoneTestDeps {
	ctrl := gomock.NewController(t)
	d := &milestoneTestDeps{
		campaignRepo: mocks.NewMockCampaignRepository(ctrl),
		escrowSvc:    mocks.NewMockEscrowService(ctrl),
		transactor:   mocks.NewMockDBTransactor(ctrl),
		notifier:     mocks.NewMockNotifier(ctrl),
		ctrl:         ctrl,
	}
	d.svc = NewMilestoneService(d.campaignRepo, d.escrowSvc, d.transactor, d.notifier, zerolog.Nop())
	return d
}

func TestMilestoneService_Submit_Success(t *testing.T) {
	d := setupMilestoneService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	milestoneID := uuid.New()
	submitterID := uuid.New()
	tx := &mockTx{}

	d.campaignRepo.EXPECT().GetMilestone(ctx, milestoneID).Return(&domain.Milestone{
		ID:     milestoneID,
		Status: domain.MilestoneStatusPending,
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.campaignRepo.EXPECT().UpdateMilestone(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, m *domain.Milestone) error {
			assert.Equal(t, domain.MilestoneStatusSubmitted, m.Status)
			assert.Equal(t, "ipfs://deliverable-1", m.SubmissionRef)
			return nil
		})

	milestone, err := d.svc.Submit(ctx, ports.SubmitRequest{
		MilestoneID:   milestoneID,
		SubmitterID:   submitterID,
		SubmissionRef: "ipfs://deliverable-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MilestoneStatusSubmitted, milestone.Status)
	require.NotNil(t, milestone.SubmittedBy)
	assert.Equal(t, submitterID, *milestone.SubmittedBy)
}

func TestMilestoneService_Submit_MissingRef(t *testing.T) {
	d := setupMilestoneService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.Submit(context.Background(), ports.SubmitRequest{
		MilestoneID: uuid.New(),
		SubmitterID: uuid.New(),
	})
	require.Error(t, err)
	assert.Equal(t, "VAL_001", appErrCode(t, err))
}

func TestMilestoneService_Submit_FromReleasedForbidden(t *testing.T) {
	d := setupMilestoneService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	milestoneID := uuid.New()

	d.campaignRepo.EXPECT().GetMilestone(ctx, milestoneID).Return(&domain.Milestone{
		ID:     milestoneID,
		Status: domain.MilestoneStatusReleased,
	}, nil)

	_, err := d.svc.Submit(ctx, ports.SubmitRequest{
		MilestoneID:   milestoneID,
		SubmitterID:   uuid.New(),
		SubmissionRef: "ipfs://deliverable-1",
	})
	require.Error(t, err)
	assert.Equal(t, "MIL_001", appErrCode(t, err))
}

func TestMilestoneService_Approve_SelfApprovalForbidden(t *testing.T) {
	d := setupMilestoneService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	milestoneID := uuid.New()
	actorID := uuid.New()

	d.campaignRepo.EXPECT().GetMilestone(ctx, milestoneID).Return(&domain.Milestone{
		ID:          milestoneID,
		Status:      domain.MilestoneStatusSubmitted,
		SubmittedBy: &actorID,
	}, nil)

	_, err := d.svc.Approve(ctx, ports.ApproveRequest{
		MilestoneID: milestoneID,
		ApproverID:  actorID,
	})
	require.Error(t, err)
	assert.Equal(t, "MIL_001", appErrCode(t, err))
}

func TestMilestoneService_Approve_ReleasesWhenGateOpen(t *testing.T) {
	d := setupMilestoneService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	campaignID := uuid.New()
	milestoneID := uuid.New()
	submitterID := uuid.New()
	approverID := uuid.New()
	tx := &mockTx{}

	d.campaignRepo.EXPECT().GetMilestone(ctx, milestoneID).Return(&domain.Milestone{
		ID:           milestoneID,
		CampaignID:   campaignID,
		Status:       domain.MilestoneStatusSubmitted,
		SubmittedBy:  &submitterID,
		LockedAmount: 200000,
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.campaignRepo.EXPECT().UpdateMilestone(ctx, tx, gomock.Any()).Return(nil)
	d.escrowSvc.EXPECT().Release(ctx, ports.ReleaseRequest{
		CampaignID:  campaignID,
		MilestoneID: milestoneID,
		CausationID: domain.BuildReleaseCausation(milestoneID),
	}).Return(&domain.LedgerEvent{Kind: domain.EventKindRelease, Amount: 200000}, nil)
	d.notifier.EXPECT().EnqueueNotify(ctx, gomock.Any()).Return(nil)
	d.campaignRepo.EXPECT().GetMilestone(ctx, milestoneID).Return(&domain.Milestone{
		ID:     milestoneID,
		Status: domain.MilestoneStatusReleased,
	}, nil)

	milestone, err := d.svc.Approve(ctx, ports.ApproveRequest{
		MilestoneID: milestoneID,
		ApproverID:  approverID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MilestoneStatusReleased, milestone.Status)
}

func TestMilestoneService_Approve_DefersWhenGateClosed(t *testing.T) {
	d := setupMilestoneService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	campaignID := uuid.New()
	milestoneID := uuid.New()
	submitterID := uuid.New()
	tx := &mockTx{}

	d.campaignRepo.EXPECT().GetMilestone(ctx, milestoneID).Return(&domain.Milestone{
		ID:           milestoneID,
		CampaignID:   campaignID,
		Status:       domain.MilestoneStatusSubmitted,
		SubmittedBy:  &submitterID,
		LockedAmount: 200000,
	}, nil)
	// First persist: status Approved. Second persist: PayoutPending set.
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil).Times(2)
	d.campaignRepo.EXPECT().UpdateMilestone(ctx, tx, gomock.Any()).Return(nil).Times(2)
	d.escrowSvc.EXPECT().Release(ctx, gomock.Any()).Return(nil, apperror.ErrPayoutNotReady())

	milestone, err := d.svc.Approve(ctx, ports.ApproveRequest{
		MilestoneID: milestoneID,
		ApproverID:  uuid.New(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MilestoneStatusApproved, milestone.Status)
	assert.True(t, milestone.PayoutPending)
	// Funds stay locked until the gate clears.
	assert.Equal(t, int64(200000), milestone.LockedAmount)
}

func TestMilestoneService_ReleasePendingForCreator(t *testing.T) {
	d := setupMilestoneService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	creatorID := uuid.New()
	campaignID := uuid.New()
	m1 := uuid.New()
	m2 := uuid.New()

	d.campaignRepo.EXPECT().ListPayoutPending(ctx, creatorID).Return([]domain.Milestone{
		{ID: m1, CampaignID: campaignID, LockedAmount: 200000, PayoutPending: true},
		{ID: m2, CampaignID: campaignID, LockedAmount: 100000, PayoutPending: true},
	}, nil)
	d.escrowSvc.EXPECT().Release(ctx, ports.ReleaseRequest{
		CampaignID:  campaignID,
		MilestoneID: m1,
		CausationID: domain.BuildReleaseCausation(m1),
	}).Return(&domain.LedgerEvent{}, nil)
	d.escrowSvc.EXPECT().Release(ctx, ports.ReleaseRequest{
		CampaignID:  campaignID,
		MilestoneID: m2,
		CausationID: domain.BuildReleaseCausation(m2),
	}).Return(&domain.LedgerEvent{}, nil)
	d.notifier.EXPECT().EnqueueNotify(ctx, gomock.Any()).Return(nil).Times(2)

	err := d.svc.ReleasePendingForCreator(ctx, creatorID)
	require.NoError(t, err)
}

func TestMilestoneService_Dispute_FromSubmitted(t *testing.T) {
	d := setupMilestoneService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	milestoneID := uuid.New()
	tx := &mockTx{}

	d.campaignRepo.EXPECT().GetMilestone(ctx, milestoneID).Return(&domain.Milestone{
		ID:     milestoneID,
		Status: domain.MilestoneStatusSubmitted,
	}, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.campaignRepo.EXPECT().UpdateMilestone(ctx, tx, gomock.Any()).Return(nil)

	milestone, err := d.svc.Dispute(ctx, milestoneID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, domain.MilestoneStatusDisputed, milestone.Status)
}

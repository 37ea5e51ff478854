package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"escrow-ledger-engine/internal/core/domain"
	"escrow-ledger-engine/internal/core/ports"
	"escrow-ledger-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MilestoneServiceImpl implements ports.MilestoneService. Status moves are
// applied here; money moves are delegated to the escrow service so the
// ledger stays the only balance authority.
type MilestoneServiceImpl struct {
	campaignRepo ports.CampaignRepository
	escrowSvc    ports.EscrowService
	transactor   ports.DBTransactor
	notifier     ports.Notifier
	log          zerolog.Logger
}

// NewMilestoneService creates a new MilestoneServiceImpl.
func NewMilestoneService(
	campaignRepo ports.CampaignRepository,
	escrowSvc ports.EscrowService,
	transactor ports.DBTransactor,
	notifier ports.Notifier,
	log zerolog.Logger,
) *MilestoneServiceImpl {
	return &MilestoneServiceImpl{
		campaignRepo: campaignRepo,
		escrowSvc:    escrowSvc,
		transactor:   transactor,
		notifier:     notifier,
		log:          log,
	}
}

// Submit moves a milestone from Pending to Submitted.
func (s *MilestoneServiceImpl) Submit(ctx context.Context, req ports.SubmitRequest) (*domain.Milestone, error) {
	if req.SubmissionRef == "" {
		return nil, apperror.Validation("submission_ref is required")
	}

	milestone, err := s.campaignRepo.GetMilestone(ctx, req.MilestoneID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get milestone: %w", err))
	}
	if milestone == nil {
		return nil, apperror.ErrNotFound("milestone")
	}
	if !milestone.CanTransition(domain.MilestoneStatusSubmitted) {
		return nil, apperror.ErrForbiddenTransition(
			fmt.Sprintf("cannot submit milestone in status %s", milestone.Status))
	}

	milestone.Status = domain.MilestoneStatusSubmitted
	milestone.SubmissionRef = req.SubmissionRef
	milestone.SubmittedBy = &req.SubmitterID
	if err := s.persist(ctx, milestone); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("milestone_id", milestone.ID.String()).
		Str("submitted_by", req.SubmitterID.String()).
		Msg("milestone submitted")

	return milestone, nil
}

// Approve moves a milestone from Submitted to Approved and then attempts
// the release. A creator failing the payout gate leaves the milestone
// Approved with PayoutPending set; no funds move until the gate clears.
func (s *MilestoneServiceImpl) Approve(ctx context.Context, req ports.ApproveRequest) (*domain.Milestone, error) {
	milestone, err := s.campaignRepo.GetMilestone(ctx, req.MilestoneID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get milestone: %w", err))
	}
	if milestone == nil {
		return nil, apperror.ErrNotFound("milestone")
	}
	if !milestone.CanTransition(domain.MilestoneStatusApproved) {
		return nil, apperror.ErrForbiddenTransition(
			fmt.Sprintf("cannot approve milestone in status %s", milestone.Status))
	}
	if milestone.SubmittedBy != nil && *milestone.SubmittedBy == req.ApproverID {
		return nil, apperror.ErrForbiddenTransition("approver must differ from submitter")
	}

	milestone.Status = domain.MilestoneStatusApproved
	milestone.ApprovedBy = &req.ApproverID
	if err := s.persist(ctx, milestone); err != nil {
		return nil, err
	}

	return s.tryRelease(ctx, milestone)
}

// Dispute freezes a milestone pending manual resolution.
func (s *MilestoneServiceImpl) Dispute(ctx context.Context, milestoneID uuid.UUID, actorID uuid.UUID) (*domain.Milestone, error) {
	milestone, err := s.campaignRepo.GetMilestone(ctx, milestoneID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get milestone: %w", err))
	}
	if milestone == nil {
		return nil, apperror.ErrNotFound("milestone")
	}
	if !milestone.CanTransition(domain.MilestoneStatusDisputed) {
		return nil, apperror.ErrForbiddenTransition(
			fmt.Sprintf("cannot dispute milestone in status %s", milestone.Status))
	}

	milestone.Status = domain.MilestoneStatusDisputed
	milestone.PayoutPending = false
	if err := s.persist(ctx, milestone); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("milestone_id", milestone.ID.String()).
		Str("actor_id", actorID.String()).
		Msg("milestone disputed")

	return milestone, nil
}

// RefundLock returns a milestone's locked funds to the funding wallet.
func (s *MilestoneServiceImpl) RefundLock(ctx context.Context, milestoneID uuid.UUID, causationID string) (*domain.Milestone, error) {
	milestone, err := s.campaignRepo.GetMilestone(ctx, milestoneID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get milestone: %w", err))
	}
	if milestone == nil {
		return nil, apperror.ErrNotFound("milestone")
	}

	_, err = s.escrowSvc.Refund(ctx, ports.RefundRequest{
		CampaignID:  milestone.CampaignID,
		MilestoneID: milestone.ID,
		CausationID: causationID,
	})
	if err != nil {
		return nil, err
	}

	return s.campaignRepo.GetMilestone(ctx, milestoneID)
}

// ReleasePendingForCreator retries every milestone parked behind the payout
// gate once the creator's onboarding is approved. Failures are logged and
// skipped so one bad milestone cannot block the rest.
func (s *MilestoneServiceImpl) ReleasePendingForCreator(ctx context.Context, creatorID uuid.UUID) error {
	pending, err := s.campaignRepo.ListPayoutPending(ctx, creatorID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("list payout pending: %w", err))
	}

	for i := range pending {
		m := &pending[i]
		_, err := s.escrowSvc.Release(ctx, ports.ReleaseRequest{
			CampaignID:  m.CampaignID,
			MilestoneID: m.ID,
			CausationID: domain.BuildReleaseCausation(m.ID),
		})
		if err != nil {
			s.log.Error().Err(err).
				Str("milestone_id", m.ID.String()).
				Str("creator_id", creatorID.String()).
				Msg("deferred release retry failed")
			continue
		}
		s.notifyReleased(ctx, m.ID, m.LockedAmount)
	}
	return nil
}

// tryRelease attempts the release after approval. PayoutNotReady is a
// deferral, not a failure.
func (s *MilestoneServiceImpl) tryRelease(ctx context.Context, milestone *domain.Milestone) (*domain.Milestone, error) {
	_, err := s.escrowSvc.Release(ctx, ports.ReleaseRequest{
		CampaignID:  milestone.CampaignID,
		MilestoneID: milestone.ID,
		CausationID: domain.BuildReleaseCausation(milestone.ID),
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == "PAYOUT_001" {
			milestone.PayoutPending = true
			if perr := s.persist(ctx, milestone); perr != nil {
				return nil, perr
			}
			s.log.Info().
				Str("milestone_id", milestone.ID.String()).
				Msg("release deferred, creator payout onboarding incomplete")
			return milestone, nil
		}
		return nil, err
	}

	s.notifyReleased(ctx, milestone.ID, milestone.LockedAmount)
	return s.campaignRepo.GetMilestone(ctx, milestone.ID)
}

func (s *MilestoneServiceImpl) notifyReleased(ctx context.Context, milestoneID uuid.UUID, amount int64) {
	if s.notifier == nil {
		return
	}
	err := s.notifier.EnqueueNotify(ctx, ports.NotifyEvent{
		EventType: "milestone.released",
		SubjectID: milestoneID.String(),
		Detail:    fmt.Sprintf("released %d minor units", amount),
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("milestone_id", milestoneID.String()).Msg("failed to enqueue release notification")
	}
}

func (s *MilestoneServiceImpl) persist(ctx context.Context, milestone *domain.Milestone) error {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	milestone.UpdatedAt = time.Now().UTC()
	if err := s.campaignRepo.UpdateMilestone(ctx, dbTx, milestone); err != nil {
		return apperror.InternalError(fmt.Errorf("update milestone: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	return nil
}

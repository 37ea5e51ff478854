package service

import (
	"context"
	"fmt"
	"time"

	"escrow-ledger-engine/internal/core/domain"
	"escrow-ledger-engine/internal/core/ports"
	"escrow-ledger-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OnboardingServiceImpl implements ports.OnboardingService. It owns the
// per-creator onboarding record; webhooks and the reconciliation scheduler
// both funnel through ApplyProviderEvent.
type OnboardingServiceImpl struct {
	onboardingRepo ports.OnboardingRepository
	reconRepo      ports.ReconciliationRepository
	gateway        ports.PayoutGateway
	milestoneSvc   ports.MilestoneService
	notifier       ports.Notifier
	pollDelay      time.Duration
	log            zerolog.Logger
}

// NewOnboardingService creates a new OnboardingServiceImpl. pollDelay is
// the delay before the first reconciliation poll of a fresh session.
func NewOnboardingService(
	onboardingRepo ports.OnboardingRepository,
	reconRepo ports.ReconciliationRepository,
	gateway ports.PayoutGateway,
	milestoneSvc ports.MilestoneService,
	notifier ports.Notifier,
	pollDelay time.Duration,
	log zerolog.Logger,
) *OnboardingServiceImpl {
	return &OnboardingServiceImpl{
		onboardingRepo: onboardingRepo,
		reconRepo:      reconRepo,
		gateway:        gateway,
		milestoneSvc:   milestoneSvc,
		notifier:       notifier,
		pollDelay:      pollDelay,
		log:            log,
	}
}

// Initiate creates a hosted onboarding session for the creator. The local
// record only changes after the provider call succeeds, so a gateway
// failure is retryable with no cleanup.
func (s *OnboardingServiceImpl) Initiate(ctx context.Context, creatorID uuid.UUID) (*domain.OnboardingRecord, error) {
	now := time.Now().UTC()

	rec, err := s.onboardingRepo.Get(ctx, creatorID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get onboarding record: %w", err))
	}
	if rec == nil {
		rec = &domain.OnboardingRecord{
			CreatorID: creatorID,
			Status:    domain.OnboardingNotStarted,
			CreatedAt: now,
		}
	}
	if !rec.CanInitiate(now) {
		return nil, apperror.ErrForbiddenTransition(
			fmt.Sprintf("cannot initiate onboarding in status %s", rec.Status))
	}

	session, err := s.gateway.CreateOnboardingSession(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	rec.Status = domain.OnboardingLinkGenerated
	rec.ExternalEntityID = session.EntityID
	rec.OnboardingLink = session.Link
	rec.LinkExpiresAt = &session.ExpiresAt
	rec.LastProviderStatus = domain.ProviderStatusCreated
	rec.UpdatedAt = now
	if err := s.onboardingRepo.Upsert(ctx, rec); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("upsert onboarding record: %w", err))
	}

	if err := s.registerPoll(ctx, session.EntityID, now); err != nil {
		s.log.Warn().Err(err).Str("entity_id", session.EntityID).Msg("failed to register reconciliation task")
	}

	s.log.Info().
		Str("creator_id", creatorID.String()).
		Str("entity_id", session.EntityID).
		Msg("onboarding initiated")

	return rec, nil
}

// RegenerateLink refreshes the hosted link for an existing session without
// restarting the flow.
func (s *OnboardingServiceImpl) RegenerateLink(ctx context.Context, creatorID uuid.UUID) (*domain.OnboardingRecord, error) {
	rec, err := s.onboardingRepo.Get(ctx, creatorID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get onboarding record: %w", err))
	}
	if rec == nil || rec.ExternalEntityID == "" {
		return nil, apperror.ErrNotFound("onboarding record")
	}
	if rec.Status.IsTerminal() {
		return nil, apperror.ErrForbiddenTransition(
			fmt.Sprintf("cannot regenerate link in status %s", rec.Status))
	}

	session, err := s.gateway.RegenerateLink(ctx, rec.ExternalEntityID)
	if err != nil {
		return nil, err
	}

	rec.OnboardingLink = session.Link
	rec.LinkExpiresAt = &session.ExpiresAt
	rec.UpdatedAt = time.Now().UTC()
	if err := s.onboardingRepo.Upsert(ctx, rec); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("upsert onboarding record: %w", err))
	}

	return rec, nil
}

// ApplyProviderEvent folds an authenticated provider status into the state
// machine. Stale, duplicate and unknown statuses no-op, so the webhook and
// polling paths can race freely. Returns true when a transition happened.
func (s *OnboardingServiceImpl) ApplyProviderEvent(ctx context.Context, ev ports.ProviderEvent) (bool, error) {
	rec, err := s.onboardingRepo.GetByEntityID(ctx, ev.EntityID)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("get onboarding record: %w", err))
	}
	if rec == nil {
		return false, apperror.ErrNotFound("onboarding record")
	}

	if ev.Status == domain.ProviderStatusUnknown {
		s.log.Info().
			Str("entity_id", ev.EntityID).
			Msg("unrecognised provider status, no transition")
		return false, nil
	}

	next, changed := domain.NextOnboardingStatus(rec.Status, ev.Status)
	if !changed {
		return false, nil
	}

	rec.Status = next
	rec.LastProviderStatus = ev.Status
	rec.UpdatedAt = time.Now().UTC()
	if err := s.onboardingRepo.Upsert(ctx, rec); err != nil {
		return false, apperror.InternalError(fmt.Errorf("upsert onboarding record: %w", err))
	}

	s.log.Info().
		Str("creator_id", rec.CreatorID.String()).
		Str("entity_id", ev.EntityID).
		Str("status", string(next)).
		Msg("onboarding transition applied")

	if next.IsTerminal() {
		if err := s.reconRepo.Delete(ctx, domain.SubjectTypeOnboarding, ev.EntityID); err != nil {
			s.log.Warn().Err(err).Str("entity_id", ev.EntityID).Msg("failed to delete reconciliation task")
		}
		s.notifyTerminal(ctx, rec, next)
	}

	if next == domain.OnboardingApproved {
		// Payout gate cleared: retry every deferred release.
		if err := s.milestoneSvc.ReleasePendingForCreator(ctx, rec.CreatorID); err != nil {
			s.log.Error().Err(err).Str("creator_id", rec.CreatorID.String()).Msg("deferred release sweep failed")
		}
	}

	return true, nil
}

func (s *OnboardingServiceImpl) registerPoll(ctx context.Context, entityID string, now time.Time) error {
	return s.reconRepo.Upsert(ctx, &domain.ReconciliationTask{
		ID:          uuid.New(),
		SubjectType: domain.SubjectTypeOnboarding,
		SubjectID:   entityID,
		NextPollAt:  now.Add(s.pollDelay),
		Attempt:     0,
		Status:      domain.TaskStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *OnboardingServiceImpl) notifyTerminal(ctx context.Context, rec *domain.OnboardingRecord, status domain.OnboardingStatus) {
	if s.notifier == nil {
		return
	}
	eventType := "onboarding.approved"
	if status == domain.OnboardingRejected {
		eventType = "onboarding.rejected"
	}
	err := s.notifier.EnqueueNotify(ctx, ports.NotifyEvent{
		EventType: eventType,
		SubjectID: rec.CreatorID.String(),
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		s.log.Warn().Err(err).Str("creator_id", rec.CreatorID.String()).Msg("failed to enqueue onboarding notification")
	}
}

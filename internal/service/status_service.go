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

// StatusServiceImpl implements ports.StatusService. Every method is a pure
// read; no transitions, no side effects.
type StatusServiceImpl struct {
	onboardingRepo ports.OnboardingRepository
	walletRepo     ports.WalletRepository
	campaignRepo   ports.CampaignRepository
	reconRepo      ports.ReconciliationRepository
	log            zerolog.Logger
}

// NewStatusService creates a new StatusServiceImpl.
func NewStatusService(
	onboardingRepo ports.OnboardingRepository,
	walletRepo ports.WalletRepository,
	campaignRepo ports.CampaignRepository,
	reconRepo ports.ReconciliationRepository,
	log zerolog.Logger,
) *StatusServiceImpl {
	return &StatusServiceImpl{
		onboardingRepo: onboardingRepo,
		walletRepo:     walletRepo,
		campaignRepo:   campaignRepo,
		reconRepo:      reconRepo,
		log:            log,
	}
}

// OnboardingStatus derives the creator-facing onboarding view.
func (s *StatusServiceImpl) OnboardingStatus(ctx context.Context, creatorID uuid.UUID) (*ports.OnboardingStatusView, error) {
	rec, err := s.onboardingRepo.Get(ctx, creatorID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get onboarding record: %w", err))
	}
	if rec == nil {
		return &ports.OnboardingStatusView{
			OnboardingStatus: string(domain.OnboardingNotStarted),
			Reason:           "Payout onboarding has not been started",
		}, nil
	}

	now := time.Now().UTC()
	expired := rec.LinkExpired(now)

	view := &ports.OnboardingStatusView{
		OnboardingStatus: string(rec.Status),
		IsComplete:       rec.Status == domain.OnboardingApproved,
		IsActive:         rec.Status != domain.OnboardingNotStarted && !rec.Status.IsTerminal(),
		LinkExpired:      expired,
		Reason:           onboardingReason(rec.Status, expired),
	}
	if rec.OnboardingLink != "" && !expired {
		view.OnboardingLink = rec.OnboardingLink
	}
	if rec.ExternalBeneficiaryID != "" {
		masked := maskBeneficiary(rec.ExternalBeneficiaryID)
		view.BankDetails = &masked
	}
	return view, nil
}

// WalletSummary derives the funder-facing balance view.
func (s *StatusServiceImpl) WalletSummary(ctx context.Context, walletID uuid.UUID) (*ports.WalletSummaryView, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	pendingPayouts, err := s.campaignRepo.SumPayoutPendingByWallet(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("sum pending payouts: %w", err))
	}

	available := wallet.Available()
	var ratio float64
	if wallet.Deposited > 0 {
		ratio = float64(available) / float64(wallet.Deposited)
	}

	return &ports.WalletSummaryView{
		AvailableBalance: available,
		LiquidityRatio:   ratio,
		EscrowAmount:     wallet.Locked,
		PendingPayouts:   pendingPayouts,
		Currency:         wallet.Currency,
		Reason:           walletReason(wallet, pendingPayouts),
	}, nil
}

// StalledReconciliations lists tasks awaiting operator action.
func (s *StatusServiceImpl) StalledReconciliations(ctx context.Context) ([]domain.ReconciliationTask, error) {
	tasks, err := s.reconRepo.ListStalled(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list stalled tasks: %w", err))
	}
	return tasks, nil
}

func onboardingReason(status domain.OnboardingStatus, expired bool) string {
	switch status {
	case domain.OnboardingNotStarted:
		return "Payout onboarding has not been started"
	case domain.OnboardingLinkGenerated:
		if expired {
			return "Onboarding link has expired, regenerate to continue"
		}
		return "Waiting for the creator to open the onboarding link"
	case domain.OnboardingInProgress:
		return "Creator is completing onboarding with the payout provider"
	case domain.OnboardingPendingApproval:
		return "Payout provider is reviewing the submitted details"
	case domain.OnboardingApproved:
		return "Payouts are enabled"
	case domain.OnboardingRejected:
		return "Payout provider rejected onboarding, restart required"
	default:
		return string(status)
	}
}

func walletReason(w *domain.WalletBalance, pendingPayouts int64) string {
	switch {
	case w.Deposited == 0:
		return "No funds have been deposited"
	case w.Available() == 0:
		return "All deposited funds are locked, released or withdrawn"
	case pendingPayouts > 0:
		return fmt.Sprintf("%d minor units await creator payout onboarding", pendingPayouts)
	default:
		return "Funds available"
	}
}

// maskBeneficiary keeps only the last four characters visible.
func maskBeneficiary(id string) string {
	if len(id) <= 4 {
		return "****"
	}
	return "****" + id[len(id)-4:]
}

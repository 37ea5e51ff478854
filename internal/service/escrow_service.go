package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"escrow-ledger-engine/internal/core/domain"
	"escrow-ledger-engine/internal/core/ports"
	"escrow-ledger-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const causationTTL = 24 * time.Hour

// EscrowServiceImpl implements ports.EscrowService. Every operation admits
// at most one ledger event, inside a transaction that holds the wallet row
// lock. The wallet row is always locked before its campaign row.
type EscrowServiceImpl struct {
	ledgerRepo     ports.LedgerRepository
	walletRepo     ports.WalletRepository
	campaignRepo   ports.CampaignRepository
	onboardingRepo ports.OnboardingRepository
	causationCache ports.CausationCache
	transactor     ports.DBTransactor
	log            zerolog.Logger
}

// NewEscrowService creates a new EscrowServiceImpl.
func NewEscrowService(
	ledgerRepo ports.LedgerRepository,
	walletRepo ports.WalletRepository,
	campaignRepo ports.CampaignRepository,
	onboardingRepo ports.OnboardingRepository,
	causationCache ports.CausationCache,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *EscrowServiceImpl {
	return &EscrowServiceImpl{
		ledgerRepo:     ledgerRepo,
		walletRepo:     walletRepo,
		campaignRepo:   campaignRepo,
		onboardingRepo: onboardingRepo,
		causationCache: causationCache,
		transactor:     transactor,
		log:            log,
	}
}

// Deposit credits external funds into a wallet. The first deposit for a
// wallet ID creates its projection row.
func (s *EscrowServiceImpl) Deposit(ctx context.Context, req ports.DepositRequest) (*domain.LedgerEvent, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.CausationID == "" {
		return nil, apperror.Validation("causation_id is required")
	}

	if prior, err := s.checkCausation(ctx, req.CausationID, req.Strict); prior != nil || err != nil {
		return prior, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetForUpdate(ctx, dbTx, req.WalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		if err := s.walletRepo.Create(ctx, &domain.WalletBalance{
			WalletID:  req.WalletID,
			Currency:  req.Currency,
			UpdatedAt: time.Now().UTC(),
		}); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
		}
		wallet, err = s.walletRepo.GetForUpdate(ctx, dbTx, req.WalletID)
		if err != nil || wallet == nil {
			return nil, apperror.InternalError(fmt.Errorf("lock new wallet: %w", err))
		}
	}
	if req.Currency != wallet.Currency {
		return nil, apperror.ErrCurrencyMismatch()
	}

	event := s.newEvent(wallet, domain.EventKindDeposit, req.Amount, req.CausationID)
	if err := s.admit(ctx, dbTx, wallet, event); err != nil {
		return nil, err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.cacheEvent(ctx, event)

	s.log.Info().
		Str("wallet_id", wallet.WalletID.String()).
		Int64("amount", req.Amount).
		Int64("seq", event.Seq).
		Msg("deposit admitted")

	return event, nil
}

// AllocateToCampaign earmarks uncommitted wallet funds for a campaign.
func (s *EscrowServiceImpl) AllocateToCampaign(ctx context.Context, req ports.AllocateRequest) (*domain.LedgerEvent, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.CausationID == "" {
		return nil, apperror.Validation("causation_id is required")
	}

	if prior, err := s.checkCausation(ctx, req.CausationID, req.Strict); prior != nil || err != nil {
		return prior, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetForUpdate(ctx, dbTx, req.WalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	campaign, err := s.campaignRepo.GetForUpdate(ctx, dbTx, req.CampaignID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock campaign: %w", err))
	}
	if campaign == nil {
		return nil, apperror.ErrNotFound("campaign")
	}
	if campaign.WalletID != req.WalletID {
		return nil, apperror.Validation("campaign is not funded by this wallet")
	}

	// Guard against overcommitting funds already promised elsewhere.
	if wallet.Uncommitted() < req.Amount {
		return nil, apperror.ErrInsufficientFunds()
	}

	event := s.newEvent(wallet, domain.EventKindAllocate, req.Amount, req.CausationID)
	event.CampaignID = &campaign.ID
	if err := s.admit(ctx, dbTx, wallet, event); err != nil {
		return nil, err
	}

	campaign.Funded += req.Amount
	if err := s.campaignRepo.UpdateBalances(ctx, dbTx, campaign); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update campaign: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.cacheEvent(ctx, event)

	s.log.Info().
		Str("wallet_id", wallet.WalletID.String()).
		Str("campaign_id", campaign.ID.String()).
		Int64("amount", req.Amount).
		Msg("allocation admitted")

	return event, nil
}

// LockForMilestone reserves allocated campaign funds against a milestone.
func (s *EscrowServiceImpl) LockForMilestone(ctx context.Context, req ports.LockRequest) (*domain.LedgerEvent, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.CausationID == "" {
		return nil, apperror.Validation("causation_id is required")
	}

	if prior, err := s.checkCausation(ctx, req.CausationID, req.Strict); prior != nil || err != nil {
		return prior, err
	}

	// Unlocked read to learn the funding wallet, so lock order stays
	// wallet before campaign.
	campaignRef, err := s.campaignRepo.GetByID(ctx, req.CampaignID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get campaign: %w", err))
	}
	if campaignRef == nil {
		return nil, apperror.ErrNotFound("campaign")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, campaign, err := s.lockWalletAndCampaign(ctx, dbTx, campaignRef.WalletID, req.CampaignID)
	if err != nil {
		return nil, err
	}

	milestone, err := s.campaignRepo.GetMilestone(ctx, req.MilestoneID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get milestone: %w", err))
	}
	if milestone == nil || milestone.CampaignID != req.CampaignID {
		return nil, apperror.ErrNotFound("milestone")
	}
	if milestone.Status != domain.MilestoneStatusPending {
		return nil, apperror.ErrForbiddenTransition("funds can only be locked for a pending milestone")
	}
	if milestone.LockedAmount > 0 {
		return nil, apperror.Validation("milestone already has funds locked")
	}
	if campaign.Lockable() < req.Amount {
		return nil, apperror.ErrInsufficientFunds()
	}

	event := s.newEvent(wallet, domain.EventKindLock, req.Amount, req.CausationID)
	event.CampaignID = &campaign.ID
	event.MilestoneID = &milestone.ID
	if err := s.admit(ctx, dbTx, wallet, event); err != nil {
		return nil, err
	}

	campaign.Locked += req.Amount
	if err := s.campaignRepo.UpdateBalances(ctx, dbTx, campaign); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update campaign: %w", err))
	}
	milestone.LockedAmount = req.Amount
	if err := s.campaignRepo.UpdateMilestone(ctx, dbTx, milestone); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update milestone: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.cacheEvent(ctx, event)

	s.log.Info().
		Str("milestone_id", milestone.ID.String()).
		Int64("amount", req.Amount).
		Msg("milestone lock admitted")

	return event, nil
}

// Release moves a milestone's locked funds to the creator. The payout gate
// is checked before any write: an unapproved creator yields PayoutNotReady
// and the ledger stays untouched.
func (s *EscrowServiceImpl) Release(ctx context.Context, req ports.ReleaseRequest) (*domain.LedgerEvent, error) {
	causationID := req.CausationID
	if causationID == "" {
		causationID = domain.BuildReleaseCausation(req.MilestoneID)
	}

	if prior, err := s.checkCausation(ctx, causationID, false); prior != nil || err != nil {
		return prior, err
	}

	campaignRef, err := s.campaignRepo.GetByID(ctx, req.CampaignID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get campaign: %w", err))
	}
	if campaignRef == nil {
		return nil, apperror.ErrNotFound("campaign")
	}

	// Payout gate: the receiving creator must have approved onboarding.
	rec, err := s.onboardingRepo.Get(ctx, campaignRef.CreatorID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get onboarding record: %w", err))
	}
	if rec == nil || rec.Status != domain.OnboardingApproved {
		return nil, apperror.ErrPayoutNotReady()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, campaign, err := s.lockWalletAndCampaign(ctx, dbTx, campaignRef.WalletID, req.CampaignID)
	if err != nil {
		return nil, err
	}

	milestone, err := s.campaignRepo.GetMilestone(ctx, req.MilestoneID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get milestone: %w", err))
	}
	if milestone == nil || milestone.CampaignID != req.CampaignID {
		return nil, apperror.ErrNotFound("milestone")
	}
	if milestone.LockedAmount <= 0 {
		return nil, apperror.ErrForbiddenTransition("milestone has no locked funds")
	}
	if !milestone.CanTransition(domain.MilestoneStatusReleased) {
		return nil, apperror.ErrForbiddenTransition(
			fmt.Sprintf("cannot release milestone in status %s", milestone.Status))
	}

	amount := milestone.LockedAmount
	event := s.newEvent(wallet, domain.EventKindRelease, amount, causationID)
	event.CampaignID = &campaign.ID
	event.MilestoneID = &milestone.ID
	if err := s.admit(ctx, dbTx, wallet, event); err != nil {
		return nil, err
	}

	campaign.Locked -= amount
	campaign.Released += amount
	if err := s.campaignRepo.UpdateBalances(ctx, dbTx, campaign); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update campaign: %w", err))
	}
	milestone.Status = domain.MilestoneStatusReleased
	milestone.PayoutPending = false
	if err := s.campaignRepo.UpdateMilestone(ctx, dbTx, milestone); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update milestone: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.cacheEvent(ctx, event)

	s.log.Info().
		Str("milestone_id", milestone.ID.String()).
		Str("creator_id", campaign.CreatorID.String()).
		Int64("amount", amount).
		Msg("milestone release admitted")

	return event, nil
}

// Refund returns a milestone's locked funds to the wallet's uncommitted pool.
func (s *EscrowServiceImpl) Refund(ctx context.Context, req ports.RefundRequest) (*domain.LedgerEvent, error) {
	causationID := req.CausationID
	if causationID == "" {
		causationID = domain.BuildRefundCausation(req.MilestoneID)
	}

	if prior, err := s.checkCausation(ctx, causationID, false); prior != nil || err != nil {
		return prior, err
	}

	campaignRef, err := s.campaignRepo.GetByID(ctx, req.CampaignID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get campaign: %w", err))
	}
	if campaignRef == nil {
		return nil, apperror.ErrNotFound("campaign")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, campaign, err := s.lockWalletAndCampaign(ctx, dbTx, campaignRef.WalletID, req.CampaignID)
	if err != nil {
		return nil, err
	}

	milestone, err := s.campaignRepo.GetMilestone(ctx, req.MilestoneID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get milestone: %w", err))
	}
	if milestone == nil || milestone.CampaignID != req.CampaignID {
		return nil, apperror.ErrNotFound("milestone")
	}
	if !milestone.Refundable() {
		return nil, apperror.ErrForbiddenTransition(
			fmt.Sprintf("cannot refund milestone in status %s", milestone.Status))
	}

	amount := milestone.LockedAmount
	event := s.newEvent(wallet, domain.EventKindRefund, amount, causationID)
	event.CampaignID = &campaign.ID
	event.MilestoneID = &milestone.ID
	if err := s.admit(ctx, dbTx, wallet, event); err != nil {
		return nil, err
	}

	campaign.Locked -= amount
	campaign.Funded -= amount
	if err := s.campaignRepo.UpdateBalances(ctx, dbTx, campaign); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update campaign: %w", err))
	}
	milestone.LockedAmount = 0
	if err := s.campaignRepo.UpdateMilestone(ctx, dbTx, milestone); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update milestone: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.cacheEvent(ctx, event)

	s.log.Info().
		Str("milestone_id", milestone.ID.String()).
		Int64("amount", amount).
		Msg("milestone refund admitted")

	return event, nil
}

// Withdraw moves uncommitted funds back out of the wallet.
func (s *EscrowServiceImpl) Withdraw(ctx context.Context, req ports.WithdrawRequest) (*domain.LedgerEvent, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.CausationID == "" {
		return nil, apperror.Validation("causation_id is required")
	}

	if prior, err := s.checkCausation(ctx, req.CausationID, req.Strict); prior != nil || err != nil {
		return prior, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetForUpdate(ctx, dbTx, req.WalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	if wallet.Uncommitted() < req.Amount {
		return nil, apperror.ErrInsufficientFunds()
	}

	event := s.newEvent(wallet, domain.EventKindWithdraw, req.Amount, req.CausationID)
	if err := s.admit(ctx, dbTx, wallet, event); err != nil {
		return nil, err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	s.cacheEvent(ctx, event)

	s.log.Info().
		Str("wallet_id", wallet.WalletID.String()).
		Int64("amount", req.Amount).
		Msg("withdrawal admitted")

	return event, nil
}

// RebuildWallet replays the full event history into a fresh projection.
// Comparing it against the cached row audits projection drift.
func (s *EscrowServiceImpl) RebuildWallet(ctx context.Context, walletID uuid.UUID) (*domain.WalletBalance, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	events, err := s.ledgerRepo.ListByWallet(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list wallet events: %w", err))
	}
	return domain.ReplayWallet(walletID, wallet.Currency, events), nil
}

// checkCausation runs the two-layer causation check: Redis fast path, then
// the ledger's unique index. A prior event is returned as-is, or rejected
// with DuplicateCausation when strict.
func (s *EscrowServiceImpl) checkCausation(ctx context.Context, causationID string, strict bool) (*domain.LedgerEvent, error) {
	cached, err := s.causationCache.Get(ctx, causationID)
	if err != nil {
		s.log.Warn().Err(err).Str("causation_id", causationID).Msg("redis causation check failed, falling through to DB")
	}
	if cached != nil {
		if strict {
			return nil, apperror.ErrDuplicateCausation()
		}
		event := &domain.LedgerEvent{}
		if err := json.Unmarshal(cached, event); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("unmarshal cached event: %w", err))
		}
		return event, nil
	}

	prior, err := s.ledgerRepo.GetByCausation(ctx, causationID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("db causation check: %w", err))
	}
	if prior != nil {
		if strict {
			return nil, apperror.ErrDuplicateCausation()
		}
		return prior, nil
	}
	return nil, nil
}

// admit appends the event and folds it into the locked wallet projection.
func (s *EscrowServiceImpl) admit(ctx context.Context, dbTx pgx.Tx, wallet *domain.WalletBalance, event *domain.LedgerEvent) error {
	if err := s.ledgerRepo.Append(ctx, dbTx, event); err != nil {
		return apperror.InternalError(fmt.Errorf("append event: %w", err))
	}
	wallet.Apply(*event)
	if err := s.walletRepo.Update(ctx, dbTx, wallet); err != nil {
		return apperror.InternalError(fmt.Errorf("update wallet: %w", err))
	}
	return nil
}

func (s *EscrowServiceImpl) lockWalletAndCampaign(ctx context.Context, dbTx pgx.Tx, walletID, campaignID uuid.UUID) (*domain.WalletBalance, *domain.CampaignEscrow, error) {
	wallet, err := s.walletRepo.GetForUpdate(ctx, dbTx, walletID)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, nil, apperror.ErrNotFound("wallet")
	}
	campaign, err := s.campaignRepo.GetForUpdate(ctx, dbTx, campaignID)
	if err != nil {
		return nil, nil, apperror.InternalError(fmt.Errorf("lock campaign: %w", err))
	}
	if campaign == nil {
		return nil, nil, apperror.ErrNotFound("campaign")
	}
	return wallet, campaign, nil
}

func (s *EscrowServiceImpl) newEvent(wallet *domain.WalletBalance, kind domain.EventKind, amount int64, causationID string) *domain.LedgerEvent {
	return &domain.LedgerEvent{
		ID:          uuid.New(),
		WalletID:    wallet.WalletID,
		Kind:        kind,
		Amount:      amount,
		Currency:    wallet.Currency,
		CausationID: causationID,
		CreatedAt:   time.Now().UTC(),
	}
}

// cacheEvent stores the admitted event in Redis (best-effort).
func (s *EscrowServiceImpl) cacheEvent(ctx context.Context, event *domain.LedgerEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.causationCache.Set(ctx, event.CausationID, data, causationTTL); err != nil {
		s.log.Warn().Err(err).Str("causation_id", event.CausationID).Msg("failed to cache causation in redis")
	}
}

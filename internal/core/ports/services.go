package ports

import (
	"context"
	"time"

	"escrow-ledger-engine/internal/core/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=services.go -destination=mocks/services.go -package=mocks

// CausationCache is the Redis-layer causation fast path: a cache of the
// ledger event produced for a causation ID, consulted before the DB check.
type CausationCache interface {
	Get(ctx context.Context, causationID string) ([]byte, error) // cached event JSON or nil
	Set(ctx context.Context, causationID string, value []byte, ttl time.Duration) error
}

// SignatureService handles HMAC-SHA256 signing and verification for
// inbound provider webhooks and outbound notify events.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// --- Escrow Accounting Engine ---

// EscrowService admits LedgerEvents after enforcing balance invariants and
// keeps the wallet/campaign projections consistent with the ledger.
// Every operation is idempotent on CausationID unless Strict is set, in
// which case a duplicate fails with DuplicateCausation.
type EscrowService interface {
	Deposit(ctx context.Context, req DepositRequest) (*domain.LedgerEvent, error)
	AllocateToCampaign(ctx context.Context, req AllocateRequest) (*domain.LedgerEvent, error)
	LockForMilestone(ctx context.Context, req LockRequest) (*domain.LedgerEvent, error)
	Release(ctx context.Context, req ReleaseRequest) (*domain.LedgerEvent, error)
	Refund(ctx context.Context, req RefundRequest) (*domain.LedgerEvent, error)
	Withdraw(ctx context.Context, req WithdrawRequest) (*domain.LedgerEvent, error)
	// RebuildWallet replays the full event history into a fresh projection,
	// used to audit the cached projection against the ledger.
	RebuildWallet(ctx context.Context, walletID uuid.UUID) (*domain.WalletBalance, error)
}

type DepositRequest struct {
	WalletID    uuid.UUID
	Amount      int64
	Currency    string
	CausationID string
	Strict      bool
}

type AllocateRequest struct {
	WalletID    uuid.UUID
	CampaignID  uuid.UUID
	Amount      int64
	CausationID string
	Strict      bool
}

type LockRequest struct {
	CampaignID  uuid.UUID
	MilestoneID uuid.UUID
	Amount      int64
	CausationID string
	Strict      bool
}

type ReleaseRequest struct {
	CampaignID  uuid.UUID
	MilestoneID uuid.UUID
	CausationID string
}

type RefundRequest struct {
	CampaignID  uuid.UUID
	MilestoneID uuid.UUID
	CausationID string
}

type WithdrawRequest struct {
	WalletID    uuid.UUID
	Amount      int64
	CausationID string
	Strict      bool
}

// --- Milestone Release Workflow ---

// MilestoneService drives a milestone from Pending to Released or Disputed.
type MilestoneService interface {
	Submit(ctx context.Context, req SubmitRequest) (*domain.Milestone, error)
	Approve(ctx context.Context, req ApproveRequest) (*domain.Milestone, error)
	Dispute(ctx context.Context, milestoneID uuid.UUID, actorID uuid.UUID) (*domain.Milestone, error)
	RefundLock(ctx context.Context, milestoneID uuid.UUID, causationID string) (*domain.Milestone, error)
	// ReleasePendingForCreator retries every milestone stuck with
	// payout_pending once the creator's payout gate clears.
	ReleasePendingForCreator(ctx context.Context, creatorID uuid.UUID) error
}

type SubmitRequest struct {
	MilestoneID   uuid.UUID
	SubmitterID   uuid.UUID
	SubmissionRef string
}

type ApproveRequest struct {
	MilestoneID uuid.UUID
	ApproverID  uuid.UUID
}

// --- Payout Onboarding State Machine ---

// ProviderEvent is a parsed, authenticated provider callback or poll result.
type ProviderEvent struct {
	EntityID string
	Status   domain.ProviderStatus
}

// ProviderEventApplier is the single transition function both webhooks and
// the reconciliation scheduler funnel through, so concurrent arrival
// produces the same end state regardless of order.
type ProviderEventApplier interface {
	// ApplyProviderEvent returns true if a transition was applied, false on
	// an idempotent no-op.
	ApplyProviderEvent(ctx context.Context, ev ProviderEvent) (bool, error)
}

// OnboardingService owns the per-creator onboarding state machine.
type OnboardingService interface {
	ProviderEventApplier
	Initiate(ctx context.Context, creatorID uuid.UUID) (*domain.OnboardingRecord, error)
	RegenerateLink(ctx context.Context, creatorID uuid.UUID) (*domain.OnboardingRecord, error)
}

// --- External Payout Gateway Adapter ---

// OnboardingSession is the result of creating or refreshing a hosted
// onboarding session with the provider.
type OnboardingSession struct {
	EntityID  string
	Link      string
	ExpiresAt time.Time
}

// PayoutGateway is the boundary to the third-party payout provider.
type PayoutGateway interface {
	CreateOnboardingSession(ctx context.Context, creatorID uuid.UUID) (*OnboardingSession, error)
	RegenerateLink(ctx context.Context, entityID string) (*OnboardingSession, error)
	PullStatus(ctx context.Context, entityID string) (domain.ProviderStatus, error)
	// ParseWebhook authenticates and parses a raw provider callback.
	// Fails with InvalidSignature when verification fails.
	ParseWebhook(payload []byte, signatureHeader string) (*ProviderEvent, error)
}

// --- Status Read Models ---

// OnboardingStatusView is the side-effect-free onboarding view for the UI.
type OnboardingStatusView struct {
	OnboardingStatus string  `json:"onboarding_status"`
	IsComplete       bool    `json:"is_complete"`
	IsActive         bool    `json:"is_active"`
	OnboardingLink   string  `json:"onboarding_link,omitempty"`
	LinkExpired      bool    `json:"link_expired"`
	BankDetails      *string `json:"bank_details,omitempty"`
	Reason           string  `json:"reason"`
}

// WalletSummaryView is the side-effect-free balance view for the UI.
type WalletSummaryView struct {
	AvailableBalance int64   `json:"available_balance"`
	LiquidityRatio   float64 `json:"liquidity_ratio"`
	EscrowAmount     int64   `json:"escrow_amount"`
	PendingPayouts   int64   `json:"pending_payouts"`
	Currency         string  `json:"currency"`
	Reason           string  `json:"reason"`
}

// StatusService exposes pure derived views; it never writes.
type StatusService interface {
	OnboardingStatus(ctx context.Context, creatorID uuid.UUID) (*OnboardingStatusView, error)
	WalletSummary(ctx context.Context, walletID uuid.UUID) (*WalletSummaryView, error)
	StalledReconciliations(ctx context.Context) ([]domain.ReconciliationTask, error)
}

// --- Notification Collaborator ---

// NotifyEvent is handed to the external notification collaborator.
// Delivery mechanics beyond enqueueing are out of scope.
type NotifyEvent struct {
	EventType string `json:"event_type"`
	SubjectID string `json:"subject_id"`
	Detail    string `json:"detail,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Notifier enqueues notify events for asynchronous delivery.
type Notifier interface {
	EnqueueNotify(ctx context.Context, event NotifyEvent) error
}

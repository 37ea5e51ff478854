package domain

import (
	"time"

	"github.com/google/uuid"
)

// OnboardingStatus represents the local state of a creator's payout
// onboarding with the external provider.
type OnboardingStatus string

const (
	OnboardingNotStarted      OnboardingStatus = "NOT_STARTED"
	OnboardingLinkGenerated   OnboardingStatus = "LINK_GENERATED"
	OnboardingInProgress      OnboardingStatus = "IN_PROGRESS"
	OnboardingPendingApproval OnboardingStatus = "PENDING_APPROVAL"
	OnboardingApproved        OnboardingStatus = "APPROVED"
	OnboardingRejected        OnboardingStatus = "REJECTED"
)

// IsTerminal returns true for the terminal states of an onboarding attempt.
// Rejected can restart the whole flow via initiate.
func (s OnboardingStatus) IsTerminal() bool {
	return s == OnboardingApproved || s == OnboardingRejected
}

// statusRank orders onboarding states along the flow. Webhook application
// is forward-only: an incoming event mapping to a rank at or below the
// current one is a stale duplicate and must no-op.
var statusRank = map[OnboardingStatus]int{
	OnboardingNotStarted:      0,
	OnboardingLinkGenerated:   1,
	OnboardingInProgress:      2,
	OnboardingPendingApproval: 3,
	OnboardingApproved:        4,
	OnboardingRejected:        4,
}

// ProviderStatus is the closed set of payout-provider statuses recognised
// at the adapter boundary. Anything else parses to ProviderStatusUnknown,
// which never causes a transition.
type ProviderStatus string

const (
	ProviderStatusCreated   ProviderStatus = "created"
	ProviderStatusStarted   ProviderStatus = "started"
	ProviderStatusSubmitted ProviderStatus = "submitted"
	ProviderStatusApproved  ProviderStatus = "approved"
	ProviderStatusRejected  ProviderStatus = "rejected"
	ProviderStatusUnknown   ProviderStatus = "unknown"
)

// ParseProviderStatus maps a raw provider string onto the closed set.
func ParseProviderStatus(raw string) ProviderStatus {
	switch ProviderStatus(raw) {
	case ProviderStatusCreated, ProviderStatusStarted, ProviderStatusSubmitted,
		ProviderStatusApproved, ProviderStatusRejected:
		return ProviderStatus(raw)
	default:
		return ProviderStatusUnknown
	}
}

// localStatusFor maps a provider status to the local state it implies.
var localStatusFor = map[ProviderStatus]OnboardingStatus{
	ProviderStatusCreated:   OnboardingLinkGenerated,
	ProviderStatusStarted:   OnboardingInProgress,
	ProviderStatusSubmitted: OnboardingPendingApproval,
	ProviderStatusApproved:  OnboardingApproved,
	ProviderStatusRejected:  OnboardingRejected,
}

// NextOnboardingStatus computes the transition implied by a provider event.
// It is idempotent and order-tolerant: events apply only when they move the
// record forward, so [A, B] and [B, A] converge to the same terminal state
// and duplicates no-op. Unknown statuses never transition.
func NextOnboardingStatus(current OnboardingStatus, provider ProviderStatus) (OnboardingStatus, bool) {
	next, ok := localStatusFor[provider]
	if !ok {
		return current, false
	}
	if current.IsTerminal() {
		return current, false
	}
	if statusRank[next] <= statusRank[current] {
		return current, false
	}
	return next, true
}

// OnboardingRecord tracks one creator's payout onboarding. It is owned
// exclusively by the onboarding state machine; the accounting engine only
// reads Status == Approved as the payout gate.
type OnboardingRecord struct {
	CreatorID             uuid.UUID        `json:"creator_id"`
	Status                OnboardingStatus `json:"status"`
	ExternalEntityID      string           `json:"external_entity_id,omitempty"`
	ExternalBeneficiaryID string           `json:"external_beneficiary_id,omitempty"`
	OnboardingLink        string           `json:"onboarding_link,omitempty"`
	LinkExpiresAt         *time.Time       `json:"link_expires_at,omitempty"`
	LastProviderStatus    ProviderStatus   `json:"last_provider_status,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
}

// LinkExpired is evaluated lazily on read: expiry never stores a
// transition, it just gates link reuse until regenerate is called.
func (r *OnboardingRecord) LinkExpired(now time.Time) bool {
	return r.Status == OnboardingLinkGenerated &&
		r.LinkExpiresAt != nil && now.After(*r.LinkExpiresAt)
}

// CanInitiate reports whether a fresh hosted session may be created:
// from NotStarted, after a rejection, or when a generated link has expired.
func (r *OnboardingRecord) CanInitiate(now time.Time) bool {
	switch r.Status {
	case OnboardingNotStarted, OnboardingRejected:
		return true
	case OnboardingLinkGenerated:
		return r.LinkExpired(now)
	default:
		return false
	}
}

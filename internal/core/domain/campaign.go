package domain

import (
	"time"

	"github.com/google/uuid"
)

// CampaignEscrow tracks how much of a campaign's budget has been funded,
// locked against milestones, and released to the creator. Funded, Locked
// and Released are cached projections of the campaign-scoped LedgerEvents.
type CampaignEscrow struct {
	ID           uuid.UUID `json:"id"`
	WalletID     uuid.UUID `json:"wallet_id"`
	CreatorID    uuid.UUID `json:"creator_id"`
	Currency     string    `json:"currency"`
	TargetBudget int64     `json:"target_budget"`
	Funded       int64     `json:"funded"`
	Locked       int64     `json:"locked"`
	Released     int64     `json:"released"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Lockable returns the funded amount not yet locked or released.
func (c *CampaignEscrow) Lockable() int64 {
	return c.Funded - c.Locked - c.Released
}

// MilestoneStatus represents the lifecycle state of a milestone.
type MilestoneStatus string

const (
	MilestoneStatusPending   MilestoneStatus = "PENDING"
	MilestoneStatusSubmitted MilestoneStatus = "SUBMITTED"
	MilestoneStatusApproved  MilestoneStatus = "APPROVED"
	MilestoneStatusReleased  MilestoneStatus = "RELEASED"
	MilestoneStatusDisputed  MilestoneStatus = "DISPUTED"
)

// Milestone is a single deliverable of a campaign with funds locked
// against it. LockedAmount is zero until a Lock event is admitted.
type Milestone struct {
	ID            uuid.UUID       `json:"id"`
	CampaignID    uuid.UUID       `json:"campaign_id"`
	Amount        int64           `json:"amount"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	Status        MilestoneStatus `json:"status"`
	LockedAmount  int64           `json:"locked_amount"`
	SubmissionRef string          `json:"submission_ref,omitempty"`
	SubmittedBy   *uuid.UUID      `json:"submitted_by,omitempty"`
	ApprovedBy    *uuid.UUID      `json:"approved_by,omitempty"`
	PayoutPending bool            `json:"payout_pending"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// milestoneTransitions is the closed set of legal status transitions.
// Disputed is terminal pending manual resolution, which re-enters at
// Submitted or Pending.
var milestoneTransitions = map[MilestoneStatus][]MilestoneStatus{
	MilestoneStatusPending:   {MilestoneStatusSubmitted},
	MilestoneStatusSubmitted: {MilestoneStatusApproved, MilestoneStatusDisputed},
	MilestoneStatusApproved:  {MilestoneStatusReleased, MilestoneStatusDisputed},
	MilestoneStatusDisputed:  {MilestoneStatusSubmitted, MilestoneStatusPending},
	MilestoneStatusReleased:  {},
}

// CanTransition reports whether moving from the milestone's current status
// to next is legal.
func (m *Milestone) CanTransition(next MilestoneStatus) bool {
	for _, s := range milestoneTransitions[m.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true once funds have been released.
func (m *Milestone) IsTerminal() bool {
	return m.Status == MilestoneStatusReleased
}

// Refundable reports whether the milestone's lock may be refunded back to
// the funding wallet. Only legal from Pending or Disputed with a live lock.
func (m *Milestone) Refundable() bool {
	return m.LockedAmount > 0 &&
		(m.Status == MilestoneStatusPending || m.Status == MilestoneStatusDisputed)
}

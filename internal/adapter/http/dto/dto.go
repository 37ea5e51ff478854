package dto

// Write operations read the Idempotency-Key header into the causation ID;
// a body-level causation_id wins when both are present.

// DepositRequest is the request body for a wallet deposit.
type DepositRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Currency    string `json:"currency" binding:"required,len=3"`
	CausationID string `json:"causation_id,omitempty" binding:"omitempty,safe_id,max=120"`
	Strict      bool   `json:"strict,omitempty"`
}

// WithdrawRequest is the request body for a wallet withdrawal.
type WithdrawRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	CausationID string `json:"causation_id,omitempty" binding:"omitempty,safe_id,max=120"`
	Strict      bool   `json:"strict,omitempty"`
}

// CreateCampaignRequest is the request body for creating a campaign escrow.
type CreateCampaignRequest struct {
	WalletID     string `json:"wallet_id" binding:"required,uuid"`
	CreatorID    string `json:"creator_id" binding:"required,uuid"`
	Currency     string `json:"currency" binding:"required,len=3"`
	TargetBudget int64  `json:"target_budget" binding:"required,gt=0"`
}

// AllocateRequest is the request body for allocating wallet funds to a campaign.
type AllocateRequest struct {
	WalletID    string `json:"wallet_id" binding:"required,uuid"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	CausationID string `json:"causation_id,omitempty" binding:"omitempty,safe_id,max=120"`
	Strict      bool   `json:"strict,omitempty"`
}

// CreateMilestoneRequest is the request body for adding a milestone to a campaign.
type CreateMilestoneRequest struct {
	Amount  int64   `json:"amount" binding:"required,gt=0"`
	DueDate *string `json:"due_date,omitempty"` // RFC 3339
}

// LockMilestoneRequest is the request body for locking escrow against a milestone.
type LockMilestoneRequest struct {
	CampaignID  string `json:"campaign_id" binding:"required,uuid"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	CausationID string `json:"causation_id,omitempty" binding:"omitempty,safe_id,max=120"`
	Strict      bool   `json:"strict,omitempty"`
}

// SubmitMilestoneRequest is the request body for submitting milestone work.
type SubmitMilestoneRequest struct {
	SubmitterID   string `json:"submitter_id" binding:"required,uuid"`
	SubmissionRef string `json:"submission_ref" binding:"required,max=512"`
}

// ApproveMilestoneRequest is the request body for approving a milestone.
type ApproveMilestoneRequest struct {
	ApproverID string `json:"approver_id" binding:"required,uuid"`
}

// DisputeMilestoneRequest is the request body for disputing a milestone.
type DisputeMilestoneRequest struct {
	ActorID string `json:"actor_id" binding:"required,uuid"`
}

// LedgerEventResponse is the wire form of a ledger event.
type LedgerEventResponse struct {
	ID          string  `json:"id"`
	WalletID    string  `json:"wallet_id"`
	CampaignID  *string `json:"campaign_id,omitempty"`
	MilestoneID *string `json:"milestone_id,omitempty"`
	Kind        string  `json:"kind"`
	Amount      int64   `json:"amount"`
	Currency    string  `json:"currency"`
	Seq         int64   `json:"seq"`
	CausationID string  `json:"causation_id"`
	CreatedAt   string  `json:"created_at"`
}

// MilestoneResponse is the wire form of a milestone.
type MilestoneResponse struct {
	ID            string  `json:"id"`
	CampaignID    string  `json:"campaign_id"`
	Amount        int64   `json:"amount"`
	DueDate       *string `json:"due_date,omitempty"`
	Status        string  `json:"status"`
	LockedAmount  int64   `json:"locked_amount"`
	SubmissionRef string  `json:"submission_ref,omitempty"`
	PayoutPending bool    `json:"payout_pending"`
	CreatedAt     string  `json:"created_at"`
}

// CampaignResponse is the wire form of a campaign escrow with its milestones.
type CampaignResponse struct {
	ID           string              `json:"id"`
	WalletID     string              `json:"wallet_id"`
	CreatorID    string              `json:"creator_id"`
	Currency     string              `json:"currency"`
	TargetBudget int64               `json:"target_budget"`
	Funded       int64               `json:"funded"`
	Locked       int64               `json:"locked"`
	Released     int64               `json:"released"`
	Lockable     int64               `json:"lockable"`
	Milestones   []MilestoneResponse `json:"milestones,omitempty"`
	CreatedAt    string              `json:"created_at"`
}

// OnboardingResponse is the wire form of an onboarding record after a write.
type OnboardingResponse struct {
	CreatorID          string  `json:"creator_id"`
	Status             string  `json:"status"`
	OnboardingLink     string  `json:"onboarding_link,omitempty"`
	LinkExpiresAt      *string `json:"link_expires_at,omitempty"`
	LastProviderStatus string  `json:"last_provider_status,omitempty"`
}

// WebhookAckResponse tells the provider whether the event changed state.
type WebhookAckResponse struct {
	Applied bool `json:"applied"`
}

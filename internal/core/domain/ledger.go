package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventKind represents the kind of balance-affecting ledger event.
type EventKind string

const (
	EventKindDeposit  EventKind = "DEPOSIT"
	EventKindAllocate EventKind = "ALLOCATE"
	EventKindLock     EventKind = "LOCK"
	EventKindRelease  EventKind = "RELEASE"
	EventKindRefund   EventKind = "REFUND"
	EventKindWithdraw EventKind = "WITHDRAW"
)

// LedgerEvent is an immutable, append-only fact about money movement.
// Amounts are positive integers in minor units. Seq is assigned at append
// time and is monotonically increasing per wallet.
type LedgerEvent struct {
	ID          uuid.UUID  `json:"id"`
	WalletID    uuid.UUID  `json:"wallet_id"`
	CampaignID  *uuid.UUID `json:"campaign_id,omitempty"`
	MilestoneID *uuid.UUID `json:"milestone_id,omitempty"`
	Kind        EventKind  `json:"kind"`
	Amount      int64      `json:"amount"`
	Currency    string     `json:"currency"`
	Seq         int64      `json:"seq"`
	CausationID string     `json:"causation_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// WalletBalance is the cached projection of a wallet's ledger history.
// It is never the source of truth: it must always be reproducible by
// replaying the wallet's LedgerEvents in Seq order from a zero state.
type WalletBalance struct {
	WalletID  uuid.UUID `json:"wallet_id"`
	Currency  string    `json:"currency"`
	Deposited int64     `json:"deposited"`
	Allocated int64     `json:"allocated"`
	Locked    int64     `json:"locked"`
	Released  int64     `json:"released"`
	Withdrawn int64     `json:"withdrawn"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Available returns the spendable balance:
// deposited − locked − released − withdrawn.
func (w *WalletBalance) Available() int64 {
	return w.Deposited - w.Locked - w.Released - w.Withdrawn
}

// Uncommitted returns the funds not yet promised to any campaign:
// deposited − withdrawn − allocated. Allocate and Withdraw are guarded
// against this headroom so two concurrent allocations cannot overcommit.
func (w *WalletBalance) Uncommitted() int64 {
	return w.Deposited - w.Withdrawn - w.Allocated
}

// Apply folds a single ledger event into the projection. Events must be
// applied in Seq order.
func (w *WalletBalance) Apply(ev LedgerEvent) {
	switch ev.Kind {
	case EventKindDeposit:
		w.Deposited += ev.Amount
	case EventKindAllocate:
		w.Allocated += ev.Amount
	case EventKindLock:
		w.Locked += ev.Amount
	case EventKindRelease:
		w.Locked -= ev.Amount
		w.Released += ev.Amount
	case EventKindRefund:
		w.Locked -= ev.Amount
		w.Allocated -= ev.Amount
	case EventKindWithdraw:
		w.Withdrawn += ev.Amount
	}
	w.UpdatedAt = ev.CreatedAt
}

// ReplayWallet rebuilds a wallet projection from scratch by folding the
// full event history.
func ReplayWallet(walletID uuid.UUID, currency string, events []LedgerEvent) *WalletBalance {
	w := &WalletBalance{WalletID: walletID, Currency: currency}
	for _, ev := range events {
		w.Apply(ev)
	}
	return w
}

// BuildReleaseCausation returns the deterministic causation ID used for a
// milestone release, so gated retries stay idempotent.
func BuildReleaseCausation(milestoneID uuid.UUID) string {
	return "release:" + milestoneID.String()
}

// BuildRefundCausation returns the deterministic causation ID used for a
// milestone refund.
func BuildRefundCausation(milestoneID uuid.UUID) string {
	return "refund:" + milestoneID.String()
}

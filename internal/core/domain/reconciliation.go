package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubjectType identifies what a reconciliation task is polling for.
type SubjectType string

const (
	SubjectTypeOnboarding SubjectType = "ONBOARDING"
	SubjectTypePayout     SubjectType = "PAYOUT"
)

// TaskStatus is the scheduler-visible state of a reconciliation task.
type TaskStatus string

const (
	TaskStatusActive  TaskStatus = "ACTIVE"
	TaskStatusStalled TaskStatus = "STALLED"
)

// ReconciliationTask is an ephemeral, scheduler-owned record that re-pulls
// provider status for a subject not yet in a terminal state, covering
// missed webhooks. Removed once the subject reaches a terminal state;
// marked Stalled after the attempt ceiling and surfaced to an operator.
type ReconciliationTask struct {
	ID          uuid.UUID   `json:"id"`
	SubjectType SubjectType `json:"subject_type"`
	SubjectID   string      `json:"subject_id"` // provider entity ID
	NextPollAt  time.Time   `json:"next_poll_at"`
	Attempt     int         `json:"attempt"`
	Status      TaskStatus  `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NextBackoff computes the delay before the given attempt:
// base doubled per attempt, capped.
func NextBackoff(base, cap time.Duration, attempt int) time.Duration {
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= cap {
			return cap
		}
	}
	if d > cap {
		return cap
	}
	return d
}

package scheduler

import (
	"context"
	"time"

	"escrow-ledger-engine/config"
	"escrow-ledger-engine/internal/core/domain"
	"escrow-ledger-engine/internal/core/ports"

	"github.com/rs/zerolog"
)

// Reconciler periodically re-pulls provider status for subjects that have
// not reached a terminal state, covering lost webhooks. Poll results go
// through the same transition function webhooks use, so the two paths can
// never disagree.
type Reconciler struct {
	reconRepo ports.ReconciliationRepository
	gateway   ports.PayoutGateway
	applier   ports.ProviderEventApplier
	notifier  ports.Notifier
	cfg       config.SchedulerConfig
	log       zerolog.Logger
}

// NewReconciler creates a new Reconciler.
func NewReconciler(
	reconRepo ports.ReconciliationRepository,
	gateway ports.PayoutGateway,
	applier ports.ProviderEventApplier,
	notifier ports.Notifier,
	cfg config.SchedulerConfig,
	log zerolog.Logger,
) *Reconciler {
	return &Reconciler{
		reconRepo: reconRepo,
		gateway:   gateway,
		applier:   applier,
		notifier:  notifier,
		cfg:       cfg,
		log:       log,
	}
}

// Run loops until the context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	r.log.Info().
		Dur("poll_interval", r.cfg.PollInterval).
		Int("max_attempts", r.cfg.MaxAttempts).
		Msg("reconciliation scheduler started")

	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("reconciliation scheduler stopped")
			return
		case <-ticker.C:
			r.RunOnce(ctx, time.Now().UTC())
		}
	}
}

// RunOnce processes one batch of due tasks.
func (r *Reconciler) RunOnce(ctx context.Context, now time.Time) {
	tasks, err := r.reconRepo.ListDue(ctx, now, r.cfg.BatchSize)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to list due reconciliation tasks")
		return
	}

	for i := range tasks {
		r.poll(ctx, &tasks[i], now)
	}
}

func (r *Reconciler) poll(ctx context.Context, task *domain.ReconciliationTask, now time.Time) {
	status, err := r.gateway.PullStatus(ctx, task.SubjectID)
	if err != nil {
		r.log.Warn().Err(err).
			Str("subject_id", task.SubjectID).
			Int("attempt", task.Attempt).
			Msg("reconciliation poll failed")
		r.reschedule(ctx, task, now)
		return
	}

	if _, err := r.applier.ApplyProviderEvent(ctx, ports.ProviderEvent{
		EntityID: task.SubjectID,
		Status:   status,
	}); err != nil {
		r.log.Error().Err(err).Str("subject_id", task.SubjectID).Msg("failed to apply polled status")
		r.reschedule(ctx, task, now)
		return
	}

	// A terminal status means the transition function already removed the
	// task; rescheduling here would resurrect it.
	if status == domain.ProviderStatusApproved || status == domain.ProviderStatusRejected {
		return
	}
	r.reschedule(ctx, task, now)
}

// reschedule books the next poll with exponential backoff, or marks the
// task stalled once the attempt ceiling is hit.
func (r *Reconciler) reschedule(ctx context.Context, task *domain.ReconciliationTask, now time.Time) {
	task.Attempt++
	task.UpdatedAt = now

	if task.Attempt >= r.cfg.MaxAttempts {
		task.Status = domain.TaskStatusStalled
		if err := r.reconRepo.Upsert(ctx, task); err != nil {
			r.log.Error().Err(err).Str("subject_id", task.SubjectID).Msg("failed to mark task stalled")
			return
		}
		r.log.Error().
			Str("subject_id", task.SubjectID).
			Int("attempt", task.Attempt).
			Msg("reconciliation stalled, operator action required")
		r.notifyStalled(ctx, task)
		return
	}

	task.NextPollAt = now.Add(domain.NextBackoff(r.cfg.BackoffBase, r.cfg.BackoffCap, task.Attempt))
	if err := r.reconRepo.Upsert(ctx, task); err != nil {
		r.log.Error().Err(err).Str("subject_id", task.SubjectID).Msg("failed to reschedule task")
	}
}

func (r *Reconciler) notifyStalled(ctx context.Context, task *domain.ReconciliationTask) {
	if r.notifier == nil {
		return
	}
	err := r.notifier.EnqueueNotify(ctx, ports.NotifyEvent{
		EventType: "reconciliation.stalled",
		SubjectID: task.SubjectID,
		Detail:    string(task.SubjectType),
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		r.log.Warn().Err(err).Str("subject_id", task.SubjectID).Msg("failed to enqueue stall notification")
	}
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"escrow-ledger-engine/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ReconciliationRepo implements ports.ReconciliationRepository.
type ReconciliationRepo struct {
	pool Pool
}

// NewReconciliationRepo creates a new ReconciliationRepo.
func NewReconciliationRepo(pool Pool) *ReconciliationRepo {
	return &ReconciliationRepo{pool: pool}
}

const taskColumns = `id, subject_type, subject_id, next_poll_at, attempt, status, created_at, updated_at`

// Upsert inserts or reschedules a task, keyed by subject.
func (r *ReconciliationRepo) Upsert(ctx context.Context, t *domain.ReconciliationTask) error {
	query := `INSERT INTO reconciliation_tasks (id, subject_type, subject_id, next_poll_at, attempt, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (subject_type, subject_id) DO UPDATE SET
			next_poll_at = EXCLUDED.next_poll_at,
			attempt = EXCLUDED.attempt,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.SubjectType, t.SubjectID, t.NextPollAt,
		t.Attempt, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert reconciliation task: %w", err)
	}
	return nil
}

// Delete removes a task once its subject reached a terminal state.
func (r *ReconciliationRepo) Delete(ctx context.Context, subjectType domain.SubjectType, subjectID string) error {
	query := `DELETE FROM reconciliation_tasks WHERE subject_type = $1 AND subject_id = $2`

	if _, err := r.pool.Exec(ctx, query, subjectType, subjectID); err != nil {
		return fmt.Errorf("delete reconciliation task: %w", err)
	}
	return nil
}

// ListDue claims active tasks due for polling. SKIP LOCKED lets multiple
// scheduler instances share the queue without double-polling.
func (r *ReconciliationRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.ReconciliationTask, error) {
	query := fmt.Sprintf(`SELECT %s FROM reconciliation_tasks
		WHERE status = 'ACTIVE' AND next_poll_at <= $1
		ORDER BY next_poll_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED`, taskColumns)

	rows, err := r.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due reconciliation tasks: %w", err)
	}
	defer rows.Close()
	return r.collectTasks(rows)
}

// ListStalled returns tasks that exhausted their attempt budget, for the
// operator surface.
func (r *ReconciliationRepo) ListStalled(ctx context.Context) ([]domain.ReconciliationTask, error) {
	query := fmt.Sprintf(`SELECT %s FROM reconciliation_tasks WHERE status = 'STALLED' ORDER BY updated_at`, taskColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stalled reconciliation tasks: %w", err)
	}
	defer rows.Close()
	return r.collectTasks(rows)
}

func (r *ReconciliationRepo) collectTasks(rows pgx.Rows) ([]domain.ReconciliationTask, error) {
	var tasks []domain.ReconciliationTask
	for rows.Next() {
		t := domain.ReconciliationTask{}
		err := rows.Scan(
			&t.ID, &t.SubjectType, &t.SubjectID, &t.NextPollAt,
			&t.Attempt, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reconciliation task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reconciliation task rows: %w", err)
	}
	return tasks, nil
}

package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"escrow-ledger-engine/internal/core/domain"
	"escrow-ledger-engine/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Ledger Repo ---

type inMemoryLedgerRepo struct {
	mu     sync.RWMutex
	events []domain.LedgerEvent
}

func newInMemoryLedgerRepo() *inMemoryLedgerRepo {
	return &inMemoryLedgerRepo{}
}

func (r *inMemoryLedgerRepo) Append(ctx context.Context, tx pgx.Tx, event *domain.LedgerEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var maxSeq int64
	for i := range r.events {
		if r.events[i].CausationID == event.CausationID {
			return fmt.Errorf("duplicate key value violates unique constraint \"ledger_events_causation_unique\"")
		}
		if r.events[i].WalletID == event.WalletID && r.events[i].Seq > maxSeq {
			maxSeq = r.events[i].Seq
		}
	}
	event.Seq = maxSeq + 1
	r.events = append(r.events, *event)
	return nil
}

func (r *inMemoryLedgerRepo) GetByCausation(ctx context.Context, causationID string) (*domain.LedgerEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.events {
		if r.events[i].CausationID == causationID {
			ev := r.events[i]
			return &ev, nil
		}
	}
	return nil, nil
}

func (r *inMemoryLedgerRepo) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.LedgerEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.LedgerEvent
	for i := range r.events {
		if r.events[i].WalletID == walletID {
			result = append(result, r.events[i])
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seq < result[j].Seq })
	return result, nil
}

func (r *inMemoryLedgerRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.LedgerEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.LedgerEvent
	for i := range r.events {
		if r.events[i].CampaignID != nil && *r.events[i].CampaignID == campaignID {
			result = append(result, r.events[i])
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seq < result[j].Seq })
	return result, nil
}

// --- In-Memory Wallet Repo ---

type inMemoryWalletRepo struct {
	mu      sync.RWMutex
	wallets map[uuid.UUID]domain.WalletBalance
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[uuid.UUID]domain.WalletBalance)}
}

func (r *inMemoryWalletRepo) Create(ctx context.Context, w *domain.WalletBalance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wallets[w.WalletID]; ok {
		return fmt.Errorf("wallet already exists")
	}
	r.wallets[w.WalletID] = *w
	return nil
}

func (r *inMemoryWalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WalletBalance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wallets[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *inMemoryWalletRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.WalletBalance, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryWalletRepo) Update(ctx context.Context, tx pgx.Tx, w *domain.WalletBalance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wallets[w.WalletID]; !ok {
		return fmt.Errorf("wallet not found")
	}
	r.wallets[w.WalletID] = *w
	return nil
}

// --- In-Memory Campaign Repo ---

type inMemoryCampaignRepo struct {
	mu         sync.RWMutex
	campaigns  map[uuid.UUID]domain.CampaignEscrow
	milestones map[uuid.UUID]domain.Milestone
}

func newInMemoryCampaignRepo() *inMemoryCampaignRepo {
	return &inMemoryCampaignRepo{
		campaigns:  make(map[uuid.UUID]domain.CampaignEscrow),
		milestones: make(map[uuid.UUID]domain.Milestone),
	}
}

func (r *inMemoryCampaignRepo) Create(ctx context.Context, c *domain.CampaignEscrow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.campaigns[c.ID] = *c
	return nil
}

func (r *inMemoryCampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CampaignEscrow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.campaigns[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *inMemoryCampaignRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.CampaignEscrow, error) {
	return r.GetByID(ctx, id)
}

func (r *inMemoryCampaignRepo) UpdateBalances(ctx context.Context, tx pgx.Tx, c *domain.CampaignEscrow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[c.ID]; !ok {
		return fmt.Errorf("campaign not found")
	}
	r.campaigns[c.ID] = *c
	return nil
}

func (r *inMemoryCampaignRepo) CreateMilestone(ctx context.Context, m *domain.Milestone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.milestones[m.ID] = *m
	return nil
}

func (r *inMemoryCampaignRepo) GetMilestone(ctx context.Context, id uuid.UUID) (*domain.Milestone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.milestones[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *inMemoryCampaignRepo) ListMilestones(ctx context.Context, campaignID uuid.UUID) ([]domain.Milestone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Milestone
	for _, m := range r.milestones {
		if m.CampaignID == campaignID {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *inMemoryCampaignRepo) UpdateMilestone(ctx context.Context, tx pgx.Tx, m *domain.Milestone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.milestones[m.ID]; !ok {
		return fmt.Errorf("milestone not found")
	}
	r.milestones[m.ID] = *m
	return nil
}

func (r *inMemoryCampaignRepo) ListPayoutPending(ctx context.Context, creatorID uuid.UUID) ([]domain.Milestone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Milestone
	for _, m := range r.milestones {
		if !m.PayoutPending {
			continue
		}
		c, ok := r.campaigns[m.CampaignID]
		if !ok || c.CreatorID != creatorID {
			continue
		}
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *inMemoryCampaignRepo) SumPayoutPendingByWallet(ctx context.Context, walletID uuid.UUID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sum int64
	for _, m := range r.milestones {
		if !m.PayoutPending {
			continue
		}
		c, ok := r.campaigns[m.CampaignID]
		if !ok || c.WalletID != walletID {
			continue
		}
		sum += m.LockedAmount
	}
	return sum, nil
}

// --- In-Memory Onboarding Repo ---

type inMemoryOnboardingRepo struct {
	mu      sync.RWMutex
	records map[uuid.UUID]domain.OnboardingRecord
}

func newInMemoryOnboardingRepo() *inMemoryOnboardingRepo {
	return &inMemoryOnboardingRepo{records: make(map[uuid.UUID]domain.OnboardingRecord)}
}

func (r *inMemoryOnboardingRepo) Get(ctx context.Context, creatorID uuid.UUID) (*domain.OnboardingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[creatorID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *inMemoryOnboardingRepo) GetByEntityID(ctx context.Context, entityID string) (*domain.OnboardingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.ExternalEntityID == entityID {
			out := rec
			return &out, nil
		}
	}
	return nil, nil
}

func (r *inMemoryOnboardingRepo) Upsert(ctx context.Context, rec *domain.OnboardingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.CreatorID] = *rec
	return nil
}

// --- In-Memory Reconciliation Repo ---

type subjectKey struct {
	subjectType domain.SubjectType
	subjectID   string
}

type inMemoryReconRepo struct {
	mu    sync.RWMutex
	tasks map[subjectKey]domain.ReconciliationTask
}

func newInMemoryReconRepo() *inMemoryReconRepo {
	return &inMemoryReconRepo{tasks: make(map[subjectKey]domain.ReconciliationTask)}
}

func (r *inMemoryReconRepo) Upsert(ctx context.Context, task *domain.ReconciliationTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[subjectKey{task.SubjectType, task.SubjectID}] = *task
	return nil
}

func (r *inMemoryReconRepo) Delete(ctx context.Context, subjectType domain.SubjectType, subjectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, subjectKey{subjectType, subjectID})
	return nil
}

func (r *inMemoryReconRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.ReconciliationTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.ReconciliationTask
	for _, task := range r.tasks {
		if task.Status == domain.TaskStatusActive && !task.NextPollAt.After(now) {
			result = append(result, task)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (r *inMemoryReconRepo) ListStalled(ctx context.Context) ([]domain.ReconciliationTask, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.ReconciliationTask
	for _, task := range r.tasks {
		if task.Status == domain.TaskStatusStalled {
			result = append(result, task)
		}
	}
	return result, nil
}

// --- In-Memory Causation Cache ---

type inMemoryCausationCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func newInMemoryCausationCache() *inMemoryCausationCache {
	return &inMemoryCausationCache{entries: make(map[string][]byte)}
}

func (c *inMemoryCausationCache) Get(ctx context.Context, causationID string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[causationID], nil
}

func (c *inMemoryCausationCache) Set(ctx context.Context, causationID string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[causationID] = value
	return nil
}

// --- Recording Notifier ---

type recordingNotifier struct {
	mu     sync.Mutex
	events []ports.NotifyEvent
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{}
}

func (n *recordingNotifier) EnqueueNotify(ctx context.Context, event ports.NotifyEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) eventsOfType(eventType string) []ports.NotifyEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var result []ports.NotifyEvent
	for _, ev := range n.events {
		if ev.EventType == eventType {
			result = append(result, ev)
		}
	}
	return result
}

// --- Stub Payout Gateway ---

type stubPayoutGateway struct {
	mu       sync.Mutex
	sessions int
	statuses map[string]domain.ProviderStatus
}

func newStubPayoutGateway() *stubPayoutGateway {
	return &stubPayoutGateway{statuses: make(map[string]domain.ProviderStatus)}
}

func (g *stubPayoutGateway) CreateOnboardingSession(ctx context.Context, creatorID uuid.UUID) (*ports.OnboardingSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions++
	entityID := fmt.Sprintf("ent_%03d", g.sessions)
	g.statuses[entityID] = domain.ProviderStatusCreated
	return &ports.OnboardingSession{
		EntityID:  entityID,
		Link:      "https://provider.test/onboard/" + entityID,
		ExpiresAt: time.Now().Add(24 * time.Hour).UTC(),
	}, nil
}

func (g *stubPayoutGateway) RegenerateLink(ctx context.Context, entityID string) (*ports.OnboardingSession, error) {
	return &ports.OnboardingSession{
		EntityID:  entityID,
		Link:      "https://provider.test/onboard/" + entityID + "/fresh",
		ExpiresAt: time.Now().Add(24 * time.Hour).UTC(),
	}, nil
}

func (g *stubPayoutGateway) PullStatus(ctx context.Context, entityID string) (domain.ProviderStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	status, ok := g.statuses[entityID]
	if !ok {
		return domain.ProviderStatusUnknown, fmt.Errorf("unknown entity %s", entityID)
	}
	return status, nil
}

func (g *stubPayoutGateway) ParseWebhook(payload []byte, signatureHeader string) (*ports.ProviderEvent, error) {
	return nil, fmt.Errorf("not used in integration harness")
}

func (g *stubPayoutGateway) setStatus(entityID string, status domain.ProviderStatus) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statuses[entityID] = status
}

// --- Serializing Transactor ---

// serializingTransactor gives each Begin exclusive access until Commit or
// Rollback, mimicking the row-lock serialization the real Postgres
// transactor provides through SELECT ... FOR UPDATE.
type serializingTransactor struct {
	mu sync.Mutex
}

func newSerializingTransactor() *serializingTransactor {
	return &serializingTransactor{}
}

func (t *serializingTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.mu.Lock()
	return &serialTx{release: &t.mu}, nil
}

// serialTx is a pgx.Tx that releases the transactor lock exactly once.
type serialTx struct {
	release *sync.Mutex
	done    sync.Once
}

func (t *serialTx) finish() {
	t.done.Do(func() { t.release.Unlock() })
}

func (t *serialTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *serialTx) Commit(ctx context.Context) error          { t.finish(); return nil }
func (t *serialTx) Rollback(ctx context.Context) error        { t.finish(); return nil }
func (t *serialTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *serialTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *serialTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *serialTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *serialTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *serialTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *serialTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *serialTx) Conn() *pgx.Conn { return nil }

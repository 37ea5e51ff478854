package postgres

import (
	"context"
	"errors"
	"fmt"

	"escrow-ledger-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OnboardingRepo implements ports.OnboardingRepository.
type OnboardingRepo struct {
	pool Pool
}

// NewOnboardingRepo creates a new OnboardingRepo.
func NewOnboardingRepo(pool Pool) *OnboardingRepo {
	return &OnboardingRepo{pool: pool}
}

const onboardingColumns = `creator_id, status, external_entity_id, external_beneficiary_id, onboarding_link, link_expires_at, last_provider_status, created_at, updated_at`

// Get fetches a creator's onboarding record.
func (r *OnboardingRepo) Get(ctx context.Context, creatorID uuid.UUID) (*domain.OnboardingRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM onboarding_records WHERE creator_id = $1`, onboardingColumns)
	return r.scanRecord(r.pool.QueryRow(ctx, query, creatorID))
}

// GetByEntityID fetches a record by the provider's entity ID, the key
// webhooks and polls identify a creator by.
func (r *OnboardingRepo) GetByEntityID(ctx context.Context, entityID string) (*domain.OnboardingRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM onboarding_records WHERE external_entity_id = $1`, onboardingColumns)
	return r.scanRecord(r.pool.QueryRow(ctx, query, entityID))
}

// Upsert inserts or replaces a creator's onboarding record.
func (r *OnboardingRepo) Upsert(ctx context.Context, rec *domain.OnboardingRecord) error {
	query := `INSERT INTO onboarding_records (creator_id, status, external_entity_id, external_beneficiary_id, onboarding_link, link_expires_at, last_provider_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (creator_id) DO UPDATE SET
			status = EXCLUDED.status,
			external_entity_id = EXCLUDED.external_entity_id,
			external_beneficiary_id = EXCLUDED.external_beneficiary_id,
			onboarding_link = EXCLUDED.onboarding_link,
			link_expires_at = EXCLUDED.link_expires_at,
			last_provider_status = EXCLUDED.last_provider_status,
			updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query,
		rec.CreatorID, rec.Status, rec.ExternalEntityID, rec.ExternalBeneficiaryID,
		rec.OnboardingLink, rec.LinkExpiresAt, rec.LastProviderStatus,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert onboarding record: %w", err)
	}
	return nil
}

func (r *OnboardingRepo) scanRecord(row pgx.Row) (*domain.OnboardingRecord, error) {
	rec := &domain.OnboardingRecord{}
	err := row.Scan(
		&rec.CreatorID, &rec.Status, &rec.ExternalEntityID, &rec.ExternalBeneficiaryID,
		&rec.OnboardingLink, &rec.LinkExpiresAt, &rec.LastProviderStatus,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan onboarding record: %w", err)
	}
	return rec, nil
}

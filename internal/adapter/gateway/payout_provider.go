package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"escrow-ledger-engine/config"
	"escrow-ledger-engine/internal/core/domain"
	"escrow-ledger-engine/internal/core/ports"
	"escrow-ledger-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SignatureHeader carries the provider's HMAC-SHA256 hex signature of the
// raw webhook body.
const SignatureHeader = "X-Provider-Signature"

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// PayoutProviderClient implements ports.PayoutGateway against the external
// payout provider's REST API. All provider responses are normalised at this
// boundary; unrecognised statuses map to ProviderStatusUnknown rather than
// leaking upstream.
type PayoutProviderClient struct {
	baseURL       string
	apiKey        string
	webhookSecret string
	sigSvc        ports.SignatureService
	httpClient    HTTPClient
	log           zerolog.Logger
}

// NewPayoutProviderClient creates a provider client from config.
func NewPayoutProviderClient(cfg config.GatewayConfig, sigSvc ports.SignatureService, log zerolog.Logger) *PayoutProviderClient {
	return &PayoutProviderClient{
		baseURL:       cfg.BaseURL,
		apiKey:        cfg.APIKey,
		webhookSecret: cfg.WebhookSecret,
		sigSvc:        sigSvc,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		log:           log,
	}
}

// NewPayoutProviderClientWithHTTP injects a custom HTTP client, used in tests.
func NewPayoutProviderClientWithHTTP(cfg config.GatewayConfig, sigSvc ports.SignatureService, httpClient HTTPClient, log zerolog.Logger) *PayoutProviderClient {
	c := NewPayoutProviderClient(cfg, sigSvc, log)
	c.httpClient = httpClient
	return c
}

type sessionResponse struct {
	EntityID       string    `json:"entity_id"`
	OnboardingLink string    `json:"onboarding_link"`
	ExpiresAt      time.Time `json:"expires_at"`
}

type statusResponse struct {
	EntityID string `json:"entity_id"`
	Status   string `json:"status"`
}

type webhookPayload struct {
	EntityID  string `json:"entity_id"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

// CreateOnboardingSession registers the creator with the provider and
// returns a hosted onboarding link.
func (c *PayoutProviderClient) CreateOnboardingSession(ctx context.Context, creatorID uuid.UUID) (*ports.OnboardingSession, error) {
	body := map[string]string{"reference": creatorID.String()}

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/entities", body, &resp); err != nil {
		return nil, err
	}

	c.log.Info().
		Str("creator_id", creatorID.String()).
		Str("entity_id", resp.EntityID).
		Msg("provider onboarding session created")

	return &ports.OnboardingSession{
		EntityID:  resp.EntityID,
		Link:      resp.OnboardingLink,
		ExpiresAt: resp.ExpiresAt,
	}, nil
}

// RegenerateLink requests a fresh hosted link for an existing entity.
func (c *PayoutProviderClient) RegenerateLink(ctx context.Context, entityID string) (*ports.OnboardingSession, error) {
	path := fmt.Sprintf("/v1/entities/%s/onboarding-link", entityID)

	var resp sessionResponse
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}

	return &ports.OnboardingSession{
		EntityID:  resp.EntityID,
		Link:      resp.OnboardingLink,
		ExpiresAt: resp.ExpiresAt,
	}, nil
}

// PullStatus fetches the provider's current status for an entity.
func (c *PayoutProviderClient) PullStatus(ctx context.Context, entityID string) (domain.ProviderStatus, error) {
	path := fmt.Sprintf("/v1/entities/%s", entityID)

	var resp statusResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return domain.ProviderStatusUnknown, err
	}
	return domain.ParseProviderStatus(resp.Status), nil
}

// ParseWebhook authenticates a raw provider callback against the shared
// webhook secret and parses it into a ProviderEvent. The signature covers
// the exact raw body bytes.
func (c *PayoutProviderClient) ParseWebhook(payload []byte, signatureHeader string) (*ports.ProviderEvent, error) {
	if signatureHeader == "" || !c.sigSvc.Verify(c.webhookSecret, string(payload), signatureHeader) {
		return nil, apperror.ErrInvalidSignature()
	}

	var wp webhookPayload
	if err := json.Unmarshal(payload, &wp); err != nil {
		return nil, apperror.Validation("malformed webhook payload")
	}
	if wp.EntityID == "" {
		return nil, apperror.Validation("webhook missing entity_id")
	}

	return &ports.ProviderEvent{
		EntityID: wp.EntityID,
		Status:   domain.ParseProviderStatus(wp.Status),
	}, nil
}

func (c *PayoutProviderClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperror.InternalError(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperror.InternalError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.ErrGatewayUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return apperror.ErrNotFound("provider entity")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return apperror.ErrGatewayUnavailable(fmt.Errorf("provider returned %d: %s", resp.StatusCode, data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperror.ErrGatewayUnavailable(fmt.Errorf("decode provider response: %w", err))
		}
	}
	return nil
}

package handler

import (
	"io"

	"escrow-ledger-engine/internal/adapter/gateway"
	"escrow-ledger-engine/internal/adapter/http/dto"
	"escrow-ledger-engine/internal/core/ports"
	"escrow-ledger-engine/pkg/apperror"
	"escrow-ledger-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// WebhookHandler receives provider callbacks.
type WebhookHandler struct {
	gateway ports.PayoutGateway
	applier ports.ProviderEventApplier
	log     zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(gw ports.PayoutGateway, applier ports.ProviderEventApplier, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{gateway: gw, applier: applier, log: log}
}

// HandlePayoutProvider handles POST /webhooks/payout-provider.
// Signature verification happens over the raw body before parsing.
// Stale or duplicate events acknowledge with 200 so the provider stops
// retrying; only transport-level problems surface as errors.
func (h *WebhookHandler) HandlePayoutProvider(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.Validation("cannot read request body"))
		return
	}

	event, err := h.gateway.ParseWebhook(payload, c.GetHeader(gateway.SignatureHeader))
	if err != nil {
		h.log.Warn().Err(err).Msg("rejected provider webhook")
		response.Error(c, err)
		return
	}

	applied, err := h.applier.ApplyProviderEvent(c.Request.Context(), *event)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.log.Info().
		Str("entity_id", event.EntityID).
		Str("provider_status", string(event.Status)).
		Bool("applied", applied).
		Msg("provider webhook processed")

	response.OK(c, dto.WebhookAckResponse{Applied: applied})
}

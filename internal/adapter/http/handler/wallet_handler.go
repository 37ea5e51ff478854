package handler

import (
	"time"

	"escrow-ledger-engine/internal/adapter/http/dto"
	"escrow-ledger-engine/internal/core/domain"
	"escrow-ledger-engine/internal/core/ports"
	"escrow-ledger-engine/pkg/apperror"
	"escrow-ledger-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderIdempotencyKey carries a client-chosen causation ID for money
// movement endpoints. A body-level causation_id takes precedence.
const HeaderIdempotencyKey = "Idempotency-Key"

// WalletHandler handles wallet-scoped endpoints.
type WalletHandler struct {
	escrowSvc  ports.EscrowService
	statusSvc  ports.StatusService
	ledgerRepo ports.LedgerRepository
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(escrowSvc ports.EscrowService, statusSvc ports.StatusService, ledgerRepo ports.LedgerRepository) *WalletHandler {
	return &WalletHandler{escrowSvc: escrowSvc, statusSvc: statusSvc, ledgerRepo: ledgerRepo}
}

// Deposit handles POST /api/v1/wallets/:walletID/deposit.
func (h *WalletHandler) Deposit(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("walletID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet ID"))
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	event, err := h.escrowSvc.Deposit(c.Request.Context(), ports.DepositRequest{
		WalletID:    walletID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		CausationID: causationFrom(c, req.CausationID),
		Strict:      req.Strict,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toLedgerEventResponse(event))
}

// Withdraw handles POST /api/v1/wallets/:walletID/withdraw.
func (h *WalletHandler) Withdraw(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("walletID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet ID"))
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	event, err := h.escrowSvc.Withdraw(c.Request.Context(), ports.WithdrawRequest{
		WalletID:    walletID,
		Amount:      req.Amount,
		CausationID: causationFrom(c, req.CausationID),
		Strict:      req.Strict,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toLedgerEventResponse(event))
}

// Summary handles GET /api/v1/wallets/:walletID/summary.
func (h *WalletHandler) Summary(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("walletID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet ID"))
		return
	}

	view, err := h.statusSvc.WalletSummary(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, view)
}

// ListEvents handles GET /api/v1/wallets/:walletID/events, the audit
// listing of the wallet's full ledger history in Seq order.
func (h *WalletHandler) ListEvents(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("walletID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet ID"))
		return
	}

	events, err := h.ledgerRepo.ListByWallet(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.LedgerEventResponse, 0, len(events))
	for i := range events {
		out = append(out, toLedgerEventResponse(&events[i]))
	}
	response.OK(c, out)
}

// causationFrom resolves the effective causation ID for a write request.
func causationFrom(c *gin.Context, bodyID string) string {
	if bodyID != "" {
		return bodyID
	}
	return c.GetHeader(HeaderIdempotencyKey)
}

// toLedgerEventResponse converts a domain.LedgerEvent to its DTO.
func toLedgerEventResponse(ev *domain.LedgerEvent) dto.LedgerEventResponse {
	resp := dto.LedgerEventResponse{
		ID:          ev.ID.String(),
		WalletID:    ev.WalletID.String(),
		Kind:        string(ev.Kind),
		Amount:      ev.Amount,
		Currency:    ev.Currency,
		Seq:         ev.Seq,
		CausationID: ev.CausationID,
		CreatedAt:   ev.CreatedAt.Format(time.RFC3339),
	}
	if ev.CampaignID != nil {
		s := ev.CampaignID.String()
		resp.CampaignID = &s
	}
	if ev.MilestoneID != nil {
		s := ev.MilestoneID.String()
		resp.MilestoneID = &s
	}
	return resp
}

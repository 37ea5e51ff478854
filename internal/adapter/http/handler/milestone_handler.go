package handler

import (
	"escrow-ledger-engine/internal/adapter/http/dto"
	"escrow-ledger-engine/internal/core/ports"
	"escrow-ledger-engine/pkg/apperror"
	"escrow-ledger-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MilestoneHandler handles milestone lifecycle endpoints.
type MilestoneHandler struct {
	escrowSvc    ports.EscrowService
	milestoneSvc ports.MilestoneService
}

// NewMilestoneHandler creates a new MilestoneHandler.
func NewMilestoneHandler(escrowSvc ports.EscrowService, milestoneSvc ports.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{escrowSvc: escrowSvc, milestoneSvc: milestoneSvc}
}

// Lock handles POST /api/v1/milestones/:milestoneID/lock.
func (h *MilestoneHandler) Lock(c *gin.Context) {
	milestoneID, err := uuid.Parse(c.Param("milestoneID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid milestone ID"))
		return
	}

	var req dto.LockMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	event, err := h.escrowSvc.LockForMilestone(c.Request.Context(), ports.LockRequest{
		CampaignID:  uuid.MustParse(req.CampaignID),
		MilestoneID: milestoneID,
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

// Submit handles POST /api/v1/milestones/:milestoneID/submit.
func (h *MilestoneHandler) Submit(c *gin.Context) {
	milestoneID, err := uuid.Parse(c.Param("milestoneID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid milestone ID"))
		return
	}

	var req dto.SubmitMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	milestone, err := h.milestoneSvc.Submit(c.Request.Context(), ports.SubmitRequest{
		MilestoneID:   milestoneID,
		SubmitterID:   uuid.MustParse(req.SubmitterID),
		SubmissionRef: req.SubmissionRef,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toMilestoneResponse(milestone))
}

// Approve handles POST /api/v1/milestones/:milestoneID/approve.
func (h *MilestoneHandler) Approve(c *gin.Context) {
	milestoneID, err := uuid.Parse(c.Param("milestoneID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid milestone ID"))
		return
	}

	var req dto.ApproveMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	milestone, err := h.milestoneSvc.Approve(c.Request.Context(), ports.ApproveRequest{
		MilestoneID: milestoneID,
		ApproverID:  uuid.MustParse(req.ApproverID),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toMilestoneResponse(milestone))
}

// Dispute handles POST /api/v1/milestones/:milestoneID/dispute.
func (h *MilestoneHandler) Dispute(c *gin.Context) {
	milestoneID, err := uuid.Parse(c.Param("milestoneID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid milestone ID"))
		return
	}

	var req dto.DisputeMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	milestone, err := h.milestoneSvc.Dispute(c.Request.Context(), milestoneID, uuid.MustParse(req.ActorID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toMilestoneResponse(milestone))
}

// Refund handles POST /api/v1/milestones/:milestoneID/refund, returning a
// disputed milestone's locked funds to the wallet's uncommitted pool.
func (h *MilestoneHandler) Refund(c *gin.Context) {
	milestoneID, err := uuid.Parse(c.Param("milestoneID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid milestone ID"))
		return
	}

	milestone, err := h.milestoneSvc.RefundLock(c.Request.Context(), milestoneID, causationFrom(c, ""))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toMilestoneResponse(milestone))
}

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

// CampaignHandler handles campaign escrow endpoints.
type CampaignHandler struct {
	campaignRepo ports.CampaignRepository
	escrowSvc    ports.EscrowService
}

// NewCampaignHandler creates a new CampaignHandler.
func NewCampaignHandler(campaignRepo ports.CampaignRepository, escrowSvc ports.EscrowService) *CampaignHandler {
	return &CampaignHandler{campaignRepo: campaignRepo, escrowSvc: escrowSvc}
}

// Create handles POST /api/v1/campaigns.
func (h *CampaignHandler) Create(c *gin.Context) {
	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	now := time.Now().UTC()
	campaign := &domain.CampaignEscrow{
		ID:           uuid.New(),
		WalletID:     uuid.MustParse(req.WalletID),
		CreatorID:    uuid.MustParse(req.CreatorID),
		Currency:     req.Currency,
		TargetBudget: req.TargetBudget,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.campaignRepo.Create(c.Request.Context(), campaign); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toCampaignResponse(campaign, nil))
}

// Get handles GET /api/v1/campaigns/:campaignID.
func (h *CampaignHandler) Get(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("campaignID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid campaign ID"))
		return
	}

	campaign, err := h.campaignRepo.GetByID(c.Request.Context(), campaignID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if campaign == nil {
		response.Error(c, apperror.ErrNotFound("campaign"))
		return
	}

	milestones, err := h.campaignRepo.ListMilestones(c.Request.Context(), campaignID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toCampaignResponse(campaign, milestones))
}

// Allocate handles POST /api/v1/campaigns/:campaignID/allocate.
func (h *CampaignHandler) Allocate(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("campaignID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid campaign ID"))
		return
	}

	var req dto.AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	event, err := h.escrowSvc.AllocateToCampaign(c.Request.Context(), ports.AllocateRequest{
		WalletID:    uuid.MustParse(req.WalletID),
		CampaignID:  campaignID,
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

// CreateMilestone handles POST /api/v1/campaigns/:campaignID/milestones.
func (h *CampaignHandler) CreateMilestone(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("campaignID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid campaign ID"))
		return
	}

	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			response.Error(c, apperror.Validation("due_date must be RFC 3339"))
			return
		}
		dueDate = &parsed
	}

	campaign, err := h.campaignRepo.GetByID(c.Request.Context(), campaignID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if campaign == nil {
		response.Error(c, apperror.ErrNotFound("campaign"))
		return
	}

	now := time.Now().UTC()
	milestone := &domain.Milestone{
		ID:         uuid.New(),
		CampaignID: campaignID,
		Amount:     req.Amount,
		DueDate:    dueDate,
		Status:     domain.MilestoneStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.campaignRepo.CreateMilestone(c.Request.Context(), milestone); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toMilestoneResponse(milestone))
}

// toCampaignResponse converts a domain.CampaignEscrow (plus optional
// milestones) to its DTO.
func toCampaignResponse(campaign *domain.CampaignEscrow, milestones []domain.Milestone) dto.CampaignResponse {
	resp := dto.CampaignResponse{
		ID:           campaign.ID.String(),
		WalletID:     campaign.WalletID.String(),
		CreatorID:    campaign.CreatorID.String(),
		Currency:     campaign.Currency,
		TargetBudget: campaign.TargetBudget,
		Funded:       campaign.Funded,
		Locked:       campaign.Locked,
		Released:     campaign.Released,
		Lockable:     campaign.Lockable(),
		CreatedAt:    campaign.CreatedAt.Format(time.RFC3339),
	}
	for i := range milestones {
		resp.Milestones = append(resp.Milestones, toMilestoneResponse(&milestones[i]))
	}
	return resp
}

// toMilestoneResponse converts a domain.Milestone to its DTO.
func toMilestoneResponse(m *domain.Milestone) dto.MilestoneResponse {
	resp := dto.MilestoneResponse{
		ID:            m.ID.String(),
		CampaignID:    m.CampaignID.String(),
		Amount:        m.Amount,
		Status:        string(m.Status),
		LockedAmount:  m.LockedAmount,
		SubmissionRef: m.SubmissionRef,
		PayoutPending: m.PayoutPending,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
	if m.DueDate != nil {
		s := m.DueDate.Format(time.RFC3339)
		resp.DueDate = &s
	}
	return resp
}

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

// OnboardingHandler handles creator payout onboarding endpoints.
type OnboardingHandler struct {
	onboardingSvc ports.OnboardingService
	statusSvc     ports.StatusService
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(onboardingSvc ports.OnboardingService, statusSvc ports.StatusService) *OnboardingHandler {
	return &OnboardingHandler{onboardingSvc: onboardingSvc, statusSvc: statusSvc}
}

// Initiate handles POST /api/v1/creators/:creatorID/onboarding.
func (h *OnboardingHandler) Initiate(c *gin.Context) {
	creatorID, err := uuid.Parse(c.Param("creatorID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid creator ID"))
		return
	}

	rec, err := h.onboardingSvc.Initiate(c.Request.Context(), creatorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toOnboardingResponse(rec))
}

// RegenerateLink handles POST /api/v1/creators/:creatorID/onboarding/regenerate.
func (h *OnboardingHandler) RegenerateLink(c *gin.Context) {
	creatorID, err := uuid.Parse(c.Param("creatorID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid creator ID"))
		return
	}

	rec, err := h.onboardingSvc.RegenerateLink(c.Request.Context(), creatorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toOnboardingResponse(rec))
}

// Status handles GET /api/v1/creators/:creatorID/onboarding, the
// side-effect-free status view.
func (h *OnboardingHandler) Status(c *gin.Context) {
	creatorID, err := uuid.Parse(c.Param("creatorID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid creator ID"))
		return
	}

	view, err := h.statusSvc.OnboardingStatus(c.Request.Context(), creatorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, view)
}

// toOnboardingResponse converts a domain.OnboardingRecord to its DTO.
func toOnboardingResponse(rec *domain.OnboardingRecord) dto.OnboardingResponse {
	resp := dto.OnboardingResponse{
		CreatorID:          rec.CreatorID.String(),
		Status:             string(rec.Status),
		OnboardingLink:     rec.OnboardingLink,
		LastProviderStatus: string(rec.LastProviderStatus),
	}
	if rec.LinkExpiresAt != nil {
		s := rec.LinkExpiresAt.Format(time.RFC3339)
		resp.LinkExpiresAt = &s
	}
	return resp
}

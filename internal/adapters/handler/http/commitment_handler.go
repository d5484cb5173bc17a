package http

import (
	"net/http"

	"github.com/bpr-hq/bpr-dashboard/internal/core/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommitmentHandler struct {
	svc *services.CommitmentService
	log *zap.Logger
}

func NewCommitmentHandler(svc *services.CommitmentService, log *zap.Logger) *CommitmentHandler {
	return &CommitmentHandler{
		svc: svc,
		log: log,
	}
}

type createCommitmentRequest struct {
	BrandID         string  `json:"brand_id"`
	Department      string  `json:"department" binding:"required,department"`
	OwnerID         string  `json:"owner_id"`
	Description     string  `json:"description" binding:"required"`
	DueDay          string  `json:"due_day" binding:"weekday"`
	PowerMoveID     *string `json:"power_move_id"`
	VictoryTargetID *string `json:"victory_target_id"`
}

type updateCommitmentRequest struct {
	ID              string  `json:"id" binding:"required"`
	OwnerID         string  `json:"owner_id"`
	Description     string  `json:"description"`
	DueDay          *string `json:"due_day" binding:"omitempty,weekday"`
	Completed       *bool   `json:"completed"`
	PowerMoveID     *string `json:"power_move_id"`
	VictoryTargetID *string `json:"victory_target_id"`
}

type toggleCommitmentRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *CommitmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	commitments := router.Group("/commitments")
	{
		commitments.GET("", h.List)
		commitments.POST("", h.Create)
		commitments.PUT("", h.Update)
		commitments.PUT("/toggle", h.Toggle)
		commitments.DELETE("", h.Delete)
	}
}

func (h *CommitmentHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), actor, listFilter(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"commitments": list})
}

func (h *CommitmentHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req createCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	commitment, err := h.svc.Create(c.Request.Context(), services.CreateCommitmentInput{
		Actor:           actor,
		BrandID:         req.BrandID,
		Department:      req.Department,
		OwnerID:         req.OwnerID,
		Description:     req.Description,
		DueDay:          req.DueDay,
		PowerMoveID:     req.PowerMoveID,
		VictoryTargetID: req.VictoryTargetID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"commitment": commitment})
}

func (h *CommitmentHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req updateCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	commitment, err := h.svc.Update(c.Request.Context(), services.UpdateCommitmentInput{
		Actor:           actor,
		ID:              req.ID,
		OwnerID:         req.OwnerID,
		Description:     req.Description,
		DueDay:          req.DueDay,
		Completed:       req.Completed,
		PowerMoveID:     req.PowerMoveID,
		VictoryTargetID: req.VictoryTargetID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"commitment": commitment})
}

// Toggle godoc
// @Summary  Flip a commitment's completed flag
// @Tags     commitments
// @Accept   json
// @Produce  json
// @Param    body body toggleCommitmentRequest true "Commitment id"
// @Success  200 {object} map[string]domain.Commitment
// @Router   /commitments/toggle [put]
// @Security BearerAuth
func (h *CommitmentHandler) Toggle(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req toggleCommitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	commitment, err := h.svc.Toggle(c.Request.Context(), actor, req.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"commitment": commitment})
}

func (h *CommitmentHandler) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := queryID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	deleted(c)
}

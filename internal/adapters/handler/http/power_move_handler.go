package http

import (
	"net/http"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/bpr-hq/bpr-dashboard/internal/core/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PowerMoveHandler struct {
	svc *services.PowerMoveService
	log *zap.Logger
}

func NewPowerMoveHandler(svc *services.PowerMoveService, log *zap.Logger) *PowerMoveHandler {
	return &PowerMoveHandler{
		svc: svc,
		log: log,
	}
}

type createPowerMoveRequest struct {
	BrandID         string  `json:"brand_id"`
	Department      string  `json:"department" binding:"required,department"`
	Name            string  `json:"name" binding:"required,max=150"`
	Frequency       string  `json:"frequency" binding:"required,frequency"`
	TargetPerCycle  int     `json:"target_per_cycle" binding:"required,min=1"`
	OwnerID         string  `json:"owner_id"`
	VictoryTargetID *string `json:"victory_target_id"`
}

type updatePowerMoveRequest struct {
	ID              string  `json:"id" binding:"required"`
	Name            string  `json:"name" binding:"max=150"`
	Frequency       string  `json:"frequency" binding:"omitempty,frequency"`
	TargetPerCycle  int     `json:"target_per_cycle" binding:"omitempty,min=1"`
	Progress        *int    `json:"progress"`
	OwnerID         string  `json:"owner_id"`
	VictoryTargetID *string `json:"victory_target_id"`
	Version         int     `json:"version"`
}

type incrementPowerMoveRequest struct {
	ID     string `json:"id" binding:"required"`
	Amount *int   `json:"amount" binding:"omitempty,min=0"`
}

// resetPowerMoveRequest resets one move by id, or every move of a department
// (optionally one frequency) when id is empty.
type resetPowerMoveRequest struct {
	ID         string `json:"id"`
	BrandID    string `json:"brand_id"`
	Department string `json:"department" binding:"omitempty,department"`
	Frequency  string `json:"frequency" binding:"omitempty,frequency"`
}

func (h *PowerMoveHandler) RegisterRoutes(router *gin.RouterGroup) {
	moves := router.Group("/power-moves")
	{
		moves.GET("", h.List)
		moves.POST("", h.Create)
		moves.PUT("", h.Update)
		moves.DELETE("", h.Delete)
		moves.POST("/increment", h.Increment)
		moves.POST("/reset", h.Reset)
	}
}

func (h *PowerMoveHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), actor, listFilter(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"power_moves": list})
}

func (h *PowerMoveHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req createPowerMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	move, err := h.svc.Create(c.Request.Context(), services.CreatePowerMoveInput{
		Actor:           actor,
		BrandID:         req.BrandID,
		Department:      req.Department,
		Name:            req.Name,
		Frequency:       domain.Frequency(req.Frequency),
		TargetPerCycle:  req.TargetPerCycle,
		OwnerID:         req.OwnerID,
		VictoryTargetID: req.VictoryTargetID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"power_move": move})
}

func (h *PowerMoveHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req updatePowerMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	move, err := h.svc.Update(c.Request.Context(), services.UpdatePowerMoveInput{
		Actor:           actor,
		ID:              req.ID,
		Name:            req.Name,
		Frequency:       domain.Frequency(req.Frequency),
		TargetPerCycle:  req.TargetPerCycle,
		Progress:        req.Progress,
		OwnerID:         req.OwnerID,
		VictoryTargetID: req.VictoryTargetID,
		Version:         req.Version,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"power_move": move})
}

// Increment godoc
// @Summary  Record progress on a power move
// @Description Adds amount (default 1) to the current cycle. Progress never exceeds the cycle target.
// @Tags     power-moves
// @Accept   json
// @Produce  json
// @Param    body body incrementPowerMoveRequest true "Increment"
// @Success  200 {object} map[string]domain.PowerMove
// @Router   /power-moves/increment [post]
// @Security BearerAuth
func (h *PowerMoveHandler) Increment(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req incrementPowerMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	amount := 1
	if req.Amount != nil {
		amount = *req.Amount
	}

	move, err := h.svc.Increment(c.Request.Context(), actor, req.ID, amount)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"power_move": move})
}

// Reset godoc
// @Summary  Reset power move cycle progress
// @Tags     power-moves
// @Accept   json
// @Produce  json
// @Param    body body resetPowerMoveRequest true "One move by id, or a department"
// @Success  200 {object} map[string]interface{}
// @Router   /power-moves/reset [post]
// @Security BearerAuth
func (h *PowerMoveHandler) Reset(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req resetPowerMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if req.ID != "" {
		move, err := h.svc.Reset(c.Request.Context(), actor, req.ID)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"power_move": move})
		return
	}

	moves, err := h.svc.ResetDepartment(c.Request.Context(), services.ResetPowerMovesInput{
		Actor:      actor,
		BrandID:    req.BrandID,
		Department: req.Department,
		Frequency:  domain.Frequency(req.Frequency),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"power_moves": moves})
}

func (h *PowerMoveHandler) Delete(c *gin.Context) {
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

package http

import (
	"net/http"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/bpr-hq/bpr-dashboard/internal/core/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VictoryTargetHandler struct {
	svc *services.VictoryTargetService
	log *zap.Logger
}

func NewVictoryTargetHandler(svc *services.VictoryTargetService, log *zap.Logger) *VictoryTargetHandler {
	return &VictoryTargetHandler{
		svc: svc,
		log: log,
	}
}

type createVictoryTargetRequest struct {
	BrandID    string                 `json:"brand_id"`
	Department string                 `json:"department" binding:"required,department"`
	Title      string                 `json:"title" binding:"required,max=150"`
	Target     float64                `json:"target" binding:"gte=0"`
	Achieved   float64                `json:"achieved"`
	Unit       string                 `json:"unit"`
	OwnerID    string                 `json:"owner_id"`
	Quarters   []domain.QuarterTarget `json:"quarters" binding:"max=4"`
}

type updateVictoryTargetRequest struct {
	ID       string                 `json:"id" binding:"required"`
	Title    string                 `json:"title" binding:"max=150"`
	Target   *float64               `json:"target" binding:"omitempty,gte=0"`
	Achieved *float64               `json:"achieved"`
	Unit     *string                `json:"unit"`
	OwnerID  string                 `json:"owner_id"`
	Quarters []domain.QuarterTarget `json:"quarters" binding:"max=4"`
	Version  int                    `json:"version"`
}

func (h *VictoryTargetHandler) RegisterRoutes(router *gin.RouterGroup) {
	targets := router.Group("/victory-targets")
	{
		targets.GET("", h.List)
		targets.POST("", h.Create)
		targets.PUT("", h.Update)
		targets.DELETE("", h.Delete)
	}
}

// List godoc
// @Summary  List victory targets
// @Tags     victory-targets
// @Produce  json
// @Param    brand_id   query string false "Brand (defaults to X-Brand-ID)"
// @Param    department query string false "Department code"
// @Param    owner_id   query string false "Owner"
// @Success  200 {object} map[string][]domain.VictoryTarget
// @Failure  403 {object} map[string]string
// @Router   /victory-targets [get]
// @Security BearerAuth
func (h *VictoryTargetHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), actor, listFilter(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"victory_targets": list})
}

// Create godoc
// @Summary  Create a victory target
// @Tags     victory-targets
// @Accept   json
// @Produce  json
// @Param    body body createVictoryTargetRequest true "Victory target"
// @Success  201 {object} map[string]domain.VictoryTarget
// @Failure  400 {object} map[string]string
// @Router   /victory-targets [post]
// @Security BearerAuth
func (h *VictoryTargetHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req createVictoryTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	target, err := h.svc.Create(c.Request.Context(), services.CreateVictoryTargetInput{
		Actor:      actor,
		BrandID:    req.BrandID,
		Department: req.Department,
		Title:      req.Title,
		Target:     req.Target,
		Achieved:   req.Achieved,
		Unit:       req.Unit,
		OwnerID:    req.OwnerID,
		Quarters:   req.Quarters,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"victory_target": target})
}

// Update godoc
// @Summary  Update a victory target
// @Description Fields left out keep their stored value. A non-zero version enables the optimistic lock.
// @Tags     victory-targets
// @Accept   json
// @Produce  json
// @Param    body body updateVictoryTargetRequest true "Changes"
// @Success  200 {object} map[string]domain.VictoryTarget
// @Failure  409 {object} map[string]string
// @Router   /victory-targets [put]
// @Security BearerAuth
func (h *VictoryTargetHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req updateVictoryTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	target, err := h.svc.Update(c.Request.Context(), services.UpdateVictoryTargetInput{
		Actor:    actor,
		ID:       req.ID,
		Title:    req.Title,
		Target:   req.Target,
		Achieved: req.Achieved,
		Unit:     req.Unit,
		OwnerID:  req.OwnerID,
		Quarters: req.Quarters,
		Version:  req.Version,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"victory_target": target})
}

// Delete godoc
// @Summary  Delete a victory target
// @Tags     victory-targets
// @Param    id query string true "Victory target id"
// @Success  200 {object} map[string]bool
// @Failure  404 {object} map[string]string
// @Router   /victory-targets [delete]
// @Security BearerAuth
func (h *VictoryTargetHandler) Delete(c *gin.Context) {
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

package http

import (
	"net/http"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/bpr-hq/bpr-dashboard/internal/core/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssignmentHandler struct {
	svc *services.AssignmentService
	log *zap.Logger
}

func NewAssignmentHandler(svc *services.AssignmentService, log *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		svc: svc,
		log: log,
	}
}

type createAssignmentRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	BrandID    string `json:"brand_id"`
	Department string `json:"department" binding:"required,department"`
	Permission string `json:"permission" binding:"required,permission"`
}

type updateAssignmentRequest struct {
	ID         string `json:"id" binding:"required"`
	Permission string `json:"permission" binding:"required,permission"`
}

func (h *AssignmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	assignments := router.Group("/assignments")
	{
		assignments.GET("", h.List)
		assignments.POST("", h.Create)
		assignments.PUT("", h.Update)
		assignments.DELETE("", h.Delete)
	}
}

// List godoc
// @Summary  List department assignments
// @Tags     assignments
// @Produce  json
// @Param    user_id  query string false "Filter by user"
// @Param    brand_id query string false "Filter by brand"
// @Success  200 {object} map[string][]domain.DepartmentAssignment
// @Router   /assignments [get]
// @Security BearerAuth
func (h *AssignmentHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), services.ListAssignmentsInput{
		Actor:   actor,
		BrandID: c.Query("brand_id"),
		UserID:  c.Query("user_id"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignments": list})
}

func (h *AssignmentHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req createAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	assignment, err := h.svc.Create(c.Request.Context(), services.CreateAssignmentInput{
		Actor:      actor,
		UserID:     req.UserID,
		BrandID:    req.BrandID,
		Department: req.Department,
		Permission: domain.Permission(req.Permission),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"assignment": assignment})
}

func (h *AssignmentHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req updateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	assignment, err := h.svc.Update(c.Request.Context(), services.UpdateAssignmentInput{
		Actor:      actor,
		ID:         req.ID,
		Permission: domain.Permission(req.Permission),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assignment": assignment})
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
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

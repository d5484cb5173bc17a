package http

import (
	"net/http"

	"github.com/bpr-hq/bpr-dashboard/internal/core/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ClientHandler struct {
	svc *services.ClientService
	log *zap.Logger
}

func NewClientHandler(svc *services.ClientService, log *zap.Logger) *ClientHandler {
	return &ClientHandler{
		svc: svc,
		log: log,
	}
}

type createClientRequest struct {
	BrandID string `json:"brand_id"`
	Name    string `json:"name" binding:"required,min=2"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
	OwnerID string `json:"owner_id"`
}

type updateClientRequest struct {
	ID      string `json:"id" binding:"required"`
	Name    string `json:"name" binding:"omitempty,min=2"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
	OwnerID string `json:"owner_id"`
}

func (h *ClientHandler) RegisterRoutes(router *gin.RouterGroup) {
	clients := router.Group("/clients")
	{
		clients.GET("", h.List)
		clients.POST("", h.Create)
		clients.PUT("", h.Update)
		clients.DELETE("", h.Delete)
	}
}

func (h *ClientHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), actor, listFilter(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": list})
}

func (h *ClientHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	client, err := h.svc.Create(c.Request.Context(), services.ClientInput{
		Actor:   actor,
		BrandID: req.BrandID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client": client})
}

func (h *ClientHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req updateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	client, err := h.svc.Update(c.Request.Context(), services.ClientInput{
		Actor:   actor,
		ID:      req.ID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client})
}

func (h *ClientHandler) Delete(c *gin.Context) {
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

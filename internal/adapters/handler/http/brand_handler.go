package http

import (
	"net/http"

	"github.com/bpr-hq/bpr-dashboard/internal/core/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BrandHandler struct {
	svc *services.BrandService
	log *zap.Logger
}

func NewBrandHandler(svc *services.BrandService, log *zap.Logger) *BrandHandler {
	return &BrandHandler{
		svc: svc,
		log: log,
	}
}

type createBrandRequest struct {
	Name string `json:"name" binding:"required,min=2"`
	Slug string `json:"slug"`
}

type updateBrandRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"omitempty,min=2"`
	Slug string `json:"slug"`
}

func (h *BrandHandler) RegisterRoutes(router *gin.RouterGroup) {
	brands := router.Group("/brands")
	{
		brands.GET("", h.List)
		brands.POST("", h.Create)
		brands.PUT("", h.Update)
		brands.DELETE("", h.Delete)
	}
}

// List godoc
// @Summary  List brands
// @Description Admins see every brand, other users only brands they hold an assignment in.
// @Tags     brands
// @Produce  json
// @Success  200 {object} map[string][]domain.Brand
// @Router   /brands [get]
// @Security BearerAuth
func (h *BrandHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	brands, err := h.svc.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (h *BrandHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req createBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	brand, err := h.svc.Create(c.Request.Context(), services.BrandInput{
		Actor: actor,
		Name:  req.Name,
		Slug:  req.Slug,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"brand": brand})
}

func (h *BrandHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req updateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	brand, err := h.svc.Update(c.Request.Context(), services.BrandInput{
		Actor: actor,
		ID:    req.ID,
		Name:  req.Name,
		Slug:  req.Slug,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"brand": brand})
}

func (h *BrandHandler) Delete(c *gin.Context) {
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

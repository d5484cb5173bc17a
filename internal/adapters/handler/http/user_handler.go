package http

import (
	"net/http"

	"github.com/bpr-hq/bpr-dashboard/internal/core/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	svc *services.UserService
	log *zap.Logger
}

func NewUserHandler(svc *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		svc: svc,
		log: log,
	}
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2"`
	Password string `json:"password" binding:"required,min=8"`
	IsAdmin  bool   `json:"is_admin"`
}

type updateUserRequest struct {
	ID       string `json:"id" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Name     string `json:"name" binding:"omitempty,min=2"`
	Password string `json:"password" binding:"omitempty,min=8"`
	IsAdmin  *bool  `json:"is_admin"`
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", h.List)
		users.GET("/me", h.Me)
		users.POST("", h.Create)
		users.PUT("", h.Update)
		users.DELETE("", h.Delete)
	}
}

// List godoc
// @Summary  List users (admin only)
// @Tags     users
// @Produce  json
// @Success  200 {object} map[string][]domain.User
// @Failure  403 {object} map[string]string
// @Router   /users [get]
// @Security BearerAuth
func (h *UserHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	users, err := h.svc.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) Me(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":  actor.UserID,
		"brand_id": actor.BrandID,
		"is_admin": actor.IsAdmin,
	})
}

func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.svc.Create(c.Request.Context(), services.CreateUserInput{
		Actor:    actor,
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.svc.Update(c.Request.Context(), services.UpdateUserInput{
		Actor:    actor,
		ID:       req.ID,
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) Delete(c *gin.Context) {
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

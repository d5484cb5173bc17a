package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/bpr-hq/bpr-dashboard/internal/core/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidDueDate = errors.New("invalid due_date, use YYYY-MM-DD or RFC3339")

type TaskHandler struct {
	svc *services.TaskService
	log *zap.Logger
}

func NewTaskHandler(svc *services.TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{
		svc: svc,
		log: log,
	}
}

type createTaskRequest struct {
	BrandID    string `json:"brand_id"`
	Department string `json:"department" binding:"required,department"`
	Title      string `json:"title" binding:"required"`
	OwnerID    string `json:"owner_id"`
	DueDate    string `json:"due_date"`
	Status     string `json:"status" binding:"omitempty,oneof=todo in-progress done"`
}

// updateTaskRequest: a due_date of "" clears the date, an absent one keeps it.
type updateTaskRequest struct {
	ID      string  `json:"id" binding:"required"`
	Title   string  `json:"title"`
	OwnerID string  `json:"owner_id"`
	DueDate *string `json:"due_date"`
	Status  string  `json:"status" binding:"omitempty,oneof=todo in-progress done"`
}

func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errInvalidDueDate
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	tasks := router.Group("/tasks")
	{
		tasks.GET("", h.List)
		tasks.POST("", h.Create)
		tasks.PUT("", h.Update)
		tasks.DELETE("", h.Delete)
	}
}

func (h *TaskHandler) List(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	list, err := h.svc.List(c.Request.Context(), actor, listFilter(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": list})
}

func (h *TaskHandler) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.svc.Create(c.Request.Context(), services.CreateTaskInput{
		Actor:      actor,
		BrandID:    req.BrandID,
		Department: req.Department,
		Title:      req.Title,
		OwnerID:    req.OwnerID,
		DueDate:    due,
		Status:     domain.TaskStatus(req.Status),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func (h *TaskHandler) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	input := services.UpdateTaskInput{
		Actor:   actor,
		ID:      req.ID,
		Title:   req.Title,
		OwnerID: req.OwnerID,
		Status:  domain.TaskStatus(req.Status),
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			badRequest(c, err)
			return
		}
		input.DueDate = due
		input.ClearDue = due == nil
	}

	task, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *TaskHandler) Delete(c *gin.Context) {
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

package services

import (
	"context"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

type TaskService struct {
	repo   domain.TaskRepository
	access *AccessService
}

func NewTaskService(repo domain.TaskRepository, access *AccessService) *TaskService {
	return &TaskService{
		repo:   repo,
		access: access,
	}
}

type CreateTaskInput struct {
	Actor      domain.Actor
	BrandID    string
	Department string
	Title      string
	OwnerID    string
	DueDate    *time.Time
	Status     domain.TaskStatus
}

type UpdateTaskInput struct {
	Actor    domain.Actor
	ID       string
	Title    string
	OwnerID  string
	DueDate  *time.Time
	ClearDue bool
	Status   domain.TaskStatus
}

func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(
		mergeString(input.BrandID, input.Actor.BrandID),
		input.Department,
		input.Title,
		mergeString(input.OwnerID, input.Actor.UserID),
		input.DueDate,
		input.Status,
	)
	if err != nil {
		return nil, err
	}

	if err := s.access.Authorize(ctx, input.Actor, task.BrandID, task.Department, domain.PermissionMember); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, actor domain.Actor, filter domain.ListFilter) ([]*domain.Task, error) {
	filter, err := s.access.scopedFilter(ctx, actor, filter)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

func (s *TaskService) Update(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
	task, err := s.authorized(ctx, input.Actor, input.ID)
	if err != nil {
		return nil, err
	}

	due := task.DueDate
	if input.DueDate != nil {
		due = input.DueDate
	}
	if input.ClearDue {
		due = nil
	}
	status := task.Status
	if input.Status != "" {
		status = input.Status
	}

	err = task.Update(
		mergeString(input.Title, task.Title),
		mergeString(input.OwnerID, task.OwnerID),
		due,
		status,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.authorized(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *TaskService) authorized(ctx context.Context, actor domain.Actor, id string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.Authorize(ctx, actor, task.BrandID, task.Department, domain.PermissionMember); err != nil {
		return nil, err
	}
	return task, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

// SnapshotQueue receives departments whose score needs recomputing.
type SnapshotQueue interface {
	Enqueue(brandID, department string)
}

type VictoryTargetService struct {
	repo   domain.VictoryTargetRepository
	access *AccessService
	queue  SnapshotQueue
}

func NewVictoryTargetService(repo domain.VictoryTargetRepository, access *AccessService, queue SnapshotQueue) *VictoryTargetService {
	return &VictoryTargetService{
		repo:   repo,
		access: access,
		queue:  queue,
	}
}

type CreateVictoryTargetInput struct {
	Actor      domain.Actor
	BrandID    string
	Department string
	Title      string
	Target     float64
	Achieved   float64
	Unit       string
	OwnerID    string
	Quarters   []domain.QuarterTarget
}

// UpdateVictoryTargetInput merges over the stored target: empty strings and
// nil pointers keep the current value. Version 0 skips the conflict check.
type UpdateVictoryTargetInput struct {
	Actor    domain.Actor
	ID       string
	Title    string
	Target   *float64
	Achieved *float64
	Unit     *string
	OwnerID  string
	Quarters []domain.QuarterTarget
	Version  int
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func mergeFloat(newVal *float64, oldVal float64) float64 {
	if newVal == nil {
		return oldVal
	}
	return *newVal
}

func (s *VictoryTargetService) Create(ctx context.Context, input CreateVictoryTargetInput) (*domain.VictoryTarget, error) {
	brandID := mergeString(input.BrandID, input.Actor.BrandID)
	owner := mergeString(input.OwnerID, input.Actor.UserID)

	target, err := domain.NewVictoryTarget(brandID, input.Department, input.Title, input.Target, input.Achieved, input.Unit, owner, input.Quarters)
	if err != nil {
		return nil, err
	}

	if err := s.access.Authorize(ctx, input.Actor, target.BrandID, target.Department, domain.PermissionMember); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, target); err != nil {
		return nil, err
	}

	s.notify(target)
	return target, nil
}

func (s *VictoryTargetService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.VictoryTarget, error) {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.Authorize(ctx, actor, target.BrandID, target.Department, domain.PermissionView); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *VictoryTargetService) List(ctx context.Context, actor domain.Actor, filter domain.ListFilter) ([]*domain.VictoryTarget, error) {
	filter, err := s.access.scopedFilter(ctx, actor, filter)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

func (s *VictoryTargetService) Update(ctx context.Context, input UpdateVictoryTargetInput) (*domain.VictoryTarget, error) {
	target, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := s.access.Authorize(ctx, input.Actor, target.BrandID, target.Department, domain.PermissionMember); err != nil {
		return nil, err
	}

	if input.Version > 0 && target.Version != input.Version {
		return nil, fmt.Errorf("%w: client v%d vs server v%d", domain.ErrVictoryTargetConflict, input.Version, target.Version)
	}

	unit := target.Unit
	if input.Unit != nil {
		unit = *input.Unit
	}
	quarters := target.Quarters
	if input.Quarters != nil {
		quarters = input.Quarters
	}

	err = target.Update(
		mergeString(input.Title, target.Title),
		mergeFloat(input.Target, target.Target),
		mergeFloat(input.Achieved, target.Achieved),
		unit,
		mergeString(input.OwnerID, target.OwnerID),
		quarters,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, target); err != nil {
		return nil, err
	}

	s.notify(target)
	return target, nil
}

func (s *VictoryTargetService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.access.Authorize(ctx, actor, target.BrandID, target.Department, domain.PermissionMember); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.notify(target)
	return nil
}

func (s *VictoryTargetService) notify(t *domain.VictoryTarget) {
	if s.queue != nil {
		s.queue.Enqueue(t.BrandID, t.Department)
	}
}

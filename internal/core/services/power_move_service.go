package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

type PowerMoveService struct {
	repo   domain.PowerMoveRepository
	access *AccessService
	now    func() time.Time
}

func NewPowerMoveService(repo domain.PowerMoveRepository, access *AccessService) *PowerMoveService {
	return &PowerMoveService{
		repo:   repo,
		access: access,
		now:    time.Now,
	}
}

type CreatePowerMoveInput struct {
	Actor           domain.Actor
	BrandID         string
	Department      string
	Name            string
	Frequency       domain.Frequency
	TargetPerCycle  int
	OwnerID         string
	VictoryTargetID *string
}

type UpdatePowerMoveInput struct {
	Actor           domain.Actor
	ID              string
	Name            string
	Frequency       domain.Frequency
	TargetPerCycle  int
	Progress        *int
	OwnerID         string
	VictoryTargetID *string
	Version         int
}

type ResetPowerMovesInput struct {
	Actor      domain.Actor
	BrandID    string
	Department string
	Frequency  domain.Frequency
}

func (s *PowerMoveService) Create(ctx context.Context, input CreatePowerMoveInput) (*domain.PowerMove, error) {
	brandID := mergeString(input.BrandID, input.Actor.BrandID)
	owner := mergeString(input.OwnerID, input.Actor.UserID)

	move, err := domain.NewPowerMove(brandID, input.Department, input.Name, input.Frequency, input.TargetPerCycle, owner, input.VictoryTargetID)
	if err != nil {
		return nil, err
	}

	if err := s.access.Authorize(ctx, input.Actor, move.BrandID, move.Department, domain.PermissionMember); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, move); err != nil {
		return nil, err
	}
	return move, nil
}

func (s *PowerMoveService) List(ctx context.Context, actor domain.Actor, filter domain.ListFilter) ([]*domain.PowerMove, error) {
	filter, err := s.access.scopedFilter(ctx, actor, filter)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

func (s *PowerMoveService) Update(ctx context.Context, input UpdatePowerMoveInput) (*domain.PowerMove, error) {
	move, err := s.authorized(ctx, input.Actor, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && move.Version != input.Version {
		return nil, fmt.Errorf("%w: client v%d vs server v%d", domain.ErrPowerMoveConflict, input.Version, move.Version)
	}

	freq := move.Frequency
	if input.Frequency != "" {
		freq = input.Frequency
	}
	target := move.TargetPerCycle
	if input.TargetPerCycle > 0 {
		target = input.TargetPerCycle
	}
	link := move.VictoryTargetID
	if input.VictoryTargetID != nil {
		link = input.VictoryTargetID
	}

	err = move.Update(
		mergeString(input.Name, move.Name),
		freq,
		target,
		mergeString(input.OwnerID, move.OwnerID),
		link,
	)
	if err != nil {
		return nil, err
	}
	if input.Progress != nil {
		move.SetProgress(*input.Progress)
	}

	if err := s.repo.Update(ctx, move); err != nil {
		return nil, err
	}
	return move, nil
}

// Increment records amount more progress for the current cycle. Progress
// saturates at the cycle target.
func (s *PowerMoveService) Increment(ctx context.Context, actor domain.Actor, id string, amount int) (*domain.PowerMove, error) {
	move, err := s.authorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := move.Increment(amount); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, move); err != nil {
		return nil, err
	}
	return move, nil
}

func (s *PowerMoveService) Reset(ctx context.Context, actor domain.Actor, id string) (*domain.PowerMove, error) {
	move, err := s.authorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	move.ResetCycle(s.now())
	if err := s.repo.Update(ctx, move); err != nil {
		return nil, err
	}
	return move, nil
}

// ResetDepartment resets every power move of one department, optionally
// limited to one frequency. It is the explicit end-of-cycle action; there is
// no automatic reset.
func (s *PowerMoveService) ResetDepartment(ctx context.Context, input ResetPowerMovesInput) ([]*domain.PowerMove, error) {
	brandID := mergeString(input.BrandID, input.Actor.BrandID)
	if brandID == "" {
		return nil, domain.ErrBrandRequired
	}
	dept, err := domain.NormalizeDepartment(input.Department)
	if err != nil {
		return nil, err
	}
	if input.Frequency != "" && !input.Frequency.Valid() {
		return nil, domain.ErrInvalidFrequency
	}
	if err := s.access.Authorize(ctx, input.Actor, brandID, dept, domain.PermissionMember); err != nil {
		return nil, err
	}

	moves, err := s.repo.List(ctx, domain.ListFilter{BrandID: brandID, Department: dept})
	if err != nil {
		return nil, err
	}

	now := s.now()
	reset := make([]*domain.PowerMove, 0, len(moves))
	for _, m := range moves {
		if input.Frequency != "" && m.Frequency != input.Frequency {
			continue
		}
		m.ResetCycle(now)
		if err := s.repo.Update(ctx, m); err != nil {
			return reset, fmt.Errorf("reset power move %s: %w", m.ID, err)
		}
		reset = append(reset, m)
	}
	return reset, nil
}

func (s *PowerMoveService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.authorized(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *PowerMoveService) authorized(ctx context.Context, actor domain.Actor, id string) (*domain.PowerMove, error) {
	move, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.Authorize(ctx, actor, move.BrandID, move.Department, domain.PermissionMember); err != nil {
		return nil, err
	}
	return move, nil
}

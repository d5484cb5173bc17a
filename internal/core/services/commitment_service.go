package services

import (
	"context"
	"time"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

type CommitmentService struct {
	repo   domain.CommitmentRepository
	access *AccessService
	now    func() time.Time
}

func NewCommitmentService(repo domain.CommitmentRepository, access *AccessService) *CommitmentService {
	return &CommitmentService{
		repo:   repo,
		access: access,
		now:    time.Now,
	}
}

type CreateCommitmentInput struct {
	Actor           domain.Actor
	BrandID         string
	Department      string
	OwnerID         string
	Description     string
	DueDay          string
	PowerMoveID     *string
	VictoryTargetID *string
}

type UpdateCommitmentInput struct {
	Actor           domain.Actor
	ID              string
	OwnerID         string
	Description     string
	DueDay          *string
	Completed       *bool
	PowerMoveID     *string
	VictoryTargetID *string
}

func (s *CommitmentService) Create(ctx context.Context, input CreateCommitmentInput) (*domain.Commitment, error) {
	c, err := domain.NewCommitment(
		mergeString(input.BrandID, input.Actor.BrandID),
		input.Department,
		mergeString(input.OwnerID, input.Actor.UserID),
		input.Description,
		input.DueDay,
		input.PowerMoveID,
		input.VictoryTargetID,
		s.now(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.access.Authorize(ctx, input.Actor, c.BrandID, c.Department, domain.PermissionMember); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommitmentService) List(ctx context.Context, actor domain.Actor, filter domain.ListFilter) ([]*domain.Commitment, error) {
	filter, err := s.access.scopedFilter(ctx, actor, filter)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

func (s *CommitmentService) Update(ctx context.Context, input UpdateCommitmentInput) (*domain.Commitment, error) {
	c, err := s.authorized(ctx, input.Actor, input.ID)
	if err != nil {
		return nil, err
	}

	dueDay := c.DueDay
	if input.DueDay != nil {
		dueDay = *input.DueDay
	}
	pm := c.PowerMoveID
	if input.PowerMoveID != nil {
		pm = input.PowerMoveID
	}
	vt := c.VictoryTargetID
	if input.VictoryTargetID != nil {
		vt = input.VictoryTargetID
	}

	err = c.Update(
		mergeString(input.OwnerID, c.OwnerID),
		mergeString(input.Description, c.Description),
		dueDay,
		pm,
		vt,
	)
	if err != nil {
		return nil, err
	}
	if input.Completed != nil {
		c.Completed = *input.Completed
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Toggle flips the completed flag.
func (s *CommitmentService) Toggle(ctx context.Context, actor domain.Actor, id string) (*domain.Commitment, error) {
	c, err := s.authorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	c.Toggle()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommitmentService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.authorized(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *CommitmentService) authorized(ctx context.Context, actor domain.Actor, id string) (*domain.Commitment, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.Authorize(ctx, actor, c.BrandID, c.Department, domain.PermissionMember); err != nil {
		return nil, err
	}
	return c, nil
}

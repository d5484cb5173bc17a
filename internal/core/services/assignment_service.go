package services

import (
	"context"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

// AssignmentService grants and revokes department permissions. Every change
// requires admin rights on the brand concerned.
type AssignmentService struct {
	repo   domain.AssignmentRepository
	brands domain.BrandRepository
	users  domain.UserRepository
	access *AccessService
}

func NewAssignmentService(repo domain.AssignmentRepository, brands domain.BrandRepository, users domain.UserRepository, access *AccessService) *AssignmentService {
	return &AssignmentService{
		repo:   repo,
		brands: brands,
		users:  users,
		access: access,
	}
}

type CreateAssignmentInput struct {
	Actor      domain.Actor
	UserID     string
	BrandID    string
	Department string
	Permission domain.Permission
}

type UpdateAssignmentInput struct {
	Actor      domain.Actor
	ID         string
	Permission domain.Permission
}

type ListAssignmentsInput struct {
	Actor   domain.Actor
	BrandID string
	UserID  string
}

func (s *AssignmentService) Create(ctx context.Context, input CreateAssignmentInput) (*domain.DepartmentAssignment, error) {
	a, err := domain.NewDepartmentAssignment(
		input.UserID,
		mergeString(input.BrandID, input.Actor.BrandID),
		input.Department,
		input.Permission,
	)
	if err != nil {
		return nil, err
	}

	if err := s.access.AuthorizeBrand(ctx, input.Actor, a.BrandID, domain.PermissionAdmin); err != nil {
		return nil, err
	}
	if _, err := s.brands.GetByID(ctx, a.BrandID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, a.UserID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns a user's own assignments, or a brand's assignments for that
// brand's admins.
func (s *AssignmentService) List(ctx context.Context, input ListAssignmentsInput) ([]*domain.DepartmentAssignment, error) {
	if input.Actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}

	if input.UserID != "" {
		if input.UserID != input.Actor.UserID && !input.Actor.IsAdmin {
			return nil, domain.ErrForbidden
		}
		list, err := s.repo.ListByUser(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		if input.BrandID == "" {
			return list, nil
		}
		out := make([]*domain.DepartmentAssignment, 0, len(list))
		for _, a := range list {
			if a.BrandID == input.BrandID {
				out = append(out, a)
			}
		}
		return out, nil
	}

	brandID := mergeString(input.BrandID, input.Actor.BrandID)
	if brandID == "" {
		return s.repo.ListByUser(ctx, input.Actor.UserID)
	}
	if err := s.access.AuthorizeBrand(ctx, input.Actor, brandID, domain.PermissionAdmin); err != nil {
		return nil, err
	}
	return s.repo.ListByBrand(ctx, brandID)
}

func (s *AssignmentService) Update(ctx context.Context, input UpdateAssignmentInput) (*domain.DepartmentAssignment, error) {
	a, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := s.access.AuthorizeBrand(ctx, input.Actor, a.BrandID, domain.PermissionAdmin); err != nil {
		return nil, err
	}
	if err := a.SetPermission(input.Permission); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssignmentService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.access.AuthorizeBrand(ctx, actor, a.BrandID, domain.PermissionAdmin); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

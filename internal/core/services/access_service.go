package services

import (
	"context"
	"sort"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

type AccessService struct {
	assignments domain.AssignmentRepository
}

func NewAccessService(assignments domain.AssignmentRepository) *AccessService {
	return &AccessService{assignments: assignments}
}

// Authorize checks that actor holds at least need on (brandID, department).
// Global admins pass everywhere.
func (s *AccessService) Authorize(ctx context.Context, actor domain.Actor, brandID, department string, need domain.Permission) error {
	if actor.UserID == "" {
		return domain.ErrUnauthorized
	}
	if actor.IsAdmin {
		return nil
	}

	list, err := s.assignments.ListByUser(ctx, actor.UserID)
	if err != nil {
		return err
	}
	for _, a := range list {
		if a.BrandID == brandID && a.Department == department && a.Permission.Allows(need) {
			return nil
		}
	}
	return domain.ErrForbidden
}

// AuthorizeBrand passes when actor holds need on any department of brandID.
func (s *AccessService) AuthorizeBrand(ctx context.Context, actor domain.Actor, brandID string, need domain.Permission) error {
	if actor.UserID == "" {
		return domain.ErrUnauthorized
	}
	if actor.IsAdmin {
		return nil
	}

	list, err := s.assignments.ListByUser(ctx, actor.UserID)
	if err != nil {
		return err
	}
	for _, a := range list {
		if a.BrandID == brandID && a.Permission.Allows(need) {
			return nil
		}
	}
	return domain.ErrForbidden
}

// VisibleDepartments returns the departments of brandID the actor may view,
// sorted. A nil slice means every department.
func (s *AccessService) VisibleDepartments(ctx context.Context, actor domain.Actor, brandID string) ([]string, error) {
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if actor.IsAdmin {
		return nil, nil
	}

	list, err := s.assignments.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	depts := []string{}
	for _, a := range list {
		if a.BrandID == brandID && a.Permission.Allows(domain.PermissionView) {
			depts = append(depts, a.Department)
		}
	}
	sort.Strings(depts)
	return depts, nil
}

// VisibleBrands returns the brand ids the actor holds any assignment in.
// A nil slice means every brand.
func (s *AccessService) VisibleBrands(ctx context.Context, actor domain.Actor) ([]string, error) {
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if actor.IsAdmin {
		return nil, nil
	}

	list, err := s.assignments.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	brands := []string{}
	for _, a := range list {
		if !seen[a.BrandID] {
			seen[a.BrandID] = true
			brands = append(brands, a.BrandID)
		}
	}
	sort.Strings(brands)
	return brands, nil
}

// scopedFilter applies the actor's visibility to a brand listing. A request
// for one department is authorized directly; otherwise the filter is narrowed
// to the departments the actor can see.
func (s *AccessService) scopedFilter(ctx context.Context, actor domain.Actor, filter domain.ListFilter) (domain.ListFilter, error) {
	if filter.BrandID == "" {
		filter.BrandID = actor.BrandID
	}
	if filter.BrandID == "" {
		return filter, domain.ErrBrandRequired
	}

	if filter.Department != "" {
		dept, err := domain.NormalizeDepartment(filter.Department)
		if err != nil {
			return filter, err
		}
		filter.Department = dept
		return filter, s.Authorize(ctx, actor, filter.BrandID, dept, domain.PermissionView)
	}

	depts, err := s.VisibleDepartments(ctx, actor, filter.BrandID)
	if err != nil {
		return filter, err
	}
	filter.Departments = depts
	return filter, nil
}

package services

import (
	"context"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

type BrandService struct {
	repo   domain.BrandRepository
	access *AccessService
}

func NewBrandService(repo domain.BrandRepository, access *AccessService) *BrandService {
	return &BrandService{
		repo:   repo,
		access: access,
	}
}

type BrandInput struct {
	Actor domain.Actor
	ID    string
	Name  string
	Slug  string
}

func (s *BrandService) Create(ctx context.Context, input BrandInput) (*domain.Brand, error) {
	if err := requireAdmin(input.Actor); err != nil {
		return nil, err
	}

	brand, err := domain.NewBrand(input.Name, input.Slug)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

// List returns the brands the actor holds any assignment in.
func (s *BrandService) List(ctx context.Context, actor domain.Actor) ([]*domain.Brand, error) {
	visible, err := s.access.VisibleBrands(ctx, actor)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if visible == nil {
		return all, nil
	}

	allowed := make(map[string]bool, len(visible))
	for _, id := range visible {
		allowed[id] = true
	}
	brands := make([]*domain.Brand, 0, len(visible))
	for _, b := range all {
		if allowed[b.ID] {
			brands = append(brands, b)
		}
	}
	return brands, nil
}

func (s *BrandService) Update(ctx context.Context, input BrandInput) (*domain.Brand, error) {
	brand, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := s.access.AuthorizeBrand(ctx, input.Actor, brand.ID, domain.PermissionAdmin); err != nil {
		return nil, err
	}

	slug := brand.Slug
	if input.Slug != "" {
		slug = input.Slug
	}
	if err := brand.Update(mergeString(input.Name, brand.Name), slug); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *BrandService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

package services

import (
	"context"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

// ClientService manages brand-level client records. Clients are not tied to
// a department, so access is checked against any assignment in the brand.
type ClientService struct {
	repo   domain.ClientRepository
	access *AccessService
}

func NewClientService(repo domain.ClientRepository, access *AccessService) *ClientService {
	return &ClientService{
		repo:   repo,
		access: access,
	}
}

type ClientInput struct {
	Actor   domain.Actor
	ID      string
	BrandID string
	Name    string
	Email   string
	Phone   string
	Company string
	Notes   string
	OwnerID string
}

func (s *ClientService) Create(ctx context.Context, input ClientInput) (*domain.Client, error) {
	c, err := domain.NewClient(
		mergeString(input.BrandID, input.Actor.BrandID),
		input.Name,
		input.Email,
		input.Phone,
		input.Company,
		input.Notes,
		mergeString(input.OwnerID, input.Actor.UserID),
	)
	if err != nil {
		return nil, err
	}

	if err := s.access.AuthorizeBrand(ctx, input.Actor, c.BrandID, domain.PermissionMember); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) List(ctx context.Context, actor domain.Actor, filter domain.ListFilter) ([]*domain.Client, error) {
	if filter.BrandID == "" {
		filter.BrandID = actor.BrandID
	}
	if filter.BrandID == "" {
		return nil, domain.ErrBrandRequired
	}
	if err := s.access.AuthorizeBrand(ctx, actor, filter.BrandID, domain.PermissionView); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, domain.ListFilter{BrandID: filter.BrandID, OwnerID: filter.OwnerID})
}

func (s *ClientService) Update(ctx context.Context, input ClientInput) (*domain.Client, error) {
	c, err := s.authorized(ctx, input.Actor, input.ID)
	if err != nil {
		return nil, err
	}

	err = c.Update(
		mergeString(input.Name, c.Name),
		mergeString(input.Email, c.Email),
		mergeString(input.Phone, c.Phone),
		mergeString(input.Company, c.Company),
		mergeString(input.Notes, c.Notes),
	)
	if err != nil {
		return nil, err
	}
	c.OwnerID = mergeString(input.OwnerID, c.OwnerID)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.authorized(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *ClientService) authorized(ctx context.Context, actor domain.Actor, id string) (*domain.Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.AuthorizeBrand(ctx, actor, c.BrandID, domain.PermissionMember); err != nil {
		return nil, err
	}
	return c, nil
}

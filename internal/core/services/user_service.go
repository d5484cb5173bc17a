package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/google/uuid"
)

type UserService struct {
	repo domain.UserRepository
}

func NewUserService(repo domain.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

type CreateUserInput struct {
	Actor    domain.Actor
	Email    string
	Name     string
	Password string
	IsAdmin  bool
}

type UpdateUserInput struct {
	Actor    domain.Actor
	ID       string
	Email    string
	Name     string
	Password string
	IsAdmin  *bool
}

// Create registers a user. Only global admins manage accounts; sign-up
// itself belongs to the external identity layer.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := requireAdmin(input.Actor); err != nil {
		return nil, err
	}

	user, err := domain.NewUser(uuid.NewString(), input.Email, input.Name)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}
	user.IsAdmin = input.IsAdmin

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("user service: failed to create user: %w", err)
	}

	return user, nil
}

// List returns every user for admins and only the caller otherwise.
func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	if actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if actor.IsAdmin {
		return s.repo.List(ctx)
	}

	me, err := s.repo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return []*domain.User{me}, nil
}

func (s *UserService) Update(ctx context.Context, input UpdateUserInput) (*domain.User, error) {
	if input.Actor.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if !input.Actor.IsAdmin && (input.Actor.UserID != input.ID || input.IsAdmin != nil) {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := user.Update(mergeString(input.Email, user.Email), mergeString(input.Name, user.Name)); err != nil {
		return nil, err
	}
	if input.Password != "" {
		if err := user.SetPassword(input.Password); err != nil {
			return nil, err
		}
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureAdmin returns the user registered under email, creating it as a
// global admin when missing. It runs at startup without an actor.
func (s *UserService) EnsureAdmin(ctx context.Context, email, name, password string) (*domain.User, bool, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	user, err := domain.NewUser(uuid.NewString(), email, name)
	if err != nil {
		return nil, false, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, false, err
	}
	user.IsAdmin = true

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("user service: failed to create admin: %w", err)
	}
	return user, true, nil
}

func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func requireAdmin(actor domain.Actor) error {
	if actor.UserID == "" {
		return domain.ErrUnauthorized
	}
	if !actor.IsAdmin {
		return domain.ErrForbidden
	}
	return nil
}

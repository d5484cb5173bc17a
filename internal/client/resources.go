package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

// Resource is one CRUD collection of the API. Bodies are the JSON request
// objects the server binds, typically map[string]any or a struct with json
// tags; updates carry "id" in the body.
type Resource[T any] struct {
	c        *Client
	path     string
	plural   string
	singular string
	idOf     func(T) string
}

func newResource[T any](c *Client, path, plural, singular string, idOf func(T) string) *Resource[T] {
	return &Resource[T]{c: c, path: path, plural: plural, singular: singular, idOf: idOf}
}

func (r *Resource[T]) List(ctx context.Context, filter domain.ListFilter) ([]T, error) {
	q := url.Values{}
	if filter.BrandID != "" {
		q.Set("brand_id", filter.BrandID)
	}
	if filter.Department != "" {
		q.Set("department", filter.Department)
	}
	if filter.OwnerID != "" {
		q.Set("owner_id", filter.OwnerID)
	}
	return call[[]T](ctx, r.c, http.MethodGet, r.path, q, nil, r.plural)
}

func (r *Resource[T]) Create(ctx context.Context, body any) Result[T] {
	return mutate[T](ctx, r.c, http.MethodPost, r.path, body, r.singular)
}

func (r *Resource[T]) Update(ctx context.Context, body any) Result[T] {
	return mutate[T](ctx, r.c, http.MethodPut, r.path, body, r.singular)
}

// Delete returns the deleted id on success.
func (r *Resource[T]) Delete(ctx context.Context, id string) Result[string] {
	if _, err := r.c.do(ctx, http.MethodDelete, r.path, url.Values{"id": {id}}, nil); err != nil {
		return Err[string](err)
	}
	return Ok(id)
}

func (c *Client) VictoryTargets() *Resource[domain.VictoryTarget] {
	return newResource(c, "/victory-targets", "victory_targets", "victory_target",
		func(v domain.VictoryTarget) string { return v.ID })
}

func (c *Client) PowerMoves() *Resource[domain.PowerMove] {
	return newResource(c, "/power-moves", "power_moves", "power_move",
		func(v domain.PowerMove) string { return v.ID })
}

func (c *Client) Tasks() *Resource[domain.Task] {
	return newResource(c, "/tasks", "tasks", "task",
		func(v domain.Task) string { return v.ID })
}

func (c *Client) Commitments() *Resource[domain.Commitment] {
	return newResource(c, "/commitments", "commitments", "commitment",
		func(v domain.Commitment) string { return v.ID })
}

func (c *Client) Clients() *Resource[domain.Client] {
	return newResource(c, "/clients", "clients", "client",
		func(v domain.Client) string { return v.ID })
}

func (c *Client) Users() *Resource[domain.User] {
	return newResource(c, "/users", "users", "user",
		func(v domain.User) string { return v.ID })
}

func (c *Client) Brands() *Resource[domain.Brand] {
	return newResource(c, "/brands", "brands", "brand",
		func(v domain.Brand) string { return v.ID })
}

func (c *Client) Assignments() *Resource[domain.DepartmentAssignment] {
	return newResource(c, "/assignments", "assignments", "assignment",
		func(v domain.DepartmentAssignment) string { return v.ID })
}

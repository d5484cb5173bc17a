package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
)

func TestUserHandler(t *testing.T) {
	s := newTestServer(t)

	t.Run("admin creates a user", func(t *testing.T) {
		w := s.do("admin", http.MethodPost, "/users", map[string]any{
			"email":    "new@acme.test",
			"name":     "Newbie",
			"password": "password123",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		user := decode[domain.User](t, w, "user")
		assert.Equal(t, "new@acme.test", user.Email)
		assert.NotContains(t, w.Body.String(), "password")

		w = s.do("admin", http.MethodPost, "/users", map[string]any{
			"email": "new@acme.test", "name": "Again", "password": "password123",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("validation", func(t *testing.T) {
		for _, body := range []map[string]any{
			{"email": "bad", "name": "Name", "password": "password123"},
			{"email": "ok@acme.test", "name": "N", "password": "password123"},
			{"email": "ok@acme.test", "name": "Name", "password": "short"},
		} {
			w := s.do("admin", http.MethodPost, "/users", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
	})

	t.Run("non-admins cannot manage users", func(t *testing.T) {
		w := s.do("member", http.MethodPost, "/users", map[string]any{
			"email": "x@acme.test", "name": "Xavier", "password": "password123",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.do("member", http.MethodGet, "/users", nil)
		require.Equal(t, http.StatusOK, w.Code)
		users := decode[[]domain.User](t, w, "users")
		require.Len(t, users, 1)
		assert.Equal(t, "member", users[0].ID)
	})

	t.Run("me", func(t *testing.T) {
		w := s.do("viewer", http.MethodGet, "/users/me", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id":"viewer","brand_id":"`+s.brand.ID+`","is_admin":false}`, w.Body.String())
	})

	t.Run("deleted users lose access", func(t *testing.T) {
		w := s.do("admin", http.MethodDelete, "/users?id=outsider", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = s.do("outsider", http.MethodGet, "/users/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBrandHandler(t *testing.T) {
	s := newTestServer(t)

	w := s.do("admin", http.MethodPost, "/brands", map[string]any{"name": "Umbrella Foods"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	brand := decode[domain.Brand](t, w, "brand")
	assert.Equal(t, "umbrella-foods", brand.Slug)

	w = s.do("admin", http.MethodPost, "/brands", map[string]any{"name": "Umbrella Foods"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do("member", http.MethodPost, "/brands", map[string]any{"name": "Side Hustle"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do("admin", http.MethodGet, "/brands", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.Brand](t, w, "brands"), 2)

	w = s.do("member", http.MethodGet, "/brands", nil)
	require.Equal(t, http.StatusOK, w.Code)
	visible := decode[[]domain.Brand](t, w, "brands")
	require.Len(t, visible, 1)
	assert.Equal(t, s.brand.ID, visible[0].ID)

	w = s.do("member", http.MethodPut, "/brands", map[string]any{"id": s.brand.ID, "name": "Renamed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do("admin", http.MethodPut, "/brands", map[string]any{"id": brand.ID, "name": "Umbrella Group"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Umbrella Group", decode[domain.Brand](t, w, "brand").Name)

	w = s.do("admin", http.MethodDelete, "/brands?id="+brand.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAssignmentHandler(t *testing.T) {
	s := newTestServer(t)

	w := s.do("admin", http.MethodPost, "/assignments", map[string]any{
		"user_id":    "outsider",
		"department": "hr",
		"permission": "member",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	a := decode[domain.DepartmentAssignment](t, w, "assignment")
	assert.Equal(t, s.brand.ID, a.BrandID)

	t.Run("the grant takes effect", func(t *testing.T) {
		w := s.do("outsider", http.MethodPost, "/tasks", map[string]any{"department": "hr", "title": "Onboarding"})
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("bad permission", func(t *testing.T) {
		w := s.do("admin", http.MethodPost, "/assignments", map[string]any{
			"user_id": "outsider", "department": "hr", "permission": "owner",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := s.do("admin", http.MethodPost, "/assignments", map[string]any{
			"user_id": "ghost", "department": "hr", "permission": "view",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("members cannot grant", func(t *testing.T) {
		w := s.do("member", http.MethodPost, "/assignments", map[string]any{
			"user_id": "viewer", "department": "sales", "permission": "admin",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("list own and brand", func(t *testing.T) {
		w := s.do("member", http.MethodGet, "/assignments?user_id=member", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]domain.DepartmentAssignment](t, w, "assignments"), 2)

		w = s.do("member", http.MethodGet, "/assignments?user_id=viewer", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.do("admin", http.MethodGet, "/assignments", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]domain.DepartmentAssignment](t, w, "assignments"), 4)
	})

	t.Run("downgrade and revoke", func(t *testing.T) {
		w := s.do("admin", http.MethodPut, "/assignments", map[string]any{"id": a.ID, "permission": "view"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, domain.PermissionView, decode[domain.DepartmentAssignment](t, w, "assignment").Permission)

		w = s.do("outsider", http.MethodPost, "/tasks", map[string]any{"department": "hr", "title": "Payroll"})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.do("admin", http.MethodDelete, "/assignments?id="+a.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = s.do("outsider", http.MethodGet, "/tasks?department=hr", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/bpr-hq/bpr-dashboard/internal/adapters/repository"
	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/bpr-hq/bpr-dashboard/internal/core/services"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

// fixture seeds one brand with three non-admin users:
//
//	member: member on sales, view on marketing
//	viewer: view on sales
//	outsider: nothing
type fixture struct {
	store  *repository.MemoryStore
	access *services.AccessService
	brand  *domain.Brand

	admin    domain.Actor
	member   domain.Actor
	viewer   domain.Actor
	outsider domain.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()

	brand, err := domain.NewBrand("Acme Retail", "")
	require.NoError(t, err)
	require.NoError(t, store.Brands.Create(ctx, brand))

	f := &fixture{
		store:    store,
		access:   services.NewAccessService(store.Assignments),
		brand:    brand,
		admin:    domain.Actor{UserID: "u-admin", BrandID: brand.ID, IsAdmin: true},
		member:   domain.Actor{UserID: "u-member", BrandID: brand.ID},
		viewer:   domain.Actor{UserID: "u-viewer", BrandID: brand.ID},
		outsider: domain.Actor{UserID: "u-outsider", BrandID: brand.ID},
	}

	for _, u := range []struct{ id, email, name string }{
		{"u-admin", "admin@acme.test", "Admin"},
		{"u-member", "member@acme.test", "Member"},
		{"u-viewer", "viewer@acme.test", "Viewer"},
		{"u-outsider", "outsider@acme.test", "Outsider"},
	} {
		user, err := domain.NewUser(u.id, u.email, u.name)
		require.NoError(t, err)
		user.IsAdmin = u.id == "u-admin"
		require.NoError(t, store.Users.Create(ctx, user))
	}

	f.grant(t, "u-member", domain.DeptSales, domain.PermissionMember)
	f.grant(t, "u-member", domain.DeptMarketing, domain.PermissionView)
	f.grant(t, "u-viewer", domain.DeptSales, domain.PermissionView)
	return f
}

func (f *fixture) grant(t *testing.T, userID, dept string, perm domain.Permission) *domain.DepartmentAssignment {
	t.Helper()
	a, err := domain.NewDepartmentAssignment(userID, f.brand.ID, dept, perm)
	require.NoError(t, err)
	require.NoError(t, f.store.Assignments.Create(context.Background(), a))
	return a
}

type recordingQueue struct {
	mu   sync.Mutex
	jobs []string
}

func (q *recordingQueue) Enqueue(brandID, department string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, brandID+"/"+department)
}

func (q *recordingQueue) Jobs() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.jobs...)
}

package services_test

import (
	"context"
	"testing"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/bpr-hq/bpr-dashboard/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentService(t *testing.T) {
	f := newFixture(t)
	svc := services.NewAssignmentService(f.store.Assignments, f.store.Brands, f.store.Users, f.access)
	ctx := context.Background()

	t.Run("admin grants a department", func(t *testing.T) {
		a, err := svc.Create(ctx, services.CreateAssignmentInput{
			Actor:      f.admin,
			UserID:     f.outsider.UserID,
			Department: domain.DeptHR,
			Permission: domain.PermissionView,
		})
		require.NoError(t, err)
		assert.Equal(t, f.brand.ID, a.BrandID)

		assert.NoError(t, f.access.Authorize(ctx, f.outsider, f.brand.ID, domain.DeptHR, domain.PermissionView))
	})

	t.Run("duplicate grant", func(t *testing.T) {
		_, err := svc.Create(ctx, services.CreateAssignmentInput{
			Actor: f.admin, UserID: f.outsider.UserID, Department: domain.DeptHR, Permission: domain.PermissionMember,
		})
		assert.ErrorIs(t, err, domain.ErrAssignmentExists)
	})

	t.Run("members cannot grant", func(t *testing.T) {
		_, err := svc.Create(ctx, services.CreateAssignmentInput{
			Actor: f.member, UserID: f.viewer.UserID, Department: domain.DeptSales, Permission: domain.PermissionMember,
		})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown user and brand", func(t *testing.T) {
		_, err := svc.Create(ctx, services.CreateAssignmentInput{
			Actor: f.admin, UserID: "ghost", Department: domain.DeptHR, Permission: domain.PermissionView,
		})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = svc.Create(ctx, services.CreateAssignmentInput{
			Actor: f.admin, UserID: f.member.UserID, BrandID: "ghost-brand", Department: domain.DeptHR, Permission: domain.PermissionView,
		})
		assert.ErrorIs(t, err, domain.ErrBrandNotFound)
	})

	t.Run("invalid permission", func(t *testing.T) {
		_, err := svc.Create(ctx, services.CreateAssignmentInput{
			Actor: f.admin, UserID: f.member.UserID, Department: domain.DeptOperations, Permission: "owner",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPermission)
	})

	t.Run("list own vs brand", func(t *testing.T) {
		mine, err := svc.List(ctx, services.ListAssignmentsInput{Actor: f.member, UserID: f.member.UserID})
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		_, err = svc.List(ctx, services.ListAssignmentsInput{Actor: f.member, UserID: f.viewer.UserID})
		assert.ErrorIs(t, err, domain.ErrForbidden)

		_, err = svc.List(ctx, services.ListAssignmentsInput{Actor: f.member})
		assert.ErrorIs(t, err, domain.ErrForbidden, "brand listing needs brand admin")

		all, err := svc.List(ctx, services.ListAssignmentsInput{Actor: f.admin})
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})

	t.Run("update and delete", func(t *testing.T) {
		a := f.grant(t, f.viewer.UserID, domain.DeptAccounts, domain.PermissionView)

		got, err := svc.Update(ctx, services.UpdateAssignmentInput{Actor: f.admin, ID: a.ID, Permission: domain.PermissionMember})
		require.NoError(t, err)
		assert.Equal(t, domain.PermissionMember, got.Permission)

		require.NoError(t, svc.Delete(ctx, f.admin, a.ID))
		assert.ErrorIs(t, svc.Delete(ctx, f.admin, a.ID), domain.ErrAssignmentNotFound)
		assert.ErrorIs(t, f.access.Authorize(ctx, f.viewer, f.brand.ID, domain.DeptAccounts, domain.PermissionView), domain.ErrForbidden)
	})
}

package services_test

import (
	"context"
	"testing"

	"github.com/bpr-hq/bpr-dashboard/internal/core/domain"
	"github.com/bpr-hq/bpr-dashboard/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientService(t *testing.T) {
	f := newFixture(t)
	svc := services.NewClientService(f.store.Clients, f.access)
	ctx := context.Background()

	client, err := svc.Create(ctx, services.ClientInput{
		Actor:   f.member,
		Name:    "Globex",
		Email:   "buyer@globex.test",
		Company: "Globex Corp",
	})
	require.NoError(t, err)
	assert.Equal(t, f.brand.ID, client.BrandID)
	assert.Equal(t, f.member.UserID, client.OwnerID)

	t.Run("viewer may list but not create", func(t *testing.T) {
		list, err := svc.List(ctx, f.viewer, domain.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, list, 1)

		_, err = svc.Create(ctx, services.ClientInput{Actor: f.viewer, Name: "Initech"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("outsider cannot list", func(t *testing.T) {
		_, err := svc.List(ctx, f.outsider, domain.ListFilter{})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("update merges fields", func(t *testing.T) {
		got, err := svc.Update(ctx, services.ClientInput{Actor: f.member, ID: client.ID, Phone: "+39 055 000"})
		require.NoError(t, err)
		assert.Equal(t, "Globex", got.Name)
		assert.Equal(t, "+39 055 000", got.Phone)
		assert.Equal(t, "Globex Corp", got.Company)
	})

	t.Run("name too short", func(t *testing.T) {
		_, err := svc.Create(ctx, services.ClientInput{Actor: f.member, Name: "X"})
		assert.ErrorIs(t, err, domain.ErrClientNameShort)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, f.member, client.ID))
		assert.ErrorIs(t, svc.Delete(ctx, f.member, client.ID), domain.ErrClientNotFound)
	})
}

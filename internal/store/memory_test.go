package store

import (
	"context"
	"testing"

	"streetbite/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCreateVendor(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	user := &model.User{UserType: model.UserTypeVendor, Email: "a@x.com", Password: "hash"}
	supplier := &model.Supplier{Name: "a", Email: "a@x.com"}
	require.NoError(t, st.CreateVendor(ctx, user, supplier))

	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, supplier.ID)

	found, err := st.SupplierByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, supplier.ID, found.ID)
	assert.Empty(t, found.Items)
}

func TestMemoryDuplicateEmail(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	require.NoError(t, st.CreateUser(ctx, &model.User{UserType: model.UserTypeOwner, Email: "a@x.com", Password: "h", ShopName: "s"}))

	err := st.CreateUser(ctx, &model.User{UserType: model.UserTypeOwner, Email: "a@x.com", Password: "h", ShopName: "s"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// The vendor path checks the same unique key
	err = st.CreateVendor(ctx,
		&model.User{UserType: model.UserTypeVendor, Email: "a@x.com", Password: "h"},
		&model.Supplier{Name: "a", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// And the failed vendor write must not leave a supplier behind
	_, err = st.SupplierByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryNotFoundSentinels(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.UserByEmail(ctx, "nope@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.UserByEmailAndType(ctx, "nope@x.com", model.UserTypeOwner)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.SupplierByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.ItemByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.OrderByID(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.UpdateOrderStatus(ctx, "nope", model.StatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)
	err = st.AddItem(ctx, "nope", &model.Item{Name: "Tea"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCatalogAppendOrder(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	supplier := &model.Supplier{Name: "a", Email: "a@x.com"}
	require.NoError(t, st.CreateVendor(ctx, &model.User{UserType: model.UserTypeVendor, Email: "a@x.com", Password: "h"}, supplier))

	names := []string{"Tea", "Samosa", "Chaat"}
	for _, name := range names {
		require.NoError(t, st.AddItem(ctx, supplier.ID, &model.Item{Name: name}))
	}

	found, err := st.SupplierByID(ctx, supplier.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, len(names))
	for i, name := range names {
		assert.Equal(t, name, found.Items[i].Name)
		assert.Equal(t, supplier.ID, found.Items[i].SupplierID)
	}
}

func TestMemoryOrders(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	supplier := &model.Supplier{Name: "a", Email: "a@x.com"}
	require.NoError(t, st.CreateVendor(ctx, &model.User{UserType: model.UserTypeVendor, Email: "a@x.com", Password: "h"}, supplier))
	item := &model.Item{Name: "Tea"}
	require.NoError(t, st.AddItem(ctx, supplier.ID, item))

	order := &model.Order{ItemID: item.ID, SupplierID: supplier.ID, Status: model.StatusPending}
	require.NoError(t, st.CreateOrder(ctx, order))
	require.NotEmpty(t, order.ID)

	orders, err := st.OrdersBySupplier(ctx, supplier.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].Item)
	assert.Equal(t, "Tea", orders[0].Item.Name)

	updated, err := st.UpdateOrderStatus(ctx, order.ID, model.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.StatusShipped, updated.Status)

	fresh, err := st.OrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusShipped, fresh.Status)

	// Orders for a supplier with none recorded come back empty, not nil
	none, err := st.OrdersBySupplier(ctx, "other")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

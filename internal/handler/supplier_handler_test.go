package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"streetbite/internal/model"
	"streetbite/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSuppliersEmpty(t *testing.T) {
	h := NewSupplierHandler(store.NewMemory())

	c, rec := newContext(t, http.MethodGet, "/api/suppliers", nil)
	require.NoError(t, h.ListSuppliers(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Suppliers []model.Supplier `json:"suppliers"`
	}
	decode(t, rec, &resp)
	assert.Empty(t, resp.Suppliers)
}

func TestGetSupplierNotFound(t *testing.T) {
	h := NewSupplierHandler(store.NewMemory())

	c, rec := newContext(t, http.MethodGet, "/api/suppliers/nope", nil)
	c.SetParamNames("supplierId")
	c.SetParamValues("nope")
	require.NoError(t, h.GetSupplier(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestGetSupplierIdempotent(t *testing.T) {
	st := store.NewMemory()
	h := NewSupplierHandler(st)
	supplier := seedVendor(t, st, "a@x.com")
	seedItem(t, st, supplier.ID, "Tea")
	seedItem(t, st, supplier.ID, "Samosa")

	get := func() string {
		c, rec := newContext(t, http.MethodGet, "/api/suppliers/"+supplier.ID, nil)
		c.SetParamNames("supplierId")
		c.SetParamValues(supplier.ID)
		require.NoError(t, h.GetSupplier(c))
		require.Equal(t, http.StatusOK, rec.Code)
		return rec.Body.String()
	}

	first := get()
	second := get()
	assert.JSONEq(t, first, second, "repeated reads with no writes must return identical item lists")
}

func TestAddItem(t *testing.T) {
	st := store.NewMemory()
	h := NewSupplierHandler(st)
	supplier := seedVendor(t, st, "a@x.com")

	c, rec := newContext(t, http.MethodPost, "/api/suppliers/"+supplier.ID+"/items", map[string]interface{}{
		"name":     "Tea",
		"stock":    10,
		"price":    20,
		"category": "Drinks",
		"photo":    "tea.jpg",
	})
	c.SetParamNames("supplierId")
	c.SetParamValues(supplier.ID)
	require.NoError(t, h.AddItem(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var item model.Item
	decode(t, rec, &item)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, supplier.ID, item.SupplierID)
	assert.Equal(t, "Tea", item.Name)
	assert.Equal(t, 10, item.Stock)
	assert.Equal(t, 20.0, item.Price)

	// Catalog grows by exactly one
	fresh, err := st.SupplierByID(c.Request().Context(), supplier.ID)
	require.NoError(t, err)
	require.Len(t, fresh.Items, 1)
	assert.Equal(t, item.ID, fresh.Items[0].ID)
}

func TestAddItemKeepsAppendOrder(t *testing.T) {
	st := store.NewMemory()
	h := NewSupplierHandler(st)
	supplier := seedVendor(t, st, "a@x.com")

	names := []string{"Tea", "Samosa", "Chaat"}
	for _, name := range names {
		c, rec := newContext(t, http.MethodPost, "/api/suppliers/"+supplier.ID+"/items", map[string]interface{}{
			"name": name,
		})
		c.SetParamNames("supplierId")
		c.SetParamValues(supplier.ID)
		require.NoError(t, h.AddItem(c))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	fresh, err := st.SupplierByID(context.Background(), supplier.ID)
	require.NoError(t, err)
	require.Len(t, fresh.Items, len(names))
	for i, name := range names {
		assert.Equal(t, name, fresh.Items[i].Name)
	}
}

func TestAddItemSupplierNotFound(t *testing.T) {
	h := NewSupplierHandler(store.NewMemory())

	c, rec := newContext(t, http.MethodPost, "/api/suppliers/nope/items", map[string]interface{}{
		"name": "Tea",
	})
	c.SetParamNames("supplierId")
	c.SetParamValues("nope")
	require.NoError(t, h.AddItem(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddItemWithoutName(t *testing.T) {
	st := store.NewMemory()
	h := NewSupplierHandler(st)
	supplier := seedVendor(t, st, "a@x.com")

	c, rec := newContext(t, http.MethodPost, "/api/suppliers/"+supplier.ID+"/items", map[string]interface{}{
		"stock": 5,
	})
	c.SetParamNames("supplierId")
	c.SetParamValues(supplier.ID)
	require.NoError(t, h.AddItem(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOrdersForSupplier(t *testing.T) {
	st := store.NewMemory()
	h := NewSupplierHandler(st)
	supplier := seedVendor(t, st, "a@x.com")
	item := seedItem(t, st, supplier.ID, "Tea")
	seedOrder(t, st, item)

	c, rec := newContext(t, http.MethodGet, "/api/suppliers/"+supplier.ID+"/orders", nil)
	c.SetParamNames("supplierId")
	c.SetParamValues(supplier.ID)
	require.NoError(t, h.ListOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []model.Order
	decode(t, rec, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, model.StatusPending, orders[0].Status)
	require.NotNil(t, orders[0].Item, "orders must come back with the item resolved")
	assert.Equal(t, "Tea", orders[0].Item.Name)
}

func TestListOrdersEmpty(t *testing.T) {
	st := store.NewMemory()
	h := NewSupplierHandler(st)
	supplier := seedVendor(t, st, "a@x.com")

	c, rec := newContext(t, http.MethodGet, "/api/suppliers/"+supplier.ID+"/orders", nil)
	c.SetParamNames("supplierId")
	c.SetParamValues(supplier.ID)
	require.NoError(t, h.ListOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func updateStatus(t *testing.T, h *SupplierHandler, orderID, status string) *httptest.ResponseRecorder {
	t.Helper()
	c, rec := newContext(t, http.MethodPatch, "/api/suppliers/orders/"+orderID, map[string]interface{}{
		"status": status,
	})
	c.SetParamNames("orderId")
	c.SetParamValues(orderID)
	require.NoError(t, h.UpdateOrderStatus(c))
	return rec
}

func TestUpdateOrderStatus(t *testing.T) {
	st := store.NewMemory()
	h := NewSupplierHandler(st)
	supplier := seedVendor(t, st, "a@x.com")
	item := seedItem(t, st, supplier.ID, "Tea")
	order := seedOrder(t, st, item)

	rec := updateStatus(t, h, order.ID, "Shipped")
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Order
	decode(t, rec, &updated)
	assert.Equal(t, model.StatusShipped, updated.Status)

	rec = updateStatus(t, h, order.ID, "Delivered")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &updated)
	assert.Equal(t, model.StatusDelivered, updated.Status)
}

func TestUpdateOrderStatusRejectsIllegalTransitions(t *testing.T) {
	st := store.NewMemory()
	h := NewSupplierHandler(st)
	supplier := seedVendor(t, st, "a@x.com")
	item := seedItem(t, st, supplier.ID, "Tea")
	order := seedOrder(t, st, item)

	// Skipping a step
	rec := updateStatus(t, h, order.ID, "Delivered")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Moving backward after shipping
	rec = updateStatus(t, h, order.ID, "Shipped")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = updateStatus(t, h, order.ID, "Pending")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Arbitrary strings never reach the store
	rec = updateStatus(t, h, order.ID, "Lost")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	fresh, err := st.OrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusShipped, fresh.Status)
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	h := NewSupplierHandler(store.NewMemory())

	rec := updateStatus(t, h, "nope", "Shipped")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
